package settings

// OptionMapping ties a prettier option name to its CLI flag and the
// default value prettify uses when the option is not configured and no
// prettier config file is in play.
type OptionMapping struct {
	Option  string
	CLI     string
	Default string
}

// OptionCLIMap is the ordered mapping of supported prettier options to
// their CLI flags. Order matters: arguments are emitted in this order
// so runs are reproducible.
var OptionCLIMap = []OptionMapping{
	{Option: "printWidth", CLI: "--print-width", Default: "80"},
	{Option: "singleQuote", CLI: "--single-quote", Default: "false"},
	{Option: "trailingComma", CLI: "--trailing-comma", Default: "none"},
	{Option: "bracketSpacing", CLI: "--bracket-spacing", Default: "true"},
	{Option: "jsxBracketSameLine", CLI: "--jsx-bracket-same-line", Default: "false"},
	{Option: "parser", CLI: "--parser", Default: "babel"},
	{Option: "semi", CLI: "--semi", Default: "true"},
	{Option: "requirePragma", CLI: "--require-pragma", Default: "false"},
	{Option: "proseWrap", CLI: "--prose-wrap", Default: "preserve"},
	{Option: "arrowParens", CLI: "--arrow-parens", Default: "avoid"},
	{Option: "quoteProps", CLI: "--quote-props", Default: "as-needed"},
	{Option: "htmlWhitespaceSensitivity", CLI: "--html-whitespace-sensitivity", Default: "css"},
	{Option: "vueIndentScriptAndStyle", CLI: "--vue-indent-script-and-style", Default: "false"},
	{Option: "embeddedLanguageFormatting", CLI: "--embedded-language-formatting", Default: "auto"},
}

// IsKnownOption reports whether name is a supported prettier option.
func IsKnownOption(name string) bool {
	for _, m := range OptionCLIMap {
		if m.Option == name {
			return true
		}
	}
	return false
}
