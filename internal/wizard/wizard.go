// Package wizard provides the interactive settings setup for prettify.
package wizard

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/term"

	"github.com/prettify/prettify/internal/debug"
	"github.com/prettify/prettify/internal/detect"
	pkgsettings "github.com/prettify/prettify/pkg/settings"
)

// formattingOptionPrompts are asked in this order. Answers that differ
// from the prettier default are recorded in prettier_options.
var formattingOptionPrompts = []struct {
	name         string
	message      string
	defaultValue bool
}{
	{name: "semi", message: "Print semicolons?", defaultValue: true},
	{name: "singleQuote", message: "Use single quotes?", defaultValue: false},
}

// SettingsWizard walks the user through creating a .prettify.json.
type SettingsWizard struct {
	detector *detect.ProjectDetector
}

// NewSettingsWizard creates a settings wizard.
func NewSettingsWizard() *SettingsWizard {
	return &SettingsWizard{detector: detect.New()}
}

// Run runs the wizard and writes the settings file to outputPath
// (a directory gets the default file name appended). With force set,
// an existing file is overwritten without asking.
func (w *SettingsWizard) Run(outputPath string, force bool) error {
	debug.LogSection("Settings Wizard")

	path, err := w.determineOutputPath(outputPath)
	if err != nil {
		return err
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	if !force {
		if _, err := os.Stat(path); err == nil {
			if !interactive {
				return fmt.Errorf("%s already exists; use --force to overwrite", path)
			}
			overwrite, err := w.checkExisting(path)
			if err != nil {
				return err
			}
			if !overwrite {
				fmt.Println("Settings wizard canceled.")
				return nil
			}
		}
	}

	w.printDetection(filepath.Dir(path))

	s := pkgsettings.Default()
	if interactive {
		if err := w.askFormatting(s); err != nil {
			return err
		}
		if err := w.askOnSave(s); err != nil {
			return err
		}
	} else {
		fmt.Println("No terminal detected; writing default settings.")
	}

	data, err := pkgsettings.Save(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	fmt.Printf("Settings written to %s\n", path)
	return nil
}

func (w *SettingsWizard) determineOutputPath(outputPath string) (string, error) {
	if outputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return filepath.Join(cwd, ".prettify.json"), nil
	}
	if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
		return filepath.Join(outputPath, ".prettify.json"), nil
	}
	return outputPath, nil
}

func (w *SettingsWizard) checkExisting(path string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return true, nil
	}
	overwrite := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("%s already exists. Overwrite?", path),
		Default: false,
	}
	if err := survey.AskOne(prompt, &overwrite); err != nil {
		return false, err
	}
	return overwrite, nil
}

// printDetection reports what the project looks like, so the defaults
// offered below make sense to the user.
func (w *SettingsWizard) printDetection(dir string) {
	types, err := w.detector.Detect(dir)
	if err != nil || len(types) == 0 {
		return
	}
	fmt.Printf("Detected project type: %s\n", types[0].Name)
	if detect.UsesPrettier(dir) {
		fmt.Println("Prettier is already set up in this project; its config file will take precedence over the options below.")
	}
}

func (w *SettingsWizard) askFormatting(s *pkgsettings.Settings) error {
	tabWidth := strconv.Itoa(s.TabWidth)
	if err := survey.AskOne(&survey.Input{
		Message: "Tab width:",
		Default: tabWidth,
	}, &tabWidth); err != nil {
		return err
	}
	if n, err := strconv.Atoi(strings.TrimSpace(tabWidth)); err == nil {
		s.TabWidth = n
	}

	if err := survey.AskOne(&survey.Confirm{
		Message: "Indent with tabs?",
		Default: s.UseTabs,
	}, &s.UseTabs); err != nil {
		return err
	}

	for _, opt := range formattingOptionPrompts {
		value := opt.defaultValue
		if err := survey.AskOne(&survey.Confirm{
			Message: opt.message,
			Default: opt.defaultValue,
		}, &value); err != nil {
			return err
		}
		if value != opt.defaultValue {
			if s.PrettierOptions == nil {
				s.PrettierOptions = make(map[string]string)
			}
			s.PrettierOptions[opt.name] = strconv.FormatBool(value)
		}
	}

	trailingComma := "none"
	if err := survey.AskOne(&survey.Select{
		Message: "Trailing commas:",
		Options: []string{"none", "es5", "all"},
		Default: "none",
	}, &trailingComma); err != nil {
		return err
	}
	if trailingComma != "none" {
		if s.PrettierOptions == nil {
			s.PrettierOptions = make(map[string]string)
		}
		s.PrettierOptions["trailingComma"] = trailingComma
	}

	return nil
}

func (w *SettingsWizard) askOnSave(s *pkgsettings.Settings) error {
	if err := survey.AskOne(&survey.Confirm{
		Message: "Enable format on save (watch mode)?",
		Default: false,
	}, &s.AutoFormatOnSave); err != nil {
		return err
	}
	if !s.AutoFormatOnSave {
		return nil
	}

	excludes := ""
	if err := survey.AskOne(&survey.Input{
		Message: "Exclude globs (space separated, empty for none):",
	}, &excludes); err != nil {
		return err
	}
	if strings.TrimSpace(excludes) != "" {
		s.AutoFormatOnSaveExcludes = strings.Fields(excludes)
	}

	return survey.AskOne(&survey.Confirm{
		Message: "Only format files that have a prettier config?",
		Default: false,
	}, &s.AutoFormatOnSaveRequiresPrettierConfig)
}
