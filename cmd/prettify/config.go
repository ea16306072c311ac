package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prettify/prettify/internal/resolve"
	internalsettings "github.com/prettify/prettify/internal/settings"
	"github.com/prettify/prettify/internal/wizard"
	pkgsettings "github.com/prettify/prettify/pkg/settings"
)

var (
	configOutput string
	configForce  bool
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage prettify settings",
	Long: `Manage prettify settings.

Settings live in .prettify.json files: one in your home directory for
user-wide defaults and one per project. Project settings win.`,
}

// configInitCmd creates a settings file interactively
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a settings file interactively",
	Example: `  # Create .prettify.json in the current directory
  prettify config init

  # Overwrite an existing file
  prettify config init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := wizard.NewSettingsWizard()
		return w.Run(configOutput, configForce)
	},
}

// configValidateCmd validates a settings file
var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a settings file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			loader := internalsettings.NewLoader()
			found, ok := loader.ProjectFile()
			if !ok {
				return fmt.Errorf("no %s found; pass a path to validate", internalsettings.SettingsFileName)
			}
			path = found
		}

		if err := internalsettings.ValidateSettingsFile(path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Printf("%s is valid.\n", path)
		return nil
	},
}

// configShowCmd prints the effective settings and resolved paths
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings and resolved paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}

		data, err := pkgsettings.Save(s)
		if err != nil {
			return err
		}
		fmt.Println(string(data))

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}

		fmt.Println()
		if bin, err := resolve.PrettierBinary(cwd, s); err == nil {
			fmt.Printf("prettier: %s\n", bin.Path)
			if bin.Node != "" {
				fmt.Printf("node: %s\n", bin.Node)
			}
		} else {
			fmt.Println("prettier: not found")
		}
		if path, ok := resolve.PrettierConfig(cwd); ok {
			fmt.Printf("prettier config: %s\n", path)
		} else {
			fmt.Println("prettier config: none")
		}
		if path, ok := resolve.IgnoreFile(cwd); ok {
			fmt.Printf("ignore file: %s\n", path)
		} else {
			fmt.Println("ignore file: none")
		}
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVarP(&configOutput, "output", "o", "", "Where to write the settings file")
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing settings file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
