package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkgw-corpus/dkgw/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config [key] [value]",
		Short: "Manage configuration",
		Long: `View or modify dkgw configuration.

Without arguments, displays the effective configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the value in the user config file.
Only that key changes; flags and environment variables are not saved.

Configuration is stored at ~/.config/dkgw/config.yaml
Project-specific overrides can be placed in .dkgw.yaml`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 0:
				return a.displayAllConfig()
			case 1:
				value, err := config.GetValue(a.cfg, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, value)
				return nil
			default:
				return a.setConfigKey(args[0], args[1])
			}
		},
	}
}

// displayAllConfig prints the config file locations and all effective values.
func (a *app) displayAllConfig() error {
	project := config.GetProjectConfigPath()
	if project == "" {
		project = "(none)"
	}
	fmt.Fprintf(a.stdout, "# user config: %s\n", config.GetUserConfigPath())
	fmt.Fprintf(a.stdout, "# project config: %s\n", project)

	for _, key := range config.Keys {
		value, err := config.GetValue(a.cfg, key)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "%s: %s\n", key, value)
	}
	return nil
}

// setConfigKey sets a value in the user config file. The effective
// configuration of this run is not used, so flags, environment variables and
// project files never leak into the saved file.
func (a *app) setConfigKey(key, value string) error {
	cfg, err := config.LoadUser()
	if err != nil {
		return err
	}
	if err := config.SetValue(cfg, key, value); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(a.stdout, "Set %s = %s\n", key, value)
	return nil
}
