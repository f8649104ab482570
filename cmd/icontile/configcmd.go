package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/icontile/internal/config"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate the configuration",
	}
	cmd.AddCommand(a.newConfigPrintCmd())
	cmd.AddCommand(a.newConfigValidateCmd())
	return cmd
}

func (a *app) newConfigPrintCmd() *cobra.Command {
	var printDefaults bool
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if !printDefaults {
				var err error
				cfg, err = a.loadConfig()
				if err != nil {
					return err
				}
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&printDefaults, "defaults", false, "print built-in defaults instead of the loaded config")
	return cmd
}

func (a *app) newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.loadConfig(); err != nil {
				return err
			}
			fmt.Println("config: ok")
			return nil
		},
	}
}
