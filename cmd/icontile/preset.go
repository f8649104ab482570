package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1broseidon/icontile/internal/ipc"
)

func (a *app) newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "List, apply and manage grouping presets",
	}
	cmd.AddCommand(a.newPresetListCmd())
	cmd.AddCommand(a.newPresetApplyCmd())
	cmd.AddCommand(a.newPresetSaveCmd())
	cmd.AddCommand(a.newPresetUpdateCmd())
	cmd.AddCommand(a.newPresetDeleteCmd())
	return cmd
}

func (a *app) newPresetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and custom presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if daemonRunning() {
				data, err := ipc.NewClient().ListPresets()
				if err != nil {
					return err
				}
				for _, p := range data.Presets {
					printPresetLine(p.ID, p.Name, p.Description, p.Dynamic, p.Active)
				}
				return nil
			}

			catalog, err := presetCatalog()
			if err != nil {
				return err
			}
			presets, err := catalog.All()
			if err != nil {
				return err
			}
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			for _, p := range presets {
				printPresetLine(p.ID, p.Name, p.Description, p.Dynamic, p.ID == cfg.Preset)
			}
			return nil
		},
	}
}

func printPresetLine(id, name, description string, dynamic, active bool) {
	line := headStyle.Render(id)
	if active {
		line += " " + activeStyle.Render("(active)")
	}
	if dynamic {
		line += " " + dimStyle.Render("[dynamic]")
	}
	if description != "" {
		line += "\n  " + dimStyle.Render(description)
	} else if name != id {
		line += "\n  " + dimStyle.Render(name)
	}
	fmt.Println(line)
}

func (a *app) newPresetApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <id>",
		Short: "Make a preset the active grouping scheme",
		Long:  "Make a preset the active grouping scheme. The choice is persisted to the config file and, when a daemon is running, applied immediately.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			catalog, err := presetCatalog()
			if err != nil {
				return err
			}
			if _, ok, err := catalog.Get(id); err != nil {
				return err
			} else if !ok {
				return fmt.Errorf("preset %q not found", id)
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			cfg.Preset = id
			if err := a.saveConfig(cfg); err != nil {
				return err
			}

			if daemonRunning() {
				if err := ipc.NewClient().ApplyPreset(id); err != nil {
					return err
				}
			}
			fmt.Printf("preset %q applied\n", id)
			return nil
		},
	}
}

func (a *app) newPresetSaveCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current group configuration as a custom preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			catalog, err := presetCatalog()
			if err != nil {
				return err
			}
			p, err := catalog.SaveCustom(args[0], description, cfg.EffectiveGroups())
			if err != nil {
				return err
			}
			fmt.Printf("saved preset %q (%d groups)\n", p.ID, len(p.Groups))
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "preset description")
	return cmd
}

func (a *app) newPresetUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id>",
		Short: "Overwrite a custom preset's groups with the current configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			catalog, err := presetCatalog()
			if err != nil {
				return err
			}
			if err := catalog.UpdateCustom(args[0], cfg.EffectiveGroups()); err != nil {
				return err
			}
			fmt.Printf("updated preset %q\n", args[0])
			return nil
		},
	}
}

func (a *app) newPresetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a custom preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			catalog, err := presetCatalog()
			if err != nil {
				return err
			}
			if err := catalog.DeleteCustom(id); err != nil {
				return err
			}

			// Detach the preset from the config if it was active.
			cfg, err := a.loadConfig()
			if err == nil && cfg.Preset == id {
				cfg.Preset = ""
				if err := a.saveConfig(cfg); err != nil {
					return err
				}
				if daemonRunning() {
					if err := ipc.NewClient().Reload(); err != nil {
						a.log.Warn("daemon reload failed", "err", err)
					}
				}
			}
			fmt.Printf("deleted preset %q\n", id)
			return nil
		},
	}
}
