package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1broseidon/icontile/internal/ipc"
	"github.com/1broseidon/icontile/internal/organize"
)

func (a *app) newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Save, restore and manage named icon layouts",
	}
	cmd.AddCommand(a.newLayoutListCmd())
	cmd.AddCommand(a.newLayoutSaveCmd())
	cmd.AddCommand(a.newLayoutRestoreCmd())
	cmd.AddCommand(a.newLayoutDeleteCmd())
	cmd.AddCommand(a.newLayoutRenameCmd())
	return cmd
}

// withOrganizer runs f against a standalone organizer when no daemon is up.
func (a *app) withOrganizer(f func(org *organize.Organizer) error) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	org, surf, err := a.buildOrganizer(cfg)
	if err != nil {
		return err
	}
	defer surf.Close()
	return f(org)
}

func (a *app) newLayoutListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if daemonRunning() {
				data, err := ipc.NewClient().ListLayouts()
				if err != nil {
					return err
				}
				if len(data.Layouts) == 0 {
					fmt.Println(dimStyle.Render("no saved layouts"))
					return nil
				}
				for _, l := range data.Layouts {
					fmt.Printf("%s  %s\n",
						headStyle.Render(l.Name),
						dimStyle.Render(fmt.Sprintf("%d icons, saved %s", l.Icons, l.CreatedAt)))
				}
				return nil
			}
			store, err := layoutStore()
			if err != nil {
				return err
			}
			layouts, err := store.UserLayouts()
			if err != nil {
				return err
			}
			if len(layouts) == 0 {
				fmt.Println(dimStyle.Render("no saved layouts"))
				return nil
			}
			for _, l := range layouts {
				fmt.Printf("%s  %s\n",
					headStyle.Render(l.Name),
					dimStyle.Render(fmt.Sprintf("%d icons, saved %s",
						len(l.Positions), l.CreatedAt.Format("2006-01-02 15:04"))))
			}
			return nil
		},
	}
}

func (a *app) newLayoutSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name>",
		Short: "Save current icon positions under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if daemonRunning() {
				info, err := ipc.NewClient().SaveLayout(name)
				if err != nil {
					return err
				}
				fmt.Printf("saved layout %q (%d icons)\n", info.Name, info.Icons)
				return nil
			}
			return a.withOrganizer(func(org *organize.Organizer) error {
				saved, err := org.SaveLayout(name)
				if err != nil {
					return err
				}
				fmt.Printf("saved layout %q (%d icons)\n", saved.Name, len(saved.Positions))
				return nil
			})
		},
	}
}

func (a *app) newLayoutRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <name>",
		Short: "Move icons back to a saved layout's positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			var restored int
			if daemonRunning() {
				n, err := ipc.NewClient().RestoreLayout(name)
				if err != nil {
					return err
				}
				restored = n
			} else {
				err := a.withOrganizer(func(org *organize.Organizer) error {
					n, err := org.RestoreLayout(name)
					restored = n
					return err
				})
				if err != nil {
					return err
				}
			}
			fmt.Printf("restored %d icons from layout %q\n", restored, name)
			return nil
		},
	}
}

func (a *app) newLayoutDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if daemonRunning() {
				if err := ipc.NewClient().DeleteLayout(name); err != nil {
					return err
				}
				fmt.Printf("deleted layout %q\n", name)
				return nil
			}
			store, err := layoutStore()
			if err != nil {
				return err
			}
			removed, err := store.Delete(name)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("layout %q not found", name)
			}
			fmt.Printf("deleted layout %q\n", name)
			return nil
		},
	}
}

func (a *app) newLayoutRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a saved layout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldName, newName := args[0], args[1]
			if daemonRunning() {
				if err := ipc.NewClient().RenameLayout(oldName, newName); err != nil {
					return err
				}
				fmt.Printf("renamed layout %q to %q\n", oldName, newName)
				return nil
			}
			store, err := layoutStore()
			if err != nil {
				return err
			}
			if err := store.Rename(oldName, newName); err != nil {
				return err
			}
			fmt.Printf("renamed layout %q to %q\n", oldName, newName)
			return nil
		},
	}
}
