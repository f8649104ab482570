package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1broseidon/icontile/internal/classify"
	"github.com/1broseidon/icontile/internal/ipc"
)

func (a *app) newGroupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Inspect and edit the classification groups",
		Long:  "Inspect and edit the classification groups stored in the config file. Edits take effect in a running daemon immediately. Note that an active preset overrides the configured groups on each organize.",
	}
	cmd.AddCommand(a.newGroupsListCmd())
	cmd.AddCommand(a.newGroupsAddCmd())
	cmd.AddCommand(a.newGroupsRemoveCmd())
	cmd.AddCommand(a.newGroupsEnableCmd(true))
	cmd.AddCommand(a.newGroupsEnableCmd(false))
	cmd.AddCommand(a.newGroupsSetPriorityCmd())
	return cmd
}

// mutateGroups edits the configured group list through a classifier, saves
// the config, and pokes a running daemon to reload.
func (a *app) mutateGroups(f func(c *classify.Classifier) error) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	c := classify.New()
	c.ReplaceGroups(cfg.EffectiveGroups())
	if err := f(c); err != nil {
		return err
	}

	cfg.Groups = c.Groups()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := a.saveConfig(cfg); err != nil {
		return err
	}

	if cfg.Preset != "" {
		a.log.Warn("a preset is active and overrides configured groups on organize", "preset", cfg.Preset)
	}
	if daemonRunning() {
		if err := ipc.NewClient().Reload(); err != nil {
			a.log.Warn("daemon reload failed", "err", err)
		}
	}
	return nil
}

func (a *app) newGroupsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured groups in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			for _, g := range cfg.EffectiveGroups() {
				line := fmt.Sprintf("%s %s", dimStyle.Render(fmt.Sprintf("%4d", g.Priority)), headStyle.Render(g.Name))
				if !g.Enabled {
					line += " " + warnStyle.Render("(disabled)")
				}
				switch g.Kind {
				case classify.KindExtensions:
					line += " " + dimStyle.Render(strings.Join(g.Extensions, " "))
				default:
					line += " " + dimStyle.Render("["+string(g.Kind)+"]")
				}
				if g.MergeGroup != "" {
					line += " " + activeStyle.Render("merge:"+g.MergeGroup)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func (a *app) newGroupsAddCmd() *cobra.Command {
	var (
		extensions []string
		priority   int
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an extension group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutateGroups(func(c *classify.Classifier) error {
				g, err := c.AddGroup(args[0], extensions, priority)
				if err != nil {
					return err
				}
				fmt.Printf("added group %q (priority %d, %d extensions)\n", g.Name, g.Priority, len(g.Extensions))
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVarP(&extensions, "extensions", "e", nil, "extensions the group matches (e.g. pdf,docx)")
	cmd.Flags().IntVarP(&priority, "priority", "p", 100, "match priority (lower matches first)")
	return cmd
}

func (a *app) newGroupsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutateGroups(func(c *classify.Classifier) error {
				if !c.RemoveGroup(args[0]) {
					return fmt.Errorf("group %q not found", args[0])
				}
				fmt.Printf("removed group %q\n", args[0])
				return nil
			})
		},
	}
}

func (a *app) newGroupsEnableCmd(enable bool) *cobra.Command {
	use, short := "enable <name>", "Enable a group"
	if !enable {
		use, short = "disable <name>", "Disable a group so its icons fall through to later matches"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutateGroups(func(c *classify.Classifier) error {
				if !c.SetEnabled(args[0], enable) {
					return fmt.Errorf("group %q not found", args[0])
				}
				if enable {
					fmt.Printf("enabled group %q\n", args[0])
				} else {
					fmt.Printf("disabled group %q\n", args[0])
				}
				return nil
			})
		},
	}
}

func (a *app) newGroupsSetPriorityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-priority <name> <priority>",
		Short: "Change a group's match priority",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			priority, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid priority %q: %w", args[1], err)
			}
			return a.mutateGroups(func(c *classify.Classifier) error {
				if !c.SetPriority(args[0], priority) {
					return fmt.Errorf("group %q not found", args[0])
				}
				fmt.Printf("group %q now has priority %d\n", args[0], priority)
				return nil
			})
		},
	}
}
