package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1broseidon/icontile/internal/ipc"
	"github.com/1broseidon/icontile/internal/organize"
)

func (a *app) newOrganizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "organize",
		Short: "Classify and arrange all desktop icons",
		Long:  "Classify every desktop icon into its group and arrange the groups on the icon grid. Goes through the daemon when one is running, otherwise runs directly against the desktop.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if daemonRunning() {
				sum, err := ipc.NewClient().Organize()
				if err != nil {
					return err
				}
				printSummary(*sum)
				return nil
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			org, surf, err := a.buildOrganizer(cfg)
			if err != nil {
				return err
			}
			defer surf.Close()

			sum, err := org.Organize()
			if err != nil {
				return err
			}
			printSummary(sum)
			return nil
		},
	}
}

func printSummary(sum organize.Summary) {
	if sum.Empty {
		fmt.Println("desktop is empty, nothing to organize")
		return
	}
	fmt.Printf("organized %d icons into %d groups (placed %d, skipped %d)\n",
		sum.Icons, sum.Groups, sum.Placed, sum.Skipped)
	if sum.Mismatched > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf(
			"%d icons did not keep their positions; desktop auto-arrange may be enabled", sum.Mismatched)))
	}
}

func (a *app) newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Restore icon positions from before the last organize",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var restored int
			if daemonRunning() {
				n, err := ipc.NewClient().Undo()
				if err != nil {
					return err
				}
				restored = n
			} else {
				cfg, err := a.loadConfig()
				if err != nil {
					return err
				}
				org, surf, err := a.buildOrganizer(cfg)
				if err != nil {
					return err
				}
				defer surf.Close()
				restored, err = org.Undo()
				if err != nil {
					return err
				}
			}
			fmt.Printf("restored %d icons\n", restored)
			return nil
		},
	}
}

func (a *app) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show desktop and daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				status organize.Status
				viaIPC bool
			)
			if s, err := ipc.NewClient().GetStatus(); err == nil {
				status, viaIPC = *s, true
			} else {
				cfg, err := a.loadConfig()
				if err != nil {
					return err
				}
				org, surf, err := a.buildOrganizer(cfg)
				if err != nil {
					return err
				}
				defer surf.Close()
				status, err = org.Status()
				if err != nil {
					return err
				}
			}

			if viaIPC {
				fmt.Printf("%s %s\n", headStyle.Render("daemon:"), activeStyle.Render("running"))
			} else {
				fmt.Printf("%s %s\n", headStyle.Render("daemon:"), dimStyle.Render("not running"))
			}
			fmt.Printf("%s %d\n", headStyle.Render("icons:"), status.Icons)
			fmt.Printf("%s %s\n", headStyle.Render("monitor:"), status.Monitor)
			preset := status.ActivePreset
			if preset == "" {
				preset = dimStyle.Render("none")
			}
			fmt.Printf("%s %s\n", headStyle.Render("preset:"), preset)
			fmt.Printf("%s %s\n", headStyle.Render("groups:"), strings.Join(status.Groups, ", "))
			fmt.Printf("%s %d\n", headStyle.Render("layouts:"), status.Layouts)
			return nil
		},
	}
}
