package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/1broseidon/icontile/internal/daemon"
)

func (a *app) newDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the icontile daemon in the foreground",
		Long:  "Run the icontile daemon: registers the organize and undo hotkeys, serves IPC for the other commands, and serializes all desktop operations.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if !a.verbose {
				if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
					a.log.SetLevel(level)
				}
			}

			org, surf, err := a.buildOrganizer(cfg)
			if err != nil {
				return err
			}
			defer surf.Close()

			d := daemon.New(cfg, org, surf.Connection(), a.log)
			return d.Run(cmd.Context())
		},
	}
}
