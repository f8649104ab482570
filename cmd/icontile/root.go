package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/1broseidon/icontile/internal/classify"
	"github.com/1broseidon/icontile/internal/config"
	"github.com/1broseidon/icontile/internal/ipc"
	"github.com/1broseidon/icontile/internal/layout"
	"github.com/1broseidon/icontile/internal/organize"
	"github.com/1broseidon/icontile/internal/pcmanfm"
	"github.com/1broseidon/icontile/internal/preset"
)

const version = "0.1.0"

// app carries the CLI's shared state: the resolved config path, the logger
// and the persistent flags. Commands hang off it so tests can build one
// around a temp config.
type app struct {
	configPath string
	verbose    bool
	log        *log.Logger
}

func newApp() *app {
	return &app{log: log.New(os.Stderr)}
}

// Execute builds the command tree and runs it with the given arguments.
func (a *app) Execute(ctx context.Context, args []string) error {
	root := &cobra.Command{
		Use:          "icontile",
		Short:        "icontile organizes desktop icons into labeled grid groups",
		Long:         "icontile classifies desktop icons into groups (documents, images, folders, ...) and arranges them on the icon grid. Run the daemon for hotkeys and IPC, or use the commands directly.",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if a.verbose {
				level = log.DebugLevel
			}
			a.log = log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				TimeFormat:      "15:04:05",
				Level:           level,
			})
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file path (default: ~/.config/icontile/config.yaml)")

	root.AddCommand(a.newOrganizeCmd())
	root.AddCommand(a.newUndoCmd())
	root.AddCommand(a.newStatusCmd())
	root.AddCommand(a.newLayoutCmd())
	root.AddCommand(a.newPresetCmd())
	root.AddCommand(a.newGroupsCmd())
	root.AddCommand(a.newConfigCmd())
	root.AddCommand(a.newDaemonCmd())
	root.AddCommand(a.newMCPCmd())

	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.configPath != "" {
		return config.LoadFromPath(a.configPath)
	}
	return config.Load()
}

func (a *app) saveConfig(cfg *config.Config) error {
	if a.configPath != "" {
		return cfg.SaveTo(a.configPath)
	}
	return cfg.Save()
}

// daemonRunning reports whether a daemon answers on the IPC socket.
func daemonRunning() bool {
	return ipc.NewClient().Ping() == nil
}

// buildOrganizer wires a standalone organizer against the live desktop. The
// caller must Close the returned surface. Used by the daemon, the MCP server
// and the direct fallback of one-shot commands when no daemon is running.
func (a *app) buildOrganizer(cfg *config.Config) (*organize.Organizer, *pcmanfm.Surface, error) {
	surf, err := pcmanfm.New(pcmanfm.Options{
		DesktopDir: cfg.DesktopDir,
		Display:    cfg.Display,
		XAuthority: cfg.XAuthority,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open desktop surface: %w", err)
	}

	dataDir, err := ensureDataDir()
	if err != nil {
		surf.Close()
		return nil, nil, err
	}

	classifier := classify.New()
	classifier.ReplaceGroups(cfg.EffectiveGroups())

	org := organize.New(organize.Options{
		Surface:      surf,
		Classifier:   classifier,
		Engine:       layout.NewEngine(cfg.Layout),
		Layouts:      layout.NewStore(filepath.Join(dataDir, "layouts.json")),
		Presets:      preset.NewCatalog(filepath.Join(dataDir, "presets.json")),
		Monitor:      cfg.Monitor,
		ActivePreset: cfg.Preset,
		Logger:       a.log,
	})
	return org, surf, nil
}

// presetCatalog opens the catalog without touching the desktop, for preset
// commands that only edit the store.
func presetCatalog() (*preset.Catalog, error) {
	dir, err := ensureDataDir()
	if err != nil {
		return nil, err
	}
	return preset.NewCatalog(filepath.Join(dir, "presets.json")), nil
}

// layoutStore opens the saved-layout store without touching the desktop.
func layoutStore() (*layout.Store, error) {
	dir, err := ensureDataDir()
	if err != nil {
		return nil, err
	}
	return layout.NewStore(filepath.Join(dir, "layouts.json")), nil
}

func ensureDataDir() (string, error) {
	dir, err := config.DefaultDataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}
