// Package daemon runs the long-lived process: a single worker that executes
// organize operations one at a time, an IPC server, and global hotkeys.
package daemon

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/1broseidon/icontile/internal/config"
	"github.com/1broseidon/icontile/internal/hotkeys"
	"github.com/1broseidon/icontile/internal/ipc"
	"github.com/1broseidon/icontile/internal/layout"
	"github.com/1broseidon/icontile/internal/organize"
	"github.com/1broseidon/icontile/internal/preset"
	"github.com/1broseidon/icontile/internal/runtimepath"
	"github.com/1broseidon/icontile/internal/x11"
)

// Daemon ties the organizer to its triggers. Every mutating operation is
// funneled through one worker goroutine, so a hotkey press during an IPC
// organize waits its turn instead of racing position writes.
type Daemon struct {
	cfg  *config.Config
	org  *organize.Organizer
	conn *x11.Connection
	log  *log.Logger

	jobs chan job
	done chan struct{}
}

type job struct {
	run   func() (any, error)
	reply chan jobResult
}

type jobResult struct {
	value any
	err   error
}

// New creates a daemon. conn may be nil when hotkeys are not wanted (tests).
func New(cfg *config.Config, org *organize.Organizer, conn *x11.Connection, logger *log.Logger) *Daemon {
	if logger == nil {
		logger = log.Default()
	}
	return &Daemon{
		cfg:  cfg,
		org:  org,
		conn: conn,
		log:  logger,
		jobs: make(chan job, 16),
		done: make(chan struct{}),
	}
}

// Run starts the worker, IPC server, hotkeys and the X event loop, then
// blocks until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	go d.worker()
	defer close(d.done)

	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	server := ipc.NewServer(socketPath, d, d.log)
	if err := server.Start(); err != nil {
		return err
	}
	defer server.Stop()

	if d.conn != nil {
		if err := d.registerHotkeys(); err != nil {
			return err
		}
		go d.conn.EventLoop()
		defer d.conn.Quit()
	}

	d.log.Info("daemon running",
		"organize_hotkey", d.cfg.OrganizeHotkey,
		"undo_hotkey", d.cfg.UndoHotkey)

	<-ctx.Done()
	d.log.Info("daemon shutting down")
	return nil
}

func (d *Daemon) registerHotkeys() error {
	handler := hotkeys.NewHandler(d.conn.XUtil, d.conn.Root)

	if err := handler.Register(d.cfg.OrganizeHotkey, func() {
		d.trigger("organize", func() (any, error) { return d.org.Organize() })
	}); err != nil {
		return fmt.Errorf("failed to register organize hotkey %q: %w", d.cfg.OrganizeHotkey, err)
	}

	if d.cfg.UndoHotkey != "" {
		if err := handler.Register(d.cfg.UndoHotkey, func() {
			d.trigger("undo", func() (any, error) { return d.org.Undo() })
		}); err != nil {
			return fmt.Errorf("failed to register undo hotkey %q: %w", d.cfg.UndoHotkey, err)
		}
	}
	return nil
}

// trigger enqueues work from the X event loop without blocking it.
func (d *Daemon) trigger(name string, f func() (any, error)) {
	go func() {
		if _, err := d.do(f); err != nil {
			d.log.Error("hotkey operation failed", "op", name, "err", err)
		}
	}()
}

// worker executes queued jobs strictly one at a time.
func (d *Daemon) worker() {
	for {
		select {
		case j := <-d.jobs:
			value, err := j.run()
			j.reply <- jobResult{value: value, err: err}
		case <-d.done:
			return
		}
	}
}

func (d *Daemon) do(f func() (any, error)) (any, error) {
	j := job{run: f, reply: make(chan jobResult, 1)}
	select {
	case d.jobs <- j:
	case <-d.done:
		return nil, fmt.Errorf("daemon is shutting down")
	}
	res := <-j.reply
	return res.value, res.err
}

// Controller implementation. Mutating operations go through the queue; pure
// reads hit the organizer directly.

func (d *Daemon) Organize() (organize.Summary, error) {
	v, err := d.do(func() (any, error) { return d.org.Organize() })
	if err != nil {
		return organize.Summary{}, err
	}
	return v.(organize.Summary), nil
}

func (d *Daemon) Undo() (int, error) {
	v, err := d.do(func() (any, error) { return d.org.Undo() })
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (d *Daemon) SaveLayout(name string) (layout.SavedLayout, error) {
	v, err := d.do(func() (any, error) { return d.org.SaveLayout(name) })
	if err != nil {
		return layout.SavedLayout{}, err
	}
	return v.(layout.SavedLayout), nil
}

func (d *Daemon) RestoreLayout(name string) (int, error) {
	v, err := d.do(func() (any, error) { return d.org.RestoreLayout(name) })
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (d *Daemon) DeleteLayout(name string) (bool, error) {
	return d.org.Layouts().Delete(name)
}

func (d *Daemon) RenameLayout(oldName, newName string) error {
	return d.org.Layouts().Rename(oldName, newName)
}

func (d *Daemon) ListLayouts() ([]layout.SavedLayout, error) {
	return d.org.Layouts().UserLayouts()
}

func (d *Daemon) ApplyPreset(id string) error {
	_, err := d.do(func() (any, error) { return nil, d.org.ApplyPreset(id) })
	return err
}

func (d *Daemon) ListPresets() ([]preset.Preset, error) {
	return d.org.Presets().All()
}

func (d *Daemon) ActivePreset() string {
	return d.org.ActivePreset()
}

func (d *Daemon) Status() (organize.Status, error) {
	return d.org.Status()
}

// Reload re-reads the config file and swaps settings and groups in place.
// Hotkey bindings keep their startup values until the daemon restarts.
func (d *Daemon) Reload() error {
	_, err := d.do(func() (any, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		d.cfg = cfg
		d.org.Reconfigure(cfg.Layout, cfg.EffectiveGroups(), cfg.Monitor, cfg.Preset)
		d.log.Info("configuration reloaded")
		return nil, nil
	})
	return err
}
