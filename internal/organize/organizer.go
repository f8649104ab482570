// Package organize runs the end-to-end pipeline: snapshot icons, classify
// them, compute grid positions, write them back, and verify the result.
package organize

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/1broseidon/icontile/internal/classify"
	"github.com/1broseidon/icontile/internal/config"
	"github.com/1broseidon/icontile/internal/layout"
	"github.com/1broseidon/icontile/internal/preset"
	"github.com/1broseidon/icontile/internal/surface"
)

// Options wires the organizer's collaborators.
type Options struct {
	Surface      surface.Surface
	Classifier   *classify.Classifier
	Engine       *layout.Engine
	Layouts      *layout.Store
	Presets      *preset.Catalog
	Monitor      config.MonitorMode
	ActivePreset string
	Logger       *log.Logger
}

// Organizer owns one desktop surface and serializes all operations against
// it. Concurrent triggers (hotkey, IPC, MCP) queue on the internal mutex, so
// position writes never interleave.
type Organizer struct {
	mu           sync.Mutex
	surf         surface.Surface
	classifier   *classify.Classifier
	engine       *layout.Engine
	layouts      *layout.Store
	presets      *preset.Catalog
	monitor      config.MonitorMode
	activePreset string
	log          *log.Logger
}

// Summary reports what one organize pass did.
type Summary struct {
	Icons      int  `json:"icons"`
	Groups     int  `json:"groups"`
	Placed     int  `json:"placed"`
	Skipped    int  `json:"skipped"`
	Mismatched int  `json:"mismatched"`
	Empty      bool `json:"empty,omitempty"`
}

// Status is a read-only snapshot for status queries.
type Status struct {
	Icons        int      `json:"icons"`
	Monitor      string   `json:"monitor"`
	ActivePreset string   `json:"active_preset,omitempty"`
	Groups       []string `json:"groups"`
	Layouts      int      `json:"layouts"`
}

// New creates an organizer. The logger defaults to the package default when
// nil.
func New(opts Options) *Organizer {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	monitor := opts.Monitor
	if monitor == "" {
		monitor = config.MonitorPrimary
	}
	return &Organizer{
		surf:         opts.Surface,
		classifier:   opts.Classifier,
		engine:       opts.Engine,
		layouts:      opts.Layouts,
		presets:      opts.Presets,
		monitor:      monitor,
		activePreset: opts.ActivePreset,
		log:          logger,
	}
}

// Classifier exposes the live group set for CLI and IPC group commands.
func (o *Organizer) Classifier() *classify.Classifier { return o.classifier }

// Layouts exposes the saved layout store.
func (o *Organizer) Layouts() *layout.Store { return o.layouts }

// Presets exposes the preset catalog.
func (o *Organizer) Presets() *preset.Catalog { return o.presets }

// ActivePreset returns the currently applied preset id, or "".
func (o *Organizer) ActivePreset() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activePreset
}

// Icons returns a snapshot of the current desktop icons.
func (o *Organizer) Icons() ([]surface.Icon, error) {
	return o.surf.ListIcons()
}

// Organize runs one full pass. An empty desktop is a successful no-op.
func (o *Organizer) Organize() (Summary, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	icons, err := o.surf.ListIcons()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list desktop icons: %w", err)
	}
	if len(icons) == 0 {
		o.log.Info("no desktop icons found, nothing to organize")
		return Summary{Empty: true}, nil
	}

	// Snapshot current positions first so the pass is undoable. Losing the
	// snapshot is not worth aborting the organize for.
	if _, err := o.layouts.Save(layout.LastLayoutName, icons); err != nil {
		o.log.Warn("could not save undo snapshot", "err", err)
	}

	// A dynamic preset regenerates its groups from the live icon set on
	// every pass.
	if o.activePreset != "" {
		groups, err := o.presets.Resolve(o.activePreset, icons)
		if err != nil {
			return Summary{}, fmt.Errorf("failed to apply preset %q: %w", o.activePreset, err)
		}
		o.classifier.ReplaceGroups(groups)
	}

	classified := o.classifier.ClassifyIcons(icons)
	groups := o.classifier.EnabledGroups()

	monitor, err := o.targetMonitor()
	if err != nil {
		return Summary{}, err
	}

	spacing, err := o.surf.IconSpacing()
	if err != nil {
		o.log.Debug("icon spacing unavailable, using defaults", "err", err)
		spacing = surface.Spacing{}
	}
	var origin *surface.Point
	if p, err := o.surf.GridOrigin(); err == nil {
		origin = &p
	} else {
		o.log.Debug("grid origin unavailable, deriving from work area", "err", err)
	}

	res := o.engine.CalculatePositions(classified, groups, monitor, spacing, origin)
	if err := o.surf.SetPositions(res.Positions); err != nil {
		return Summary{}, fmt.Errorf("failed to write icon positions: %w", err)
	}
	if err := o.surf.Refresh(); err != nil {
		o.log.Warn("desktop refresh failed", "err", err)
	}

	summary := Summary{
		Icons:   len(icons),
		Groups:  len(classified),
		Placed:  res.Placed,
		Skipped: res.Skipped,
	}
	summary.Mismatched = o.verify(res.Positions)

	o.log.Info("organize finished",
		"icons", summary.Icons,
		"groups", summary.Groups,
		"placed", summary.Placed,
		"skipped", summary.Skipped,
		"mismatched", summary.Mismatched)
	return summary, nil
}

// verify re-reads the desktop and counts icons that did not land where they
// were sent. The desktop's own align/auto-arrange settings are the usual
// culprit, so mismatches warn instead of failing the pass.
func (o *Organizer) verify(want map[string]surface.Point) int {
	icons, err := o.surf.ListIcons()
	if err != nil {
		o.log.Warn("verification read failed", "err", err)
		return 0
	}
	mismatched := 0
	for _, ic := range icons {
		p, ok := want[ic.Name]
		if !ok {
			continue
		}
		if p.X != ic.X || p.Y != ic.Y {
			mismatched++
		}
	}
	if mismatched > 0 {
		o.log.Warn("some icons did not keep their assigned positions; check whether desktop auto-arrange is enabled",
			"mismatched", mismatched)
	}
	return mismatched
}

// SaveLayout snapshots current positions under a user-chosen name.
func (o *Organizer) SaveLayout(name string) (layout.SavedLayout, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if strings.HasPrefix(name, "_") {
		return layout.SavedLayout{}, fmt.Errorf("layout names starting with %q are reserved", "_")
	}
	icons, err := o.surf.ListIcons()
	if err != nil {
		return layout.SavedLayout{}, fmt.Errorf("failed to list desktop icons: %w", err)
	}
	return o.layouts.Save(name, icons)
}

// RestoreLayout moves icons back to a saved layout's positions. Icons saved
// in the layout but no longer on the desktop are skipped; the count of
// restored icons is returned.
func (o *Organizer) RestoreLayout(name string) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.restoreLocked(name)
}

// Undo restores the snapshot taken before the most recent organize pass.
func (o *Organizer) Undo() (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	n, err := o.restoreLocked(layout.LastLayoutName)
	if err != nil {
		return 0, fmt.Errorf("nothing to undo: %w", err)
	}
	return n, nil
}

func (o *Organizer) restoreLocked(name string) (int, error) {
	saved, ok, err := o.layouts.Get(name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("layout %q not found", name)
	}

	icons, err := o.surf.ListIcons()
	if err != nil {
		return 0, fmt.Errorf("failed to list desktop icons: %w", err)
	}
	positions := make(map[string]surface.Point)
	for _, ic := range icons {
		if p, ok := saved.Positions[ic.Name]; ok {
			positions[ic.Name] = p
		}
	}
	if len(positions) == 0 {
		return 0, fmt.Errorf("no icons from layout %q remain on the desktop", name)
	}

	if err := o.surf.SetPositions(positions); err != nil {
		return 0, fmt.Errorf("failed to write icon positions: %w", err)
	}
	if err := o.surf.Refresh(); err != nil {
		o.log.Warn("desktop refresh failed", "err", err)
	}
	o.log.Info("layout restored", "layout", name, "icons", len(positions))
	return len(positions), nil
}

// ApplyPreset resolves a preset against the current desktop and swaps the
// classifier's group set. The preset stays active for subsequent passes.
func (o *Organizer) ApplyPreset(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	icons, err := o.surf.ListIcons()
	if err != nil {
		return fmt.Errorf("failed to list desktop icons: %w", err)
	}
	groups, err := o.presets.Resolve(id, icons)
	if err != nil {
		return err
	}
	o.classifier.ReplaceGroups(groups)
	o.activePreset = id
	o.log.Info("preset applied", "preset", id, "groups", len(groups))
	return nil
}

// ClearPreset detaches the active preset; the classifier keeps its current
// groups but stops regenerating them on organize.
func (o *Organizer) ClearPreset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.activePreset = ""
}

// Reconfigure swaps layout settings, groups, monitor targeting and active
// preset in one step. Used on config reload so an in-flight organize never
// sees a half-updated configuration.
func (o *Organizer) Reconfigure(settings layout.Settings, groups []classify.Group, monitor config.MonitorMode, presetID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.engine.Settings = settings
	o.classifier.ReplaceGroups(groups)
	if monitor != "" {
		o.monitor = monitor
	}
	o.activePreset = presetID
}

// Status reports the current desktop and configuration state.
func (o *Organizer) Status() (Status, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	icons, err := o.surf.ListIcons()
	if err != nil {
		return Status{}, fmt.Errorf("failed to list desktop icons: %w", err)
	}
	monitor, err := o.targetMonitor()
	if err != nil {
		return Status{}, err
	}
	layouts, err := o.layouts.UserLayouts()
	if err != nil {
		return Status{}, err
	}

	groups := o.classifier.EnabledGroups()
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return Status{
		Icons:        len(icons),
		Monitor:      monitor.Name,
		ActivePreset: o.activePreset,
		Groups:       names,
		Layouts:      len(layouts),
	}, nil
}

func (o *Organizer) targetMonitor() (surface.Monitor, error) {
	if o.monitor == config.MonitorFirst {
		monitors, err := o.surf.Monitors()
		if err != nil {
			return surface.Monitor{}, fmt.Errorf("failed to enumerate monitors: %w", err)
		}
		if len(monitors) == 0 {
			return surface.Monitor{}, surface.ErrUnavailable
		}
		return monitors[0], nil
	}
	monitor, err := o.surf.PrimaryMonitor()
	if err != nil {
		return surface.Monitor{}, fmt.Errorf("failed to find primary monitor: %w", err)
	}
	return monitor, nil
}
