package surface

import (
	"fmt"
	"sync"
)

// Fake is an in-memory Surface with synthetic icons. It backs the test suite
// and the organize --dry-run path. Position writes are applied exactly unless
// Snap is set, which mimics a desktop that snaps writes to its own grid.
type Fake struct {
	mu       sync.Mutex
	icons    []Icon
	monitors []Monitor
	spacing  Spacing
	refreshs int

	// Snap, when true, snaps written positions to the detected grid the way
	// an align-to-grid desktop would.
	Snap bool

	// FailWrites makes SetPositions silently drop writes, simulating a
	// desktop whose auto-arrange overrides explicit positions.
	FailWrites bool

	// Unavailable makes every call fail with ErrUnavailable.
	Unavailable bool
}

// NewFake builds a fake surface with the given icons and a single primary
// 1920x1080 monitor with a 40px bottom panel.
func NewFake(icons []Icon) *Fake {
	return &Fake{
		icons:   icons,
		spacing: Spacing{H: DefaultSpacingH, V: DefaultSpacingV},
		monitors: []Monitor{{
			ID:       0,
			Name:     "fake-0",
			Width:    1920,
			Height:   1080,
			WorkArea: Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1040},
			Primary:  true,
		}},
	}
}

// SetMonitors replaces the monitor list.
func (f *Fake) SetMonitors(monitors []Monitor) { f.monitors = monitors }

// SetSpacing overrides the reported icon spacing.
func (f *Fake) SetSpacing(sp Spacing) { f.spacing = sp }

// RefreshCount reports how many times Refresh was called.
func (f *Fake) RefreshCount() int { return f.refreshs }

func (f *Fake) ListIcons() ([]Icon, error) {
	if f.Unavailable {
		return nil, ErrUnavailable
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Icon, len(f.icons))
	copy(out, f.icons)
	return out, nil
}

func (f *Fake) Monitors() ([]Monitor, error) {
	if f.Unavailable {
		return nil, ErrUnavailable
	}
	return f.monitors, nil
}

func (f *Fake) PrimaryMonitor() (Monitor, error) {
	monitors, err := f.Monitors()
	if err != nil {
		return Monitor{}, err
	}
	for _, m := range monitors {
		if m.Primary {
			return m, nil
		}
	}
	if len(monitors) > 0 {
		return monitors[0], nil
	}
	return Monitor{}, fmt.Errorf("no monitors configured")
}

func (f *Fake) IconSpacing() (Spacing, error) {
	if f.Unavailable {
		return Spacing{}, ErrUnavailable
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if sp, ok := DetectSpacing(f.icons); ok {
		return sp, nil
	}
	return f.spacing, nil
}

func (f *Fake) GridOrigin() (Point, error) {
	if f.Unavailable {
		return Point{}, ErrUnavailable
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return DeriveOrigin(f.icons), nil
}

func (f *Fake) SetPositions(positions map[string]Point) error {
	if f.Unavailable {
		return ErrUnavailable
	}
	if f.FailWrites {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	origin := DeriveOrigin(f.icons)
	sp, ok := DetectSpacing(f.icons)
	for i := range f.icons {
		p, found := positions[f.icons[i].Name]
		if !found {
			continue
		}
		if f.Snap && ok {
			p = SnapToGrid(p, origin, sp)
		}
		f.icons[i].X = p.X
		f.icons[i].Y = p.Y
	}
	return nil
}

func (f *Fake) Refresh() error {
	if f.Unavailable {
		return ErrUnavailable
	}
	f.refreshs++
	return nil
}
