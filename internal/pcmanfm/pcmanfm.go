// Package pcmanfm implements the desktop surface on Linux against the
// pcmanfm file manager, which draws the desktop on LXDE and friends. Icon
// positions live in the profile's desktop-items keyfile; monitor geometry
// comes from X11.
package pcmanfm

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/1broseidon/icontile/internal/surface"
	"github.com/1broseidon/icontile/internal/x11"
)

// systemNames maps pcmanfm's virtual desktop entries to display names.
var systemNames = map[string]string{
	"trash:///":    "Trash",
	"computer:///": "Computer",
	"network:///":  "Network",
}

// Surface reads and writes desktop icon state through pcmanfm's config.
type Surface struct {
	desktopDir string
	confPath   string
	conn       *x11.Connection

	// refresh is swappable for tests; defaults to pcmanfm --reconfigure.
	refresh func() error
}

// Options configures surface construction. Zero values auto-detect.
type Options struct {
	DesktopDir string
	ConfPath   string
	Display    string
	XAuthority string
}

// New locates the pcmanfm desktop config and connects to X11. Returns
// surface.ErrUnavailable when no pcmanfm profile exists.
func New(opts Options) (*Surface, error) {
	confPath := opts.ConfPath
	if confPath == "" {
		var err error
		confPath, err = findConfPath()
		if err != nil {
			return nil, err
		}
	}

	desktopDir := opts.DesktopDir
	if desktopDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		desktopDir = filepath.Join(home, "Desktop")
	}

	conn, err := x11.NewConnection(opts.Display, opts.XAuthority)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", surface.ErrUnavailable, err)
	}

	return &Surface{
		desktopDir: desktopDir,
		confPath:   confPath,
		conn:       conn,
		refresh:    reconfigure,
	}, nil
}

// findConfPath scans known pcmanfm profiles for a desktop-items keyfile.
func findConfPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	base := filepath.Join(home, ".config", "pcmanfm")
	profiles, err := os.ReadDir(base)
	if err != nil {
		return "", fmt.Errorf("%w: no pcmanfm config at %s", surface.ErrUnavailable, base)
	}
	for _, profile := range profiles {
		if !profile.IsDir() {
			continue
		}
		matches, _ := filepath.Glob(filepath.Join(base, profile.Name(), "desktop-items-*.conf"))
		if len(matches) > 0 {
			sort.Strings(matches)
			return matches[0], nil
		}
	}
	return "", fmt.Errorf("%w: no desktop-items config under %s", surface.ErrUnavailable, base)
}

// Connection exposes the underlying X11 connection so the daemon can share
// it for hotkey registration and the event loop.
func (s *Surface) Connection() *x11.Connection { return s.conn }

// Close releases the X11 connection.
func (s *Surface) Close() {
	if s.conn != nil {
		s.conn.Close()
	}
}

// ListIcons merges the desktop directory listing with positions from the
// pcmanfm keyfile. Virtual entries (trash:///, computer:///) become system
// icons; directory entries without a stored position report (0, 0), which is
// how pcmanfm renders never-moved icons too.
func (s *Surface) ListIcons() ([]surface.Icon, error) {
	cfg, err := s.loadConf()
	if err != nil {
		return nil, err
	}

	var icons []surface.Icon

	entries, err := os.ReadDir(s.desktopDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read desktop directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		icon := surface.Icon{
			Name:     name,
			Path:     filepath.Join(s.desktopDir, name),
			IsFolder: entry.IsDir(),
		}
		if !entry.IsDir() {
			icon.Extension = strings.ToLower(filepath.Ext(name))
		}
		icon.X, icon.Y = sectionPos(cfg, name)
		icons = append(icons, icon)
	}

	for _, section := range cfg.Sections() {
		name := section.Name()
		display, ok := systemNames[name]
		if !ok {
			continue
		}
		x, y := sectionPos(cfg, name)
		icons = append(icons, surface.Icon{
			Name:     display,
			IsSystem: true,
			X:        x,
			Y:        y,
		})
	}

	return icons, nil
}

// Monitors reports all active displays with their work areas.
func (s *Surface) Monitors() ([]surface.Monitor, error) {
	return s.conn.Monitors()
}

// PrimaryMonitor reports the primary display.
func (s *Surface) PrimaryMonitor() (surface.Monitor, error) {
	return s.conn.PrimaryMonitor()
}

// IconSpacing measures the grid pitch from current icon positions.
func (s *Surface) IconSpacing() (surface.Spacing, error) {
	icons, err := s.ListIcons()
	if err != nil {
		return surface.Spacing{}, err
	}
	if sp, ok := surface.DetectSpacing(icons); ok {
		return sp, nil
	}
	return surface.Spacing{H: surface.DefaultSpacingH, V: surface.DefaultSpacingV}, nil
}

// GridOrigin derives the grid's top-left anchor from current positions.
func (s *Surface) GridOrigin() (surface.Point, error) {
	icons, err := s.ListIcons()
	if err != nil {
		return surface.Point{}, err
	}
	return surface.DeriveOrigin(icons), nil
}

// SetPositions writes positions into the keyfile. System display names are
// translated back to their virtual URIs.
func (s *Surface) SetPositions(positions map[string]surface.Point) error {
	cfg, err := s.loadConf()
	if err != nil {
		return err
	}

	uriFor := make(map[string]string, len(systemNames))
	for uri, display := range systemNames {
		uriFor[display] = uri
	}

	for name, p := range positions {
		section := name
		if uri, ok := uriFor[name]; ok {
			section = uri
		}
		sec := cfg.Section(section)
		sec.Key("x").SetValue(fmt.Sprintf("%d", p.X))
		sec.Key("y").SetValue(fmt.Sprintf("%d", p.Y))
	}

	if err := os.MkdirAll(filepath.Dir(s.confPath), 0755); err != nil {
		return fmt.Errorf("failed to create pcmanfm config directory: %w", err)
	}
	if err := cfg.SaveTo(s.confPath); err != nil {
		return fmt.Errorf("failed to write desktop items config: %w", err)
	}
	return nil
}

// Refresh asks pcmanfm to reload its configuration so the new positions
// take effect on screen.
func (s *Surface) Refresh() error {
	return s.refresh()
}

func reconfigure() error {
	cmd := exec.Command("pcmanfm", "--reconfigure")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pcmanfm --reconfigure failed: %w", err)
	}
	return nil
}

func (s *Surface) loadConf() (*ini.File, error) {
	cfg, err := ini.Load(s.confPath)
	if err != nil {
		if os.IsNotExist(err) {
			return ini.Empty(), nil
		}
		return nil, fmt.Errorf("failed to load desktop items config: %w", err)
	}
	return cfg, nil
}

func sectionPos(cfg *ini.File, section string) (int, int) {
	sec, err := cfg.GetSection(section)
	if err != nil {
		return 0, 0
	}
	return sec.Key("x").MustInt(0), sec.Key("y").MustInt(0)
}
