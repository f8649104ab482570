package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/1broseidon/icontile/internal/surface"
)

// LastLayoutName is the reserved snapshot written before every organize
// operation. Names with the reserved prefix are hidden from user listings
// and cannot be renamed.
const (
	LastLayoutName = "_last"
	reservedPrefix = "_"
)

// SavedLayout is a named snapshot of icon positions keyed by icon name.
type SavedLayout struct {
	Name      string                   `json:"name"`
	Positions map[string]surface.Point `json:"positions"`
	CreatedAt time.Time                `json:"created_at"`
}

// layoutsFile is the on-disk document: an ordered list so that save order is
// stable and replace-in-place keeps positions.
type layoutsFile struct {
	Layouts []SavedLayout `json:"layouts"`
}

// Store persists saved layouts to a single JSON file. It is the sole writer
// of that file; every mutation writes through immediately.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Save snapshots the icons' current positions under name, replacing an
// existing layout of the same name in place or appending a new one.
func (s *Store) Save(name string, icons []surface.Icon) (SavedLayout, error) {
	if strings.TrimSpace(name) == "" {
		return SavedLayout{}, fmt.Errorf("layout name is required")
	}

	positions := make(map[string]surface.Point, len(icons))
	for _, ic := range icons {
		positions[ic.Name] = surface.Point{X: ic.X, Y: ic.Y}
	}
	layout := SavedLayout{Name: name, Positions: positions, CreatedAt: s.now()}

	layouts, err := s.loadAll()
	if err != nil {
		return SavedLayout{}, err
	}

	replaced := false
	for i := range layouts {
		if layouts[i].Name == name {
			layouts[i] = layout
			replaced = true
			break
		}
	}
	if !replaced {
		layouts = append(layouts, layout)
	}

	if err := s.writeAll(layouts); err != nil {
		return SavedLayout{}, err
	}
	return layout, nil
}

// Get returns a layout by name.
func (s *Store) Get(name string) (SavedLayout, bool, error) {
	layouts, err := s.loadAll()
	if err != nil {
		return SavedLayout{}, false, err
	}
	for _, l := range layouts {
		if l.Name == name {
			return l, true, nil
		}
	}
	return SavedLayout{}, false, nil
}

// Delete removes a layout by name, reporting whether anything was removed.
func (s *Store) Delete(name string) (bool, error) {
	layouts, err := s.loadAll()
	if err != nil {
		return false, err
	}
	kept := layouts[:0]
	for _, l := range layouts {
		if l.Name != name {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(layouts) {
		return false, nil
	}
	return true, s.writeAll(kept)
}

// Rename changes a layout's key. Reserved names cannot be renamed to or from.
func (s *Store) Rename(oldName, newName string) error {
	if strings.HasPrefix(oldName, reservedPrefix) || strings.HasPrefix(newName, reservedPrefix) {
		return fmt.Errorf("layout names starting with %q are reserved", reservedPrefix)
	}
	if strings.TrimSpace(newName) == "" {
		return fmt.Errorf("layout name is required")
	}
	layouts, err := s.loadAll()
	if err != nil {
		return err
	}
	for _, l := range layouts {
		if l.Name == newName {
			return fmt.Errorf("layout %q already exists", newName)
		}
	}
	for i := range layouts {
		if layouts[i].Name == oldName {
			layouts[i].Name = newName
			return s.writeAll(layouts)
		}
	}
	return fmt.Errorf("layout %q not found", oldName)
}

// UserLayouts lists layouts excluding reserved internal names, in save order.
func (s *Store) UserLayouts() ([]SavedLayout, error) {
	layouts, err := s.loadAll()
	if err != nil {
		return nil, err
	}
	var out []SavedLayout
	for _, l := range layouts {
		if !strings.HasPrefix(l.Name, reservedPrefix) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Store) loadAll() ([]SavedLayout, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read layouts file: %w", err)
	}
	var doc layoutsFile
	if err := json.Unmarshal(data, &doc); err != nil {
		// A corrupt file degrades to an empty list rather than blocking
		// organize operations.
		return nil, nil
	}
	return doc.Layouts, nil
}

func (s *Store) writeAll(layouts []SavedLayout) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create layouts directory: %w", err)
	}
	data, err := json.MarshalIndent(layoutsFile{Layouts: layouts}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode layouts: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write layouts file: %w", err)
	}
	return nil
}
