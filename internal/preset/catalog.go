package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/1broseidon/icontile/internal/classify"
	"github.com/1broseidon/icontile/internal/surface"
)

// CustomPrefix marks user-saved presets. Built-in identifiers never carry it,
// so the two namespaces cannot collide.
const CustomPrefix = "custom_"

// Catalog resolves preset identifiers to group sets. Built-ins are compiled
// in; custom presets live in a single JSON file next to the other state files.
type Catalog struct {
	path string
}

// presetsFile is the on-disk document for custom presets.
type presetsFile struct {
	Presets []Preset `json:"presets"`
}

// NewCatalog creates a catalog persisting custom presets at path.
func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}

// All lists every known preset, built-ins first, then customs in save order.
func (c *Catalog) All() ([]Preset, error) {
	customs, err := c.loadCustoms()
	if err != nil {
		return nil, err
	}
	return append(builtins(), customs...), nil
}

// Get returns a preset by identifier.
func (c *Catalog) Get(id string) (Preset, bool, error) {
	all, err := c.All()
	if err != nil {
		return Preset{}, false, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, true, nil
		}
	}
	return Preset{}, false, nil
}

// Resolve returns the group set a preset produces for the given icons.
// Static presets return their stored groups; dynamic presets generate
// groups from the icon list.
func (c *Catalog) Resolve(id string, icons []surface.Icon) ([]classify.Group, error) {
	p, ok, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", id)
	}
	if p.Dynamic {
		return GenerateByExtension(icons), nil
	}
	return p.Groups, nil
}

// SaveCustom stores a new custom preset derived from the given name. The
// identifier is the prefixed, slugged name; saving over an existing custom
// identifier replaces it.
func (c *Catalog) SaveCustom(name, description string, groups []classify.Group) (Preset, error) {
	if strings.TrimSpace(name) == "" {
		return Preset{}, fmt.Errorf("preset name is required")
	}
	if len(groups) == 0 {
		return Preset{}, fmt.Errorf("preset needs at least one group")
	}
	id := CustomPrefix + slug(name)
	for _, b := range builtins() {
		if b.ID == id {
			return Preset{}, fmt.Errorf("preset id %q is reserved", id)
		}
	}

	p := Preset{ID: id, Name: name, Description: description, Groups: groups}
	customs, err := c.loadCustoms()
	if err != nil {
		return Preset{}, err
	}
	replaced := false
	for i := range customs {
		if customs[i].ID == id {
			customs[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		customs = append(customs, p)
	}
	return p, c.writeCustoms(customs)
}

// UpdateCustom replaces the group set of an existing custom preset.
// Built-in presets cannot be modified.
func (c *Catalog) UpdateCustom(id string, groups []classify.Group) error {
	if !strings.HasPrefix(id, CustomPrefix) {
		return fmt.Errorf("preset %q is built in and cannot be modified", id)
	}
	customs, err := c.loadCustoms()
	if err != nil {
		return err
	}
	for i := range customs {
		if customs[i].ID == id {
			customs[i].Groups = groups
			return c.writeCustoms(customs)
		}
	}
	return fmt.Errorf("unknown preset %q", id)
}

// DeleteCustom removes a custom preset. Built-in presets cannot be deleted.
func (c *Catalog) DeleteCustom(id string) error {
	if !strings.HasPrefix(id, CustomPrefix) {
		return fmt.Errorf("preset %q is built in and cannot be deleted", id)
	}
	customs, err := c.loadCustoms()
	if err != nil {
		return err
	}
	kept := customs[:0]
	for _, p := range customs {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(customs) {
		return fmt.Errorf("unknown preset %q", id)
	}
	return c.writeCustoms(kept)
}

func (c *Catalog) loadCustoms() ([]Preset, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}
	var doc presetsFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse presets file: %w", err)
	}
	return doc.Presets, nil
}

func (c *Catalog) writeCustoms(presets []Preset) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to create presets directory: %w", err)
	}
	data, err := json.MarshalIndent(presetsFile{Presets: presets}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}
	if err := os.WriteFile(c.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write presets file: %w", err)
	}
	return nil
}

// slug lowercases a display name and squashes runs of non-alphanumerics
// into single underscores.
func slug(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
