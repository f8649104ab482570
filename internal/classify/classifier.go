package classify

import (
	"fmt"
	"sort"

	"github.com/1broseidon/icontile/internal/surface"
)

// Classifier owns an ordered group list and classifies icons against it.
// It is not safe for concurrent use; the daemon serializes all access.
type Classifier struct {
	groups []Group
}

// DefaultGroups is the stock group set applied when no configuration exists.
func DefaultGroups() []Group {
	return []Group{
		{Name: "Shortcuts", Kind: KindShortcut, Enabled: true, Priority: 0},
		{Name: "Folders", Kind: KindFolder, Enabled: true, Priority: 1},
		{Name: "Documents", Kind: KindExtensions, Enabled: true, Priority: 2,
			Extensions: NormalizeExtensions([]string{".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".txt", ".rtf", ".odt", ".ods", ".odp"})},
		{Name: "Images", Kind: KindExtensions, Enabled: true, Priority: 3,
			Extensions: NormalizeExtensions([]string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".svg", ".ico", ".tiff", ".tif", ".psd", ".ai", ".raw"})},
		{Name: "Videos", Kind: KindExtensions, Enabled: true, Priority: 4,
			Extensions: NormalizeExtensions([]string{".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".webm", ".m4v", ".mpg", ".mpeg", ".3gp"})},
		{Name: "Audio", Kind: KindExtensions, Enabled: true, Priority: 5,
			Extensions: NormalizeExtensions([]string{".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma", ".m4a", ".aiff", ".ape"})},
		{Name: "Archives", Kind: KindExtensions, Enabled: true, Priority: 6,
			Extensions: NormalizeExtensions([]string{".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz", ".iso", ".cab"})},
		{Name: "Programs", Kind: KindExtensions, Enabled: true, Priority: 7,
			Extensions: NormalizeExtensions([]string{".exe", ".msi", ".bat", ".cmd", ".ps1", ".vbs", ".sh", ".desktop", ".appimage"})},
		{Name: "System", Kind: KindSystem, Enabled: true, Priority: 8},
		{Name: FallbackGroup, Kind: KindExtensions, Enabled: true, Priority: 999},
	}
}

// New returns a classifier loaded with the default group set.
func New() *Classifier {
	c := &Classifier{}
	c.ReplaceGroups(DefaultGroups())
	return c
}

// ReplaceGroups swaps the entire group list atomically (preset application).
// The input is copied and sorted by priority with ties in input order.
func (c *Classifier) ReplaceGroups(groups []Group) {
	next := make([]Group, 0, len(groups))
	for _, g := range groups {
		next = append(next, g.clone())
	}
	c.groups = next
	c.sortGroups()
}

// Groups returns a copy of the full group list in priority order.
func (c *Classifier) Groups() []Group {
	out := make([]Group, 0, len(c.groups))
	for _, g := range c.groups {
		out = append(out, g.clone())
	}
	return out
}

// EnabledGroups returns the enabled groups in priority order.
func (c *Classifier) EnabledGroups() []Group {
	var out []Group
	for _, g := range c.groups {
		if g.Enabled {
			out = append(out, g.clone())
		}
	}
	return out
}

// Group looks up a group by name.
func (c *Classifier) Group(name string) (Group, bool) {
	if i := c.index(name); i >= 0 {
		return c.groups[i].clone(), true
	}
	return Group{}, false
}

// AddGroup appends a custom extension group and re-sorts by priority.
// Group names must be unique within the active set.
func (c *Classifier) AddGroup(name string, extensions []string, priority int) (Group, error) {
	if c.index(name) >= 0 {
		return Group{}, fmt.Errorf("group %q already exists", name)
	}
	g := Group{
		Name:       name,
		Kind:       KindExtensions,
		Extensions: NormalizeExtensions(extensions),
		Enabled:    true,
		Priority:   priority,
	}
	if err := g.Validate(); err != nil {
		return Group{}, err
	}
	c.groups = append(c.groups, g)
	c.sortGroups()
	return g.clone(), nil
}

// RemoveGroup deletes a group by name, reporting whether one was removed.
func (c *Classifier) RemoveGroup(name string) bool {
	i := c.index(name)
	if i < 0 {
		return false
	}
	c.groups = append(c.groups[:i], c.groups[i+1:]...)
	return true
}

// SetEnabled toggles a group.
func (c *Classifier) SetEnabled(name string, enabled bool) bool {
	i := c.index(name)
	if i < 0 {
		return false
	}
	c.groups[i].Enabled = enabled
	return true
}

// SetPriority changes a group's priority and re-sorts.
func (c *Classifier) SetPriority(name string, priority int) bool {
	i := c.index(name)
	if i < 0 {
		return false
	}
	c.groups[i].Priority = priority
	c.sortGroups()
	return true
}

// SetStartSide records the per-group side hint. The layout engine reads only
// the global setting; the hint is persisted for round-trip fidelity.
func (c *Classifier) SetStartSide(name string, fromRight bool) bool {
	i := c.index(name)
	if i < 0 {
		return false
	}
	c.groups[i].StartFromRight = fromRight
	return true
}

// GroupUpdate is the single mutation entry point for editing surfaces: every
// non-nil field is applied to the named group in one step.
type GroupUpdate struct {
	Name       string
	Enabled    *bool
	Priority   *int
	Extensions []string
	MergeGroup *string
	FromRight  *bool
}

// Update applies a GroupUpdate, re-sorting when the priority changed.
func (c *Classifier) Update(u GroupUpdate) error {
	i := c.index(u.Name)
	if i < 0 {
		return fmt.Errorf("group %q not found", u.Name)
	}
	g := &c.groups[i]
	if u.Enabled != nil {
		g.Enabled = *u.Enabled
	}
	if u.Extensions != nil {
		if g.Kind != KindExtensions {
			return fmt.Errorf("group %q: extensions only apply to extension groups", u.Name)
		}
		g.Extensions = NormalizeExtensions(u.Extensions)
	}
	if u.MergeGroup != nil {
		g.MergeGroup = *u.MergeGroup
	}
	if u.FromRight != nil {
		g.StartFromRight = *u.FromRight
	}
	if u.Priority != nil && *u.Priority != g.Priority {
		g.Priority = *u.Priority
		c.sortGroups()
	}
	return nil
}

// Classify returns the name of the first group matching the attributes, or
// FallbackGroup when nothing matches.
func (c *Classifier) Classify(extension string, isFolder, isSystem bool) string {
	for i := range c.groups {
		if c.groups[i].Matches(extension, isFolder, isSystem) {
			return c.groups[i].Name
		}
	}
	return FallbackGroup
}

// ClassifyIcons buckets icons by group name, preserving icon order within
// each bucket. Groups that end up empty are removed so the layout engine
// never allocates placement space for them.
func (c *Classifier) ClassifyIcons(icons []surface.Icon) map[string][]surface.Icon {
	result := make(map[string][]surface.Icon)
	for _, g := range c.groups {
		if g.Enabled {
			result[g.Name] = nil
		}
	}

	for _, ic := range icons {
		name := c.Classify(ic.Extension, ic.IsFolder, ic.IsSystem)
		if _, ok := result[name]; ok {
			result[name] = append(result[name], ic)
		}
	}

	for name, bucket := range result {
		if len(bucket) == 0 {
			delete(result, name)
		}
	}
	return result
}

func (c *Classifier) index(name string) int {
	for i := range c.groups {
		if c.groups[i].Name == name {
			return i
		}
	}
	return -1
}

// sortGroups orders by ascending priority; equal priorities keep their
// current relative order.
func (c *Classifier) sortGroups() {
	sort.SliceStable(c.groups, func(i, j int) bool {
		return c.groups[i].Priority < c.groups[j].Priority
	})
}
