// Package classify assigns desktop icons to named groups using ordered match
// rules. Groups are matched in ascending priority; the first structural match
// wins.
package classify

import (
	"fmt"
	"sort"
	"strings"
)

// Kind selects a group's match rule.
type Kind string

const (
	// KindExtensions matches files whose extension is in the group's set.
	KindExtensions Kind = "extensions"
	// KindFolder matches non-system folders.
	KindFolder Kind = "folder"
	// KindShortcut matches .lnk shortcuts.
	KindShortcut Kind = "shortcut"
	// KindSystem matches icons with no backing path (Trash, Computer, ...).
	KindSystem Kind = "system"
)

// ShortcutExtension is the extension matched by shortcut groups.
const ShortcutExtension = ".lnk"

// FallbackGroup is the label returned when no group matches. The default
// group set always carries an enabled catch-all group with this name so that
// no icon is dropped at classification time.
const FallbackGroup = "Other"

// Group is one classification bucket with display/ordering metadata.
//
// Priority ascends: lower values are matched and placed first; ties keep
// declaration order. Groups sharing a non-empty MergeGroup key are placed as
// one contiguous unit by the layout engine. StartFromRight is persisted for
// round-trip fidelity but superseded by the global layout setting.
type Group struct {
	Name           string   `yaml:"name" json:"name"`
	Kind           Kind     `yaml:"kind" json:"kind"`
	Extensions     []string `yaml:"extensions,omitempty" json:"extensions,omitempty"`
	Enabled        bool     `yaml:"enabled" json:"enabled"`
	Priority       int      `yaml:"priority" json:"priority"`
	StartFromRight bool     `yaml:"start_from_right,omitempty" json:"start_from_right,omitempty"`
	MergeGroup     string   `yaml:"merge_group,omitempty" json:"merge_group,omitempty"`
}

// NormalizeExtension lowercases an extension and ensures the dot prefix.
// Empty input stays empty.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// NormalizeExtensions normalizes, dedupes and sorts an extension list.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]struct{}, len(exts))
	var out []string
	for _, e := range exts {
		n := NormalizeExtension(e)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// HasExtension reports whether ext (already normalized) is in the group's set.
func (g *Group) HasExtension(ext string) bool {
	for _, e := range g.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Matches reports whether an icon with the given attributes belongs to this
// group. Disabled groups never match.
func (g *Group) Matches(extension string, isFolder, isSystem bool) bool {
	if !g.Enabled {
		return false
	}
	switch g.Kind {
	case KindSystem:
		return isSystem
	case KindFolder:
		return isFolder && !isSystem
	case KindShortcut:
		return strings.ToLower(extension) == ShortcutExtension && !isSystem
	default:
		return g.HasExtension(strings.ToLower(extension)) && !isSystem
	}
}

// Validate checks structural group fields.
func (g *Group) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("group name is required")
	}
	switch g.Kind {
	case KindExtensions, KindFolder, KindShortcut, KindSystem:
	default:
		return fmt.Errorf("group %q: unknown kind %q", g.Name, g.Kind)
	}
	return nil
}

// clone returns a deep copy so callers can hand groups out without aliasing
// the classifier's own slice.
func (g Group) clone() Group {
	if g.Extensions != nil {
		exts := make([]string, len(g.Extensions))
		copy(exts, g.Extensions)
		g.Extensions = exts
	}
	return g
}
