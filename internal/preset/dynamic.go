package preset

import (
	"sort"

	"github.com/1broseidon/icontile/internal/classify"
	"github.com/1broseidon/icontile/internal/surface"
)

// GenerateByExtension builds a group set from the icons actually on the
// desktop: system icons and shortcuts share one merged unit at the top,
// folders follow, then one group per extension in ascending extension
// order, and a catch-all closes the list.
func GenerateByExtension(icons []surface.Icon) []classify.Group {
	seen := make(map[string]bool)
	var exts []string
	for _, ic := range icons {
		if ic.IsSystem || ic.IsFolder {
			continue
		}
		ext := classify.NormalizeExtension(ic.Extension)
		if ext == "" || ext == classify.ShortcutExtension || seen[ext] {
			continue
		}
		seen[ext] = true
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	groups := []classify.Group{
		roleGroup("System", classify.KindSystem, 0, "system"),
		roleGroup("Shortcuts", classify.KindShortcut, 1, "system"),
		roleGroup("Folders", classify.KindFolder, 2, ""),
	}
	for i, ext := range exts {
		groups = append(groups, classify.Group{
			Name:       ext[1:], // group named after the bare extension
			Kind:       classify.KindExtensions,
			Extensions: []string{ext},
			Enabled:    true,
			Priority:   10 + i,
		})
	}
	groups = append(groups, extGroup(classify.FallbackGroup, 999, ""))
	return groups
}
