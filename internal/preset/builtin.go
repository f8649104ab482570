// Package preset manages named bundles of group definitions: built-in
// presets, the dynamic by-extension preset, and user-saved custom presets.
package preset

import "github.com/1broseidon/icontile/internal/classify"

// Preset is a named, ordered list of group specifications applied wholesale
// to the classifier. Dynamic presets generate their groups at apply time
// from the live icon set.
type Preset struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Dynamic     bool             `json:"dynamic,omitempty"`
	Groups      []classify.Group `json:"groups"`
}

// Built-in preset identifiers.
const (
	PresetDefault     = "default"
	PresetCompact     = "compact"
	PresetMinimal     = "minimal"
	PresetByExtension = "by_extension"
)

func extGroup(name string, priority int, merge string, exts ...string) classify.Group {
	return classify.Group{
		Name:       name,
		Kind:       classify.KindExtensions,
		Extensions: classify.NormalizeExtensions(exts),
		Enabled:    true,
		Priority:   priority,
		MergeGroup: merge,
	}
}

func roleGroup(name string, kind classify.Kind, priority int, merge string) classify.Group {
	return classify.Group{Name: name, Kind: kind, Enabled: true, Priority: priority, MergeGroup: merge}
}

// builtins returns the stock preset catalog. The system and shortcut groups
// share a merge key so they occupy one placement unit.
func builtins() []Preset {
	return []Preset{
		{
			ID:          PresetDefault,
			Name:        "Default",
			Description: "System icons and shortcuts merged, document types split out",
			Groups: []classify.Group{
				roleGroup("System", classify.KindSystem, 0, "system"),
				roleGroup("Shortcuts", classify.KindShortcut, 1, "system"),
				extGroup("Programs", 2, "", ".exe", ".msi", ".bat", ".cmd", ".ps1", ".sh", ".desktop", ".appimage"),
				roleGroup("Folders", classify.KindFolder, 3, ""),
				extGroup("PDF", 4, "", ".pdf"),
				extGroup("Word", 5, "", ".doc", ".docx"),
				extGroup("Excel", 6, "", ".xls", ".xlsx", ".csv"),
				extGroup("PowerPoint", 7, "", ".ppt", ".pptx"),
				extGroup("Text", 8, "", ".txt", ".rtf", ".md"),
				extGroup("Images", 9, "", ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".svg", ".ico"),
				extGroup("Videos", 10, "", ".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".webm", ".ts", ".rmvb"),
				extGroup("Audio", 11, "", ".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma", ".m4a"),
				extGroup("Archives", 12, "", ".zip", ".rar", ".7z", ".tar", ".gz"),
				extGroup("Web", 13, "", ".html", ".htm", ".xml", ".xhtml", ".css", ".js"),
				extGroup(classify.FallbackGroup, 999, ""),
			},
		},
		{
			ID:          PresetCompact,
			Name:        "Compact",
			Description: "Documents merged, media files merged",
			Groups: []classify.Group{
				roleGroup("System", classify.KindSystem, 0, "system"),
				roleGroup("Shortcuts", classify.KindShortcut, 1, "system"),
				roleGroup("Folders", classify.KindFolder, 2, ""),
				extGroup("Documents", 3, "docs", ".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".txt", ".rtf"),
				extGroup("Images", 4, "media", ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".svg", ".ico"),
				extGroup("Videos", 5, "media", ".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".webm"),
				extGroup("Audio", 6, "media", ".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma", ".m4a"),
				extGroup("Archives", 7, "", ".zip", ".rar", ".7z", ".tar", ".gz"),
				extGroup("Programs", 8, "", ".exe", ".msi", ".bat", ".cmd", ".ps1", ".sh", ".desktop", ".appimage"),
				extGroup(classify.FallbackGroup, 999, ""),
			},
		},
		{
			ID:          PresetMinimal,
			Name:        "Minimal",
			Description: "System icons and shortcuts merged, everything else in one block",
			Groups: []classify.Group{
				roleGroup("System", classify.KindSystem, 0, "system"),
				roleGroup("Shortcuts", classify.KindShortcut, 1, "system"),
				roleGroup("Folders", classify.KindFolder, 2, "files"),
				extGroup("Documents", 3, "files", ".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".txt", ".rtf"),
				extGroup("Images", 4, "files", ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".svg", ".ico"),
				extGroup("Videos", 5, "files", ".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".webm"),
				extGroup("Audio", 6, "files", ".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma", ".m4a"),
				extGroup("Archives", 7, "files", ".zip", ".rar", ".7z", ".tar", ".gz"),
				extGroup("Programs", 8, "files", ".exe", ".msi", ".bat", ".cmd", ".ps1", ".sh", ".desktop", ".appimage"),
				{Name: classify.FallbackGroup, Kind: classify.KindExtensions, Enabled: true, Priority: 999, MergeGroup: "files"},
			},
		},
		{
			ID:          PresetByExtension,
			Name:        "By extension (smart)",
			Description: "Scans the desktop and creates one group per extension",
			Dynamic:     true,
		},
	}
}
