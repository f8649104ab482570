package mcp

// OrganizeOutput is the output for the organize_desktop tool.
type OrganizeOutput struct {
	Icons      int  `json:"icons"`
	Groups     int  `json:"groups"`
	Placed     int  `json:"placed"`
	Skipped    int  `json:"skipped"`
	Mismatched int  `json:"mismatched"`
	Empty      bool `json:"empty,omitempty"`
}

// UndoOutput is the output for the undo_organize tool.
type UndoOutput struct {
	Restored int `json:"restored"`
}

// IconInfo describes one desktop icon.
type IconInfo struct {
	Name      string `json:"name"`
	Group     string `json:"group"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	IsFolder  bool   `json:"is_folder,omitempty"`
	IsSystem  bool   `json:"is_system,omitempty"`
	Extension string `json:"extension,omitempty"`
}

// ListIconsOutput is the output for the list_icons tool.
type ListIconsOutput struct {
	Icons []IconInfo `json:"icons"`
}

// LayoutNameInput names a saved layout.
type LayoutNameInput struct {
	Name string `json:"name" jsonschema:"required,Name of the saved layout"`
}

// SaveLayoutOutput is the output for the save_layout tool.
type SaveLayoutOutput struct {
	Name  string `json:"name"`
	Icons int    `json:"icons"`
}

// RestoreLayoutOutput is the output for the restore_layout tool.
type RestoreLayoutOutput struct {
	Restored int `json:"restored"`
}

// LayoutInfo describes one saved layout.
type LayoutInfo struct {
	Name      string `json:"name"`
	Icons     int    `json:"icons"`
	CreatedAt string `json:"created_at"`
}

// ListLayoutsOutput is the output for the list_layouts tool.
type ListLayoutsOutput struct {
	Layouts []LayoutInfo `json:"layouts"`
}

// ApplyPresetInput is the input for the apply_preset tool.
type ApplyPresetInput struct {
	ID string `json:"id" jsonschema:"required,Preset identifier (e.g. default, compact, by_extension, custom_...)"`
}

// PresetInfo describes one preset.
type PresetInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Dynamic     bool   `json:"dynamic,omitempty"`
	Active      bool   `json:"active,omitempty"`
}

// ListPresetsOutput is the output for the list_presets tool.
type ListPresetsOutput struct {
	Presets []PresetInfo `json:"presets"`
}

// StatusOutput is the output for the get_status tool.
type StatusOutput struct {
	Icons        int      `json:"icons"`
	Monitor      string   `json:"monitor"`
	ActivePreset string   `json:"active_preset,omitempty"`
	Groups       []string `json:"groups"`
	Layouts      int      `json:"layouts"`
}
