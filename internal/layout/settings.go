// Package layout computes grid positions for classified desktop icons and
// manages saved position snapshots.
package layout

import "fmt"

// Direction defines how groups flow across the desktop.
type Direction string

const (
	// DirectionVertical fills columns top to bottom, then the next column.
	DirectionVertical Direction = "vertical"
	// DirectionHorizontal fills rows left to right, then the next row.
	DirectionHorizontal Direction = "horizontal"
)

// SortOrder selects the secondary ordering of icons inside a placement unit.
type SortOrder string

const (
	SortNameAsc      SortOrder = "name_asc"
	SortNameDesc     SortOrder = "name_desc"
	SortCreatedAsc   SortOrder = "created_asc"
	SortCreatedDesc  SortOrder = "created_desc"
	SortModifiedAsc  SortOrder = "modified_asc"
	SortModifiedDesc SortOrder = "modified_desc"
	SortSizeAsc      SortOrder = "size_asc"
	SortSizeDesc     SortOrder = "size_desc"
)

// SortOrders lists all valid sort orders.
func SortOrders() []SortOrder {
	return []SortOrder{
		SortNameAsc, SortNameDesc,
		SortCreatedAsc, SortCreatedDesc,
		SortModifiedAsc, SortModifiedDesc,
		SortSizeAsc, SortSizeDesc,
	}
}

// Descending reports whether the secondary key is reversed.
func (s SortOrder) Descending() bool {
	switch s {
	case SortNameDesc, SortCreatedDesc, SortModifiedDesc, SortSizeDesc:
		return true
	}
	return false
}

// Settings holds the layout configuration for organize operations.
// Margins apply only when no grid origin was detected from live icons.
type Settings struct {
	Direction      Direction `yaml:"direction" json:"direction"`
	SortOrder      SortOrder `yaml:"sort_order" json:"sort_order"`
	StartFromRight bool      `yaml:"start_from_right" json:"start_from_right"`
	MarginLeft     int       `yaml:"margin_left" json:"margin_left"`
	MarginTop      int       `yaml:"margin_top" json:"margin_top"`
	MarginRight    int       `yaml:"margin_right" json:"margin_right"`
	MarginBottom   int       `yaml:"margin_bottom" json:"margin_bottom"`
}

// DefaultSettings mirrors the stock configuration.
func DefaultSettings() Settings {
	return Settings{
		Direction:    DirectionVertical,
		SortOrder:    SortNameAsc,
		MarginLeft:   20,
		MarginTop:    20,
		MarginRight:  20,
		MarginBottom: 20,
	}
}

// Validate checks enum fields and margin sanity.
func (s *Settings) Validate() error {
	switch s.Direction {
	case DirectionVertical, DirectionHorizontal:
	default:
		return fmt.Errorf("invalid direction %q", s.Direction)
	}
	valid := false
	for _, o := range SortOrders() {
		if s.SortOrder == o {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid sort order %q", s.SortOrder)
	}
	for _, m := range []int{s.MarginLeft, s.MarginTop, s.MarginRight, s.MarginBottom} {
		if m < 0 {
			return fmt.Errorf("margins must be non-negative")
		}
	}
	return nil
}
