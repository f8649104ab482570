// Package surface defines the desktop surface adapter contract: everything
// the organize pipeline needs from the OS desktop (icon enumeration, monitor
// geometry, grid metrics, position write-back) behind one interface so the
// core runs unchanged against a real desktop or a fake.
package surface

import "errors"

// ErrUnavailable indicates the desktop surface could not be located or
// attached to. Fatal for the current organize attempt.
var ErrUnavailable = errors.New("desktop surface unavailable")

// Point is a pixel position on the virtual screen.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Spacing is the horizontal/vertical pixel distance between grid cells.
type Spacing struct {
	H int `json:"h"`
	V int `json:"v"`
}

// Rect is an absolute rectangle in screen coordinates.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Width returns the rectangle width in pixels.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the rectangle height in pixels.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Icon is a snapshot of one desktop icon. Icons are rebuilt on every read and
// never mutated; position changes travel as a separate name -> Point map.
type Icon struct {
	Name      string `json:"name"`
	Path      string `json:"path"` // empty when unresolvable
	X         int    `json:"x"`
	Y         int    `json:"y"`
	IsFolder  bool   `json:"is_folder"`
	Extension string `json:"extension"` // lowercase, dot-prefixed, or ""
	IsSystem  bool   `json:"is_system"` // no backing path (Trash, Computer, ...)
}

// Monitor is a read-only snapshot of one display.
type Monitor struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	WorkArea Rect   `json:"work_area"` // excludes panels/docks
	Primary  bool   `json:"primary"`
}

// Surface is the desktop adapter consumed by the organize pipeline.
//
// ListIcons and SetPositions talk to an external process and must be treated
// as slow and fallible. SetPositions is best-effort: the desktop's own
// align/auto-arrange settings can silently override explicit positions, so
// callers verify with a follow-up read instead of retrying.
type Surface interface {
	ListIcons() ([]Icon, error)
	Monitors() ([]Monitor, error)
	PrimaryMonitor() (Monitor, error)
	IconSpacing() (Spacing, error)
	GridOrigin() (Point, error)
	SetPositions(positions map[string]Point) error
	Refresh() error
}
