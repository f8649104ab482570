package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/icontile/internal/surface"
)

// Monitors enumerates active CRTCs via XRandR and attaches per-monitor work
// areas so icon placement never runs under panels or docks.
func (c *Connection) Monitors() ([]surface.Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primaryOutput randr.Output
	if reply, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		primaryOutput = reply.Output
	}

	var monitors []surface.Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		primary := false
		if outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(outputInfo.Name)
		}
		for _, out := range crtcInfo.Outputs {
			if out == primaryOutput && primaryOutput != 0 {
				primary = true
			}
		}

		mon := surface.Monitor{
			ID:      i,
			Name:    name,
			X:       int(crtcInfo.X),
			Y:       int(crtcInfo.Y),
			Width:   int(crtcInfo.Width),
			Height:  int(crtcInfo.Height),
			Primary: primary,
		}
		mon.WorkArea = c.workAreaFor(mon)
		monitors = append(monitors, mon)
	}
	if len(monitors) == 0 {
		return nil, surface.ErrUnavailable
	}

	// RandR reports no primary when none is configured; treat the monitor at
	// the origin, or failing that the first one, as primary.
	if !hasPrimary(monitors) {
		idx := 0
		for i, m := range monitors {
			if m.X == 0 && m.Y == 0 {
				idx = i
				break
			}
		}
		monitors[idx].Primary = true
	}
	return monitors, nil
}

// PrimaryMonitor returns the monitor marked primary.
func (c *Connection) PrimaryMonitor() (surface.Monitor, error) {
	monitors, err := c.Monitors()
	if err != nil {
		return surface.Monitor{}, err
	}
	for _, m := range monitors {
		if m.Primary {
			return m, nil
		}
	}
	return monitors[0], nil
}

// workAreaFor shrinks a monitor's rectangle by any dock struts that overlap
// it, falling back to the EWMH _NET_WORKAREA property.
func (c *Connection) workAreaFor(mon surface.Monitor) surface.Rect {
	area := surface.Rect{
		Left:   mon.X,
		Top:    mon.Y,
		Right:  mon.X + mon.Width,
		Bottom: mon.Y + mon.Height,
	}

	if struts, ok := c.dockStrutsFor(mon); ok {
		area.Left += struts.left
		area.Top += struts.top
		area.Right -= struts.right
		area.Bottom -= struts.bottom
		if area.Right <= area.Left {
			area.Right = area.Left + 1
		}
		if area.Bottom <= area.Top {
			area.Bottom = area.Top + 1
		}
		return area
	}

	// Fallback: intersect with the root work area of the current desktop.
	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return area
	}
	idx := 0
	if current, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(current) < len(workArea) {
		idx = int(current)
	}
	wa := workArea[idx]

	left := max(area.Left, int(wa.X))
	top := max(area.Top, int(wa.Y))
	right := min(area.Right, int(wa.X)+int(wa.Width))
	bottom := min(area.Bottom, int(wa.Y)+int(wa.Height))
	if right > left && bottom > top {
		return surface.Rect{Left: left, Top: top, Right: right, Bottom: bottom}
	}
	return area
}

type dockStruts struct {
	left   int
	right  int
	top    int
	bottom int
}

func (c *Connection) dockStrutsFor(mon surface.Monitor) (dockStruts, bool) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return dockStruts{}, false
	}
	rootWidth := int(rootGeom.Width)
	rootHeight := int(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return dockStruts{}, false
	}

	var struts dockStruts
	for _, windowID := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
		if err != nil {
			continue
		}
		isDock := false
		for _, t := range types {
			if t == "_NET_WM_WINDOW_TYPE_DOCK" {
				isDock = true
				break
			}
		}
		if !isDock {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			accumulateStruts(mon, rootWidth, rootHeight, sp, &struts)
			continue
		}

		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			sp := &ewmh.WmStrutPartial{
				Left:         s.Left,
				Right:        s.Right,
				Top:          s.Top,
				Bottom:       s.Bottom,
				LeftStartY:   0,
				LeftEndY:     uint(rootHeight - 1),
				RightStartY:  0,
				RightEndY:    uint(rootHeight - 1),
				TopStartX:    0,
				TopEndX:      uint(rootWidth - 1),
				BottomStartX: 0,
				BottomEndX:   uint(rootWidth - 1),
			}
			accumulateStruts(mon, rootWidth, rootHeight, sp, &struts)
		}
	}

	if struts.left == 0 && struts.right == 0 && struts.top == 0 && struts.bottom == 0 {
		return dockStruts{}, false
	}
	return struts, true
}

func accumulateStruts(mon surface.Monitor, rootWidth, rootHeight int, sp *ewmh.WmStrutPartial, acc *dockStruts) {
	monX1 := mon.X
	monY1 := mon.Y
	monX2 := mon.X + mon.Width
	monY2 := mon.Y + mon.Height

	// Top strut: y=[0,Top), x=[TopStartX,TopEndX]
	if sp.Top > 0 {
		x1, x2 := int(sp.TopStartX), int(sp.TopEndX)+1
		y1, y2 := 0, int(sp.Top)
		if sz := intersectionSize(monX1, monY1, monX2, monY2, x1, y1, x2, y2); sz.h > 0 {
			acc.top = max(acc.top, sz.h)
		}
	}

	// Bottom strut: y=[rootHeight-Bottom,rootHeight), x=[BottomStartX,BottomEndX]
	if sp.Bottom > 0 {
		x1, x2 := int(sp.BottomStartX), int(sp.BottomEndX)+1
		y1, y2 := rootHeight-int(sp.Bottom), rootHeight
		if sz := intersectionSize(monX1, monY1, monX2, monY2, x1, y1, x2, y2); sz.h > 0 {
			acc.bottom = max(acc.bottom, sz.h)
		}
	}

	// Left strut: x=[0,Left), y=[LeftStartY,LeftEndY]
	if sp.Left > 0 {
		x1, x2 := 0, int(sp.Left)
		y1, y2 := int(sp.LeftStartY), int(sp.LeftEndY)+1
		if sz := intersectionSize(monX1, monY1, monX2, monY2, x1, y1, x2, y2); sz.w > 0 {
			acc.left = max(acc.left, sz.w)
		}
	}

	// Right strut: x=[rootWidth-Right,rootWidth), y=[RightStartY,RightEndY]
	if sp.Right > 0 {
		x1, x2 := rootWidth-int(sp.Right), rootWidth
		y1, y2 := int(sp.RightStartY), int(sp.RightEndY)+1
		if sz := intersectionSize(monX1, monY1, monX2, monY2, x1, y1, x2, y2); sz.w > 0 {
			acc.right = max(acc.right, sz.w)
		}
	}
}

type intersection struct {
	w int
	h int
}

func intersectionSize(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2 int) intersection {
	x1 := max(ax1, bx1)
	y1 := max(ay1, by1)
	x2 := min(ax2, bx2)
	y2 := min(ay2, by2)
	if x2 <= x1 || y2 <= y1 {
		return intersection{}
	}
	return intersection{w: x2 - x1, h: y2 - y1}
}

func hasPrimary(monitors []surface.Monitor) bool {
	for _, m := range monitors {
		if m.Primary {
			return true
		}
	}
	return false
}
