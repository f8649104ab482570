// Package x11 wraps the X server connection used for monitor geometry and
// global hotkeys.
package x11

import (
	"os"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection manages the X11 connection and core X resources.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection connects to the X server. display and xauthority override
// the DISPLAY/XAUTHORITY environment when non-empty; the daemon needs this
// when launched outside the desktop session.
func NewConnection(display, xauthority string) (*Connection, error) {
	if xauthority != "" {
		os.Setenv("XAUTHORITY", xauthority)
	}
	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display != "" {
		xu, err = xgbutil.NewConnDisplay(display)
	} else {
		xu, err = xgbutil.NewConn()
	}
	if err != nil {
		return nil, err
	}

	// Required for global hotkey grabs.
	keybind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// EventLoop runs the X11 event loop. Blocks until Quit.
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit stops a running event loop.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
}

// Close disconnects from the X server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
