package wintarget

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/rpdg/wintarget/action"
	"github.com/rpdg/wintarget/screen"
	"github.com/rpdg/wintarget/window"
)

// Controller owns one adopted target window and delivers background
// input and capture against it. Operations are serialized internally;
// a Controller is safe for use from multiple goroutines, though calls
// interleave against the same target window in arrival order.
type Controller struct {
	log         *slog.Logger
	frontOnPeek bool

	mu     sync.Mutex
	hwnd   uintptr
	title  string
	class  string
	width  int32
	height int32
}

// Timing of composite sequences. Vars so tests can zero them.
var (
	settleDelay  = 150 * time.Millisecond
	clearDelay   = 20 * time.Millisecond
	clearTextGap = 50 * time.Millisecond
)

// Hooks for tests.
var (
	sleep         = time.Sleep
	isWindowValid = window.IsValid
	bringToFront  = window.BringToFront
	windowRect    = window.WindowRect
)

// Option configures a Controller during construction.
type Option func(*Controller)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithFrontOnPeek makes CaptureScreen bring the target forward before
// reading the screen, so the on-screen capture shows the target rather
// than whatever occludes it.
func WithFrontOnPeek() Option {
	return func(c *Controller) { c.frontOnPeek = true }
}

// WithPerMonitorDPI opts the process into per-monitor DPI awareness
// before any target is resolved, so client coordinates line up with
// captured pixels on scaled displays. Failure to opt in is logged, not
// fatal.
func WithPerMonitorDPI() Option {
	return func(c *Controller) {
		if err := window.EnablePerMonitorDPI(); err != nil {
			c.log.Warn("per-monitor DPI awareness not enabled", "error", err)
		}
	}
}

// New probes the OS input and capture facilities and builds a
// controller. Missing facilities are the one hard failure in this
// package: every per-call failure afterwards comes back as a
// structured result instead.
func New(opts ...Option) (*Controller, error) {
	c := &Controller{log: slog.Default()}

	if err := window.Probe(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFacilitiesUnavailable, err)
	}
	if err := screen.Probe(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFacilitiesUnavailable, err)
	}

	for _, opt := range opts {
		opt(c)
	}

	c.log.Info("background controller ready")
	return c, nil
}

// Dispatcher returns an action dispatcher bound to this controller.
func (c *Controller) Dispatcher() *action.Dispatcher {
	return action.NewDispatcher(c)
}

// -----------------------------------------------------------------------------
// Window registry
// -----------------------------------------------------------------------------

// Info is a snapshot of the adopted target descriptor.
type Info struct {
	HWND   uintptr `json:"hwnd"`
	Title  string  `json:"title"`
	Class  string  `json:"class"`
	Width  int32   `json:"width"`
	Height int32   `json:"height"`
}

// ListWindows enumerates all visible titled top-level windows with
// their screen rectangles, in OS enumeration order.
func (c *Controller) ListWindows() []window.Descriptor {
	return window.Enumerate()
}

// Find adopts the first visible window whose title and class contain
// the given substrings, case-insensitively. Empty filters match
// everything. On no match the prior target is left untouched and Find
// returns false.
func (c *Controller) Find(title, class string) bool {
	d, ok := window.Match(title, class)
	if !ok {
		c.log.Warn("no matching window", "title", title, "class", class)
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.adoptLocked(d.HWND, d.Title, d.Class)
	c.log.Info("adopted target window",
		"title", c.title, "class", c.class,
		"width", c.width, "height", c.height)
	return true
}

// SetTarget adopts an explicit window handle after validating it is a
// live window. On an invalid handle the prior target is left untouched
// and SetTarget returns false.
func (c *Controller) SetTarget(hwnd uintptr) bool {
	if !isWindowValid(hwnd) {
		c.log.Error("invalid window handle", "hwnd", hwnd)
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.adoptLocked(hwnd, window.Text(hwnd), window.ClassName(hwnd))
	c.log.Info("target window set", "title", c.title, "width", c.width, "height", c.height)
	return true
}

func (c *Controller) adoptLocked(hwnd uintptr, title, class string) {
	c.hwnd = hwnd
	c.title = title
	c.class = class
	if w, h, err := window.ClientSize(hwnd); err == nil {
		c.width, c.height = w, h
	}
}

// Target returns the adopted descriptor snapshot, or ok=false when no
// target has been adopted.
func (c *Controller) Target() (Info, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hwnd == 0 {
		return Info{}, false
	}
	return Info{HWND: c.hwnd, Title: c.title, Class: c.class, Width: c.width, Height: c.height}, true
}

// ScreenInfo returns the cached target dimensions.
func (c *Controller) ScreenInfo() (width, height int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// BringToFront restores the target if minimized and requests
// foreground focus. Best-effort; no other operation requires it, since
// all input here is delivered without focus.
func (c *Controller) BringToFront() bool {
	c.mu.Lock()
	hwnd, err := c.targetLocked()
	c.mu.Unlock()
	if err != nil {
		return false
	}
	if err := bringToFront(hwnd); err != nil {
		c.log.Error("bring to front failed", "error", err)
		return false
	}
	return true
}

// targetLocked validates the adopted handle is still a live window
// before any message is sent against it. Validation failure never
// mutates cached state.
func (c *Controller) targetLocked() (uintptr, error) {
	if c.hwnd == 0 {
		return 0, ErrNoTarget
	}
	if !isWindowValid(c.hwnd) {
		return 0, ErrWindowGone
	}
	return c.hwnd, nil
}

// -----------------------------------------------------------------------------
// Capture
// -----------------------------------------------------------------------------

// CaptureResult carries a captured bitmap in transport encoding.
type CaptureResult struct {
	Success      bool   `json:"success"`
	Screenshot   string `json:"screenshot,omitempty"`
	WindowTitle  string `json:"window_title,omitempty"`
	Width        int32  `json:"width,omitempty"`
	Height       int32  `json:"height,omitempty"`
	UsedFallback bool   `json:"used_fallback,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Capture acquires the target window's current rendered content
// regardless of occlusion or minimization and returns it as a PNG data
// URI. On success the cached dimensions are refreshed to the observed
// window size.
func (c *Controller) Capture() CaptureResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	hwnd, err := c.targetLocked()
	if err != nil {
		return CaptureResult{Error: err.Error()}
	}

	img, usedFallback, err := screen.CaptureWindow(hwnd)
	if err != nil {
		c.log.Error("window capture failed", "error", err)
		return CaptureResult{Error: err.Error()}
	}
	encoded, err := screen.EncodeDataURI(img)
	if err != nil {
		c.log.Error("capture encode failed", "error", err)
		return CaptureResult{Error: err.Error()}
	}

	bounds := img.Bounds()
	c.width, c.height = int32(bounds.Dx()), int32(bounds.Dy())

	c.log.Info("captured target window",
		"title", c.title, "width", c.width, "height", c.height, "fallback", usedFallback)
	return CaptureResult{
		Success:      true,
		Screenshot:   encoded,
		WindowTitle:  c.title,
		Width:        c.width,
		Height:       c.height,
		UsedFallback: usedFallback,
	}
}

// CaptureScreen captures what is physically on screen: the target's
// screen rectangle when one is adopted, otherwise the primary display.
// Occluding windows are captured as-is; use Capture for composed
// background content.
func (c *Controller) CaptureScreen() CaptureResult {
	c.mu.Lock()
	hwnd := c.hwnd
	title := c.title
	c.mu.Unlock()

	var (
		shot *image.RGBA
		err  error
	)
	if hwnd != 0 && isWindowValid(hwnd) {
		if c.frontOnPeek {
			if err := bringToFront(hwnd); err != nil {
				c.log.Warn("bring to front before capture failed", "error", err)
			}
			sleep(settleDelay)
		}
		var rect window.Rect
		rect, err = windowRect(hwnd)
		if err != nil {
			return CaptureResult{Error: err.Error()}
		}
		shot, err = screen.CaptureScreenRect(rect)
	} else {
		title = "Desktop"
		shot, err = screen.CaptureDesktop()
	}
	if err != nil {
		c.log.Error("screen capture failed", "error", err)
		return CaptureResult{Error: err.Error()}
	}

	encoded, err := screen.EncodeDataURI(shot)
	if err != nil {
		return CaptureResult{Error: err.Error()}
	}
	bounds := shot.Bounds()
	return CaptureResult{
		Success:     true,
		Screenshot:  encoded,
		WindowTitle: title,
		Width:       int32(bounds.Dx()),
		Height:      int32(bounds.Dy()),
	}
}
