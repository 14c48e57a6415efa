// Package mouse encodes pointer actions as posted window messages
// against a background target. Coordinates are client-relative pixels;
// no clamping or validation is performed here.
package mouse

import (
	"fmt"
	"time"

	"github.com/rpdg/wintarget/keycode"
	"github.com/rpdg/wintarget/window"
)

const (
	WM_MOUSEMOVE     = 0x0200
	WM_LBUTTONDOWN   = 0x0201
	WM_LBUTTONUP     = 0x0202
	WM_LBUTTONDBLCLK = 0x0203
	WM_RBUTTONDOWN   = 0x0204
	WM_RBUTTONUP     = 0x0205
	WM_MBUTTONDOWN   = 0x0207
	WM_MBUTTONUP     = 0x0208
	WM_MOUSEWHEEL    = 0x020A

	MK_LBUTTON = 0x0001
	MK_RBUTTON = 0x0002
	MK_MBUTTON = 0x0010
)

// Button selects which pointer button a click or drag uses.
type Button string

const (
	ButtonLeft   Button = "left"
	ButtonMiddle Button = "middle"
	ButtonRight  Button = "right"
)

// ParseButton normalizes a button name, defaulting empty to left.
func ParseButton(s string) (Button, error) {
	switch Button(s) {
	case "", ButtonLeft:
		return ButtonLeft, nil
	case ButtonMiddle:
		return ButtonMiddle, nil
	case ButtonRight:
		return ButtonRight, nil
	}
	return "", fmt.Errorf("unknown mouse button %q", s)
}

func (b Button) messages() (down, up uint32, held uintptr) {
	switch b {
	case ButtonRight:
		return WM_RBUTTONDOWN, WM_RBUTTONUP, MK_RBUTTON
	case ButtonMiddle:
		return WM_MBUTTONDOWN, WM_MBUTTONUP, MK_MBUTTON
	default:
		return WM_LBUTTONDOWN, WM_LBUTTONUP, MK_LBUTTON
	}
}

// Timing between the sub-messages of composite sequences. Vars so
// tests can zero them.
var (
	ButtonDelay   = 50 * time.Millisecond
	DragStepDelay = 20 * time.Millisecond
)

// Hooks for tests.
var (
	post  = window.PostMessage
	sleep = time.Sleep
)

// Move posts a single pointer-move message. Intermediate positions are
// not simulated.
func Move(hwnd uintptr, x, y int32) error {
	return post(hwnd, WM_MOUSEMOVE, 0, keycode.MakeLParam(x, y))
}

// Click posts button-down, waits, then posts button-up at the same
// position.
func Click(hwnd uintptr, x, y int32, button Button) error {
	down, up, held := button.messages()
	lparam := keycode.MakeLParam(x, y)

	if err := post(hwnd, down, held, lparam); err != nil {
		return err
	}
	sleep(ButtonDelay)
	return post(hwnd, up, 0, lparam)
}

// DoubleClick posts the native double-click message followed by a
// button-up. Only the left button is implemented; other buttons are
// accepted but produce no message, which the caller reports as an
// ignored sub-case.
func DoubleClick(hwnd uintptr, x, y int32, button Button) (posted bool, err error) {
	if button != ButtonLeft {
		return false, nil
	}
	lparam := keycode.MakeLParam(x, y)
	if err := post(hwnd, WM_LBUTTONDBLCLK, MK_LBUTTON, lparam); err != nil {
		return false, err
	}
	sleep(ButtonDelay)
	return true, post(hwnd, WM_LBUTTONUP, 0, lparam)
}

// Drag posts button-down at the start point, steps interpolated move
// messages, then button-up at the end point. The sequence is
// synchronous and atomic from the caller's perspective; no drag state
// persists between calls.
func Drag(hwnd uintptr, startX, startY, endX, endY int32, button Button, steps int) error {
	if steps <= 0 {
		steps = 10
	}
	down, up, held := button.messages()

	if err := post(hwnd, down, held, keycode.MakeLParam(startX, startY)); err != nil {
		return err
	}
	sleep(ButtonDelay)

	for i := 1; i <= steps; i++ {
		x := startX + (endX-startX)*int32(i)/int32(steps)
		y := startY + (endY-startY)*int32(i)/int32(steps)
		if err := post(hwnd, WM_MOUSEMOVE, held, keycode.MakeLParam(x, y)); err != nil {
			return err
		}
		sleep(DragStepDelay)
	}

	return post(hwnd, up, 0, keycode.MakeLParam(endX, endY))
}

// Scroll posts one wheel message at the given client position. The
// caller convention is "positive scrollY scrolls down", which is the
// opposite of the native wheel-delta sign, so the delta is negated and
// scaled by one notch. Horizontal scroll is accepted but not encoded
// into any message; the caller reports it as an ignored sub-case.
func Scroll(hwnd uintptr, scrollX, scrollY, x, y int32) error {
	_ = scrollX
	delta := -scrollY * keycode.WheelDelta
	return post(hwnd, WM_MOUSEWHEEL, keycode.WheelWParam(delta), keycode.MakeLParam(x, y))
}
