package window

import (
	"fmt"
	"unsafe"
)

const swRestore = 9

// IsValid reports whether hwnd still identifies a live window.
func IsValid(hwnd uintptr) bool {
	r, _, _ := procIsWindow.Call(hwnd)
	return r != 0
}

// IsVisible reports whether the window is shown (it may still be
// covered or minimized).
func IsVisible(hwnd uintptr) bool {
	r, _, _ := procIsWindowVisible.Call(hwnd)
	return r != 0
}

// IsIconic reports whether the window is minimized.
func IsIconic(hwnd uintptr) bool {
	r, _, _ := procIsIconic.Call(hwnd)
	return r != 0
}

// ClientSize returns the width and height of the window's client area.
func ClientSize(hwnd uintptr) (width, height int32, err error) {
	var r Rect
	ret, _, _ := procGetClientRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return 0, 0, fmt.Errorf("GetClientRect failed for hwnd %#x", hwnd)
	}
	return r.Width(), r.Height(), nil
}

// WindowRect returns the window's full screen-space rectangle,
// including borders and title bar.
func WindowRect(hwnd uintptr) (Rect, error) {
	var r Rect
	ret, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return Rect{}, fmt.Errorf("GetWindowRect failed for hwnd %#x", hwnd)
	}
	return r, nil
}

// BringToFront restores the window if minimized and requests
// foreground focus. Best-effort: the OS may deny focus stealing, and
// no other operation depends on this succeeding.
func BringToFront(hwnd uintptr) error {
	if IsIconic(hwnd) {
		procShowWindow.Call(hwnd, swRestore)
	}
	r, _, _ := procSetForegroundWindow.Call(hwnd)
	if r == 0 {
		return fmt.Errorf("SetForegroundWindow declined for hwnd %#x", hwnd)
	}
	return nil
}

// RequestRepaint invalidates the window's full area and forces an
// immediate WM_PAINT pass so a capture does not read stale content
// from a suspended background render loop.
func RequestRepaint(hwnd uintptr) {
	procInvalidateRect.Call(hwnd, 0, 1)
	procUpdateWindow.Call(hwnd)
}
