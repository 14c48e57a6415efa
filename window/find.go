package window

import (
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Rect is a screen-space rectangle in the Win32 layout.
type Rect struct {
	Left   int32 `json:"left"`
	Top    int32 `json:"top"`
	Right  int32 `json:"right"`
	Bottom int32 `json:"bottom"`
}

// Width returns Right - Left.
func (r Rect) Width() int32 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() int32 { return r.Bottom - r.Top }

// Descriptor identifies one visible top-level window.
type Descriptor struct {
	HWND  uintptr `json:"hwnd"`
	Title string  `json:"title"`
	Class string  `json:"class"`
	Rect  Rect    `json:"rect"`
}

// Win32 callbacks live for the whole process and come from a small
// fixed table, so the enumeration callback is registered exactly once
// and fed through a guarded package slice rather than a per-call
// closure.
var (
	enumOnce sync.Once
	enumCB   uintptr

	enumMu  sync.Mutex
	enumOut []Descriptor
)

func enumProc(hwnd uintptr, _ uintptr) uintptr {
	if !IsVisible(hwnd) {
		return 1
	}
	title := Text(hwnd)
	if title == "" {
		return 1
	}
	rect, _ := WindowRect(hwnd)
	enumOut = append(enumOut, Descriptor{
		HWND:  hwnd,
		Title: title,
		Class: ClassName(hwnd),
		Rect:  rect,
	})
	return 1 // continue enumeration
}

// Enumerate lists all currently visible top-level windows that carry a
// non-empty title, in OS enumeration order. The order is not stable
// across calls.
func Enumerate() []Descriptor {
	enumOnce.Do(func() {
		enumCB = windows.NewCallback(enumProc)
	})

	enumMu.Lock()
	defer enumMu.Unlock()
	enumOut = nil
	procEnumWindows.Call(enumCB, 0)
	out := make([]Descriptor, len(enumOut))
	copy(out, enumOut)
	enumOut = nil
	return out
}

var enumerate = Enumerate // test hook

// Match walks visible windows and returns the first whose title and
// class both contain the given substrings, case-insensitively. Empty
// filters match everything, so Match("", "") adopts the first
// enumerated visible titled window.
func Match(title, class string) (Descriptor, bool) {
	title = strings.ToLower(title)
	class = strings.ToLower(class)

	for _, d := range enumerate() {
		if title != "" && !strings.Contains(strings.ToLower(d.Title), title) {
			continue
		}
		if class != "" && !strings.Contains(strings.ToLower(d.Class), class) {
			continue
		}
		return d, true
	}
	return Descriptor{}, false
}

// Text returns the window's title bar text.
func Text(hwnd uintptr) string {
	var buf [512]uint16
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

// ClassName returns the window's registered class name.
func ClassName(hwnd uintptr) string {
	var buf [256]uint16
	n, _, _ := procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}
