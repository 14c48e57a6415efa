// Package keycode holds the static key tables and the bit-packing
// helpers for window message parameters. It performs no OS calls.
package keycode

// Virtual-key codes for the symbolic key names the controller accepts.
// Names are matched lower-case.
var vkByName = map[string]uint16{
	"enter":     0x0D,
	"return":    0x0D,
	"tab":       0x09,
	"space":     0x20,
	"backspace": 0x08,
	"delete":    0x2E,
	"escape":    0x1B,
	"esc":       0x1B,
	"ctrl":      0x11,
	"control":   0x11,
	"alt":       0x12,
	"shift":     0x10,
	"win":       0x5B,
	"up":        0x26,
	"down":      0x28,
	"left":      0x25,
	"right":     0x27,
	"home":      0x24,
	"end":       0x23,
	"pageup":    0x21,
	"pagedown":  0x22,
	"insert":    0x2D,
	"f1":        0x70,
	"f2":        0x71,
	"f3":        0x72,
	"f4":        0x73,
	"f5":        0x74,
	"f6":        0x75,
	"f7":        0x76,
	"f8":        0x77,
	"f9":        0x78,
	"f10":       0x79,
	"f11":       0x7A,
	"f12":       0x7B,
	"a":         0x41, "b": 0x42, "c": 0x43, "d": 0x44, "e": 0x45,
	"f": 0x46, "g": 0x47, "h": 0x48, "i": 0x49, "j": 0x4A,
	"k": 0x4B, "l": 0x4C, "m": 0x4D, "n": 0x4E, "o": 0x4F,
	"p": 0x50, "q": 0x51, "r": 0x52, "s": 0x53, "t": 0x54,
	"u": 0x55, "v": 0x56, "w": 0x57, "x": 0x58, "y": 0x59, "z": 0x5A,
	"0": 0x30, "1": 0x31, "2": 0x32, "3": 0x33, "4": 0x34,
	"5": 0x35, "6": 0x36, "7": 0x37, "8": 0x38, "9": 0x39,
}

// Lookup resolves a symbolic key name to its virtual-key code.
// Unknown single-character names fall back to the upper-cased
// character code; unknown longer names report ok=false.
func Lookup(name string) (vk uint16, ok bool) {
	if vk, ok = vkByName[lower(name)]; ok {
		return vk, true
	}
	if r := []rune(name); len(r) == 1 {
		return uint16(upperRune(r[0])), true
	}
	return 0, false
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func upperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// MakeLParam packs client coordinates into an LPARAM: x in the low
// word, y in the high word. Values wrap mod 65536.
func MakeLParam(x, y int32) uintptr {
	return uintptr(uint32(uint16(x)) | uint32(uint16(y))<<16)
}

// LParamX unpacks the x coordinate of a positional LPARAM.
func LParamX(lparam uintptr) int32 {
	return int32(uint16(lparam))
}

// LParamY unpacks the y coordinate of a positional LPARAM.
func LParamY(lparam uintptr) int32 {
	return int32(uint16(lparam >> 16))
}

// WheelDelta is the platform unit for one wheel notch.
const WheelDelta = 120

// WheelWParam packs a signed wheel delta into the high-order word of a
// WM_MOUSEWHEEL WPARAM. The low word (held-key flags) is left zero.
func WheelWParam(delta int32) uintptr {
	return uintptr(uint32(int32(int16(delta))) << 16)
}

// KeyLParam packs the extra-information LPARAM for WM_KEYDOWN/WM_KEYUP:
// repeat count 1, the key's scan code, and for key-up events the
// previous-state and transition bits.
func KeyLParam(scan uint16, up bool) uintptr {
	lparam := uintptr(1) | uintptr(scan&0xFF)<<16
	if up {
		lparam |= 0xC0000000
	}
	return lparam
}
