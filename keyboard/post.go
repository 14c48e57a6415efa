// Package keyboard encodes text and key-combination input as window
// messages against a background target.
package keyboard

import (
	"errors"
	"strings"
	"time"

	"github.com/rpdg/wintarget/keycode"
	"github.com/rpdg/wintarget/window"
)

const (
	WM_KEYDOWN = 0x0100
	WM_KEYUP   = 0x0101
	WM_CHAR    = 0x0102

	EM_SETSEL = 0x00B1
	WM_CUT    = 0x0300
	WM_COPY   = 0x0301
	WM_PASTE  = 0x0302
	WM_CLEAR  = 0x0303

	clearTimeoutMs = 100
)

// Timing between posted key messages. Vars so tests can zero them.
var (
	CharDelay     = 10 * time.Millisecond
	KeyDelay      = 30 * time.Millisecond
	ModifierDelay = 10 * time.Millisecond
	ClearDelay    = 20 * time.Millisecond
)

// Hooks for tests.
var (
	post        = window.PostMessage
	send        = window.SendMessage
	sendTimeout = window.SendMessageTimeout
	mapScan     = window.MapVirtualKey
	sleep       = time.Sleep
)

// ErrNoValidKeys implies every requested key name failed to resolve.
var ErrNoValidKeys = errors.New("no valid keys in combination")

// Method names the mechanism Press chose for a key combination.
// Editing messages are used instead of synthesized key events where
// many controls do not process the latter reliably in the background.
type Method string

const (
	MethodSelectAll Method = "EM_SETSEL"
	MethodCopy      Method = "WM_COPY"
	MethodPaste     Method = "WM_PASTE"
	MethodCut       Method = "WM_CUT"
	MethodClear     Method = "WM_CLEAR"
	MethodKeys      Method = "WM_KEYDOWN/WM_KEYUP"
)

// TypeText posts one WM_CHAR message per code point. When
// clearExisting is set, a synchronous select-all + clear pair is sent
// first, with a short timeout so a hung target cannot block the caller.
// No IME composition is performed; each code point is independent.
func TypeText(hwnd uintptr, text string, clearExisting bool) error {
	if clearExisting {
		if err := sendTimeout(hwnd, EM_SETSEL, 0, ^uintptr(0), clearTimeoutMs); err != nil {
			return err
		}
		sleep(ClearDelay)
		if err := sendTimeout(hwnd, WM_CLEAR, 0, 0, clearTimeoutMs); err != nil {
			return err
		}
		sleep(ClearDelay)
	}

	return PostChars(hwnd, text)
}

// PostChars posts the raw per-character WM_CHAR sequence without any
// clearing step.
func PostChars(hwnd uintptr, text string) error {
	for _, r := range text {
		if err := post(hwnd, WM_CHAR, uintptr(r), 0); err != nil {
			return err
		}
		sleep(CharDelay)
	}
	return nil
}

// SelectAll sends the select-all editing message synchronously.
func SelectAll(hwnd uintptr) {
	send(hwnd, EM_SETSEL, 0, ^uintptr(0))
}

// Clear sends the clear editing message synchronously.
func Clear(hwnd uintptr) {
	send(hwnd, WM_CLEAR, 0, 0)
}

// Press issues a key combination. keys is ordered: the last element is
// the main key, preceding elements are held modifiers. Recognized
// clipboard/selection combinations bypass key events entirely and use
// direct editing messages. Unknown multi-character names are skipped
// and reported; the press still proceeds with the keys that resolved.
// Resolved echoes the names actually pressed, in order.
func Press(hwnd uintptr, keys []string) (method Method, resolved, skipped []string, err error) {
	if m, ok := editingShortcut(keys); ok {
		switch m {
		case MethodSelectAll:
			send(hwnd, EM_SETSEL, 0, ^uintptr(0))
		case MethodCopy:
			send(hwnd, WM_COPY, 0, 0)
		case MethodPaste:
			send(hwnd, WM_PASTE, 0, 0)
		case MethodCut:
			send(hwnd, WM_CUT, 0, 0)
		case MethodClear:
			send(hwnd, WM_CLEAR, 0, 0)
		}
		return m, keys, nil, nil
	}

	var vks []uint16
	for _, name := range keys {
		vk, ok := keycode.Lookup(name)
		if !ok {
			skipped = append(skipped, name)
			continue
		}
		vks = append(vks, vk)
		resolved = append(resolved, name)
	}
	if len(vks) == 0 {
		return MethodKeys, nil, skipped, ErrNoValidKeys
	}

	// Modifiers down, in order.
	for _, vk := range vks[:len(vks)-1] {
		if err := keyDown(hwnd, vk); err != nil {
			return MethodKeys, resolved, skipped, err
		}
		sleep(ModifierDelay)
	}

	// Main key down, short delay, up.
	main := vks[len(vks)-1]
	if err := keyDown(hwnd, main); err != nil {
		return MethodKeys, resolved, skipped, err
	}
	sleep(KeyDelay)
	if err := keyUp(hwnd, main); err != nil {
		return MethodKeys, resolved, skipped, err
	}

	// Modifiers up, reverse order.
	for i := len(vks) - 2; i >= 0; i-- {
		if err := keyUp(hwnd, vks[i]); err != nil {
			return MethodKeys, resolved, skipped, err
		}
		sleep(ModifierDelay)
	}

	return MethodKeys, resolved, skipped, nil
}

// editingShortcut maps the special-cased combinations onto their
// editing messages.
func editingShortcut(keys []string) (Method, bool) {
	if len(keys) == 2 {
		mod := strings.ToLower(keys[0])
		if mod == "ctrl" || mod == "control" {
			switch strings.ToLower(keys[1]) {
			case "a":
				return MethodSelectAll, true
			case "c":
				return MethodCopy, true
			case "v":
				return MethodPaste, true
			case "x":
				return MethodCut, true
			}
		}
	}
	if len(keys) == 1 && strings.ToLower(keys[0]) == "delete" {
		return MethodClear, true
	}
	return "", false
}

func keyDown(hwnd uintptr, vk uint16) error {
	return post(hwnd, WM_KEYDOWN, uintptr(vk), keycode.KeyLParam(mapScan(vk), false))
}

func keyUp(hwnd uintptr, vk uint16) error {
	return post(hwnd, WM_KEYUP, uintptr(vk), keycode.KeyLParam(mapScan(vk), true))
}
