package window

import "unsafe"

const (
	// SMTO_ABORTIFHUNG makes SendMessageTimeout return without waiting
	// when the target is not responding.
	SMTO_ABORTIFHUNG = 0x0002

	// MAPVK_VK_TO_VSC translates a virtual-key code to a scan code.
	MAPVK_VK_TO_VSC = 0
)

// PostMessage places an asynchronous message on the window's queue.
func PostMessage(hwnd uintptr, msg uint32, wparam, lparam uintptr) error {
	r, _, _ := procPostMessageW.Call(hwnd, uintptr(msg), wparam, lparam)
	if r == 0 {
		return ErrPostMessageFailed
	}
	return nil
}

// SendMessage delivers a message synchronously, blocking until the
// window procedure returns.
func SendMessage(hwnd uintptr, msg uint32, wparam, lparam uintptr) uintptr {
	r, _, _ := procSendMessageW.Call(hwnd, uintptr(msg), wparam, lparam)
	return r
}

// SendMessageTimeout delivers a message synchronously but gives up
// after timeoutMs milliseconds or when the target hangs.
func SendMessageTimeout(hwnd uintptr, msg uint32, wparam, lparam uintptr, timeoutMs uint32) error {
	var result uintptr
	r, _, _ := procSendMessageTimeoutW.Call(
		hwnd,
		uintptr(msg),
		wparam,
		lparam,
		SMTO_ABORTIFHUNG,
		uintptr(timeoutMs),
		uintptr(unsafe.Pointer(&result)),
	)
	if r == 0 {
		return ErrSendTimedOut
	}
	return nil
}

// MapVirtualKey translates a virtual-key code to the platform scan
// code used in key message LPARAMs. Returns 0 for keys with no
// translation.
func MapVirtualKey(vk uint16) uint16 {
	r, _, _ := procMapVirtualKeyW.Call(uintptr(vk), MAPVK_VK_TO_VSC)
	return uint16(r)
}
