package window

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procEnumWindows               = user32.NewProc("EnumWindows")
	procIsWindow                  = user32.NewProc("IsWindow")
	procIsWindowVisible           = user32.NewProc("IsWindowVisible")
	procIsIconic                  = user32.NewProc("IsIconic")
	procGetWindowTextW            = user32.NewProc("GetWindowTextW")
	procGetClassNameW             = user32.NewProc("GetClassNameW")
	procGetClientRect             = user32.NewProc("GetClientRect")
	procGetWindowRect             = user32.NewProc("GetWindowRect")
	procShowWindow                = user32.NewProc("ShowWindow")
	procSetForegroundWindow       = user32.NewProc("SetForegroundWindow")
	procInvalidateRect            = user32.NewProc("InvalidateRect")
	procUpdateWindow              = user32.NewProc("UpdateWindow")
	procPostMessageW              = user32.NewProc("PostMessageW")
	procSendMessageW              = user32.NewProc("SendMessageW")
	procSendMessageTimeoutW       = user32.NewProc("SendMessageTimeoutW")
	procMapVirtualKeyW            = user32.NewProc("MapVirtualKeyW")
	procSetProcessDpiAwarenessCtx = user32.NewProc("SetProcessDpiAwarenessContext")
)

// ErrPostMessageFailed implies the PostMessageW call returned 0.
var ErrPostMessageFailed = errors.New("PostMessageW failed")

// ErrSendTimedOut implies SendMessageTimeoutW gave up on a hung target.
var ErrSendTimedOut = errors.New("SendMessageTimeoutW timed out")

// Probe resolves the user32 entry points the input and registry paths
// depend on. A controller cannot be constructed when they are missing.
func Probe() error {
	for _, p := range []*windows.LazyProc{
		procEnumWindows,
		procPostMessageW,
		procSendMessageW,
		procSendMessageTimeoutW,
		procMapVirtualKeyW,
	} {
		if err := p.Find(); err != nil {
			return fmt.Errorf("user32 input entry point %s unavailable: %w", p.Name, err)
		}
	}
	return nil
}
