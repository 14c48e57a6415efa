package window

import "fmt"

// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 is (HANDLE)(-4).
var dpiAwarenessPerMonitorV2 = ^uintptr(3)

// EnablePerMonitorDPI opts the process into per-monitor DPI awareness
// so client coordinates and captured pixels agree on scaled displays.
// Optional; call once before resolving a target.
func EnablePerMonitorDPI() error {
	if procSetProcessDpiAwarenessCtx.Find() != nil {
		return fmt.Errorf("SetProcessDpiAwarenessContext not available")
	}
	r, _, _ := procSetProcessDpiAwarenessCtx.Call(dpiAwarenessPerMonitorV2)
	if r == 0 {
		return fmt.Errorf("SetProcessDpiAwarenessContext failed")
	}
	return nil
}
