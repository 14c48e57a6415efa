package screen

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procGetWindowDC = user32.NewProc("GetWindowDC")
	procReleaseDC   = user32.NewProc("ReleaseDC")
	procPrintWindow = user32.NewProc("PrintWindow")

	procCreateCompatibleDC = gdi32.NewProc("CreateCompatibleDC")
	procDeleteDC           = gdi32.NewProc("DeleteDC")
	procCreateDIBSection   = gdi32.NewProc("CreateDIBSection")
	procSelectObject       = gdi32.NewProc("SelectObject")
	procDeleteObject       = gdi32.NewProc("DeleteObject")
	procBitBlt             = gdi32.NewProc("BitBlt")
)

// Probe resolves the capture entry points once. A controller cannot be
// constructed when they are missing.
func Probe() error {
	for _, p := range []*windows.LazyProc{
		procGetWindowDC,
		procPrintWindow,
		procCreateCompatibleDC,
		procCreateDIBSection,
		procBitBlt,
	} {
		if err := p.Find(); err != nil {
			return fmt.Errorf("capture entry point %s unavailable: %w", p.Name, err)
		}
	}
	return nil
}
