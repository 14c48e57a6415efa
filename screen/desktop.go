package screen

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/rpdg/wintarget/window"
)

// CaptureDesktop captures the primary display as it is physically
// shown. Unlike CaptureWindow this reads the composed screen, so
// occluding windows are captured as-is.
func CaptureDesktop() (*image.RGBA, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return nil, fmt.Errorf("no active displays")
	}
	img, err := screenshot.CaptureDisplay(0)
	if err != nil {
		return nil, fmt.Errorf("capture display: %w", err)
	}
	return img, nil
}

// CaptureScreenRect captures a screen-space rectangle of the physical
// display.
func CaptureScreenRect(r window.Rect) (*image.RGBA, error) {
	if r.Width() <= 0 || r.Height() <= 0 {
		return nil, fmt.Errorf("empty capture rectangle %dx%d", r.Width(), r.Height())
	}
	bounds := image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom))
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("capture rect: %w", err)
	}
	return img, nil
}
