// Package screen acquires bitmaps of window and desktop content and
// serializes them for transport.
package screen

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/rpdg/wintarget/window"
)

// GDI constants.
const (
	SRCCOPY        = 0x00CC0020
	DIB_RGB_COLORS = 0
	BI_RGB         = 0

	// PW_RENDERFULLCONTENT asks the OS to composite the window's
	// current appearance, including DWM-rendered content, regardless of
	// what is topmost on screen.
	PW_RENDERFULLCONTENT = 2
)

// Roughly 500MB of 32bpp pixels.
const maxCaptureBytes = 1024 * 1024 * 500

type bitmapInfoHeader struct {
	BiSize          uint32
	BiWidth         int32
	BiHeight        int32
	BiPlanes        uint16
	BiBitCount      uint16
	BiCompression   uint32
	BiSizeImage     uint32
	BiXPelsPerMeter int32
	BiYPelsPerMeter int32
	BiClrUsed       uint32
	BiClrImportant  uint32
}

// drawProcs is the thin call layer over the drawing entry points, a
// struct of function fields so tests can substitute a counting fake.
type drawProcs struct {
	getWindowDC        func(hwnd uintptr) uintptr
	releaseDC          func(hwnd, dc uintptr)
	createCompatibleDC func(dc uintptr) uintptr
	deleteDC           func(dc uintptr)
	createDIBSection   func(dc uintptr, bmi *bitmapInfoHeader, bits *uintptr) uintptr
	selectObject       func(dc, obj uintptr) uintptr
	deleteObject       func(obj uintptr)
	printWindow        func(hwnd, dc, flags uintptr) uintptr
	bitBlt             func(dst uintptr, width, height int32, src uintptr) uintptr
	requestRepaint     func(hwnd uintptr)
	windowRect         func(hwnd uintptr) (window.Rect, error)
}

func realDrawProcs() drawProcs {
	return drawProcs{
		getWindowDC: func(hwnd uintptr) uintptr {
			dc, _, _ := procGetWindowDC.Call(hwnd)
			return dc
		},
		releaseDC: func(hwnd, dc uintptr) {
			procReleaseDC.Call(hwnd, dc)
		},
		createCompatibleDC: func(dc uintptr) uintptr {
			mem, _, _ := procCreateCompatibleDC.Call(dc)
			return mem
		},
		deleteDC: func(dc uintptr) {
			procDeleteDC.Call(dc)
		},
		createDIBSection: func(dc uintptr, bmi *bitmapInfoHeader, bits *uintptr) uintptr {
			h, _, _ := procCreateDIBSection.Call(
				dc,
				uintptr(unsafe.Pointer(bmi)),
				DIB_RGB_COLORS,
				uintptr(unsafe.Pointer(bits)),
				0, 0,
			)
			return h
		},
		selectObject: func(dc, obj uintptr) uintptr {
			old, _, _ := procSelectObject.Call(dc, obj)
			return old
		},
		deleteObject: func(obj uintptr) {
			procDeleteObject.Call(obj)
		},
		printWindow: func(hwnd, dc, flags uintptr) uintptr {
			ret, _, _ := procPrintWindow.Call(hwnd, dc, flags)
			return ret
		},
		bitBlt: func(dst uintptr, width, height int32, src uintptr) uintptr {
			ret, _, _ := procBitBlt.Call(
				dst,
				0, 0, uintptr(width), uintptr(height),
				src,
				0, 0,
				SRCCOPY,
			)
			return ret
		},
		requestRepaint: window.RequestRepaint,
		windowRect:     window.WindowRect,
	}
}

var draw = realDrawProcs()

// CaptureWindow captures the current rendered content of hwnd into an
// RGBA image, independent of foreground or visibility state. The
// window is nudged to repaint first so a suspended background render
// loop does not yield stale pixels. PrintWindow with full-content
// composition is the primary method; when it reports failure the
// window device context is copied directly, which reads whatever
// pixels physically occupy the region and may be wrong under
// occlusion. usedFallback reports which path produced the image.
//
// Every device context and bitmap handle acquired along the way is
// released before returning, on success and on every failure path,
// in reverse acquisition order.
func CaptureWindow(hwnd uintptr) (img *image.RGBA, usedFallback bool, err error) {
	draw.requestRepaint(hwnd)

	// Full window rectangle, not the client rectangle: captured
	// dimensions include borders and title bar.
	rect, err := draw.windowRect(hwnd)
	if err != nil {
		return nil, false, err
	}
	width, height := rect.Width(), rect.Height()
	if width <= 0 || height <= 0 {
		return nil, false, fmt.Errorf("window has empty rectangle %dx%d", width, height)
	}
	if int64(width)*int64(height)*4 > maxCaptureBytes {
		return nil, false, fmt.Errorf("window too large for single capture: %dx%d", width, height)
	}

	hwndDC := draw.getWindowDC(hwnd)
	if hwndDC == 0 {
		return nil, false, fmt.Errorf("GetWindowDC failed")
	}
	defer draw.releaseDC(hwnd, hwndDC)

	memDC := draw.createCompatibleDC(hwndDC)
	if memDC == 0 {
		return nil, false, fmt.Errorf("CreateCompatibleDC failed")
	}
	defer draw.deleteDC(memDC)

	// Top-down DIB (negative height) so (0,0) is the top-left pixel.
	bmi := bitmapInfoHeader{
		BiSize:        uint32(unsafe.Sizeof(bitmapInfoHeader{})),
		BiWidth:       width,
		BiHeight:      -height,
		BiPlanes:      1,
		BiBitCount:    32,
		BiCompression: BI_RGB,
	}

	var bits uintptr
	hBitmap := draw.createDIBSection(memDC, &bmi, &bits)
	if hBitmap == 0 {
		return nil, false, fmt.Errorf("CreateDIBSection failed")
	}
	defer draw.deleteObject(hBitmap)

	oldObj := draw.selectObject(memDC, hBitmap)
	if oldObj == 0 {
		return nil, false, fmt.Errorf("SelectObject failed")
	}
	// Restore the original object before the bitmap and DC are deleted.
	defer draw.selectObject(memDC, oldObj)

	if draw.printWindow(hwnd, memDC, PW_RENDERFULLCONTENT) == 0 {
		usedFallback = true
		if draw.bitBlt(memDC, width, height, hwndDC) == 0 {
			return nil, true, fmt.Errorf("PrintWindow and BitBlt both failed")
		}
	}

	// The DIB holds BGRA; copy out before the handle is destroyed,
	// reordering channels for the Go image representation.
	total := int(width) * int(height) * 4
	src := unsafe.Slice((*byte)(unsafe.Pointer(bits)), total)
	dst := make([]byte, total)
	for i := 0; i < total; i += 4 {
		dst[i] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i]
		dst[i+3] = 255
	}

	img = &image.RGBA{
		Pix:    dst,
		Stride: int(width) * 4,
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}
	return img, usedFallback, nil
}
