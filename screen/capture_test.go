package screen

import (
	"testing"
	"unsafe"

	"github.com/rpdg/wintarget/window"
)

const (
	fakeWindowDC = uintptr(0xA1)
	fakeMemDC    = uintptr(0xA2)
	fakeBitmap   = uintptr(0xA3)
	fakeStockObj = uintptr(0xA4)
)

// fakeDraw counts every acquired and released drawing handle so tests
// can assert the release discipline on each exit path.
type fakeDraw struct {
	pix []byte

	failWindowDC bool
	failMemDC    bool
	failDIB      bool
	failSelect   bool
	printOK      bool
	bltOK        bool

	dcAcquired, dcReleased  int
	memAcquired, memDeleted int
	bmpAcquired, bmpDeleted int
	selected, restored      int
	printCalls, bitBltCalls int
}

func installFakeDraw(t *testing.T, width, height int32, f *fakeDraw) {
	t.Helper()
	f.pix = make([]byte, int(width)*int(height)*4)

	orig := draw
	draw = drawProcs{
		getWindowDC: func(uintptr) uintptr {
			if f.failWindowDC {
				return 0
			}
			f.dcAcquired++
			return fakeWindowDC
		},
		releaseDC: func(_, dc uintptr) {
			if dc == fakeWindowDC {
				f.dcReleased++
			}
		},
		createCompatibleDC: func(uintptr) uintptr {
			if f.failMemDC {
				return 0
			}
			f.memAcquired++
			return fakeMemDC
		},
		deleteDC: func(dc uintptr) {
			if dc == fakeMemDC {
				f.memDeleted++
			}
		},
		createDIBSection: func(_ uintptr, bmi *bitmapInfoHeader, bits *uintptr) uintptr {
			if f.failDIB {
				return 0
			}
			if bmi.BiHeight >= 0 {
				t.Error("DIB height not negated; bitmap would be bottom-up")
			}
			f.bmpAcquired++
			*bits = uintptr(unsafe.Pointer(&f.pix[0]))
			return fakeBitmap
		},
		deleteObject: func(obj uintptr) {
			if obj == fakeBitmap {
				f.bmpDeleted++
			}
		},
		selectObject: func(_, obj uintptr) uintptr {
			switch obj {
			case fakeBitmap:
				if f.failSelect {
					return 0
				}
				f.selected++
				return fakeStockObj
			case fakeStockObj:
				f.restored++
				return fakeBitmap
			}
			return 0
		},
		printWindow: func(_, _, _ uintptr) uintptr {
			f.printCalls++
			if f.printOK {
				return 1
			}
			return 0
		},
		bitBlt: func(_ uintptr, _, _ int32, _ uintptr) uintptr {
			f.bitBltCalls++
			if f.bltOK {
				return 1
			}
			return 0
		},
		requestRepaint: func(uintptr) {},
		windowRect: func(uintptr) (window.Rect, error) {
			return window.Rect{Right: width, Bottom: height}, nil
		},
	}
	t.Cleanup(func() { draw = orig })
}

func (f *fakeDraw) assertReleased(t *testing.T) {
	t.Helper()
	if f.dcAcquired != f.dcReleased {
		t.Errorf("window DC acquired %d released %d", f.dcAcquired, f.dcReleased)
	}
	if f.memAcquired != f.memDeleted {
		t.Errorf("memory DC acquired %d deleted %d", f.memAcquired, f.memDeleted)
	}
	if f.bmpAcquired != f.bmpDeleted {
		t.Errorf("bitmap acquired %d deleted %d", f.bmpAcquired, f.bmpDeleted)
	}
	if f.selected != f.restored {
		t.Errorf("selected %d restored %d", f.selected, f.restored)
	}
}

func TestCaptureWindowPrimaryPath(t *testing.T) {
	f := &fakeDraw{printOK: true}
	installFakeDraw(t, 2, 2, f)

	// First pixel BGRA = (1, 2, 3, 0); expect RGBA (3, 2, 1, 255).
	f.pix[0], f.pix[1], f.pix[2] = 1, 2, 3

	img, usedFallback, err := CaptureWindow(7)
	if err != nil {
		t.Fatal(err)
	}
	if usedFallback {
		t.Error("primary path reported as fallback")
	}
	if f.bitBltCalls != 0 {
		t.Error("BitBlt called although PrintWindow succeeded")
	}
	if got := img.Pix[:4]; got[0] != 3 || got[1] != 2 || got[2] != 1 || got[3] != 255 {
		t.Errorf("pixel 0 = %v, want BGRA swizzled to RGBA with opaque alpha", got)
	}
	f.assertReleased(t)
}

func TestCaptureWindowFallbackPath(t *testing.T) {
	f := &fakeDraw{bltOK: true}
	installFakeDraw(t, 2, 2, f)

	_, usedFallback, err := CaptureWindow(7)
	if err != nil {
		t.Fatal(err)
	}
	if !usedFallback {
		t.Error("fallback not reported")
	}
	if f.printCalls != 1 || f.bitBltCalls != 1 {
		t.Errorf("printWindow=%d bitBlt=%d calls", f.printCalls, f.bitBltCalls)
	}
	f.assertReleased(t)
}

func TestCaptureWindowBothMethodsFail(t *testing.T) {
	f := &fakeDraw{}
	installFakeDraw(t, 2, 2, f)

	_, usedFallback, err := CaptureWindow(7)
	if err == nil {
		t.Fatal("expected error when both methods fail")
	}
	if !usedFallback {
		t.Error("fallback attempt not reported")
	}
	f.assertReleased(t)
}

func TestCaptureWindowReleasesOnEarlyFailures(t *testing.T) {
	cases := []struct {
		name string
		fake *fakeDraw
	}{
		{"window dc", &fakeDraw{failWindowDC: true}},
		{"memory dc", &fakeDraw{failMemDC: true}},
		{"dib section", &fakeDraw{failDIB: true}},
		{"select", &fakeDraw{failSelect: true}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			installFakeDraw(t, 2, 2, c.fake)
			if _, _, err := CaptureWindow(7); err == nil {
				t.Fatal("expected error")
			}
			c.fake.assertReleased(t)
		})
	}
}

func TestCaptureWindowRejectsEmptyRect(t *testing.T) {
	f := &fakeDraw{printOK: true}
	installFakeDraw(t, 2, 2, f)
	orig := draw.windowRect
	draw.windowRect = func(uintptr) (window.Rect, error) {
		return window.Rect{}, nil
	}
	t.Cleanup(func() { draw.windowRect = orig })

	if _, _, err := CaptureWindow(7); err == nil {
		t.Fatal("expected error for empty rectangle")
	}
	if f.dcAcquired != 0 {
		t.Error("acquired a DC before validating the rectangle")
	}
}
