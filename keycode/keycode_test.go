package keycode

import "testing"

func TestMakeLParamRoundTrip(t *testing.T) {
	cases := []struct{ x, y int32 }{
		{0, 0},
		{1, 1},
		{100, 200},
		{65535, 65535},
		{32767, 32768},
	}
	for _, c := range cases {
		lp := MakeLParam(c.x, c.y)
		if got := LParamX(lp); got != c.x {
			t.Errorf("MakeLParam(%d,%d): x = %d", c.x, c.y, got)
		}
		if got := LParamY(lp); got != c.y {
			t.Errorf("MakeLParam(%d,%d): y = %d", c.x, c.y, got)
		}
	}
}

func TestMakeLParamWraps(t *testing.T) {
	// Out-of-range values wrap mod 65536 rather than erroring.
	lp := MakeLParam(65536+25, 65536+40)
	if x := LParamX(lp); x != 25 {
		t.Errorf("x = %d, want 25", x)
	}
	if y := LParamY(lp); y != 40 {
		t.Errorf("y = %d, want 40", y)
	}

	lp = MakeLParam(-1, -1)
	if x := LParamX(lp); x != 65535 {
		t.Errorf("x = %d, want 65535", x)
	}
}

func TestWheelWParamSign(t *testing.T) {
	// Scrolling down one notch (delta -120) must keep its sign in the
	// high word.
	wp := WheelWParam(-WheelDelta)
	if got := int16(uint16(wp >> 16)); got != -WheelDelta {
		t.Errorf("delta = %d, want %d", got, -WheelDelta)
	}
	wp = WheelWParam(WheelDelta)
	if got := int16(uint16(wp >> 16)); got != WheelDelta {
		t.Errorf("delta = %d, want %d", got, WheelDelta)
	}
	// Low word carries no held-key flags.
	if wp&0xFFFF != 0 {
		t.Errorf("low word = %#x, want 0", wp&0xFFFF)
	}
}

func TestKeyLParam(t *testing.T) {
	down := KeyLParam(0x1C, false)
	if down&1 != 1 {
		t.Error("down: repeat count bit not set")
	}
	if (down>>16)&0xFF != 0x1C {
		t.Errorf("down: scan code = %#x, want 0x1C", (down>>16)&0xFF)
	}
	if down&0xC0000000 != 0 {
		t.Error("down: transition bits set")
	}

	up := KeyLParam(0x1C, true)
	if up&0xC0000000 != 0xC0000000 {
		t.Error("up: transition bits not set")
	}
}

func TestLookupNamedKeys(t *testing.T) {
	cases := map[string]uint16{
		"enter":     0x0D,
		"return":    0x0D,
		"Tab":       0x09,
		"space":     0x20,
		"backspace": 0x08,
		"delete":    0x2E,
		"ESC":       0x1B,
		"escape":    0x1B,
		"ctrl":      0x11,
		"control":   0x11,
		"alt":       0x12,
		"shift":     0x10,
		"win":       0x5B,
		"up":        0x26,
		"pagedown":  0x22,
		"f1":        0x70,
		"f12":       0x7B,
		"a":         0x41,
		"z":         0x5A,
		"0":         0x30,
		"9":         0x39,
	}
	for name, want := range cases {
		vk, ok := Lookup(name)
		if !ok {
			t.Errorf("Lookup(%q): not found", name)
			continue
		}
		if vk != want {
			t.Errorf("Lookup(%q) = %#x, want %#x", name, vk, want)
		}
	}
}

func TestLookupRuneFallback(t *testing.T) {
	// Unknown single-character names fall back to their character code.
	vk, ok := Lookup("+")
	if !ok || vk != uint16('+') {
		t.Errorf("Lookup(+) = %#x, %v", vk, ok)
	}
	vk, ok = Lookup("Q")
	if !ok || vk != 0x51 {
		t.Errorf("Lookup(Q) = %#x, %v", vk, ok)
	}
	if _, ok := Lookup("bogus-key"); ok {
		t.Error("Lookup(bogus-key) unexpectedly resolved")
	}
}
