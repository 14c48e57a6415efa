package wintarget

import (
	"time"

	"github.com/rpdg/wintarget/config"
	"github.com/rpdg/wintarget/keyboard"
	"github.com/rpdg/wintarget/mouse"
)

// ApplyTiming overrides the inter-message pacing from configuration.
// Zero values keep the built-in defaults.
func ApplyTiming(t config.Timing) {
	if t.ButtonMs > 0 {
		mouse.ButtonDelay = time.Duration(t.ButtonMs) * time.Millisecond
	}
	if t.DragStepMs > 0 {
		mouse.DragStepDelay = time.Duration(t.DragStepMs) * time.Millisecond
	}
	if t.CharMs > 0 {
		keyboard.CharDelay = time.Duration(t.CharMs) * time.Millisecond
	}
	if t.KeyMs > 0 {
		keyboard.KeyDelay = time.Duration(t.KeyMs) * time.Millisecond
	}
	if t.ModifierMs > 0 {
		keyboard.ModifierDelay = time.Duration(t.ModifierMs) * time.Millisecond
	}
	if t.SettleMs > 0 {
		settleDelay = time.Duration(t.SettleMs) * time.Millisecond
	}
}

// NewFromConfig builds a controller per the loaded configuration:
// timing overrides applied, DPI awareness when requested, and the
// configured target adopted when one is named. A configured target
// that cannot be found is logged, not fatal; the caller can still
// adopt one later.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Controller, error) {
	ApplyTiming(cfg.Timing)

	if cfg.PerMonitor {
		opts = append([]Option{WithPerMonitorDPI()}, opts...)
	}
	if cfg.FrontOnPeek {
		opts = append([]Option{WithFrontOnPeek()}, opts...)
	}
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}

	switch {
	case cfg.Target.HWND != 0:
		c.SetTarget(cfg.Target.HWND)
	case cfg.Target.Title != "" || cfg.Target.Class != "":
		c.Find(cfg.Target.Title, cfg.Target.Class)
	}
	return c, nil
}
