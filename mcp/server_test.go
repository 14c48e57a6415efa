package mcp

import (
	"context"
	"testing"

	wintarget "github.com/rpdg/wintarget"
)

func TestTargetOutputMapping(t *testing.T) {
	out := targetOutput(wintarget.Info{
		HWND: 42, Title: "Notepad", Class: "Edit", Width: 800, Height: 600,
	})
	if !out.Success {
		t.Fatal("expected success")
	}
	if out.HWND != 42 || out.Title != "Notepad" || out.Class != "Edit" {
		t.Fatalf("unexpected mapping: %+v", out)
	}
	if out.Width != 800 || out.Height != 600 {
		t.Fatalf("unexpected dimensions: %+v", out)
	}
}

func TestScreenshotOutputMapping(t *testing.T) {
	out := screenshotOutput(wintarget.CaptureResult{
		Success:      true,
		Screenshot:   "data:image/png;base64,AAAA",
		WindowTitle:  "Notepad",
		Width:        640,
		Height:       480,
		UsedFallback: true,
	})
	if !out.Success || !out.UsedFallback {
		t.Fatalf("flags lost: %+v", out)
	}
	if out.Screenshot == "" || out.WindowTitle != "Notepad" {
		t.Fatalf("payload lost: %+v", out)
	}

	failed := screenshotOutput(wintarget.CaptureResult{Error: "no target window set"})
	if failed.Success || failed.Error == "" {
		t.Fatalf("error not carried: %+v", failed)
	}
}

func TestSetTargetRequiresSelector(t *testing.T) {
	s := &Server{}
	_, _, err := s.handleSetTarget(context.Background(), nil, SetTargetInput{})
	if err == nil {
		t.Fatal("expected error for empty selector")
	}
}
