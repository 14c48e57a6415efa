// Package wintarget drives a specific Windows window in the background:
// mouse and keyboard input is delivered as posted window messages, so
// the target never needs foreground focus or visibility, and its
// rendered content can be captured even while occluded or minimized.
//
// Key features:
// - Target registry: enumerate, filter, and adopt a window by title/class substring or handle
// - Background mouse and keyboard input via PostMessage, no focus stealing
// - Off-screen capture via PrintWindow full-content composition, with BitBlt fallback
// - One normalized action envelope for agent-driven automation
//
// Example:
//
//	c, err := wintarget.New()
//	if err != nil {
//	    panic(err)
//	}
//	if !c.Find("Notepad", "") {
//	    panic("notepad not running")
//	}
//
//	c.MouseClick(100, 100, mouse.ButtonLeft)
//	c.KeyboardType("Hello World", false)
//	shot := c.Capture()
package wintarget
