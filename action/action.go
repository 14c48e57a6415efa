// Package action defines the closed set of automation actions, their
// typed argument structs, and the dispatch table that normalizes every
// outcome into one response envelope.
package action

import (
	"encoding/json"
	"fmt"

	"github.com/rpdg/wintarget/mouse"
)

// Name identifies one supported action variant.
type Name string

const (
	MouseClick       Name = "mouse_click"
	MouseDoubleClick Name = "mouse_double_click"
	MouseHover       Name = "mouse_hover"
	MouseDrag        Name = "mouse_drag"
	MouseScroll      Name = "mouse_scroll"
	KeyboardType     Name = "keyboard_type"
	KeyboardPress    Name = "keyboard_press"
	ClearText        Name = "clear_text"
	ClickAndType     Name = "click_and_type"
	Wait             Name = "wait"
	TaskComplete     Name = "task_complete"
)

// Names lists every supported action in a stable order.
func Names() []Name {
	return []Name{
		MouseClick, MouseDoubleClick, MouseHover, MouseDrag, MouseScroll,
		KeyboardType, KeyboardPress, ClearText, ClickAndType,
		Wait, TaskComplete,
	}
}

// Argument structs, one per variant. Field names follow the wire
// envelope consumed by the orchestrating agent.

// MouseClickArgs are the arguments for mouse_click and
// mouse_double_click. Button defaults to left.
type MouseClickArgs struct {
	X      int32  `json:"x"`
	Y      int32  `json:"y"`
	Button string `json:"button,omitempty"`
}

// MouseHoverArgs are the arguments for mouse_hover.
type MouseHoverArgs struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// MouseDragArgs are the arguments for mouse_drag. Steps defaults to 10.
type MouseDragArgs struct {
	StartX int32  `json:"start_x"`
	StartY int32  `json:"start_y"`
	EndX   int32  `json:"end_x"`
	EndY   int32  `json:"end_y"`
	Button string `json:"button,omitempty"`
	Steps  int    `json:"steps,omitempty"`
}

// MouseScrollArgs are the arguments for mouse_scroll. Positive ScrollY
// scrolls down.
type MouseScrollArgs struct {
	ScrollX int32 `json:"scroll_x"`
	ScrollY int32 `json:"scroll_y"`
	X       int32 `json:"x"`
	Y       int32 `json:"y"`
}

// KeyboardTypeArgs are the arguments for keyboard_type. ClearExisting
// defaults to false.
type KeyboardTypeArgs struct {
	Text          string `json:"text"`
	ClearExisting bool   `json:"clear_existing,omitempty"`
}

// KeyboardPressArgs are the arguments for keyboard_press. Keys is
// ordered: held modifiers first, the main key last.
type KeyboardPressArgs struct {
	Keys []string `json:"keys"`
}

// ClickAndTypeArgs are the arguments for click_and_type. ClearExisting
// defaults to true.
type ClickAndTypeArgs struct {
	X             int32  `json:"x"`
	Y             int32  `json:"y"`
	Text          string `json:"text,omitempty"`
	ClearExisting *bool  `json:"clear_existing,omitempty"`
}

// WaitArgs are the arguments for wait. Seconds is clamped to [1, 30].
type WaitArgs struct {
	Seconds int `json:"seconds,omitempty"`
}

// TaskCompleteArgs are the arguments for task_complete, the terminal
// marker the calling agent uses to detect loop termination.
type TaskCompleteArgs struct {
	Summary string `json:"summary,omitempty"`
	Success *bool  `json:"success,omitempty"`
}

func (a MouseClickArgs) button() (mouse.Button, error) { return mouse.ParseButton(a.Button) }
func (a MouseDragArgs) button() (mouse.Button, error) { return mouse.ParseButton(a.Button) }

func (a MouseDragArgs) steps() int {
	if a.Steps <= 0 {
		return 10
	}
	return a.Steps
}

func (a ClickAndTypeArgs) clearExisting() bool {
	if a.ClearExisting == nil {
		return true
	}
	return *a.ClearExisting
}

func (a TaskCompleteArgs) success() bool {
	if a.Success == nil {
		return true
	}
	return *a.Success
}

func decode[T any](raw json.RawMessage) (T, error) {
	var args T
	if len(raw) == 0 {
		return args, nil
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return args, fmt.Errorf("decode %T: %w", args, err)
	}
	return args, nil
}
