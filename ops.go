package wintarget

import (
	"fmt"
	"strings"

	"github.com/rpdg/wintarget/action"
	"github.com/rpdg/wintarget/keyboard"
	"github.com/rpdg/wintarget/mouse"
)

// Controller implements action.Ops. Every method validates the target
// first and folds recoverable failures into the result instead of
// returning an error; the dispatcher normalizes these into envelopes.
var _ action.Ops = (*Controller)(nil)

var pressKeys = keyboard.Press // test hook

func (c *Controller) MouseClick(x, y int32, button mouse.Button) action.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	hwnd, err := c.targetLocked()
	if err != nil {
		return action.Failure(action.MouseClick, err.Error())
	}
	if err := mouse.Click(hwnd, x, y, button); err != nil {
		return action.Failure(action.MouseClick, err.Error())
	}
	return action.Success(action.MouseClick,
		fmt.Sprintf("Clicked %s button at (%d, %d)", button, x, y),
		map[string]any{"x": x, "y": y, "button": string(button)})
}

func (c *Controller) MouseDoubleClick(x, y int32, button mouse.Button) action.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	hwnd, err := c.targetLocked()
	if err != nil {
		return action.Failure(action.MouseDoubleClick, err.Error())
	}
	posted, err := mouse.DoubleClick(hwnd, x, y, button)
	if err != nil {
		return action.Failure(action.MouseDoubleClick, err.Error())
	}
	if !posted {
		c.log.Warn("double click ignored for button", "button", button)
	}
	return action.Success(action.MouseDoubleClick,
		fmt.Sprintf("Double-clicked at (%d, %d)", x, y),
		map[string]any{"x": x, "y": y, "button": string(button)})
}

func (c *Controller) MouseMove(x, y int32) action.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	hwnd, err := c.targetLocked()
	if err != nil {
		return action.Failure(action.MouseHover, err.Error())
	}
	if err := mouse.Move(hwnd, x, y); err != nil {
		return action.Failure(action.MouseHover, err.Error())
	}
	return action.Success(action.MouseHover,
		fmt.Sprintf("Moved cursor to (%d, %d)", x, y),
		map[string]any{"x": x, "y": y})
}

func (c *Controller) MouseDrag(startX, startY, endX, endY int32, button mouse.Button, steps int) action.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	hwnd, err := c.targetLocked()
	if err != nil {
		return action.Failure(action.MouseDrag, err.Error())
	}
	if err := mouse.Drag(hwnd, startX, startY, endX, endY, button, steps); err != nil {
		return action.Failure(action.MouseDrag, err.Error())
	}
	return action.Success(action.MouseDrag,
		fmt.Sprintf("Dragged from (%d, %d) to (%d, %d)", startX, startY, endX, endY),
		map[string]any{
			"start_x": startX, "start_y": startY,
			"end_x": endX, "end_y": endY,
			"button": string(button),
		})
}

func (c *Controller) MouseScroll(scrollX, scrollY, x, y int32) action.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	hwnd, err := c.targetLocked()
	if err != nil {
		return action.Failure(action.MouseScroll, err.Error())
	}
	if scrollX != 0 {
		c.log.Warn("horizontal scroll ignored", "scroll_x", scrollX)
	}
	if err := mouse.Scroll(hwnd, scrollX, scrollY, x, y); err != nil {
		return action.Failure(action.MouseScroll, err.Error())
	}
	return action.Success(action.MouseScroll,
		fmt.Sprintf("Scrolled (%d, %d) at (%d, %d)", scrollX, scrollY, x, y),
		map[string]any{"scroll_x": scrollX, "scroll_y": scrollY, "x": x, "y": y})
}

func (c *Controller) KeyboardType(text string, clearExisting bool) action.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	hwnd, err := c.targetLocked()
	if err != nil {
		return action.Failure(action.KeyboardType, err.Error())
	}
	if err := keyboard.TypeText(hwnd, text, clearExisting); err != nil {
		return action.Failure(action.KeyboardType, err.Error())
	}
	return action.Success(action.KeyboardType,
		fmt.Sprintf("Typed %d characters", len([]rune(text))),
		map[string]any{"text_length": len([]rune(text)), "cleared": clearExisting})
}

func (c *Controller) KeyboardPress(keys []string) action.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keyboardPressLocked(keys)
}

func (c *Controller) keyboardPressLocked(keys []string) action.Result {
	hwnd, err := c.targetLocked()
	if err != nil {
		return action.Failure(action.KeyboardPress, err.Error())
	}
	method, resolved, skipped, err := pressKeys(hwnd, keys)
	if err != nil {
		return action.Failure(action.KeyboardPress, err.Error())
	}
	if len(skipped) > 0 {
		c.log.Warn("some key names were not recognized",
			"requested", keys, "skipped", skipped)
	}
	return action.Success(action.KeyboardPress,
		fmt.Sprintf("Pressed %s", strings.Join(resolved, "+")),
		map[string]any{"keys": resolved, "method": string(method)})
}

// ClearText selects everything in the focused control and deletes it,
// as two sequential key presses. Both presses are always attempted;
// the second outcome is reported.
func (c *Controller) ClearText() action.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.keyboardPressLocked([]string{"ctrl", "a"})
	sleep(clearTextGap)
	res := c.keyboardPressLocked([]string{"delete"})

	res.Action = action.ClearText
	if res.Status == action.StatusSuccess {
		res.Message = "Cleared text"
	}
	return res
}

// ClickAndType clicks to place focus, waits for the control to settle,
// then optionally clears it synchronously and types the text.
func (c *Controller) ClickAndType(x, y int32, text string, clearExisting bool) action.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	hwnd, err := c.targetLocked()
	if err != nil {
		return action.Failure(action.ClickAndType, err.Error())
	}
	if err := mouse.Click(hwnd, x, y, mouse.ButtonLeft); err != nil {
		return action.Failure(action.ClickAndType, err.Error())
	}
	sleep(settleDelay)

	if clearExisting {
		keyboard.SelectAll(hwnd)
		sleep(clearDelay)
		keyboard.Clear(hwnd)
		sleep(clearDelay)
	}
	if err := keyboard.PostChars(hwnd, text); err != nil {
		return action.Failure(action.ClickAndType, err.Error())
	}
	return action.Success(action.ClickAndType,
		fmt.Sprintf("Clicked (%d, %d) and typed %d characters", x, y, len([]rune(text))),
		map[string]any{"x": x, "y": y, "text_length": len([]rune(text)), "cleared": clearExisting})
}
