package mcp

// WindowDescriptor is one enumerated top-level window.
type WindowDescriptor struct {
	HWND   uintptr `json:"hwnd"`
	Title  string  `json:"title"`
	Class  string  `json:"class"`
	Left   int32   `json:"left"`
	Top    int32   `json:"top"`
	Width  int32   `json:"width"`
	Height int32   `json:"height"`
}

type ListWindowsInput struct {
	TitleFilter string `json:"title_filter,omitempty" jsonschema:"Optional case-insensitive substring filter on window titles"`
}

type ListWindowsOutput struct {
	Windows []WindowDescriptor `json:"windows"`
	Count   int                `json:"count"`
}

type SetTargetInput struct {
	Title string  `json:"title,omitempty" jsonschema:"Case-insensitive substring of the window title to adopt. Empty matches any title."`
	Class string  `json:"class,omitempty" jsonschema:"Case-insensitive substring of the window class. Empty matches any class."`
	HWND  uintptr `json:"hwnd,omitempty" jsonschema:"Explicit window handle to adopt. Takes precedence over title/class when set."`
}

type TargetOutput struct {
	Success bool    `json:"success"`
	HWND    uintptr `json:"hwnd,omitempty"`
	Title   string  `json:"title,omitempty"`
	Class   string  `json:"class,omitempty"`
	Width   int32   `json:"width,omitempty"`
	Height  int32   `json:"height,omitempty"`
	Error   string  `json:"error,omitempty"`
}

type WindowInfoInput struct{}

type BringToFrontInput struct{}

type BringToFrontOutput struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type ScreenshotInput struct{}

type ScreenshotOutput struct {
	Success      bool   `json:"success"`
	Screenshot   string `json:"screenshot,omitempty" jsonschema:"PNG image as a data:image/png;base64 URI"`
	WindowTitle  string `json:"window_title,omitempty"`
	Width        int32  `json:"width,omitempty"`
	Height       int32  `json:"height,omitempty"`
	UsedFallback bool   `json:"used_fallback,omitempty"`
	Error        string `json:"error,omitempty"`
}

type MouseClickInput struct {
	X      int32  `json:"x" jsonschema:"required,Client-area X coordinate in pixels"`
	Y      int32  `json:"y" jsonschema:"required,Client-area Y coordinate in pixels"`
	Button string `json:"button,omitempty" jsonschema:"Mouse button: left, middle, or right (default: left)"`
	Double bool   `json:"double,omitempty" jsonschema:"When true, perform a double click instead of a single click"`
}

type MouseScrollInput struct {
	ScrollX int32 `json:"scroll_x,omitempty" jsonschema:"Horizontal scroll amount (accepted but has no effect)"`
	ScrollY int32 `json:"scroll_y,omitempty" jsonschema:"Vertical scroll amount; positive scrolls down"`
	X       int32 `json:"x,omitempty" jsonschema:"Client-area X coordinate of the scroll position"`
	Y       int32 `json:"y,omitempty" jsonschema:"Client-area Y coordinate of the scroll position"`
}

type KeyboardTypeInput struct {
	Text          string `json:"text" jsonschema:"required,Text to type into the focused control"`
	ClearExisting bool   `json:"clear_existing,omitempty" jsonschema:"When true, select and clear the existing content first"`
}

type KeyboardPressInput struct {
	Keys []string `json:"keys" jsonschema:"required,Key names to press together, e.g. [\"ctrl\",\"a\"] or [\"enter\"]"`
}

type ClearTextInput struct{}

type ClickAndTypeInput struct {
	X             int32  `json:"x" jsonschema:"required,Client-area X coordinate to click"`
	Y             int32  `json:"y" jsonschema:"required,Client-area Y coordinate to click"`
	Text          string `json:"text,omitempty" jsonschema:"Text to type after clicking"`
	ClearExisting *bool  `json:"clear_existing,omitempty" jsonschema:"Clear the control before typing (default: true)"`
}

type ExecuteActionInput struct {
	Action string         `json:"action" jsonschema:"required,The action name: mouse_click, mouse_double_click, mouse_hover, mouse_drag, mouse_scroll, keyboard_type, keyboard_press, clear_text, click_and_type, wait, or task_complete"`
	Args   map[string]any `json:"args,omitempty" jsonschema:"Action-specific arguments, e.g. {\"x\": 100, \"y\": 200, \"button\": \"left\"} for mouse_click"`
}

type ExecuteActionOutput struct {
	Success   bool           `json:"success"`
	Status    string         `json:"status"`
	Action    string         `json:"action"`
	Message   string         `json:"message,omitempty"`
	Error     string         `json:"error,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}
