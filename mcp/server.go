// Package mcp exposes the background window controller as an MCP
// server over stdio, so agent clients can enumerate windows, capture
// screenshots, and drive input without the target ever taking focus.
package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	wintarget "github.com/rpdg/wintarget"
	"github.com/rpdg/wintarget/action"
)

const (
	ServerName    = "wintarget"
	ServerVersion = "0.1.0"
)

// Server is the MCP server over one window controller.
type Server struct {
	mcpServer  *mcpsdk.Server
	controller *wintarget.Controller
	dispatcher *action.Dispatcher
}

// NewServer builds the MCP server around an existing controller.
func NewServer(c *wintarget.Controller, name string) *Server {
	if name == "" {
		name = ServerName
	}
	s := &Server{
		controller: c,
		dispatcher: c.Dispatcher(),
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    name,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves on stdio transport, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List all visible top-level windows with their handle, title, class, and screen rectangle. Optionally filter by a case-insensitive title substring.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_target",
		Description: "Adopt a window as the target for all subsequent input and capture. Match by title/class substrings or pass an explicit hwnd. The window does not need focus and can stay in the background.",
	}, s.handleSetTarget)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "window_info",
		Description: "Return the currently adopted target window: handle, title, class, and client dimensions.",
	}, s.handleWindowInfo)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "bring_to_front",
		Description: "Restore the target window if minimized and bring it to the foreground. Input and capture do not require this; it is for human visibility only.",
	}, s.handleBringToFront)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "screenshot",
		Description: "Capture the target window's rendered content as a PNG data URI. Works while the window is occluded or minimized.",
	}, s.handleScreenshot)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "screenshot_screen",
		Description: "Capture what is physically on screen: the target window's screen rectangle when a target is adopted, otherwise the primary display. Occluding windows appear as-is.",
	}, s.handleScreenshotScreen)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "mouse_click",
		Description: "Click (or double-click) at client-area coordinates in the target window without bringing it to the foreground.",
	}, s.handleMouseClick)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "mouse_scroll",
		Description: "Scroll the mouse wheel at client-area coordinates in the target window. Positive scroll_y scrolls down.",
	}, s.handleMouseScroll)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "keyboard_type",
		Description: "Type text into the target window's focused control, character by character, optionally clearing existing content first.",
	}, s.handleKeyboardType)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "keyboard_press",
		Description: "Press a key or key combination in the target window, e.g. [\"enter\"] or [\"ctrl\",\"a\"].",
	}, s.handleKeyboardPress)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "clear_text",
		Description: "Select all text in the target window's focused control and delete it.",
	}, s.handleClearText)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "click_and_type",
		Description: "Click at client-area coordinates in the target window to place focus, then type text, clearing the control first by default.",
	}, s.handleClickAndType)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "execute_action",
		Description: "Execute one input action against the target window: mouse_click, mouse_double_click, mouse_hover, mouse_drag, mouse_scroll, keyboard_type, keyboard_press, clear_text, click_and_type, wait, or task_complete. Coordinates are client-area pixels. Returns a normalized result envelope.",
	}, s.handleExecuteAction)
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	filter := strings.ToLower(args.TitleFilter)

	var out ListWindowsOutput
	for _, d := range s.controller.ListWindows() {
		if filter != "" && !strings.Contains(strings.ToLower(d.Title), filter) {
			continue
		}
		out.Windows = append(out.Windows, WindowDescriptor{
			HWND:   d.HWND,
			Title:  d.Title,
			Class:  d.Class,
			Left:   d.Rect.Left,
			Top:    d.Rect.Top,
			Width:  d.Rect.Width(),
			Height: d.Rect.Height(),
		})
	}
	out.Count = len(out.Windows)
	return nil, out, nil
}

func (s *Server) handleSetTarget(_ context.Context, _ *mcpsdk.CallToolRequest, args SetTargetInput) (*mcpsdk.CallToolResult, TargetOutput, error) {
	var adopted bool
	switch {
	case args.HWND != 0:
		adopted = s.controller.SetTarget(args.HWND)
	case args.Title != "" || args.Class != "":
		adopted = s.controller.Find(args.Title, args.Class)
	default:
		return nil, TargetOutput{}, fmt.Errorf("set_target requires a title, class, or hwnd")
	}
	if !adopted {
		return nil, TargetOutput{Error: "no matching window"}, nil
	}
	info, _ := s.controller.Target()
	return nil, targetOutput(info), nil
}

func (s *Server) handleWindowInfo(_ context.Context, _ *mcpsdk.CallToolRequest, _ WindowInfoInput) (*mcpsdk.CallToolResult, TargetOutput, error) {
	info, ok := s.controller.Target()
	if !ok {
		return nil, TargetOutput{Error: "no target window set"}, nil
	}
	return nil, targetOutput(info), nil
}

func (s *Server) handleBringToFront(_ context.Context, _ *mcpsdk.CallToolRequest, _ BringToFrontInput) (*mcpsdk.CallToolResult, BringToFrontOutput, error) {
	if !s.controller.BringToFront() {
		return nil, BringToFrontOutput{Error: "could not bring target to front"}, nil
	}
	return nil, BringToFrontOutput{Success: true}, nil
}

func (s *Server) handleScreenshot(_ context.Context, _ *mcpsdk.CallToolRequest, _ ScreenshotInput) (*mcpsdk.CallToolResult, ScreenshotOutput, error) {
	return nil, screenshotOutput(s.controller.Capture()), nil
}

func (s *Server) handleScreenshotScreen(_ context.Context, _ *mcpsdk.CallToolRequest, _ ScreenshotInput) (*mcpsdk.CallToolResult, ScreenshotOutput, error) {
	return nil, screenshotOutput(s.controller.CaptureScreen()), nil
}

func (s *Server) handleMouseClick(_ context.Context, _ *mcpsdk.CallToolRequest, args MouseClickInput) (*mcpsdk.CallToolResult, ExecuteActionOutput, error) {
	name := action.MouseClick
	if args.Double {
		name = action.MouseDoubleClick
	}
	env := s.dispatcher.Execute(name, action.MouseClickArgs{X: args.X, Y: args.Y, Button: args.Button})
	return nil, actionOutput(env), nil
}

func (s *Server) handleMouseScroll(_ context.Context, _ *mcpsdk.CallToolRequest, args MouseScrollInput) (*mcpsdk.CallToolResult, ExecuteActionOutput, error) {
	env := s.dispatcher.Execute(action.MouseScroll, action.MouseScrollArgs{
		ScrollX: args.ScrollX, ScrollY: args.ScrollY, X: args.X, Y: args.Y,
	})
	return nil, actionOutput(env), nil
}

func (s *Server) handleKeyboardType(_ context.Context, _ *mcpsdk.CallToolRequest, args KeyboardTypeInput) (*mcpsdk.CallToolResult, ExecuteActionOutput, error) {
	env := s.dispatcher.Execute(action.KeyboardType, action.KeyboardTypeArgs{
		Text: args.Text, ClearExisting: args.ClearExisting,
	})
	return nil, actionOutput(env), nil
}

func (s *Server) handleKeyboardPress(_ context.Context, _ *mcpsdk.CallToolRequest, args KeyboardPressInput) (*mcpsdk.CallToolResult, ExecuteActionOutput, error) {
	env := s.dispatcher.Execute(action.KeyboardPress, action.KeyboardPressArgs{Keys: args.Keys})
	return nil, actionOutput(env), nil
}

func (s *Server) handleClearText(_ context.Context, _ *mcpsdk.CallToolRequest, _ ClearTextInput) (*mcpsdk.CallToolResult, ExecuteActionOutput, error) {
	env := s.dispatcher.Execute(action.ClearText, struct{}{})
	return nil, actionOutput(env), nil
}

func (s *Server) handleClickAndType(_ context.Context, _ *mcpsdk.CallToolRequest, args ClickAndTypeInput) (*mcpsdk.CallToolResult, ExecuteActionOutput, error) {
	env := s.dispatcher.Execute(action.ClickAndType, action.ClickAndTypeArgs{
		X: args.X, Y: args.Y, Text: args.Text, ClearExisting: args.ClearExisting,
	})
	return nil, actionOutput(env), nil
}

func (s *Server) handleExecuteAction(_ context.Context, _ *mcpsdk.CallToolRequest, args ExecuteActionInput) (*mcpsdk.CallToolResult, ExecuteActionOutput, error) {
	env := s.dispatcher.Execute(action.Name(args.Action), args.Args)
	return nil, actionOutput(env), nil
}

func actionOutput(env action.Envelope) ExecuteActionOutput {
	return ExecuteActionOutput{
		Success:   env.Success,
		Status:    env.Status,
		Action:    string(env.Action),
		Message:   env.Message,
		Error:     env.Err,
		RequestID: env.RequestID,
		Fields:    env.Fields,
	}
}

func targetOutput(info wintarget.Info) TargetOutput {
	return TargetOutput{
		Success: true,
		HWND:    info.HWND,
		Title:   info.Title,
		Class:   info.Class,
		Width:   info.Width,
		Height:  info.Height,
	}
}

func screenshotOutput(res wintarget.CaptureResult) ScreenshotOutput {
	return ScreenshotOutput{
		Success:      res.Success,
		Screenshot:   res.Screenshot,
		WindowTitle:  res.WindowTitle,
		Width:        res.Width,
		Height:       res.Height,
		UsedFallback: res.UsedFallback,
		Error:        res.Error,
	}
}
