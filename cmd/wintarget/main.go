package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	wintarget "github.com/rpdg/wintarget"
	"github.com/rpdg/wintarget/action"
	"github.com/rpdg/wintarget/config"
	"github.com/rpdg/wintarget/mcp"
	"github.com/rpdg/wintarget/screen"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "list":
		os.Exit(runList(os.Args[2:]))
	case "capture":
		os.Exit(runCapture(os.Args[2:]))
	case "action":
		os.Exit(runAction(os.Args[2:]))
	case "demo":
		os.Exit(runDemo(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wintarget <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  mcp                 Start the MCP server on stdio")
	fmt.Fprintln(w, "  list                List visible top-level windows")
	fmt.Fprintln(w, "  capture             Capture a window to a PNG file")
	fmt.Fprintln(w, "  action              Execute one input action from a JSON document")
	fmt.Fprintln(w, "  demo                Drive a short input demo against Notepad")
	fmt.Fprintln(w, "  help                Show this help")
}

func buildController(cfg *config.Config) (*wintarget.Controller, error) {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	// Logs go to stderr; stdout is reserved for the MCP transport.
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return wintarget.NewFromConfig(cfg, wintarget.WithLogger(slog.New(handler)))
}

func runMCP(args []string) int {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file (default: standard location)")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	c, err := buildController(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize controller: %v\n", err)
		return 1
	}

	server := mcp.NewServer(c, cfg.ServerName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := server.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
		return 1
	}
	return 0
}

func runList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "emit JSON instead of a table")
	filter := fs.String("title", "", "case-insensitive title substring filter")
	fs.Parse(args)

	c, err := buildController(config.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize controller: %v\n", err)
		return 1
	}

	windows := c.ListWindows()
	if *filter != "" {
		needle := strings.ToLower(*filter)
		kept := windows[:0]
		for _, d := range windows {
			if strings.Contains(strings.ToLower(d.Title), needle) {
				kept = append(kept, d)
			}
		}
		windows = kept
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(windows)
		return 0
	}
	for _, d := range windows {
		fmt.Printf("%#x  %-28s %-20s %dx%d\n",
			d.HWND, truncate(d.Title, 28), truncate(d.Class, 20),
			d.Rect.Width(), d.Rect.Height())
	}
	return 0
}

func runCapture(args []string) int {
	fs := flag.NewFlagSet("capture", flag.ExitOnError)
	title := fs.String("title", "", "title substring of the window to capture")
	class := fs.String("class", "", "class substring of the window to capture")
	out := fs.String("out", "capture.png", "output PNG path")
	wholeScreen := fs.Bool("screen", false, "capture the physical screen instead of window content")
	fs.Parse(args)

	c, err := buildController(config.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize controller: %v\n", err)
		return 1
	}
	if *title != "" || *class != "" {
		if !c.Find(*title, *class) {
			fmt.Fprintf(os.Stderr, "No window matching title=%q class=%q\n", *title, *class)
			return 1
		}
	} else if !*wholeScreen {
		fmt.Fprintln(os.Stderr, "capture requires -title or -class (or -screen)")
		return 2
	}

	var res wintarget.CaptureResult
	if *wholeScreen {
		res = c.CaptureScreen()
	} else {
		res = c.Capture()
	}
	if !res.Success {
		fmt.Fprintf(os.Stderr, "Capture failed: %s\n", res.Error)
		return 1
	}

	img, err := screen.DecodeDataURI(res.Screenshot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decode failed: %v\n", err)
		return 1
	}
	if err := screen.WritePNG(*out, img); err != nil {
		fmt.Fprintf(os.Stderr, "Write failed: %v\n", err)
		return 1
	}
	fmt.Printf("Captured %q (%dx%d, fallback=%v) to %s\n",
		res.WindowTitle, res.Width, res.Height, res.UsedFallback, *out)
	return 0
}

func runAction(args []string) int {
	fs := flag.NewFlagSet("action", flag.ExitOnError)
	title := fs.String("title", "", "title substring of the target window")
	class := fs.String("class", "", "class substring of the target window")
	doc := fs.String("json", "", `action document, e.g. {"action":"mouse_click","x":100,"y":200}`)
	fs.Parse(args)

	if *doc == "" {
		fmt.Fprintln(os.Stderr, "action requires -json")
		return 2
	}

	c, err := buildController(config.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize controller: %v\n", err)
		return 1
	}
	if *title != "" || *class != "" {
		if !c.Find(*title, *class) {
			fmt.Fprintf(os.Stderr, "No window matching title=%q class=%q\n", *title, *class)
			return 1
		}
	}

	env := c.Dispatcher().Dispatch(json.RawMessage(*doc))
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(env)
	if !env.Success {
		return 1
	}
	return 0
}

// runDemo drives a short end-to-end sequence against Notepad: adopt,
// click, type, press enter, capture. Notepad must already be open.
func runDemo(args []string) int {
	c, err := buildController(config.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize controller: %v\n", err)
		return 1
	}
	if !c.Find("Notepad", "") {
		fmt.Fprintln(os.Stderr, "Open Notepad first, then re-run the demo.")
		return 1
	}
	info, _ := c.Target()
	fmt.Printf("Target: %q (%dx%d)\n", info.Title, info.Width, info.Height)

	d := c.Dispatcher()
	steps := []struct {
		name action.Name
		args any
	}{
		{action.MouseClick, action.MouseClickArgs{X: 100, Y: 100}},
		{action.KeyboardType, action.KeyboardTypeArgs{Text: "Hello from a background window."}},
		{action.KeyboardPress, action.KeyboardPressArgs{Keys: []string{"enter"}}},
	}
	for _, step := range steps {
		env := d.Execute(step.name, step.args)
		fmt.Printf("  %-14s success=%v %s\n", step.name, env.Success, env.Message)
		if !env.Success {
			fmt.Fprintf(os.Stderr, "Demo stopped: %s\n", env.Err)
			return 1
		}
		time.Sleep(200 * time.Millisecond)
	}

	res := c.Capture()
	if !res.Success {
		fmt.Fprintf(os.Stderr, "Capture failed: %s\n", res.Error)
		return 1
	}
	img, err := screen.DecodeDataURI(res.Screenshot)
	if err == nil {
		err = screen.WritePNG("demo.png", img)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not save demo.png: %v\n", err)
		return 1
	}
	fmt.Println("Saved demo.png")
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
