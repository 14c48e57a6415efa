package action

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rpdg/wintarget/mouse"
)

// fakeOps records the calls the dispatcher forwards.
type fakeOps struct {
	calls []string
}

func (f *fakeOps) record(format string, args ...any) Result {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return Success(Name("test"), "ok", nil)
}

func (f *fakeOps) MouseClick(x, y int32, b mouse.Button) Result {
	return f.record("click %d,%d %s", x, y, b)
}
func (f *fakeOps) MouseDoubleClick(x, y int32, b mouse.Button) Result {
	return f.record("double %d,%d %s", x, y, b)
}
func (f *fakeOps) MouseMove(x, y int32) Result { return f.record("move %d,%d", x, y) }
func (f *fakeOps) MouseDrag(sx, sy, ex, ey int32, b mouse.Button, steps int) Result {
	return f.record("drag %d,%d->%d,%d %s steps=%d", sx, sy, ex, ey, b, steps)
}
func (f *fakeOps) MouseScroll(scrollX, scrollY, x, y int32) Result {
	return f.record("scroll %d,%d at %d,%d", scrollX, scrollY, x, y)
}
func (f *fakeOps) KeyboardType(text string, clear bool) Result {
	return f.record("type %q clear=%v", text, clear)
}
func (f *fakeOps) KeyboardPress(keys []string) Result {
	return f.record("press %v", keys)
}
func (f *fakeOps) ClearText() Result { return f.record("clear") }
func (f *fakeOps) ClickAndType(x, y int32, text string, clear bool) Result {
	return f.record("clickType %d,%d %q clear=%v", x, y, text, clear)
}

func newTestDispatcher() (*Dispatcher, *fakeOps, *time.Duration) {
	ops := &fakeOps{}
	d := NewDispatcher(ops)
	var slept time.Duration
	d.sleep = func(dur time.Duration) { slept += dur }
	d.newID = func() string { return "req-1" }
	return d, ops, &slept
}

func dispatchJSON(t *testing.T, d *Dispatcher, raw string) Envelope {
	t.Helper()
	return d.Dispatch(json.RawMessage(raw))
}

func TestDispatchForwardsTypedArgs(t *testing.T) {
	d, ops, _ := newTestDispatcher()

	cases := []struct {
		raw  string
		want string
	}{
		{`{"action":"mouse_click","x":10,"y":20,"button":"right"}`, "click 10,20 right"},
		{`{"action":"mouse_click","x":1,"y":2}`, "click 1,2 left"},
		{`{"action":"mouse_double_click","x":3,"y":4}`, "double 3,4 left"},
		{`{"action":"mouse_hover","x":5,"y":6}`, "move 5,6"},
		{`{"action":"mouse_drag","start_x":0,"start_y":0,"end_x":100,"end_y":0}`, "drag 0,0->100,0 left steps=10"},
		{`{"action":"mouse_drag","start_x":1,"start_y":1,"end_x":2,"end_y":2,"steps":5,"button":"middle"}`, "drag 1,1->2,2 middle steps=5"},
		{`{"action":"mouse_scroll","scroll_y":3}`, "scroll 0,3 at 0,0"},
		{`{"action":"keyboard_type","text":"hello"}`, `type "hello" clear=false`},
		{`{"action":"keyboard_type","text":"hi","clear_existing":true}`, `type "hi" clear=true`},
		{`{"action":"keyboard_press","keys":["ctrl","a"]}`, "press [ctrl a]"},
		{`{"action":"clear_text"}`, "clear"},
		{`{"action":"click_and_type","x":7,"y":8,"text":"t"}`, `clickType 7,8 "t" clear=true`},
		{`{"action":"click_and_type","x":7,"y":8,"text":"t","clear_existing":false}`, `clickType 7,8 "t" clear=false`},
	}
	for _, c := range cases {
		ops.calls = nil
		env := dispatchJSON(t, d, c.raw)
		if !env.Success {
			t.Errorf("%s: success = false (%s)", c.raw, env.Err)
			continue
		}
		if len(ops.calls) != 1 || ops.calls[0] != c.want {
			t.Errorf("%s: calls = %v, want [%s]", c.raw, ops.calls, c.want)
		}
	}
}

func TestDispatchUnknownAction(t *testing.T) {
	d, ops, _ := newTestDispatcher()

	env := dispatchJSON(t, d, `{"action":"warp_drive","x":1}`)
	if env.Success {
		t.Error("unknown action reported success")
	}
	if !strings.Contains(env.Err, "warp_drive") {
		t.Errorf("error %q does not name the action", env.Err)
	}
	if len(ops.calls) != 0 {
		t.Errorf("unknown action touched ops: %v", ops.calls)
	}
}

func TestDispatchMalformedRequest(t *testing.T) {
	d, _, _ := newTestDispatcher()

	env := dispatchJSON(t, d, `{"action":`)
	if env.Success {
		t.Error("malformed request reported success")
	}
}

func TestDispatchUnknownButton(t *testing.T) {
	d, ops, _ := newTestDispatcher()

	env := dispatchJSON(t, d, `{"action":"mouse_click","button":"fourth"}`)
	if env.Success {
		t.Error("unknown button reported success")
	}
	if len(ops.calls) != 0 {
		t.Errorf("ops touched: %v", ops.calls)
	}
}

func TestWaitClamping(t *testing.T) {
	d, _, slept := newTestDispatcher()

	env := dispatchJSON(t, d, `{"action":"wait","seconds":100}`)
	if !env.Success {
		t.Fatalf("wait failed: %s", env.Err)
	}
	if *slept != 30*time.Second {
		t.Errorf("slept %v, want 30s (clamped ceiling)", *slept)
	}
	if env.Fields["seconds"] != 30 {
		t.Errorf("seconds field = %v, want 30", env.Fields["seconds"])
	}

	*slept = 0
	dispatchJSON(t, d, `{"action":"wait","seconds":0}`)
	if *slept != 1*time.Second {
		t.Errorf("slept %v, want 1s (clamped floor)", *slept)
	}

	*slept = 0
	dispatchJSON(t, d, `{"action":"wait","seconds":7}`)
	if *slept != 7*time.Second {
		t.Errorf("slept %v, want 7s", *slept)
	}
}

func TestTaskComplete(t *testing.T) {
	d, ops, _ := newTestDispatcher()

	env := dispatchJSON(t, d, `{"action":"task_complete","summary":"done"}`)
	if !env.Success {
		t.Fatalf("task_complete failed: %s", env.Err)
	}
	if env.Status != StatusCompleted {
		t.Errorf("status = %q, want %q", env.Status, StatusCompleted)
	}
	if env.Fields["summary"] != "done" {
		t.Errorf("summary = %v", env.Fields["summary"])
	}
	if env.Fields["success"] != true {
		t.Errorf("success field = %v, want default true", env.Fields["success"])
	}
	if len(ops.calls) != 0 {
		t.Errorf("task_complete performed OS work: %v", ops.calls)
	}

	env = dispatchJSON(t, d, `{"action":"task_complete","summary":"gave up","success":false}`)
	if env.Fields["success"] != false {
		t.Errorf("success field = %v, want false", env.Fields["success"])
	}
	// The envelope itself still normalizes from status, not from the
	// echoed field.
	if !env.Success {
		t.Error("completed status normalized to success=false")
	}
}

func TestEnvelopeNormalization(t *testing.T) {
	r := Failure(MouseClick, "no target window set")
	env := r.Envelope("id-9")
	if env.Success {
		t.Error("error status normalized to success=true")
	}
	if env.RequestID != "id-9" {
		t.Errorf("request id = %q", env.RequestID)
	}

	r = Success(MouseClick, "clicked", map[string]any{"x": 1, "y": 2, "button": "left"})
	env = r.Envelope("id-10")
	if !env.Success {
		t.Error("success status normalized to success=false")
	}
}

func TestEnvelopeJSONFlattensFields(t *testing.T) {
	env := Success(MouseClick, "clicked", map[string]any{"x": 12, "button": "left"}).Envelope("abc")
	raw, err := json.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	if out["success"] != true || out["action"] != "mouse_click" {
		t.Errorf("envelope = %v", out)
	}
	if out["x"] != float64(12) || out["button"] != "left" {
		t.Errorf("payload fields not flattened: %v", out)
	}
	if _, exists := out["error"]; exists {
		t.Error("empty error serialized")
	}
	if out["request_id"] != "abc" {
		t.Errorf("request_id = %v", out["request_id"])
	}
}

func TestEnvelopeJSONPayloadWinsOnCollision(t *testing.T) {
	d, _, _ := newTestDispatcher()

	// A caller-reported failure in task_complete must survive
	// flattening: the echoed success field overrides the one derived
	// from the status.
	env := dispatchJSON(t, d, `{"action":"task_complete","summary":"gave up","success":false}`)
	raw, err := json.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	if out["success"] != false {
		t.Errorf("top-level success = %v, want the echoed false", out["success"])
	}
	if out["status"] != StatusCompleted {
		t.Errorf("status = %v", out["status"])
	}
	if out["summary"] != "gave up" {
		t.Errorf("summary = %v", out["summary"])
	}
}

func TestNamesCoversDispatchTable(t *testing.T) {
	d, _, _ := newTestDispatcher()
	for _, name := range Names() {
		env := d.Execute(name, map[string]any{})
		if !env.Success && strings.Contains(env.Err, "unknown action") {
			t.Errorf("listed action %q is not dispatchable", name)
		}
	}
}
