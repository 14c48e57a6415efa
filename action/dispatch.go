package action

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rpdg/wintarget/mouse"
)

// Wait durations are clamped to this range before blocking.
const (
	MinWaitSeconds = 1
	MaxWaitSeconds = 30
)

// Ops is the operation surface the dispatcher forwards input actions
// to. The controller implements it; every method recovers its own
// failures into the returned Result.
type Ops interface {
	MouseClick(x, y int32, button mouse.Button) Result
	MouseDoubleClick(x, y int32, button mouse.Button) Result
	MouseMove(x, y int32) Result
	MouseDrag(startX, startY, endX, endY int32, button mouse.Button, steps int) Result
	MouseScroll(scrollX, scrollY, x, y int32) Result
	KeyboardType(text string, clearExisting bool) Result
	KeyboardPress(keys []string) Result
	ClearText() Result
	ClickAndType(x, y int32, text string, clearExisting bool) Result
}

// Dispatcher is a stateless façade mapping action names onto Ops. It
// owns no target state of its own; an unknown name yields a uniform
// error envelope and touches nothing.
type Dispatcher struct {
	ops Ops

	// Hooks for tests.
	sleep func(time.Duration)
	newID func() string
}

// NewDispatcher builds a dispatcher over the given operation surface.
func NewDispatcher(ops Ops) *Dispatcher {
	return &Dispatcher{
		ops:   ops,
		sleep: time.Sleep,
		newID: uuid.NewString,
	}
}

// Request is the raw wire form of one action invocation: the action
// name plus a flat argument bag. It is transient and consumed
// immediately.
type Request struct {
	Action Name `json:"action"`
}

// Dispatch decodes one raw action envelope, executes it, and returns
// the normalized response. Recoverable failures, including malformed
// argument bags and unknown action names, come back as error
// envelopes.
func (d *Dispatcher) Dispatch(raw json.RawMessage) Envelope {
	id := d.newID()

	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return Failure("", fmt.Sprintf("malformed action request: %v", err)).Envelope(id)
	}
	return d.run(req.Action, raw).Envelope(id)
}

// Execute runs a named action against an already-decoded argument bag.
func (d *Dispatcher) Execute(name Name, args any) Envelope {
	raw, err := json.Marshal(args)
	if err != nil {
		return Failure(name, fmt.Sprintf("encode arguments: %v", err)).Envelope(d.newID())
	}
	return d.run(name, raw).Envelope(d.newID())
}

func (d *Dispatcher) run(name Name, raw json.RawMessage) Result {
	switch name {
	case MouseClick:
		args, err := decode[MouseClickArgs](raw)
		if err != nil {
			return Failure(name, err.Error())
		}
		button, err := args.button()
		if err != nil {
			return Failure(name, err.Error())
		}
		return d.ops.MouseClick(args.X, args.Y, button)

	case MouseDoubleClick:
		args, err := decode[MouseClickArgs](raw)
		if err != nil {
			return Failure(name, err.Error())
		}
		button, err := args.button()
		if err != nil {
			return Failure(name, err.Error())
		}
		return d.ops.MouseDoubleClick(args.X, args.Y, button)

	case MouseHover:
		args, err := decode[MouseHoverArgs](raw)
		if err != nil {
			return Failure(name, err.Error())
		}
		return d.ops.MouseMove(args.X, args.Y)

	case MouseDrag:
		args, err := decode[MouseDragArgs](raw)
		if err != nil {
			return Failure(name, err.Error())
		}
		button, err := args.button()
		if err != nil {
			return Failure(name, err.Error())
		}
		return d.ops.MouseDrag(args.StartX, args.StartY, args.EndX, args.EndY, button, args.steps())

	case MouseScroll:
		args, err := decode[MouseScrollArgs](raw)
		if err != nil {
			return Failure(name, err.Error())
		}
		return d.ops.MouseScroll(args.ScrollX, args.ScrollY, args.X, args.Y)

	case KeyboardType:
		args, err := decode[KeyboardTypeArgs](raw)
		if err != nil {
			return Failure(name, err.Error())
		}
		return d.ops.KeyboardType(args.Text, args.ClearExisting)

	case KeyboardPress:
		args, err := decode[KeyboardPressArgs](raw)
		if err != nil {
			return Failure(name, err.Error())
		}
		return d.ops.KeyboardPress(args.Keys)

	case ClearText:
		return d.ops.ClearText()

	case ClickAndType:
		args, err := decode[ClickAndTypeArgs](raw)
		if err != nil {
			return Failure(name, err.Error())
		}
		return d.ops.ClickAndType(args.X, args.Y, args.Text, args.clearExisting())

	case Wait:
		args, err := decode[WaitArgs](raw)
		if err != nil {
			return Failure(name, err.Error())
		}
		return d.wait(args)

	case TaskComplete:
		args, err := decode[TaskCompleteArgs](raw)
		if err != nil {
			return Failure(name, err.Error())
		}
		return Result{
			Status:  StatusCompleted,
			Action:  name,
			Message: "task completed",
			Fields: map[string]any{
				"summary": args.Summary,
				"success": args.success(),
			},
		}

	default:
		return Failure(name, fmt.Sprintf("unknown action: %s", name))
	}
}

// wait blocks synchronously for the clamped duration. It is the only
// caller-controllable block; it is clamped, not cancellable.
func (d *Dispatcher) wait(args WaitArgs) Result {
	seconds := args.Seconds
	if seconds < MinWaitSeconds {
		seconds = MinWaitSeconds
	}
	if seconds > MaxWaitSeconds {
		seconds = MaxWaitSeconds
	}
	d.sleep(time.Duration(seconds) * time.Second)
	return Success(Wait, fmt.Sprintf("waited %d seconds", seconds), map[string]any{
		"seconds": seconds,
	})
}
