package action

import "encoding/json"

// Status values carried by inner results.
const (
	StatusSuccess   = "success"
	StatusError     = "error"
	StatusCompleted = "completed"
)

// Result is the inner, per-operation outcome produced by an action
// handler before envelope normalization. Recoverable failures are
// expressed here, never raised.
type Result struct {
	Status  string
	Action  Name
	Message string
	Err     string
	Fields  map[string]any
}

// Success builds a successful result with optional payload fields.
func Success(action Name, message string, fields map[string]any) Result {
	return Result{Status: StatusSuccess, Action: action, Message: message, Fields: fields}
}

// Failure builds an error result carrying a human-readable error.
func Failure(action Name, errText string) Result {
	return Result{Status: StatusError, Action: action, Err: errText}
}

// Envelope is the single normalized response shape handed back to the
// caller for every dispatched action: success derived from the inner
// status, the message and action echo, and the action-specific payload
// fields flattened alongside.
type Envelope struct {
	Success   bool
	Status    string
	Action    Name
	Message   string
	Err       string
	RequestID string
	Fields    map[string]any
}

// Envelope normalizes the result. Success is true for any status other
// than "error".
func (r Result) Envelope(requestID string) Envelope {
	return Envelope{
		Success:   r.Status != StatusError,
		Status:    r.Status,
		Action:    r.Action,
		Message:   r.Message,
		Err:       r.Err,
		RequestID: requestID,
		Fields:    r.Fields,
	}
}

// MarshalJSON flattens the payload fields beside the fixed envelope
// keys. Payload fields win on collision, so an action that echoes its
// own success or message overrides the derived value. task_complete
// relies on this: a caller-reported failure must surface as top-level
// success false even though its status is not an error.
func (e Envelope) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Fields)+6)
	out["success"] = e.Success
	out["status"] = e.Status
	out["action"] = e.Action
	out["message"] = e.Message
	if e.Err != "" {
		out["error"] = e.Err
	}
	if e.RequestID != "" {
		out["request_id"] = e.RequestID
	}
	for k, v := range e.Fields {
		out[k] = v
	}
	return json.Marshal(out)
}
