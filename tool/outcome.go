package tool

import "encoding/json"

// ErrorKind categorizes a failed tool execution. All kinds are recovered
// locally by the orchestration loop: outcomes become tool-role turns the
// model can react to, they are never surfaced as errors.
type ErrorKind string

// Executor outcome error kinds.
const (
	ErrorKindNotFound         ErrorKind = "NOT_FOUND"
	ErrorKindUnauthorized     ErrorKind = "UNAUTHORIZED"
	ErrorKindInvalidArguments ErrorKind = "INVALID_ARGUMENTS"
	ErrorKindTimeout          ErrorKind = "TIMEOUT"
	ErrorKindExecutionFailed  ErrorKind = "EXECUTION_FAILED"
)

// Outcome is the result of one tool execution. Exactly one of Result
// (Success true) or ErrorKind+Message (Success false) is meaningful.
// Message is always sanitized and safe to show to users and models.
type Outcome struct {
	Success   bool
	Result    any
	ErrorKind ErrorKind
	Message   string
}

func successOutcome(result any) Outcome {
	return Outcome{Success: true, Result: result}
}

func errorOutcome(kind ErrorKind, message string) Outcome {
	return Outcome{Success: false, ErrorKind: kind, Message: message}
}

// JSON serializes the outcome for the tool-role turn fed back to the
// model: the raw payload on success, {"error": message} on failure.
func (o Outcome) JSON() string {
	if o.Success {
		b, err := json.Marshal(o.Result)
		if err != nil {
			return `{"error":"result serialization failed"}`
		}
		return string(b)
	}
	message := o.Message
	if message == "" {
		message = "Unknown error"
	}
	b, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		return `{"error":"result serialization failed"}`
	}
	return string(b)
}
