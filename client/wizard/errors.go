package wizard

import (
	"errors"
	"fmt"
)

var (
	ErrSubmitting   = errors.New("a submission is already in progress")
	ErrUnknownField = errors.New("unknown field")
)

// FieldError reports the first field of the current step that blocks
// progression.
type FieldError struct {
	Field  Field
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// genericSubmitMessage is shown when the server gave no message of its own.
const genericSubmitMessage = "Something went wrong"

// SubmissionError is returned when the submission port fails. Message is the
// server's own error text when one was received.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string { return e.Message }

func (e *SubmissionError) Unwrap() error { return e.Err }

// serverMessager is implemented by port errors carrying a server message.
type serverMessager interface {
	ServerMessage() string
}

func newSubmissionError(err error) *SubmissionError {
	var sm serverMessager
	if errors.As(err, &sm) && sm.ServerMessage() != "" {
		return &SubmissionError{Message: sm.ServerMessage(), Err: err}
	}
	return &SubmissionError{Message: genericSubmitMessage, Err: err}
}
