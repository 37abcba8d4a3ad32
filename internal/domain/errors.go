package domain

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned by the session when a single command exceeds its
// allotted time. It is recovered locally as a Failed outcome; the session
// itself stays up.
var ErrTimeout = errors.New("command timed out")

// ErrSessionClosed is returned when a command is submitted to a session
// that has already stopped or whose shell process has exited.
var ErrSessionClosed = errors.New("shell session is closed")

// TutorialError is the base error type with context.
type TutorialError struct {
	Phase   string // "parse", "session", "config", "scan"
	File    string
	Line    int
	Message string
	Cause   error
}

func (e *TutorialError) Error() string {
	s := fmt.Sprintf("[%s]", e.Phase)
	if e.File != "" {
		s += fmt.Sprintf(" %s", e.File)
	}
	if e.Line > 0 {
		s += fmt.Sprintf(":%d", e.Line)
	}
	s += fmt.Sprintf(": %s", e.Message)
	if e.Cause != nil {
		s += fmt.Sprintf(": %v", e.Cause)
	}
	return s
}

func (e *TutorialError) Unwrap() error {
	return e.Cause
}

// NewError creates a new TutorialError.
func NewError(phase, file string, line int, message string, cause error) *TutorialError {
	return &TutorialError{
		Phase:   phase,
		File:    file,
		Line:    line,
		Message: message,
		Cause:   cause,
	}
}
