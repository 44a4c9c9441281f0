package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput marks empty or malformed raw input to the structurer.
	ErrInvalidInput = errors.New("invalid input")
	// ErrCourseNotStructured marks a plan request for a course without structure.
	ErrCourseNotStructured = errors.New("course not structured")
	// ErrInvalidSettings marks plan settings that fail validation.
	ErrInvalidSettings = errors.New("invalid settings")
)

// InvalidInput wraps ErrInvalidInput with a human-readable reason.
func InvalidInput(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}

// InvalidSettings wraps ErrInvalidSettings with a human-readable reason.
func InvalidSettings(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidSettings, reason)
}

// Reason returns the sentence attached to a domain error, or the full
// message when err is not one.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []error{ErrInvalidInput, ErrInvalidSettings, ErrCourseNotStructured} {
		if !errors.Is(err, sentinel) {
			continue
		}
		prefix := sentinel.Error() + ": "
		if i := strings.Index(msg, prefix); i >= 0 {
			return msg[i+len(prefix):]
		}
	}
	return msg
}
