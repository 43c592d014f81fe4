package poc

import "fmt"

// ErrorType classifies the different ways a poc operation can fail.
type ErrorType int

const (
	ErrorInvalidInput ErrorType = iota
	ErrorOutOfRange
	ErrorOperationFailed
)

// Error is the error type returned by this package's precondition checks.
// Idiomatic Go has no equivalent to a C "skip the check in release builds"
// escape hatch, so unlike the reference plotter's debug-only assertions,
// these checks always run and always return a typed error rather than
// panicking or silently producing a malformed cache.
type Error struct {
	Type    ErrorType
	Message string
	Context map[string]interface{}
}

func (e *Error) Error() string {
	return e.Message
}

func newError(t ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...)}
}
