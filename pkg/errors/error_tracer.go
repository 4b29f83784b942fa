package errors

import "github.com/pkg/errors"

// StackTracer is implemented by errors that carry a recorded stack trace.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

// Tracer is an error carrying an ErrorCode and, once wrapped, the stack
// trace of the underlying failure.
type Tracer struct {
	Code ErrorCode
	Err  error
}

// NewTracer creates a Tracer for the given code.
func NewTracer(code ErrorCode) *Tracer {
	return &Tracer{Code: code}
}

// Wrap attaches an underlying error, recording a stack trace if the error
// does not already carry one.
func (t *Tracer) Wrap(err error) *Tracer {
	if _, ok := err.(StackTracer); ok {
		t.Err = err
		return t
	}
	t.Err = errors.WithStack(err)
	return t
}

func (t *Tracer) Error() string {
	if t.Err != nil {
		return string(t.Code) + ": " + t.Err.Error()
	}
	return string(t.Code)
}

func (t *Tracer) Unwrap() error {
	return t.Err
}

// StackTrace returns the stack trace recorded on the underlying error, if any.
func (t *Tracer) StackTrace() errors.StackTrace {
	if st, ok := t.Err.(StackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

// CodeOf returns the ErrorCode carried by err, or GeneralInternalServerError
// when err carries none.
func CodeOf(err error) ErrorCode {
	if t, ok := err.(*Tracer); ok {
		return t.Code
	}
	return GeneralInternalServerError
}
