package model

// Result is the outcome of a UI-facing store operation: a value on success,
// an error otherwise. Callers branch on Success before using Value.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok wraps a successful value
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail wraps an error
func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Success returns true if the operation did not fail
func (r Result[T]) Success() bool {
	return r.Err == nil
}

// Message is the user-facing failure text, empty on success
func (r Result[T]) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

