// Package result carries an operation outcome as a value: either a payload or
// a human-readable reason for the failure.
package result

type Result[T any] struct {
	value  T
	reason string
	ok     bool
}

func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

func Err[T any](reason string) Result[T] {
	return Result[T]{reason: reason}
}

func (r Result[T]) IsOk() bool {
	return r.ok
}

// Value returns the payload, or the zero value of T for a failed result.
func (r Result[T]) Value() T {
	return r.value
}

func (r Result[T]) Reason() string {
	return r.reason
}
