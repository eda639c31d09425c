// Package load models a view's asynchronous data load: a discriminated
// result and a lifetime that cancels in-flight work when the view goes away.
package load

// State is the phase of a load.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Result holds exactly one of: nothing (idle or loading), data (ready), or
// a user-facing message (failed).
type Result[T any] struct {
	state   State
	data    T
	message string
}

func Idle[T any]() Result[T] {
	return Result[T]{state: StateIdle}
}

func Loading[T any]() Result[T] {
	return Result[T]{state: StateLoading}
}

func Ready[T any](data T) Result[T] {
	return Result[T]{state: StateReady, data: data}
}

func Failed[T any](message string) Result[T] {
	return Result[T]{state: StateFailed, message: message}
}

func (r Result[T]) State() State { return r.state }

func (r Result[T]) IsLoading() bool { return r.state == StateLoading }

// Data returns the loaded value; ok is false unless the result is ready.
func (r Result[T]) Data() (data T, ok bool) {
	return r.data, r.state == StateReady
}

// Message returns the failure message; ok is false unless the result failed.
func (r Result[T]) Message() (string, bool) {
	return r.message, r.state == StateFailed
}
