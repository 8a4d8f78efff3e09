// Package lazy provides a deferred, memoized value: a thunk paired with a
// synchronized once-flag.
//
// A Value starts Unevaluated. The first call to Force runs the thunk and moves
// the value to Evaluated; every later call, from any goroutine, returns the
// cached result without running the thunk again. There is no way back.
package lazy

import (
	"sync"
	"sync/atomic"
)

// State is the evaluation state of a Value.
type State uint32

const (
	// Unevaluated means the thunk has not run yet.
	Unevaluated State = iota
	// Evaluated means the thunk has run and its result is cached.
	Evaluated
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Unevaluated:
		return "unevaluated"
	case Evaluated:
		return "evaluated"
	default:
		return "unknown"
	}
}

// Func computes the value. It runs at most once per Value.
type Func[T any] func() (T, error)

// Value is a lazily computed, memoized T. The zero Value is not usable; build
// one with New or Ready.
type Value[T any] struct {
	once  sync.Once
	state atomic.Uint32
	fn    Func[T]
	val   T
	err   error
}

// New wraps fn without calling it.
func New[T any](fn Func[T]) *Value[T] {
	return &Value[T]{fn: fn}
}

// Ready returns a Value that is already Evaluated to v. Used for values that
// arrive fully computed, e.g. decoded from a document.
func Ready[T any](v T) *Value[T] {
	l := &Value[T]{val: v}
	l.once.Do(func() {})
	l.state.Store(uint32(Evaluated))
	return l
}

// Force evaluates the value on first use and returns the cached result on
// every call. An error from the thunk is cached as well: a failed evaluation
// is not retried.
func (l *Value[T]) Force() (T, error) {
	l.once.Do(func() {
		defer l.state.Store(uint32(Evaluated))
		if l.fn == nil {
			l.err = ErrNoThunk
			return
		}
		l.val, l.err = l.fn()
		l.fn = nil
	})
	return l.val, l.err
}

// State reports whether the value has been forced. It never triggers
// evaluation.
func (l *Value[T]) State() State {
	return State(l.state.Load())
}
