// Package signals is the small function-style API over pushpull: getters
// and setters as plain funcs, bound to a package level engine.
package signals

import "github.com/delaneyj/cellgraph/pushpull"

type Getter[T any] func() T
type Setter[T any] func(value T)

// Default is the engine every function in this package uses.
var Default = pushpull.New()

// Use swaps the package engine, returning the previous one. Tests use it to
// get an isolated graph.
func Use(e *pushpull.Engine) (previous *pushpull.Engine) {
	previous, Default = Default, e
	return previous
}

// CreateSignal returns a getter and a setter for a new signal, plus the
// signal itself.
func CreateSignal[T comparable](initial T, opts ...pushpull.Option) (Getter[T], Setter[T], *pushpull.WritableSignal[T]) {
	s := pushpull.Signal(Default, initial, opts...)
	return s.Value, s.SetValue, s
}

// CreateComputed returns a getter for a value derived from other signals,
// plus the computed signal itself.
func CreateComputed[T comparable](fn func() T, opts ...pushpull.Option) (Getter[T], *pushpull.ReadonlySignal[T]) {
	c := pushpull.Computed(Default, fn, opts...)
	return c.Value, c
}

// CreateEffect runs fn now and again whenever a signal it read changes. The
// returned function stops it.
func CreateEffect(fn func(), opts ...pushpull.Option) (dispose func()) {
	return pushpull.Effect(Default, func() error {
		fn()
		return nil
	}, opts...)
}

// RunUntracked calls fn without tracking the signals it reads.
func RunUntracked[T any](fn func() T) T {
	return pushpull.Untracked(Default, fn)
}

// RunBatch groups the updates made by fn into a single propagation.
func RunBatch(fn func()) {
	Default.Batch(fn)
}
