package pushpull

import "reflect"

// Node is any signal, computed signal or reaction handle.
type Node interface {
	ID() uint64
	Label() string
	graphNode() *node
}

// Readable is anything with a tracked read.
type Readable[T any] interface {
	Node
	Value() T
}

// EqualsFunc decides whether a new value is a change.
type EqualsFunc[T any] func(a, b T) bool

type handle struct {
	n *node
}

func (h handle) ID() uint64 {
	return h.n.id
}

func (h handle) Label() string {
	return h.n.label
}

func (h handle) graphNode() *node {
	return h.n
}

// comparableEquals returns == for T. Interface types satisfy comparable but
// panic on == when both hold the same uncomparable dynamic type, so those
// fall back to reflect.DeepEqual for such values.
func comparableEquals[T comparable]() EqualsFunc[T] {
	if reflect.TypeFor[T]().Kind() != reflect.Interface {
		return func(a, b T) bool {
			return a == b
		}
	}
	return func(a, b T) bool {
		va := reflect.ValueOf(a)
		if va.IsValid() && !va.Comparable() {
			return reflect.DeepEqual(a, b)
		}
		return a == b
	}
}

func deepEquals[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}

// WritableSignal is a state cell: it holds an authoritative value and is
// never stale.
type WritableSignal[T any] struct {
	handle
	value  T
	equals EqualsFunc[T]
}

// Signal creates a writable signal compared with ==.
func Signal[T comparable](e *Engine, initialValue T, opts ...Option) *WritableSignal[T] {
	return SignalFunc(e, initialValue, comparableEquals[T](), opts...)
}

// SignalFunc creates a writable signal with a custom equality. A nil equals
// compares with reflect.DeepEqual.
func SignalFunc[T any](e *Engine, initialValue T, equals EqualsFunc[T], opts ...Option) *WritableSignal[T] {
	if equals == nil {
		equals = deepEquals[T]
	}
	s := &WritableSignal[T]{
		handle: handle{n: e.newNode(kindSignal, newNodeConfig(opts))},
		value:  initialValue,
		equals: equals,
	}
	s.n.handle = s
	e.stats.Signals++
	return s
}

// Value returns the current value and records a dependency on the signal if
// a computed signal or reaction is evaluating.
func (s *WritableSignal[T]) Value() T {
	s.n.e.tracker.recordRead(s.n)
	return s.value
}

// Peek returns the current value without recording a dependency.
func (s *WritableSignal[T]) Peek() T {
	return s.value
}

// SetValue stores v. Writes equal to the current value are ignored; any
// other write is visible immediately, marks dependents stale and, outside a
// batch, runs the affected reactions before returning.
func (s *WritableSignal[T]) SetValue(v T) {
	if s.equals(s.value, v) {
		return
	}
	e := s.n.e
	s.value = v
	s.n.version++
	e.epoch++
	e.stats.Writes++

	e.StartBatch()
	defer e.EndBatch()
	e.propagate(s.n)
}

// Update sets the value to fn applied to the current one, without tracking.
func (s *WritableSignal[T]) Update(fn func(T) T) {
	s.SetValue(fn(s.value))
}
