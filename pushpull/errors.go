package pushpull

import (
	"errors"
	"fmt"
)

var (
	// ErrCycle is matched by every CycleError.
	ErrCycle = errors.New("pushpull: cycle detected")

	// ErrOscillation is matched by FlushLimitError and ReactionLimitError.
	// Reactions that keep retriggering each other end up here instead of
	// spinning forever.
	ErrOscillation = errors.New("pushpull: reactions did not settle")
)

// CycleError is returned when a computed signal is read while it is
// still evaluating, i.e. its computation depends on itself.
type CycleError struct {
	Node string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("pushpull: cycle detected reading %s", e.Node)
}

func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}

// FlushLimitError reports a flush that ran more reactions than the engine
// allows. The remaining queue is discarded.
type FlushLimitError struct {
	Runs int
}

func (e *FlushLimitError) Error() string {
	return fmt.Sprintf("pushpull: flush exceeded %d reaction runs", e.Runs)
}

func (e *FlushLimitError) Is(target error) bool {
	return target == ErrOscillation
}

// ReactionLimitError reports a single reaction that retriggered itself more
// often than allowed within one flush.
type ReactionLimitError struct {
	Node string
	Runs int
}

func (e *ReactionLimitError) Error() string {
	return fmt.Sprintf("pushpull: %s ran %d times in one flush", e.Node, e.Runs)
}

func (e *ReactionLimitError) Is(target error) bool {
	return target == ErrOscillation
}

// PanicError carries a recovered panic value that was not an error.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("pushpull: panic: %v", e.Value)
}

func asError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &PanicError{Value: r}
}

// capture runs fn and turns a panic into an error so a failing computation
// can never leave the tracker stack or a node state behind.
func capture(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = asError(r)
		}
	}()
	return fn()
}
