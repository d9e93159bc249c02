package pushpull

// ErrFn is a reaction body.
type ErrFn func() error

// Reaction is a side effect that reruns whenever something it read during
// its previous run changes.
type Reaction struct {
	handle
}

// NewReaction creates a reaction and runs it once, synchronously, to collect
// its dependencies. Errors, from this first run or later ones, go to the
// engine's error handler.
func NewReaction(e *Engine, fn ErrFn, opts ...Option) *Reaction {
	r := &Reaction{
		handle: handle{n: e.newNode(kindReaction, newNodeConfig(opts))},
	}
	r.n.handle = r
	r.n.state = stateDirty
	r.n.eval = func() (bool, error) {
		return false, capture(fn)
	}
	e.stats.Reactions++
	e.run(r.n)
	return r
}

// Effect is NewReaction returning only the stop function.
func Effect(e *Engine, fn ErrFn, opts ...Option) (stop func()) {
	return NewReaction(e, fn, opts...).Dispose
}

// Dispose stops the reaction for good: it leaves every dependents set and
// the pending queue, including a run already queued in the current flush.
// Calling it again does nothing.
func (r *Reaction) Dispose() {
	n := r.n
	if n.disposed {
		return
	}
	n.disposed = true
	n.e.dequeue(n)
	if n.state == stateEvaluating {
		// run detaches once the body returns
		return
	}
	n.e.detach(n)
	n.state = stateClean
}

func (r *Reaction) Disposed() bool {
	return r.n.disposed
}

// run executes a reaction body under tracking, replacing its dependencies.
// Writes from the body only flush once it returns. If something it read was
// written after the read, it goes back on the queue to be checked.
func (e *Engine) run(n *node) {
	e.StartBatch()
	defer e.EndBatch()

	n.state = stateEvaluating
	f := e.tracker.enter(n)
	var err error
	defer func() {
		e.tracker.exit(f)
		e.stats.ReactionRuns++
		if n.disposed {
			e.detach(n)
			n.state = stateClean
			return
		}
		e.commit(n, f)
		n.state = stateClean
		if e.readStale(n) {
			n.state = stateCheck
			e.enqueue(n)
		}
		if err != nil {
			e.report(n, err)
		}
	}()

	_, err = n.eval()
}
