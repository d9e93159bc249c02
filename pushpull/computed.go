package pushpull

// ReadonlySignal is a computed signal. It caches the result of its
// computation and recomputes lazily, on read, once a dependency changed.
type ReadonlySignal[T any] struct {
	handle
	value       T
	initialized bool
	fn          func() (T, error)
	equals      EqualsFunc[T]
}

// Computed creates a computed signal compared with ==.
func Computed[T comparable](e *Engine, fn func() T, opts ...Option) *ReadonlySignal[T] {
	return ComputedFunc(e, func() (T, error) {
		return fn(), nil
	}, comparableEquals[T](), opts...)
}

// ComputedErr creates a computed signal whose computation can fail. A failed
// computation is not cached: the next read tries again.
func ComputedErr[T comparable](e *Engine, fn func() (T, error), opts ...Option) *ReadonlySignal[T] {
	return ComputedFunc(e, fn, comparableEquals[T](), opts...)
}

// ComputedFunc creates a computed signal with a custom equality. Dependents
// are only considered changed when equals reports a difference. A nil
// equals compares with reflect.DeepEqual.
func ComputedFunc[T any](e *Engine, fn func() (T, error), equals EqualsFunc[T], opts ...Option) *ReadonlySignal[T] {
	if equals == nil {
		equals = deepEquals[T]
	}
	c := &ReadonlySignal[T]{
		handle: handle{n: e.newNode(kindComputed, newNodeConfig(opts))},
		fn:     fn,
		equals: equals,
	}
	c.n.handle = c
	c.n.state = stateDirty
	c.n.eval = c.recompute
	e.stats.Computeds++
	return c
}

func (c *ReadonlySignal[T]) recompute() (changed bool, err error) {
	var v T
	err = capture(func() (err error) {
		v, err = c.fn()
		return err
	})
	if err != nil {
		return false, err
	}
	if c.initialized && c.equals(c.value, v) {
		return false, nil
	}
	c.value = v
	c.initialized = true
	return true, nil
}

// Read brings the signal up to date and returns its value, recording a
// dependency when called from another evaluation. Reading a computed signal
// from inside its own computation returns a *CycleError.
func (c *ReadonlySignal[T]) Read() (T, error) {
	n := c.n
	if n.state == stateEvaluating {
		var zero T
		return zero, &CycleError{Node: n.label}
	}
	err := n.e.refresh(n)
	n.e.tracker.recordRead(n)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.value, nil
}

// Value is Read for callers that treat failures as fatal: it panics with
// the error. Inside another computation or reaction the panic is recovered
// and surfaces as that node's error.
func (c *ReadonlySignal[T]) Value() T {
	v, err := c.Read()
	if err != nil {
		panic(err)
	}
	return v
}

// Peek is Read without recording a dependency.
func (c *ReadonlySignal[T]) Peek() (v T, err error) {
	c.n.e.Untrack(func() {
		v, err = c.Read()
	})
	return v, err
}

// refresh makes a computed node current. Watched clean nodes are trusted,
// unwatched ones are only trusted if nothing was written since they were
// last validated.
func (e *Engine) refresh(n *node) error {
	switch n.state {
	case stateEvaluating:
		return &CycleError{Node: n.label}
	case stateClean:
		if n.watched() {
			// marks reach watched nodes, so clean means current
			n.checkedAt = e.epoch
			return nil
		}
		if n.checkedAt == e.epoch {
			return nil
		}
	}

	if n.state != stateDirty {
		epoch := e.epoch
		if !e.depsChanged(n) {
			n.state = stateClean
			n.checkedAt = epoch
			return nil
		}
	}
	return e.evaluate(n)
}

// evaluate reruns a computed under tracking. The cleanup runs from a defer so
// a cycle, a failure or even a Goexit from the computation leaves the node
// dirty rather than wedged in the evaluating state.
func (e *Engine) evaluate(n *node) (err error) {
	e.StartBatch()
	defer e.EndBatch()

	epoch := e.epoch
	n.state = stateEvaluating
	n.failed = false
	f := e.tracker.enter(n)
	completed, changed := false, false
	defer func() {
		e.tracker.exit(f)
		e.commit(n, f)
		e.stats.Evaluations++
		n.checkedAt = epoch
		n.failed = !completed || err != nil
		if n.failed {
			n.state = stateDirty
			return
		}
		if changed {
			n.version++
		}
		n.state = stateClean
		if e.readStale(n) {
			n.state = stateCheck
		}
	}()

	changed, err = n.eval()
	completed = true
	return err
}
