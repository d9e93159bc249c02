package pushpull

import "slices"

func (e *Engine) enqueue(n *node) {
	if n.queued {
		return
	}
	n.queued = true
	e.queue = append(e.queue, n)
}

func (e *Engine) dequeue(n *node) {
	if !n.queued {
		return
	}
	n.queued = false
	e.queue = slices.DeleteFunc(e.queue, func(q *node) bool {
		return q == n
	})
}

func (e *Engine) dropQueue() {
	for _, n := range e.queue {
		n.queued = false
	}
	clear(e.queue)
	e.queue = e.queue[:0]
}

// flush drains the reaction queue in first-enqueued order. It counts as a
// batch itself, so reactions that write append to the same queue instead of
// starting a nested flush, and a Batch opened by a reaction drains here too.
func (e *Engine) flush() {
	if e.flushing || len(e.queue) == 0 {
		return
	}
	e.flushing = true
	e.batchDepth++
	e.stats.Flushes++

	var ran []*node
	defer func() {
		for _, n := range ran {
			n.runs = 0
		}
		e.batchDepth--
		e.flushing = false
	}()

	runs := 0
	for len(e.queue) > 0 {
		n := e.queue[0]
		e.queue[0] = nil
		e.queue = e.queue[1:]
		n.queued = false

		if n.disposed || n.state == stateClean {
			continue
		}
		if n.state == stateCheck && !e.depsChanged(n) {
			n.state = stateClean
			e.stats.SkippedReactions++
			continue
		}

		switch {
		case n.runs > e.cfg.maxReactionRuns:
			// already reported during this flush
			continue
		case n.runs == e.cfg.maxReactionRuns:
			n.runs++
			e.report(n, &ReactionLimitError{Node: n.label, Runs: e.cfg.maxReactionRuns})
			continue
		case runs >= e.cfg.maxFlushIterations:
			e.report(n, &FlushLimitError{Runs: runs})
			e.dropQueue()
			return
		}

		runs++
		if n.runs == 0 {
			ran = append(ran, n)
		}
		n.runs++
		e.run(n)
	}
}

// depsChanged brings n's computed dependencies up to date, in the order they
// were read, and reports whether any of them ended on a different version
// than n saw. A dependency that fails counts as changed so n gets to observe
// the error.
func (e *Engine) depsChanged(n *node) bool {
	for _, l := range n.deps {
		if l.dep.kind == kindComputed {
			if err := e.refresh(l.dep); err != nil {
				return true
			}
		}
		if l.dep.version != l.version {
			return true
		}
	}
	return false
}
