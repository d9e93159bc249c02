package pushpull

import (
	"cmp"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

type nodeKind uint8

const (
	kindSignal nodeKind = iota
	kindComputed
	kindReaction
)

func (k nodeKind) String() string {
	switch k {
	case kindSignal:
		return "signal"
	case kindComputed:
		return "computed"
	case kindReaction:
		return "effect"
	default:
		return "unknown"
	}
}

// Ordered so that marking only ever raises a state.
type nodeState uint8

const (
	stateClean      nodeState = iota // value is valid
	stateCheck                       // an upstream computed may have changed
	stateDirty                       // a direct dependency changed
	stateEvaluating                  // computation or reaction body is running
)

func (s nodeState) String() string {
	switch s {
	case stateClean:
		return "clean"
	case stateCheck:
		return "check"
	case stateDirty:
		return "dirty"
	case stateEvaluating:
		return "evaluating"
	default:
		return "unknown"
	}
}

// edge is one recorded read: the dependency and the version it had when read.
type edge struct {
	dep     *node
	version uint64
}

type node struct {
	e      *Engine
	id     uint64
	kind   nodeKind
	label  string
	handle Node

	state nodeState
	// version increments whenever the value changes under the node's equality.
	version uint64
	// checkedAt is the engine epoch at which a computed was last validated.
	checkedAt uint64

	deps []edge
	subs mapset.Set[*node]

	// eval recomputes a computed (reporting whether its value changed) or runs
	// a reaction body. Nil for writable signals.
	eval func() (changed bool, err error)

	queued   bool
	disposed bool
	// failed is set when a computed's last evaluation did not complete. Its
	// readers may have gone clean after observing the failure.
	failed bool
	runs   int
}

func (e *Engine) newNode(kind nodeKind, cfg nodeConfig) *node {
	e.nextID++
	n := &node{
		e:     e,
		id:    e.nextID,
		kind:  kind,
		label: cfg.label,
		subs:  mapset.NewThreadUnsafeSet[*node](),
	}
	if n.label == "" {
		n.label = fmt.Sprintf("%s#%d", kind, n.id)
	}
	return n
}

// watched reports whether changes upstream must be pushed to this node.
// Reactions always are; computeds only while something depends on them.
func (n *node) watched() bool {
	return n.kind == kindReaction || n.subs.Cardinality() > 0
}

func byID(a, b *node) int {
	return cmp.Compare(a.id, b.id)
}

// dependents returns the subscribers in creation order so propagation and
// reaction scheduling are deterministic.
func (n *node) dependents() []*node {
	subs := n.subs.ToSlice()
	slices.SortFunc(subs, byID)
	return subs
}

// subscribe adds sub to dep's dependents. A computed that gains its first
// dependent starts listening to its own dependencies, and since nothing told
// it about writes while it was unwatched it must revalidate before its value
// is trusted again.
func (e *Engine) subscribe(dep, sub *node) {
	first := dep.subs.Cardinality() == 0
	if !dep.subs.Add(sub) {
		return
	}
	if !first || dep.kind != kindComputed {
		return
	}
	if dep.state == stateClean && dep.checkedAt != e.epoch {
		dep.state = stateCheck
	}
	for _, l := range dep.deps {
		e.subscribe(l.dep, dep)
	}
}

// unsubscribe is the inverse of subscribe; a computed losing its last
// dependent detaches from its dependencies so it can be collected.
func (e *Engine) unsubscribe(dep, sub *node) {
	if !dep.subs.Contains(sub) {
		return
	}
	dep.subs.Remove(sub)
	if dep.kind != kindComputed || dep.subs.Cardinality() > 0 {
		return
	}
	for _, l := range dep.deps {
		e.unsubscribe(l.dep, dep)
	}
}

// detach drops every dependency of n.
func (e *Engine) detach(n *node) {
	for _, l := range n.deps {
		e.unsubscribe(l.dep, n)
	}
	n.deps = nil
}

// commit replaces n's dependencies with the reads recorded in f, subscribing
// the new ones before dropping the stale ones so shared upstream computeds
// are not detached and reattached in between.
func (e *Engine) commit(n *node, f *frame) {
	old := n.deps
	n.deps = f.deps
	if n.watched() {
		for _, l := range n.deps {
			e.subscribe(l.dep, n)
		}
	}
	for _, l := range old {
		if !f.seen.Contains(l.dep) {
			e.unsubscribe(l.dep, n)
		}
	}
}

// readStale reports whether something n read during its last evaluation was
// written afterwards. Marks that arrive while a node evaluates are ignored, so
// this is checked once the evaluation is over.
func (e *Engine) readStale(n *node) bool {
	for _, l := range n.deps {
		if l.dep.version != l.version {
			return true
		}
		if l.dep.kind == kindComputed && l.dep.checkedAt != e.epoch {
			return true
		}
	}
	return false
}

// propagate pushes staleness from a written signal. Direct dependents become
// dirty, everything further downstream only needs a check.
func (e *Engine) propagate(n *node) {
	for _, sub := range n.dependents() {
		e.mark(sub, stateDirty)
	}
}

// mark raises n to at least to. A computed passes the mark on only when its
// state rose, or once after a failed evaluation whose readers went clean.
func (e *Engine) mark(n *node, to nodeState) {
	switch n.kind {
	case kindComputed:
		switch {
		case n.state < to:
			n.state = to
		case !n.failed:
			return
		}
		n.failed = false
		for _, sub := range n.dependents() {
			e.mark(sub, stateCheck)
		}
	case kindReaction:
		if n.disposed || n.state == stateEvaluating {
			return
		}
		if to > n.state {
			n.state = to
		}
		e.enqueue(n)
	}
}
