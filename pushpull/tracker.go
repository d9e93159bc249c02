package pushpull

import mapset "github.com/deckarep/golang-set/v2"

// frame is one entry of the evaluation stack. Untracked frames shield reads
// from whatever evaluation sits below them.
type frame struct {
	n         *node
	untracked bool
	deps      []edge
	seen      mapset.Set[*node]
}

type tracker struct {
	stack []*frame
}

func (t *tracker) enter(n *node) *frame {
	f := &frame{
		n:    n,
		seen: mapset.NewThreadUnsafeSet[*node](),
	}
	t.stack = append(t.stack, f)
	return f
}

func (t *tracker) enterUntracked() *frame {
	f := &frame{untracked: true}
	t.stack = append(t.stack, f)
	return f
}

// exit pops f along with anything a panic left above it.
func (t *tracker) exit(f *frame) {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if t.stack[i] == f {
			clear(t.stack[i:])
			t.stack = t.stack[:i]
			return
		}
	}
}

func (t *tracker) top() *frame {
	if len(t.stack) == 0 {
		return nil
	}
	return t.stack[len(t.stack)-1]
}

// recordRead adds an edge from the active evaluation to dep. Repeated reads
// keep the first position and version.
func (t *tracker) recordRead(dep *node) {
	f := t.top()
	if f == nil || f.untracked {
		return
	}
	if !f.seen.Add(dep) {
		return
	}
	f.deps = append(f.deps, edge{dep: dep, version: dep.version})
}

// Untracked runs fn without recording any of its reads as dependencies of
// the surrounding computed signal or reaction. Writes inside fn propagate as
// usual.
func Untracked[T any](e *Engine, fn func() T) T {
	f := e.tracker.enterUntracked()
	defer e.tracker.exit(f)
	return fn()
}

// Untrack is Untracked for functions without a result.
func (e *Engine) Untrack(fn func()) {
	f := e.tracker.enterUntracked()
	defer e.tracker.exit(f)
	fn()
}

// Tracking reports whether a read right now would be recorded.
func (e *Engine) Tracking() bool {
	f := e.tracker.top()
	return f != nil && !f.untracked
}
