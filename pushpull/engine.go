package pushpull

import "sync"

// Engine owns one dependency graph: the evaluation stack, the reaction
// queue and the batch depth. Nodes from different engines must not be mixed.
type Engine struct {
	mu  sync.Mutex
	cfg engineConfig

	tracker    tracker
	queue      []*node
	batchDepth int
	flushing   bool

	// epoch advances on every effective write; computeds remember the epoch
	// they were last validated at.
	epoch  uint64
	nextID uint64
	stats  Stats
}

// Stats are running counters for an Engine.
type Stats struct {
	Signals          int
	Computeds        int
	Reactions        int
	Writes           int
	Evaluations      int
	ReactionRuns     int
	SkippedReactions int
	Flushes          int
	Errors           int
}

func New(opts ...EngineOption) *Engine {
	return &Engine{cfg: newEngineConfig(opts)}
}

func (e *Engine) Stats() Stats {
	return e.stats
}

// StartBatch opens a batch. Writes still update values immediately, but
// reactions wait until the outermost batch ends.
func (e *Engine) StartBatch() {
	e.batchDepth++
}

// EndBatch closes a batch and flushes pending reactions when it was the
// outermost one.
func (e *Engine) EndBatch() {
	if e.batchDepth == 0 {
		panic("pushpull: EndBatch without StartBatch")
	}
	e.batchDepth--
	if e.batchDepth == 0 {
		e.flush()
	}
}

// Batch runs fn as one batch: however many writes it performs, every
// affected reaction runs at most once afterwards and only sees final values.
func (e *Engine) Batch(fn func()) {
	e.StartBatch()
	defer e.EndBatch()
	fn()
}

// Batching reports whether a batch (or a flush) is open.
func (e *Engine) Batching() bool {
	return e.batchDepth > 0
}

// Exclusive runs fn as a batch while holding the engine lock. Goroutines
// sharing an engine must do all of their reads and writes through it.
//
// The lock is not reentrant. Calling Exclusive from fn, or from any
// computation or reaction that fn triggers, deadlocks; code running there
// already holds the lock and uses nodes directly.
func (e *Engine) Exclusive(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Batch(fn)
}

func (e *Engine) report(n *node, err error) {
	e.stats.Errors++
	e.cfg.onError(n.handle, err)
}
