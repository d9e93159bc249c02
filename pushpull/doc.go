// Package pushpull is a fine-grained reactive engine.
//
// Writable signals hold authoritative values, computed signals derive
// memoized values from whatever they read, and reactions run side effects
// whenever something they read changes. Staleness is pushed eagerly through
// the dependents of a written signal, values are pulled lazily: a computed
// signal only recomputes when it is read and one of its dependencies really
// changed.
//
//	e := pushpull.New()
//	count := pushpull.Signal(e, 1)
//	doubled := pushpull.Computed(e, func() int { return count.Value() * 2 })
//	stop := pushpull.Effect(e, func() error {
//		log.Printf("doubled is %d", doubled.Value())
//		return nil
//	})
//	defer stop()
//
//	e.Batch(func() {
//		count.SetValue(2)
//		count.SetValue(3) // the effect logs once, with 6
//	})
//
// An Engine is single threaded. Share one between goroutines only through
// Engine.Exclusive.
package pushpull
