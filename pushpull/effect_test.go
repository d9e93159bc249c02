package pushpull_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/cellgraph/pushpull"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// should clear subscriptions when untracked by all subscribers
func TestEffectClearSubsWhenUntracked(t *testing.T) {
	bRunTimes := 0

	rs := newEngine(t)
	a := pushpull.Signal(rs, 1)
	b := pushpull.Computed(rs, func() int {
		bRunTimes++
		return a.Value() * 2
	})
	stopEffect := pushpull.Effect(rs, func() error {
		b.Value()
		return nil
	})

	assert.Equal(t, 1, bRunTimes)
	a.SetValue(2)
	assert.Equal(t, 2, bRunTimes)
	stopEffect()
	a.SetValue(3)
	assert.Equal(t, 2, bRunTimes)
}

// inner effects are stopped by whoever created them
func TestShouldNotRunStoppedInnerEffect(t *testing.T) {
	rs := newEngine(t)
	a := pushpull.Signal(rs, 3)
	b := pushpull.Computed(rs, func() bool {
		return a.Value() > 0
	})

	var stopInner func()
	pushpull.Effect(rs, func() error {
		if stopInner != nil {
			stopInner()
			stopInner = nil
		}
		if b.Value() {
			stopInner = pushpull.Effect(rs, func() error {
				if a.Value() == 0 {
					assert.Fail(t, "bad")
				}
				return nil
			})
		}
		return nil
	})

	decrement := func() {
		a.SetValue(a.Peek() - 1)
	}
	decrement()
	decrement()
	decrement()
	assert.Nil(t, stopInner)
}

// should run outer effect first
func TestShouldRunOuterEffectFirst(t *testing.T) {
	rs := newEngine(t)
	a := pushpull.Signal(rs, 1)
	b := pushpull.Signal(rs, 1)

	var inner *pushpull.Reaction
	innerRuns := 0
	pushpull.Effect(rs, func() error {
		if inner != nil {
			inner.Dispose()
			inner = nil
		}
		if a.Value() != 0 {
			inner = pushpull.NewReaction(rs, func() error {
				innerRuns++
				if a.Value() == 0 {
					assert.Fail(t, "bad")
				}
				b.Value()
				return nil
			})
		}
		return nil
	})
	require.Equal(t, 1, innerRuns)

	rs.StartBatch()
	a.SetValue(0)
	b.SetValue(0)
	rs.EndBatch()

	assert.Nil(t, inner)
	assert.Equal(t, 1, innerRuns)
}

// should not trigger inner effect when resolve maybe dirty
func TestShouldNotTriggerInnerEffectWhenResolveMaybeDirty(t *testing.T) {
	rs := newEngine(t)
	a := pushpull.Signal(rs, 0)
	b := pushpull.Computed(rs, func() bool {
		return a.Value()%2 == 0
	})

	innerTriggerTimes := 0

	pushpull.Effect(rs, func() error {
		pushpull.Effect(rs, func() error {
			b.Value()
			innerTriggerTimes++
			if innerTriggerTimes >= 2 {
				assert.Fail(t, "bad")
			}
			return nil
		})
		return nil
	})

	a.SetValue(2)
	assert.Equal(t, 1, innerTriggerTimes)
}

// should trigger inner effects in sequence
func TestShouldTriggerInnerEffectsInSequence(t *testing.T) {
	rs := newEngine(t)
	a := pushpull.Signal(rs, 0)
	b := pushpull.Signal(rs, 0)
	c := pushpull.Computed(rs, func() int {
		return a.Value() - b.Value()
	})
	order := []string{}

	pushpull.Effect(rs, func() error {
		c.Value()

		pushpull.Effect(rs, func() error {
			order = append(order, "first inner")
			a.Value()
			return nil
		})

		pushpull.Effect(rs, func() error {
			order = append(order, "last inner")
			a.Value()
			b.Value()
			return nil
		})

		return nil
	})

	order = order[:0]
	rs.StartBatch()
	a.SetValue(1)
	b.SetValue(1)
	rs.EndBatch()

	assert.Equal(t, []string{"first inner", "last inner"}, order)
}

// should custom effect support batch
func TestShouldCustomEffectSupportBatch(t *testing.T) {
	rs := newEngine(t)

	batchEffect := func(fn func() error) func() {
		return pushpull.Effect(rs, func() error {
			rs.StartBatch()
			defer rs.EndBatch()
			return fn()
		})
	}

	logs := []string{}
	a := pushpull.Signal(rs, 0)
	b := pushpull.Signal(rs, 0)

	aa := pushpull.Computed(rs, func() int {
		logs = append(logs, "aa-0")
		if a.Value() == 0 {
			b.SetValue(1)
		}
		logs = append(logs, "aa-1")
		return 0
	})

	bb := pushpull.Computed(rs, func() int {
		logs = append(logs, "bb")
		return b.Value()
	})

	batchEffect(func() error {
		bb.Value()
		return nil
	})

	batchEffect(func() error {
		aa.Value()
		return nil
	})

	assert.Equal(t, []string{"bb", "aa-0", "aa-1", "bb"}, logs)
}

// should not trigger after stop
func TestShouldNotTriggerAfterStop(t *testing.T) {
	rs := newEngine(t)

	count := pushpull.Signal(rs, 0)
	triggers := 0

	stop := pushpull.Effect(rs, func() error {
		triggers++
		count.Value()
		return nil
	})

	assert.Equal(t, 1, triggers)
	count.SetValue(2)
	assert.Equal(t, 2, triggers)
	stop()
	count.SetValue(3)
	assert.Equal(t, 2, triggers)
}

func TestDisposeTwiceIsNoop(t *testing.T) {
	rs := newEngine(t)
	count := pushpull.Signal(rs, 0)
	r := pushpull.NewReaction(rs, func() error {
		count.Value()
		return nil
	})

	r.Dispose()
	r.Dispose()
	assert.True(t, r.Disposed())

	count.SetValue(1)
	assert.Equal(t, 1, rs.Stats().ReactionRuns)
}

func TestDisposeRemovesPendingRun(t *testing.T) {
	rs := newEngine(t)
	x := pushpull.Signal(rs, 0)

	var second *pushpull.Reaction
	var log []string
	pushpull.Effect(rs, func() error {
		if x.Value() > 0 {
			log = append(log, "first")
			second.Dispose()
		}
		return nil
	})
	second = pushpull.NewReaction(rs, func() error {
		if x.Value() > 0 {
			log = append(log, "second")
		}
		return nil
	})

	x.SetValue(1)
	assert.Equal(t, []string{"first"}, log)
	assert.True(t, second.Disposed())
}

func TestDisposeFromInsideOwnRun(t *testing.T) {
	rs := newEngine(t)
	x := pushpull.Signal(rs, 0)

	runs := 0
	var r *pushpull.Reaction
	r = pushpull.NewReaction(rs, func() error {
		x.Value()
		runs++
		if runs == 2 {
			r.Dispose()
		}
		return nil
	})

	x.SetValue(1)
	require.Equal(t, 2, runs)
	assert.True(t, r.Disposed())

	x.SetValue(2)
	assert.Equal(t, 2, runs)
	snap := rs.Snapshot(x)
	info, ok := snap.Find(x.Label())
	require.True(t, ok)
	assert.Empty(t, info.Dependents)
}

func TestEffectErrorsDoNotStopFlush(t *testing.T) {
	rs, errs := collectingEngine()
	x := pushpull.Signal(rs, 0)

	boom := errors.New("boom")
	pushpull.Effect(rs, func() error {
		if x.Value() > 0 {
			return boom
		}
		return nil
	}, pushpull.Label("failing"))

	var seen []int
	pushpull.Effect(rs, func() error {
		seen = append(seen, x.Value())
		return nil
	})

	x.SetValue(1)
	x.SetValue(2)
	assert.Equal(t, []int{0, 1, 2}, seen)
	require.Len(t, *errs, 2)
	assert.Equal(t, "failing", (*errs)[0].from)
	assert.ErrorIs(t, (*errs)[0].err, boom)
	assert.Equal(t, 2, rs.Stats().Errors)
}

func TestEffectPanicIsReported(t *testing.T) {
	rs, errs := collectingEngine()
	x := pushpull.Signal(rs, 0)

	pushpull.Effect(rs, func() error {
		if x.Value() == 1 {
			panic("kaboom")
		}
		return nil
	})

	x.SetValue(1)
	require.Len(t, *errs, 1)
	var pe *pushpull.PanicError
	require.ErrorAs(t, (*errs)[0].err, &pe)
	assert.Equal(t, "kaboom", pe.Value)

	// still subscribed after the panic
	x.SetValue(2)
	assert.Len(t, *errs, 1)
	assert.Equal(t, 3, rs.Stats().ReactionRuns)
}

func TestEffectObservesFailingComputed(t *testing.T) {
	rs, errs := collectingEngine()
	x := pushpull.Signal(rs, 1)

	boom := errors.New("division by zero")
	ratio := pushpull.ComputedErr(rs, func() (int, error) {
		if x.Value() == 0 {
			return 0, boom
		}
		return 10 / x.Value(), nil
	})

	var seen []int
	pushpull.Effect(rs, func() error {
		v, err := ratio.Read()
		if err != nil {
			return err
		}
		seen = append(seen, v)
		return nil
	})

	x.SetValue(0)
	require.Len(t, *errs, 1)
	assert.ErrorIs(t, (*errs)[0].err, boom)

	x.SetValue(5)
	assert.Equal(t, []int{10, 2}, seen)
	assert.Len(t, *errs, 1)
}
