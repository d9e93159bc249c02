package pushpull_test

import (
	"testing"

	"github.com/delaneyj/cellgraph/pushpull"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelfReadIsCycle(t *testing.T) {
	e := newEngine(t)

	var self *pushpull.ReadonlySignal[int]
	self = pushpull.Computed(e, func() int {
		return self.Value() + 1
	}, pushpull.Label("self"))

	_, err := self.Read()
	require.ErrorIs(t, err, pushpull.ErrCycle)
	var cycle *pushpull.CycleError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, "self", cycle.Node)

	// not wedged: a second read fails the same way
	_, err = self.Read()
	assert.ErrorIs(t, err, pushpull.ErrCycle)
	assert.False(t, e.Tracking())
}

func TestIndirectCycle(t *testing.T) {
	e := newEngine(t)

	var a, b *pushpull.ReadonlySignal[int]
	a = pushpull.Computed(e, func() int {
		return b.Value() + 1
	}, pushpull.Label("a"))
	b = pushpull.Computed(e, func() int {
		return a.Value() + 1
	}, pushpull.Label("b"))

	_, err := a.Read()
	require.ErrorIs(t, err, pushpull.ErrCycle)
	var cycle *pushpull.CycleError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, "a", cycle.Node)

	_, err = b.Read()
	require.ErrorIs(t, err, pushpull.ErrCycle)
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, "b", cycle.Node)
}

func TestCycleRecoversOnceBroken(t *testing.T) {
	e := newEngine(t)
	loop := pushpull.Signal(e, true)

	var c *pushpull.ReadonlySignal[int]
	c = pushpull.Computed(e, func() int {
		if loop.Value() {
			return c.Value() + 1
		}
		return 1
	})
	unrelated := pushpull.Computed(e, func() int {
		return 42
	})

	_, err := c.Read()
	require.ErrorIs(t, err, pushpull.ErrCycle)
	assert.Equal(t, 42, unrelated.Value())

	loop.SetValue(false)
	v, err := c.Read()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestCycleInReactionIsReported(t *testing.T) {
	e, errs := collectingEngine()

	var c *pushpull.ReadonlySignal[int]
	c = pushpull.Computed(e, func() int {
		return c.Value()
	})
	pushpull.Effect(e, func() error {
		c.Value()
		return nil
	}, pushpull.Label("watcher"))

	require.Len(t, *errs, 1)
	assert.Equal(t, "watcher", (*errs)[0].from)
	assert.ErrorIs(t, (*errs)[0].err, pushpull.ErrCycle)
}
