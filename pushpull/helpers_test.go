package pushpull_test

import (
	"testing"

	"github.com/delaneyj/cellgraph/pushpull"
	"github.com/stretchr/testify/assert"
)

// newEngine fails the test on any error the engine reports.
func newEngine(t *testing.T, opts ...pushpull.EngineOption) *pushpull.Engine {
	t.Helper()
	opts = append([]pushpull.EngineOption{
		pushpull.WithErrorHandler(func(from pushpull.Node, err error) {
			assert.FailNow(t, from.Label()+": "+err.Error())
		}),
	}, opts...)
	return pushpull.New(opts...)
}

type reported struct {
	from string
	err  error
}

// collectingEngine records reported errors instead of failing.
func collectingEngine(opts ...pushpull.EngineOption) (*pushpull.Engine, *[]reported) {
	errs := &[]reported{}
	opts = append([]pushpull.EngineOption{
		pushpull.WithErrorHandler(func(from pushpull.Node, err error) {
			*errs = append(*errs, reported{from: from.Label(), err: err})
		}),
	}, opts...)
	return pushpull.New(opts...), errs
}
