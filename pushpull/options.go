package pushpull

import "log"

const (
	DefaultMaxFlushIterations = 10_000
	DefaultMaxReactionRuns    = 100
)

// OnErrorFunc receives errors nobody else can return: failing reactions
// and flushes that did not settle.
type OnErrorFunc func(from Node, err error)

type engineConfig struct {
	onError            OnErrorFunc
	logger             *log.Logger
	maxFlushIterations int
	maxReactionRuns    int
}

// EngineOption configures an Engine.
type EngineOption func(*engineConfig)

// WithErrorHandler replaces the default handler, which logs.
func WithErrorHandler(fn OnErrorFunc) EngineOption {
	return func(c *engineConfig) {
		c.onError = fn
	}
}

func WithLogger(logger *log.Logger) EngineOption {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithMaxFlushIterations bounds the number of reaction runs in one flush.
func WithMaxFlushIterations(n int) EngineOption {
	return func(c *engineConfig) {
		c.maxFlushIterations = n
	}
}

// WithMaxReactionRuns bounds how often a single reaction may run in one
// flush before it is considered to oscillate.
func WithMaxReactionRuns(n int) EngineOption {
	return func(c *engineConfig) {
		c.maxReactionRuns = n
	}
}

func newEngineConfig(opts []EngineOption) engineConfig {
	cfg := engineConfig{
		logger:             log.Default(),
		maxFlushIterations: DefaultMaxFlushIterations,
		maxReactionRuns:    DefaultMaxReactionRuns,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxFlushIterations <= 0 {
		cfg.maxFlushIterations = DefaultMaxFlushIterations
	}
	if cfg.maxReactionRuns <= 0 {
		cfg.maxReactionRuns = DefaultMaxReactionRuns
	}
	if cfg.onError == nil {
		logger := cfg.logger
		cfg.onError = func(from Node, err error) {
			logger.Printf("pushpull: %s: %v", from.Label(), err)
		}
	}
	return cfg
}

type nodeConfig struct {
	label string
}

// Option configures a single signal, computed signal or reaction.
type Option func(*nodeConfig)

// Label names a node in errors, logs and snapshots.
func Label(name string) Option {
	return func(c *nodeConfig) {
		c.label = name
	}
}

func newNodeConfig(opts []Option) nodeConfig {
	var cfg nodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
