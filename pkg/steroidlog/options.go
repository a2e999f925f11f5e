package steroidlog

import (
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/wayneeseguin/steroidlog/internal/registry"
	"github.com/wayneeseguin/steroidlog/pkg/backends"
)

// Policy selects what a producer does when its ring is full.
type Policy int

const (
	// PolicyDrop retries a handful of times with cooperative yields,
	// then silently drops the record. Backpressure is absorbed by
	// dropping, never by blocking the producer. This is the default.
	PolicyDrop Policy = iota

	// PolicyBlock yields between retries without bound until the ring
	// accepts the record, for deployments that must not lose lines.
	PolicyBlock
)

// Defaults, overridable per logger through options or environment
// variables (STEROIDLOG_RING_CAPACITY, STEROIDLOG_MAX_MSG_LEN,
// STEROIDLOG_BATCH, STEROIDLOG_POLICY).
const (
	// DefaultRingCapacity slots per producer ring; usable capacity is
	// one less.
	DefaultRingCapacity = 1024

	// DefaultMaxMsgLen caps an emitted line: at most DefaultMaxMsgLen-1
	// rendered bytes plus the newline.
	DefaultMaxMsgLen = 256

	// DefaultBatchSize is how many records the consumer drains from
	// one ring before moving to the next.
	DefaultBatchSize = 64

	// DefaultEnqueueTries is the drop policy's retry budget. Unlike the
	// others it has no option and no environment variable.
	DefaultEnqueueTries = 4
)

// Config collects every construction-time knob.
type Config struct {
	RingCapacity     int     // power-of-two SPSC ring size
	MaxMsgLen        int     // emission truncation cap
	RegistryCapacity int     // power-of-two format table size
	BatchSize        int     // consumer per-ring drain batch
	EnqueueTries     int     // drop policy retry budget
	Backpressure     Policy  // drop or block
	Backend          backends.Backend
	ErrorHandler     ErrorHandler
}

// DefaultConfig returns the defaults, with environment overrides
// applied.
func DefaultConfig() Config {
	return Config{
		RingCapacity:     envInt("STEROIDLOG_RING_CAPACITY", DefaultRingCapacity),
		MaxMsgLen:        envInt("STEROIDLOG_MAX_MSG_LEN", DefaultMaxMsgLen),
		RegistryCapacity: registry.DefaultCapacity,
		BatchSize:        envInt("STEROIDLOG_BATCH", DefaultBatchSize),
		EnqueueTries:     DefaultEnqueueTries,
		Backpressure:     envPolicy(),
	}
}

func envPolicy() Policy {
	if v, exists := os.LookupEnv("STEROIDLOG_POLICY"); exists {
		if strings.EqualFold(v, "block") {
			return PolicyBlock
		}
	}
	return PolicyDrop
}

// validate rejects configurations the ring and registry arithmetic
// cannot support.
func (c *Config) validate() error {
	if !isPowerOfTwo(c.RingCapacity) {
		return errors.Wrapf(ErrInvalidConfig, "ring capacity %d is not a power of two", c.RingCapacity)
	}
	if !isPowerOfTwo(c.RegistryCapacity) {
		return errors.Wrapf(ErrInvalidConfig, "registry capacity %d is not a power of two", c.RegistryCapacity)
	}
	if c.MaxMsgLen < 2 {
		return errors.Wrapf(ErrInvalidConfig, "max message length %d is too small", c.MaxMsgLen)
	}
	if c.BatchSize < 1 {
		return errors.Wrapf(ErrInvalidConfig, "batch size %d is too small", c.BatchSize)
	}
	if c.EnqueueTries < 1 {
		return errors.Wrapf(ErrInvalidConfig, "enqueue tries %d is too small", c.EnqueueTries)
	}
	if c.Backpressure != PolicyDrop && c.Backpressure != PolicyBlock {
		return errors.Wrapf(ErrInvalidConfig, "unknown backpressure policy %d", c.Backpressure)
	}
	return nil
}

// Option mutates a Config during New.
type Option func(*Config)

// WithRingCapacity sets the per-producer ring size (power of two).
func WithRingCapacity(n int) Option {
	return func(c *Config) { c.RingCapacity = n }
}

// WithMaxMsgLen sets the emission truncation cap.
func WithMaxMsgLen(n int) Option {
	return func(c *Config) { c.MaxMsgLen = n }
}

// WithRegistryCapacity sets the format table size (power of two).
func WithRegistryCapacity(n int) Option {
	return func(c *Config) { c.RegistryCapacity = n }
}

// WithBatchSize sets the consumer's per-ring drain batch.
func WithBatchSize(n int) Option {
	return func(c *Config) { c.BatchSize = n }
}

// WithPolicy selects the backpressure policy.
func WithPolicy(p Policy) Option {
	return func(c *Config) { c.Backpressure = p }
}

// WithBackend selects the sink. The sink cannot be swapped while the
// consumer is running; this is the only place to set it.
func WithBackend(b backends.Backend) Option {
	return func(c *Config) { c.Backend = b }
}

// WithErrorHandler installs a handler for pipeline failures.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *Config) { c.ErrorHandler = h }
}
