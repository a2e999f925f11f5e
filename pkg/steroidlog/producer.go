package steroidlog

import (
	"runtime"
	"sync/atomic"

	"github.com/wayneeseguin/steroidlog/internal/registry"
	"github.com/wayneeseguin/steroidlog/internal/ring"
)

// prefixSeeds holds the FNV-1a state after hashing each level prefix,
// so the hot path only folds in the format literal.
var prefixSeeds = func() [levelCount]uint32 {
	var s [levelCount]uint32
	for i := range s {
		s[i] = registry.Hash(levelPrefixes[i])
	}
	return s
}()

// formatID derives the identifier for a level-prefixed format literal.
// Zero is the registry's empty sentinel, so a literal that hashes to
// zero is bumped to 1.
func formatID(level Level, format string) uint32 {
	id := registry.HashAdd(prefixSeeds[level], format)
	if id == 0 {
		id = 1
	}
	return id
}

// FormatID is an interned format literal: the scalar identifier a
// record carries across the ring plus the level it was interned at.
// The zero value is disabled and Emit ignores it, which is what
// Preformat returns for sub-threshold levels.
type FormatID struct {
	id    uint32
	level Level
}

// Producer is one goroutine's private write side of the pipeline. It
// owns a lock-free ring the consumer drains; none of its logging
// methods take a lock or block on one.
//
// A Producer must only be used from a single goroutine. Create one per
// logging goroutine with Logger.NewProducer and Close it when the
// goroutine finishes: the node stays registered forever (the consumer
// merely skips it once drained), so the cost of a goroutine's producer
// is bounded by the number of distinct logging goroutines ever seen.
type Producer struct {
	logger *Logger
	ring   *ring.Ring[record]
	active atomic.Bool
	next   *Producer // immutable once the node is published
}

// NewProducer creates a producer and links it into the logger's node
// list with a single compare-and-swap. Constant time, no locks.
func (l *Logger) NewProducer() *Producer {
	p := &Producer{
		logger: l,
		ring:   ring.New[record](l.cfg.RingCapacity),
	}
	p.active.Store(true)
	for {
		head := l.producers.Load()
		p.next = head
		if l.producers.CompareAndSwap(head, p) {
			return p
		}
	}
}

// Close marks the producer inactive. The consumer drains whatever is
// still in the ring on its next pass and then skips the node for good.
// Close is idempotent; the active flag goes true to false exactly
// once.
func (p *Producer) Close() {
	p.active.CompareAndSwap(true, false)
}

// Debug logs at debug level.
func (p *Producer) Debug(format string, args ...Arg) {
	if LevelDebug < MinLevel {
		return
	}
	p.log(LevelDebug, format, args)
}

// Info logs at info level.
func (p *Producer) Info(format string, args ...Arg) {
	if LevelInfo < MinLevel {
		return
	}
	p.log(LevelInfo, format, args)
}

// Warn logs at warning level.
func (p *Producer) Warn(format string, args ...Arg) {
	if LevelWarn < MinLevel {
		return
	}
	p.log(LevelWarn, format, args)
}

// Error logs at error level.
func (p *Producer) Error(format string, args ...Arg) {
	p.log(LevelError, format, args)
}

// Log logs at an arbitrary level.
func (p *Producer) Log(level Level, format string, args ...Arg) {
	if level < MinLevel || !level.valid() {
		return
	}
	p.log(level, format, args)
}

// Emit logs a pre-interned format. This is the cheapest entry point:
// no hashing, no registry probe, just pack and enqueue.
func (p *Producer) Emit(id FormatID, args ...Arg) {
	if id.id == 0 || p.logger.closed.Load() {
		return
	}
	var rec record
	if rec.pack(id.id, args) {
		p.logger.collector.TrackArgsTruncated()
	}
	p.push(rec, id.level)
}

// log is the shared hot path behind the leveled methods.
func (p *Producer) log(level Level, format string, args []Arg) {
	l := p.logger
	if l.closed.Load() {
		return
	}
	id := l.intern(level, format)
	var rec record
	if rec.pack(id, args) {
		l.collector.TrackArgsTruncated()
	}
	p.push(rec, level)
}

// push applies the backpressure policy.
func (p *Producer) push(rec record, level Level) {
	l := p.logger
	if l.cfg.Backpressure == PolicyBlock {
		for !p.ring.Enqueue(rec) {
			runtime.Gosched()
		}
		l.collector.TrackEnqueued(int(level))
		return
	}
	for try := 0; try < l.cfg.EnqueueTries; try++ {
		if p.ring.Enqueue(rec) {
			l.collector.TrackEnqueued(int(level))
			return
		}
		runtime.Gosched()
	}
	l.collector.TrackDropped()
}
