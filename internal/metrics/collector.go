// Package metrics collects runtime counters for the logger. Producers
// bump counters from their hot paths, so everything here is an atomic
// operation on a fixed-size field (adds, plus a CAS loop for the
// maximum write time): no maps, no allocation.
package metrics

import (
	"sync/atomic"
	"time"
)

// levelCount is sized for the four log levels.
const levelCount = 4

// Collector accumulates counters for one logger instance.
type Collector struct {
	enqueuedByLevel [levelCount]atomic.Uint64
	emitted         atomic.Uint64
	dropped         atomic.Uint64
	argsTruncated   atomic.Uint64
	linesTruncated  atomic.Uint64
	unknownID       atomic.Uint64

	// Sink-side performance numbers, written only by the consumer.
	bytesWritten   atomic.Uint64
	writeCount     atomic.Uint64
	totalWriteTime atomic.Int64 // nanoseconds
	maxWriteTime   atomic.Int64 // nanoseconds
	writeErrors    atomic.Uint64
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// TrackEnqueued records a successfully enqueued message at level.
func (c *Collector) TrackEnqueued(level int) {
	if level >= 0 && level < levelCount {
		c.enqueuedByLevel[level].Add(1)
	}
}

// TrackDropped records a message rejected by a full ring.
func (c *Collector) TrackDropped() {
	c.dropped.Add(1)
}

// TrackArgsTruncated records a call site that passed more arguments
// than a record can carry.
func (c *Collector) TrackArgsTruncated() {
	c.argsTruncated.Add(1)
}

// TrackEmitted records a formatted line handed to the sink. truncated
// reports whether the rendered body hit the length cap.
func (c *Collector) TrackEmitted(truncated bool) {
	c.emitted.Add(1)
	if truncated {
		c.linesTruncated.Add(1)
	}
}

// TrackUnknownID records a record whose format id had no registration.
func (c *Collector) TrackUnknownID() {
	c.unknownID.Add(1)
}

// TrackWrite records one sink write of n bytes taking d.
func (c *Collector) TrackWrite(n int, d time.Duration) {
	c.bytesWritten.Add(uint64(n))
	c.writeCount.Add(1)
	c.totalWriteTime.Add(int64(d))
	for {
		max := c.maxWriteTime.Load()
		if int64(d) <= max || c.maxWriteTime.CompareAndSwap(max, int64(d)) {
			break
		}
	}
}

// TrackWriteError records a failed sink write.
func (c *Collector) TrackWriteError() {
	c.writeErrors.Add(1)
}

// Metrics is a point-in-time snapshot of a collector.
type Metrics struct {
	EnqueuedByLevel  [levelCount]uint64 `json:"enqueued_by_level"`
	Emitted          uint64             `json:"emitted"`
	Dropped          uint64             `json:"dropped"`
	ArgsTruncated    uint64             `json:"args_truncated"`
	LinesTruncated   uint64             `json:"lines_truncated"`
	UnknownID        uint64             `json:"unknown_id"`
	BytesWritten     uint64             `json:"bytes_written"`
	WriteCount       uint64             `json:"write_count"`
	WriteErrors      uint64             `json:"write_errors"`
	AverageWriteTime time.Duration      `json:"average_write_time"`
	MaxWriteTime     time.Duration      `json:"max_write_time"`
}

// Snapshot returns the current counter values.
func (c *Collector) Snapshot() Metrics {
	m := Metrics{
		Emitted:        c.emitted.Load(),
		Dropped:        c.dropped.Load(),
		ArgsTruncated:  c.argsTruncated.Load(),
		LinesTruncated: c.linesTruncated.Load(),
		UnknownID:      c.unknownID.Load(),
		BytesWritten:   c.bytesWritten.Load(),
		WriteCount:     c.writeCount.Load(),
		WriteErrors:    c.writeErrors.Load(),
		MaxWriteTime:   time.Duration(c.maxWriteTime.Load()),
	}
	for i := range m.EnqueuedByLevel {
		m.EnqueuedByLevel[i] = c.enqueuedByLevel[i].Load()
	}
	if m.WriteCount > 0 {
		m.AverageWriteTime = time.Duration(c.totalWriteTime.Load() / int64(m.WriteCount))
	}
	return m
}
