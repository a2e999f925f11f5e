package steroidlog

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/wayneeseguin/steroidlog/internal/buffer"
	"github.com/wayneeseguin/steroidlog/internal/metrics"
	"github.com/wayneeseguin/steroidlog/internal/registry"
	"github.com/wayneeseguin/steroidlog/pkg/backends"
)

// Logger owns the whole pipeline: the format registry, the producer
// node list, the single consumer goroutine and the sink. Producers
// write to their private rings; the consumer is the only goroutine
// that ever touches the sink.
type Logger struct {
	cfg       Config
	registry  *registry.Table
	collector *metrics.Collector
	bufs      *buffer.Pool
	backend   backends.Backend
	onError   ErrorHandler

	// producers is the head of the intrusive node list. Appended to by
	// CAS push-front, walked by the consumer; nodes are never removed.
	producers atomic.Pointer[Producer]

	// closed gates new enqueues, done tells the worker to finish.
	// closed is set strictly before done so that everything enqueued
	// before Shutdown is still ahead of the final drain.
	closed     atomic.Bool
	done       atomic.Bool
	workerDone chan struct{}

	closeOnce sync.Once
	closeErr  error

	// shared backs the logger-level convenience methods; goroutines
	// that care about the lock-free path hold their own Producer.
	sharedMu sync.Mutex
	shared   *Producer
}

// New constructs a logger and starts its consumer. The sink defaults
// to standard output and cannot be swapped once the consumer runs.
func New(opts ...Option) (*Logger, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Backend == nil {
		cfg.Backend = backends.NewStdout()
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler()
	}

	l := &Logger{
		cfg:        cfg,
		registry:   registry.New(cfg.RegistryCapacity),
		collector:  metrics.NewCollector(),
		bufs:       buffer.NewPool(cfg.MaxMsgLen),
		backend:    cfg.Backend,
		onError:    cfg.ErrorHandler,
		workerDone: make(chan struct{}),
	}
	go l.worker()
	return l, nil
}

// intern resolves the identifier for a call site, registering the
// level-prefixed literal the first time the site is reached. The
// lookup hit is the steady state; the registration (and its one
// string concatenation) happens once per call site per process.
//
// Registration can only fail on a full registry or an identifier
// collision. Both are build-configuration bugs the process cannot log
// its way out of, so they abort with a diagnostic.
func (l *Logger) intern(level Level, format string) uint32 {
	id := formatID(level, format)
	if _, ok := l.registry.Lookup(id); ok {
		return id
	}
	if err := l.registry.Register(id, level.prefix()+format); err != nil {
		panic(err)
	}
	return id
}

// Preformat interns a format literal ahead of time and returns its
// identifier for use with Producer.Emit. For a sub-threshold level it
// returns the zero FormatID, which Emit ignores; the call site then
// costs a single integer compare.
func (l *Logger) Preformat(level Level, format string) FormatID {
	if level < MinLevel || !level.valid() {
		return FormatID{}
	}
	return FormatID{id: l.intern(level, format), level: level}
}

// Debug logs at debug level through the logger's shared producer.
// Safe from any goroutine; latency-sensitive callers should hold
// their own Producer instead.
func (l *Logger) Debug(format string, args ...Arg) {
	if LevelDebug < MinLevel {
		return
	}
	l.logShared(LevelDebug, format, args)
}

// Info logs at info level through the logger's shared producer.
func (l *Logger) Info(format string, args ...Arg) {
	if LevelInfo < MinLevel {
		return
	}
	l.logShared(LevelInfo, format, args)
}

// Warn logs at warning level through the logger's shared producer.
func (l *Logger) Warn(format string, args ...Arg) {
	if LevelWarn < MinLevel {
		return
	}
	l.logShared(LevelWarn, format, args)
}

// Error logs at error level through the logger's shared producer.
func (l *Logger) Error(format string, args ...Arg) {
	l.logShared(LevelError, format, args)
}

func (l *Logger) logShared(level Level, format string, args []Arg) {
	l.sharedMu.Lock()
	if l.shared == nil {
		l.shared = l.NewProducer()
	}
	l.shared.log(level, format, args)
	l.sharedMu.Unlock()
}

// worker is the consumer: it polls every producer ring round-robin,
// formats what it finds and writes to the sink, yielding when a full
// pass comes up empty. After done is observed it performs one last
// full drain so records enqueued before shutdown still come out.
func (l *Logger) worker() {
	defer close(l.workerDone)
	for !l.done.Load() {
		if l.sweep() == 0 {
			runtime.Gosched()
		}
	}
	for l.sweep() > 0 {
	}
	if err := l.backend.Flush(); err != nil {
		l.sinkError("flush", "final flush failed", err)
	}
}

// sweep walks the node list once, draining up to BatchSize records
// per ring, and flushes the sink when anything was emitted. Inactive
// nodes whose rings are empty are skipped permanently.
func (l *Logger) sweep() int {
	consumed := 0
	for p := l.producers.Load(); p != nil; p = p.next {
		if !p.active.Load() && p.ring.Empty() {
			continue
		}
		for i := 0; i < l.cfg.BatchSize; i++ {
			rec, ok := p.ring.Dequeue()
			if !ok {
				break
			}
			l.emit(&rec)
			consumed++
		}
	}
	if consumed > 0 {
		if err := l.backend.Flush(); err != nil {
			l.sinkError("flush", "flush failed", err)
		}
	}
	return consumed
}

// emit renders one record and writes it to the sink. Sink failures go
// to the error handler; the consumer keeps going (best effort).
func (l *Logger) emit(rec *record) {
	buf := l.bufs.Get()
	truncated := false

	if literal, ok := l.registry.Lookup(rec.id); ok {
		buf, truncated = renderLine(buf, literal, rec, l.cfg.MaxMsgLen-1)
	} else {
		l.collector.TrackUnknownID()
		buf = renderUnknown(buf, rec.id, l.cfg.MaxMsgLen-1)
	}

	start := time.Now()
	n, err := l.backend.Write(buf)
	if err != nil {
		l.collector.TrackWriteError()
		l.sinkError("write", "sink write failed", err)
	} else {
		l.collector.TrackWrite(n, time.Since(start))
	}
	l.collector.TrackEmitted(truncated)
	l.bufs.Put(buf)
}

func (l *Logger) sinkError(op, msg string, err error) {
	l.onError(LogError{Op: op, Msg: msg, Err: err})
}

// Shutdown drains and stops the logger. It is idempotent, safe to
// call from any goroutine, and when it returns without error every
// record enqueued before the call has reached the sink. The context
// bounds the wait for the final drain.
func (l *Logger) Shutdown(ctx context.Context) error {
	l.closed.Store(true)
	l.done.Store(true)
	select {
	case <-l.workerDone:
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "steroidlog: shutdown")
	}
	l.closeOnce.Do(func() {
		if err := l.backend.Close(); err != nil {
			l.closeErr = errors.Wrap(err, "steroidlog: close sink")
			l.sinkError("close", "sink close failed", err)
		}
	})
	return l.closeErr
}

// Close is Shutdown without a deadline.
func (l *Logger) Close() error {
	return l.Shutdown(context.Background())
}

// IsClosed reports whether the logger stopped accepting records.
func (l *Logger) IsClosed() bool {
	return l.closed.Load()
}

// Metrics returns a snapshot of the logger's counters.
func (l *Logger) Metrics() metrics.Metrics {
	return l.collector.Snapshot()
}
