// Package steroidlog is a low-latency asynchronous logging library.
//
// Call sites hand the hot path a format literal with {} placeholders
// and a fixed-size bundle of typed arguments. The producing goroutine
// does the minimum possible work: it derives a 32-bit identifier for
// the literal, packs the arguments into a fixed-layout record, and
// pushes the record onto a private lock-free ring. A single background
// consumer polls every ring, resolves identifiers back to literals,
// renders the final text and writes it to the sink. Producers never
// touch the sink and never synchronize with each other.
//
// Basic usage through the process-wide logger:
//
//	steroidlog.Info("listening on port {}", steroidlog.Int(8080))
//	steroidlog.Warn("queue depth {} exceeds {}", steroidlog.Int(depth), steroidlog.Int(limit))
//	defer steroidlog.Shutdown()
//
// The package-level functions are the convenience tier. For latency
// sensitive code, create one Producer per goroutine; its logging
// methods take no locks at all:
//
//	logger, err := steroidlog.New(steroidlog.WithBackend(backend))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer logger.Close()
//
//	p := logger.NewProducer()
//	defer p.Close()
//	p.Info("handled {} in {}us", steroidlog.Str(route), steroidlog.Int(micros))
//
// The fastest tier skips per-call hashing entirely by interning the
// format literal once:
//
//	var fmtHandled = logger.Preformat(steroidlog.LevelInfo, "handled {} in {}us")
//	...
//	p.Emit(fmtHandled, steroidlog.Str(route), steroidlog.Int(micros))
//
// Ordering: records from one producer appear in the sink in program
// order. Across producers there is no ordering guarantee. When a
// producer's ring is full the configured backpressure policy decides
// between dropping the record (default) and yield-retrying until space
// frees up; producers never block on a lock either way.
//
// The minimum level is a build-time constant. Builds with the
// steroidlog_minlevel_info, steroidlog_minlevel_warning or
// steroidlog_minlevel_error tag compile sub-threshold calls down to
// nothing.
package steroidlog
