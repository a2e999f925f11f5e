package steroidlog

import (
	"testing"

	"github.com/wayneeseguin/steroidlog/pkg/backends"
)

func newBenchLogger(b *testing.B, opts ...Option) *Logger {
	b.Helper()
	opts = append(opts,
		WithBackend(backends.NewDiscard()),
		WithErrorHandler(SilentErrorHandler),
		WithPolicy(PolicyBlock),
	)
	l, err := New(opts...)
	if err != nil {
		b.Fatalf("New: %v", err)
	}
	return l
}

func BenchmarkProducerInfo(b *testing.B) {
	l := newBenchLogger(b)
	defer l.Close()
	p := l.NewProducer()
	defer p.Close()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Info("handled request {} in {}us", Int(i), Int(250))
	}
}

func BenchmarkProducerEmitInterned(b *testing.B) {
	l := newBenchLogger(b)
	defer l.Close()
	fid := l.Preformat(LevelInfo, "handled request {} in {}us")
	p := l.NewProducer()
	defer p.Close()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Emit(fid, Int(i), Int(250))
	}
}

func BenchmarkSharedConvenience(b *testing.B) {
	l := newBenchLogger(b)
	defer l.Close()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Info("handled request {} in {}us", Int(i), Int(250))
	}
}

func BenchmarkProducerParallel(b *testing.B) {
	l := newBenchLogger(b, WithRingCapacity(4096))
	defer l.Close()
	fid := l.Preformat(LevelInfo, "worker message {}")

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		p := l.NewProducer()
		defer p.Close()
		i := 0
		for pb.Next() {
			p.Emit(fid, Int(i))
			i++
		}
	})
}

func BenchmarkRenderLine(b *testing.B) {
	var rec record
	rec.pack(1, []Arg{Int(42), Str("payload"), Float(1.234)})
	literal := "[INFO] id={} body={} score={}"
	buf := make([]byte, 0, 256)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf, _ = renderLine(buf[:0], literal, &rec, 255)
	}
}

func BenchmarkIntern(b *testing.B) {
	l := newBenchLogger(b)
	defer l.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.intern(LevelInfo, "steady-state lookup {}")
	}
}
