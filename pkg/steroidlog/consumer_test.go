package steroidlog

import (
	"fmt"
	"sync"
	"testing"
	"time"

	testhelpers "github.com/wayneeseguin/steroidlog/internal/testing"
)

// Records become visible without any flush call: one consumer pass
// plus formatting time bounds the delay.
func TestEmissionWithoutShutdown(t *testing.T) {
	l, mem := newTestLogger(t)
	defer l.Close()

	p := l.NewProducer()
	defer p.Close()
	p.Info("Test {}", Int(42))
	p.Debug("Hello {}", Str("world"))
	p.Warn("Number: {}", Float(1.234))

	testhelpers.RequireEventually(t, 2*time.Second, func() bool {
		return len(mem.Lines()) == 3
	}, "three lines should appear without an explicit flush")

	lines := mem.Lines()
	if lines[0] != "[INFO] Test 42" || lines[1] != "[DEBUG] Hello world" {
		t.Errorf("lines = %q", lines)
	}
}

func TestManyProducersStress(t *testing.T) {
	testhelpers.SkipIfShort(t)

	l, mem := newTestLogger(t, WithPolicy(PolicyBlock), WithRingCapacity(256))

	const producers = 8
	const perProducer = 2000

	var wg sync.WaitGroup
	for w := 0; w < producers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			p := l.NewProducer()
			defer p.Close()
			for i := 0; i < perProducer; i++ {
				p.Info("p{} n{}", Int(w), Int(i))
			}
		}(w)
	}
	wg.Wait()

	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := mem.Lines()
	if len(lines) != producers*perProducer {
		t.Fatalf("got %d lines, want %d", len(lines), producers*perProducer)
	}

	// Per-producer substreams stay in program order whatever the
	// interleaving.
	next := make([]int, producers)
	for _, line := range lines {
		var w, i int
		if _, err := fmt.Sscanf(line, "[INFO] p%d n%d", &w, &i); err != nil {
			t.Fatalf("unparseable line %q: %v", line, err)
		}
		if i != next[w] {
			t.Fatalf("producer %d emitted n%d before n%d", w, i, next[w])
		}
		next[w]++
	}
}
