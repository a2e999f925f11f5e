// slbench drives the logging pipeline the way the steroidlog bench
// suite always has: a configurable number of producer goroutines
// hammering one logger, with throughput and enqueue-latency numbers
// printed at the end.
package main

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/wayneeseguin/steroidlog/pkg/backends"
	"github.com/wayneeseguin/steroidlog/pkg/steroidlog"
)

type benchOptions struct {
	producers int
	messages  int
	ringSize  int
	batch     int
	policy    string
	sink      string
	path      string
	sample    int
}

func main() {
	opts := benchOptions{}

	rootCmd := &cobra.Command{
		Use:   "slbench",
		Short: "steroidlog benchmark driver",
		Long:  "slbench measures throughput, drops and enqueue latency of the async logging pipeline.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(opts)
		},
	}

	rootCmd.Flags().IntVarP(&opts.producers, "producers", "p", 4, "number of producer goroutines")
	rootCmd.Flags().IntVarP(&opts.messages, "messages", "n", 1_000_000, "messages per producer")
	rootCmd.Flags().IntVar(&opts.ringSize, "ring", steroidlog.DefaultRingCapacity, "per-producer ring capacity (power of two)")
	rootCmd.Flags().IntVar(&opts.batch, "batch", steroidlog.DefaultBatchSize, "consumer drain batch")
	rootCmd.Flags().StringVar(&opts.policy, "policy", "drop", "backpressure policy: drop or block")
	rootCmd.Flags().StringVar(&opts.sink, "sink", "discard", "sink: discard, stdout or file")
	rootCmd.Flags().StringVar(&opts.path, "path", "slbench.log", "log file path for --sink file")
	rootCmd.Flags().IntVar(&opts.sample, "sample", 1024, "record enqueue latency every Nth message")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildBackend(opts benchOptions) (backends.Backend, error) {
	switch opts.sink {
	case "discard":
		return backends.NewDiscard(), nil
	case "stdout":
		return backends.NewStdout(), nil
	case "file":
		return backends.NewFile(opts.path)
	default:
		return nil, fmt.Errorf("unknown sink %q", opts.sink)
	}
}

func runBench(opts benchOptions) error {
	backend, err := buildBackend(opts)
	if err != nil {
		return err
	}

	policy := steroidlog.PolicyDrop
	if opts.policy == "block" {
		policy = steroidlog.PolicyBlock
	}

	logger, err := steroidlog.New(
		steroidlog.WithBackend(backend),
		steroidlog.WithRingCapacity(opts.ringSize),
		steroidlog.WithBatchSize(opts.batch),
		steroidlog.WithPolicy(policy),
	)
	if err != nil {
		return err
	}

	fid := logger.Preformat(steroidlog.LevelInfo, "producer {} message {} payload {}")

	var wg sync.WaitGroup
	latencies := make([][]time.Duration, opts.producers)
	start := time.Now()

	for w := 0; w < opts.producers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			p := logger.NewProducer()
			defer p.Close()

			var lats []time.Duration
			for i := 0; i < opts.messages; i++ {
				if opts.sample > 0 && i%opts.sample == 0 {
					t0 := time.Now()
					p.Emit(fid, steroidlog.Int(w), steroidlog.Int(i), steroidlog.Float(3.14))
					lats = append(lats, time.Since(t0))
					continue
				}
				p.Emit(fid, steroidlog.Int(w), steroidlog.Int(i), steroidlog.Float(3.14))
			}
			latencies[w] = lats
		}(w)
	}

	wg.Wait()
	produced := time.Since(start)

	if err := logger.Close(); err != nil {
		return err
	}
	drained := time.Since(start)

	total := opts.producers * opts.messages
	m := logger.Metrics()

	fmt.Printf("producers:        %d\n", opts.producers)
	fmt.Printf("messages:         %d\n", total)
	fmt.Printf("produce time:     %v (%.0f msg/s)\n", produced, float64(total)/produced.Seconds())
	fmt.Printf("drain time:       %v\n", drained)
	fmt.Printf("emitted:          %d\n", m.Emitted)
	fmt.Printf("dropped:          %d (%.2f%%)\n", m.Dropped, 100*float64(m.Dropped)/float64(total))
	fmt.Printf("bytes written:    %d\n", m.BytesWritten)
	fmt.Printf("max write time:   %v\n", m.MaxWriteTime)

	var all []time.Duration
	for _, l := range latencies {
		all = append(all, l...)
	}
	if len(all) > 0 {
		sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
		fmt.Printf("enqueue p50:      %v\n", all[len(all)/2])
		fmt.Printf("enqueue p99:      %v\n", all[len(all)*99/100])
	}
	return nil
}
