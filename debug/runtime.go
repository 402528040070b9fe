// Package debug holds diagnostics started only with the debug flag.
package debug

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/dustin/go-humanize"
)

// CacheStats is a snapshot of the picture cache counters.
type CacheStats struct {
	Hits, Misses int64
	Entries      int
}

// StartRuntimeLogger launches a ticker that logs goroutine count, heap and
// picture cache usage until ctx is done. stats may be nil.
func StartRuntimeLogger(ctx context.Context, interval time.Duration, logger *slog.Logger, stats func() CacheStats) {
	if interval <= 0 {
		interval = time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				logger.Info("runtime", Snapshot(stats)...)
			}
		}
	}()
}

// Snapshot returns the current values as slog attributes.
func Snapshot(stats func() CacheStats) []any {
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	metrics.Read(samples)
	var goroutines uint64
	if samples[0].Value.Kind() == metrics.KindUint64 {
		goroutines = samples[0].Value.Uint64()
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	attrs := []any{
		slog.Uint64("goroutines", goroutines),
		slog.String("heap_alloc", humanize.IBytes(ms.HeapAlloc)),
		slog.String("heap_sys", humanize.IBytes(ms.HeapSys)),
		slog.String("stack_inuse", humanize.IBytes(ms.StackInuse)),
		slog.Uint64("num_gc", uint64(ms.NumGC)),
	}
	if stats != nil {
		s := stats()
		attrs = append(attrs,
			slog.Int64("cache_hits", s.Hits),
			slog.Int64("cache_misses", s.Misses),
			slog.Int("cache_entries", s.Entries),
		)
	}
	return attrs
}
