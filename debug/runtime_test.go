package debug

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestSnapshotIncludesCacheStats(t *testing.T) {
	attrs := Snapshot(func() CacheStats { return CacheStats{Hits: 3, Misses: 1, Entries: 2} })
	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Info("runtime", attrs...)
	out := buf.String()
	for _, want := range []string{"goroutines=", "heap_alloc=", "cache_hits=3", "cache_misses=1", "cache_entries=2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %s", want, out)
		}
	}
}

func TestSnapshotWithoutStats(t *testing.T) {
	if got := len(Snapshot(nil)); got != 5 {
		t.Fatalf("expected 5 attributes, got %d", got)
	}
}

type syncBuffer struct {
	ch chan string
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	select {
	case b.ch <- string(p):
	default:
	}
	return len(p), nil
}

func TestStartRuntimeLoggerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	buf := &syncBuffer{ch: make(chan string, 1)}
	StartRuntimeLogger(ctx, 5*time.Millisecond, slog.New(slog.NewTextHandler(buf, nil)), nil)
	select {
	case line := <-buf.ch:
		if !strings.Contains(line, "msg=runtime") {
			t.Fatalf("unexpected log line %q", line)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no log line")
	}
	cancel()
}
