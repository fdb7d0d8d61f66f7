package ioformat

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/wavepick/wavepick/internal/parallel"
)

// logRate bounds how many improvement lines can be appended per second,
// so an early burst of rapidly-superseded incumbents cannot dominate disk
// I/O (internal/parallel.RateLimiter).
const logRate = 50

// ImprovementLog appends one line per accepted incumbent update, per
// spec.md §6: truncated at start, each line `elapsed_seconds score\n` with
// 6 decimal places. The file is prefixed with a `# run <uuid>` header so
// multiple runs writing to rotated logs can be told apart.
type ImprovementLog struct {
	f       *os.File
	limiter *parallel.RateLimiter
	runID   uuid.UUID
}

// OpenImprovementLog truncates (or creates) path and writes its run-ID
// header. A zero value's methods are no-ops, so callers can pass a nil
// *ImprovementLog when no log path was given (spec.md §6's "optional").
func OpenImprovementLog(path string) (*ImprovementLog, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("wavepick: open improvement log: %w", err)
	}

	runID := uuid.New()
	if _, err := fmt.Fprintf(f, "# run %s\n", runID); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("wavepick: write improvement log header: %w", err)
	}

	return &ImprovementLog{
		f:       f,
		limiter: parallel.NewRateLimiter(logRate),
		runID:   runID,
	}, nil
}

// RunID returns the UUID stamped into this log's header.
func (l *ImprovementLog) RunID() uuid.UUID {
	if l == nil {
		return uuid.Nil
	}
	return l.runID
}

// Append writes one `elapsed_seconds score` line. Per spec.md §7's "I/O
// error on log file: non-fatal; log line is dropped", write failures are
// swallowed: Append returns nothing and never panics. It waits up to one
// second for a rate-limiter token and drops the line if none arrives.
func (l *ImprovementLog) Append(elapsed time.Duration, score float64) {
	if l == nil || l.f == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.limiter.Wait(ctx); err != nil {
		return
	}
	fmt.Fprintf(l.f, "%.6f %.6f\n", elapsed.Seconds(), score)
}

// Close releases the underlying file and rate limiter.
func (l *ImprovementLog) Close() error {
	if l == nil || l.f == nil {
		return nil
	}
	l.limiter.Close()
	return l.f.Close()
}
