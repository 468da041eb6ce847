// Package budget enforces the resource limits of the CLI's
// --memory-limit flag and a wall-clock deadline derived from
// --time-limit. The limits are enforced only where a caller invokes
// Check or watches the context from WithContext; the proof-DAG
// traversal and index iteration do neither.
package budget

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"
)

// ErrTimeExceeded reports that a wall-clock deadline elapsed before an
// operation completed.
var ErrTimeExceeded = errors.New("budget: wall-clock time limit exceeded")

// ErrMemoryExceeded reports that the process's reported heap usage
// exceeded the configured --memory-limit.
var ErrMemoryExceeded = errors.New("budget: memory limit exceeded")

// Budget tracks a deadline and an optional memory ceiling. Check
// consults them only when called; cmd/clausify calls it every 64
// input clauses and once at the end of a run.
type Budget struct {
	deadline    time.Time
	hasDeadline bool
	memLimitMB  int
}

// New constructs a Budget. timeLimit <= 0 means no wall-clock deadline;
// memoryLimitMB <= 0 means no memory ceiling.
func New(timeLimit time.Duration, memoryLimitMB int) *Budget {
	b := &Budget{memLimitMB: memoryLimitMB}
	if timeLimit > 0 {
		b.deadline = time.Now().Add(timeLimit)
		b.hasDeadline = true
	}
	return b
}

// WithContext returns a context derived from parent that is also
// cancelled when the Budget's wall-clock deadline elapses, and a
// cancel func the caller must call once done.
func (b *Budget) WithContext(parent context.Context) (context.Context, context.CancelFunc) {
	if !b.hasDeadline {
		return context.WithCancel(parent)
	}
	return context.WithDeadline(parent, b.deadline)
}

// Check reports ErrTimeExceeded or ErrMemoryExceeded if either limit
// has been breached, nil otherwise. Its only caller is cmd/clausify's
// clause loop; Traverse and index iterators do not call it.
func (b *Budget) Check() error {
	if b.hasDeadline && time.Now().After(b.deadline) {
		return ErrTimeExceeded
	}
	if b.memLimitMB > 0 {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		if int(m.HeapAlloc/(1024*1024)) > b.memLimitMB {
			return ErrMemoryExceeded
		}
	}
	return nil
}

// Remaining reports the time left before the wall-clock deadline, or
// zero if there is none.
func (b *Budget) Remaining() time.Duration {
	if !b.hasDeadline {
		return 0
	}
	if d := time.Until(b.deadline); d > 0 {
		return d
	}
	return 0
}
