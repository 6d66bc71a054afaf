package services

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// OutcomeRecorder is the only point where every command serializes: one
// message write and one counter increment under a single lock.
type OutcomeRecorder struct {
	lock      sync.Mutex
	sink      io.Writer
	succeeded int
	failed    int
}

func NewOutcomeRecorder(sink io.Writer) *OutcomeRecorder {
	return &OutcomeRecorder{sink: sink}
}

func (r *OutcomeRecorder) RecordSuccess(message string) {
	r.record(message, true)
}

func (r *OutcomeRecorder) RecordFailure(message string) {
	r.record(message, false)
}

func (r *OutcomeRecorder) Counts() (succeeded int, failed int) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.succeeded, r.failed
}

// WriteLine writes a report line without touching the counters.
func (r *OutcomeRecorder) WriteLine(line string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.writeLocked(line)
}

// WriteSummary writes the aggregate line with the counters read under the same lock.
func (r *OutcomeRecorder) WriteSummary() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.writeLocked(fmt.Sprintf("Success: %d Fails: %d", r.succeeded, r.failed))
}

func (r *OutcomeRecorder) record(message string, success bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.writeLocked(message)
	if success {
		r.succeeded++
	} else {
		r.failed++
	}
}

func (r *OutcomeRecorder) writeLocked(line string) {
	if _, err := fmt.Fprintln(r.sink, line); err != nil {
		slog.Error("Could not write report line", slog.Any("error", err))
	}
}
