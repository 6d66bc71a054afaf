package services

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestRecorderCountsAndLines(t *testing.T) {
	var out bytes.Buffer
	recorder := NewOutcomeRecorder(&out)

	const goroutines = 20
	const perGoroutine = 50
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for rep := 0; rep < perGoroutine; rep++ {
				if i%2 == 0 {
					recorder.RecordSuccess("ok")
				} else {
					recorder.RecordFailure("ko")
				}
			}
		}(i)
	}
	wg.Wait()

	succeeded, failed := recorder.Counts()
	if succeeded != goroutines/2*perGoroutine || failed != goroutines/2*perGoroutine {
		t.Fatalf("Unexpected counters %v/%v", succeeded, failed)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != goroutines*perGoroutine {
		t.Fatalf("Expected %v lines, got %v", goroutines*perGoroutine, len(lines))
	}
	for _, line := range lines {
		if line != "ok" && line != "ko" {
			t.Fatalf("Interleaved line %q", line)
		}
	}

	recorder.WriteSummary()
	if !strings.HasSuffix(out.String(), "Success: 500 Fails: 500\n") {
		t.Fatalf("Unexpected summary in %q", out.String()[out.Len()-40:])
	}
}
