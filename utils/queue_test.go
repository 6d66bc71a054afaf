package utils

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestBoundedQueueIsFifo(t *testing.T) {
	q := NewBoundedQueue[int](3)
	for round := 0; round < 4; round++ {
		for i := 0; i < 3; i++ {
			if err := q.Push(round*3 + i); err != nil {
				t.Fatal(err)
			}
		}
		for i := 0; i < 3; i++ {
			item, ok := q.Pop()
			if !ok || item != round*3+i {
				t.Fatalf("Expected %v, got %v (ok=%v)", round*3+i, item, ok)
			}
		}
	}
}

func TestPushBlocksWhileFull(t *testing.T) {
	q := NewBoundedQueue[int](2)
	_ = q.Push(1)
	_ = q.Push(2)

	pushed := make(chan struct{})
	go func() {
		_ = q.Push(3)
		close(pushed)
	}()

	select {
	case <-pushed:
		t.Fatal("Push returned while the queue was full")
	case <-time.After(100 * time.Millisecond):
	}

	if item, _ := q.Pop(); item != 1 {
		t.Fatalf("Expected 1, got %v", item)
	}

	select {
	case <-pushed:
	case <-time.After(5 * time.Second):
		t.Fatal("Push was not woken by a pop")
	}
	if q.Size() != 2 {
		t.Fatalf("Expected 2 items, got %v", q.Size())
	}
}

func TestCloseWakesAllConsumers(t *testing.T) {
	q := NewBoundedQueue[int](5)

	const consumers = 8
	var wg sync.WaitGroup
	for rep := 0; rep < consumers; rep++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := q.Pop(); ok {
				t.Error("Pop returned an item from an empty queue")
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	q.Close()
	q.Close()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Consumers stayed blocked on a closed queue")
	}
}

func TestCloseDrainsRemainingItems(t *testing.T) {
	q := NewBoundedQueue[string](3)
	_ = q.Push("a")
	_ = q.Push("b")
	q.Close()

	if err := q.Push("c"); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("Expected ErrQueueClosed, got %v", err)
	}
	for _, want := range []string{"a", "b"} {
		item, ok := q.Pop()
		if !ok || item != want {
			t.Fatalf("Expected %q, got %q (ok=%v)", want, item, ok)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("Pop returned an item after draining a closed queue")
	}
	if !q.IsClosed() {
		t.Fatal("Queue should report closed")
	}
}

func TestManyProducersAndConsumers(t *testing.T) {
	q := NewBoundedQueue[int](5)

	const producers = 4
	const perProducer = 2500
	const consumers = 6

	var producersWg sync.WaitGroup
	for p := 0; p < producers; p++ {
		producersWg.Add(1)
		go func(p int) {
			defer producersWg.Done()
			for i := 0; i < perProducer; i++ {
				if err := q.Push(p*perProducer + i); err != nil {
					t.Error(err)
					return
				}
			}
		}(p)
	}

	results := make(chan []int, consumers)
	var consumersWg sync.WaitGroup
	for rep := 0; rep < consumers; rep++ {
		consumersWg.Add(1)
		go func() {
			defer consumersWg.Done()
			var seen []int
			for {
				item, ok := q.Pop()
				if !ok {
					break
				}
				seen = append(seen, item)
			}
			results <- seen
		}()
	}

	producersWg.Wait()
	q.Close()
	consumersWg.Wait()
	close(results)

	delivered := make(map[int]int)
	for seen := range results {
		lastPerProducer := make(map[int]int)
		for _, item := range seen {
			delivered[item]++
			producer := item / perProducer
			if last, ok := lastPerProducer[producer]; ok && item < last {
				t.Fatalf("Item %v delivered after %v from the same producer", item, last)
			}
			lastPerProducer[producer] = item
		}
	}

	if len(delivered) != producers*perProducer {
		t.Fatalf("Expected %v distinct items, got %v", producers*perProducer, len(delivered))
	}
	for item, count := range delivered {
		if count != 1 {
			t.Fatalf("Item %v delivered %v times", item, count)
		}
	}
}
