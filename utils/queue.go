package utils

import (
	"errors"
	"sync"
)

var ErrQueueClosed = errors.New("queue is closed")

// BoundedQueue is a fixed-capacity FIFO with blocking push and pop. Closing it
// means nothing else will ever be pushed; pop drains what is left first.
type BoundedQueue[T any] struct {
	lock     sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond

	items    []T
	head     int
	size     int
	isClosed bool
}

func NewBoundedQueue[T any](capacity int) *BoundedQueue[T] {
	if capacity <= 0 {
		panic("bounded queue capacity must be positive")
	}
	q := &BoundedQueue[T]{items: make([]T, capacity)}
	q.notFull = sync.NewCond(&q.lock)
	q.notEmpty = sync.NewCond(&q.lock)
	return q
}

// Push blocks while the queue is full, then wakes one waiting consumer.
func (q *BoundedQueue[T]) Push(item T) error {
	q.lock.Lock()
	defer q.lock.Unlock()

	for q.size == len(q.items) && !q.isClosed {
		q.notFull.Wait()
	}
	if q.isClosed {
		return ErrQueueClosed
	}

	q.items[(q.head+q.size)%len(q.items)] = item
	q.size++
	q.notEmpty.Signal()
	return nil
}

// Pop blocks while the queue is empty and open. It returns false once the
// queue is closed and drained.
func (q *BoundedQueue[T]) Pop() (T, bool) {
	q.lock.Lock()
	defer q.lock.Unlock()

	for q.size == 0 && !q.isClosed {
		q.notEmpty.Wait()
	}
	var item T
	if q.size == 0 {
		return item, false
	}

	item = q.items[q.head]
	q.items[q.head] = *new(T)
	q.head = (q.head + 1) % len(q.items)
	q.size--
	q.notFull.Signal()
	return item, true
}

// Close is idempotent and wakes every blocked consumer and producer so they
// re-check the termination condition.
func (q *BoundedQueue[T]) Close() {
	q.lock.Lock()
	defer q.lock.Unlock()

	if q.isClosed {
		return
	}
	q.isClosed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

func (q *BoundedQueue[T]) IsClosed() bool {
	q.lock.Lock()
	defer q.lock.Unlock()
	return q.isClosed
}

func (q *BoundedQueue[T]) Size() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return q.size
}

func (q *BoundedQueue[T]) Capacity() int {
	return len(q.items)
}
