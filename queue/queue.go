// Package queue serializes asynchronous operations per key. Operations
// enqueued against the same key run strictly in submission order, one at
// a time; independent keys run concurrently with no ordering between
// them. A failed operation never blocks later operations on its key.
package queue

import (
	"context"
	"sync"
)

type Operation func(ctx context.Context) error

type OperationQueue struct {
	mu    sync.Mutex
	tails map[string]chan struct{}
}

func NewOperationQueue() *OperationQueue {
	return &OperationQueue{
		tails: make(map[string]chan struct{}),
	}
}

// Enqueue submits an operation for the given key and returns a buffered
// channel delivering its result. Submission order is the order of
// Enqueue calls; the operation runs once every earlier operation for the
// same key has finished, regardless of whether those succeeded.
//
// A context cancelled before the operation starts skips the operation
// and delivers the context error; the chain for the key stays intact.
// There is no cancellation once an operation has started.
func (q *OperationQueue) Enqueue(ctx context.Context, key string, op Operation) <-chan error {
	result := make(chan error, 1)

	q.mu.Lock()
	prev := q.tails[key]
	done := make(chan struct{})
	q.tails[key] = done
	q.mu.Unlock()

	go func() {
		defer func() {
			close(done)

			q.mu.Lock()
			if tail, exists := q.tails[key]; exists && tail == done {
				delete(q.tails, key)
			}
			q.mu.Unlock()
		}()

		if prev != nil {
			<-prev
		}

		select {
		case <-ctx.Done():
			result <- ctx.Err()
			return
		default:
		}

		result <- op(ctx)
	}()

	return result
}

// Pending reports whether an operation is queued or in flight for the key.
func (q *OperationQueue) Pending(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	_, exists := q.tails[key]
	return exists
}
