// Implements RequestQueue, the FIFO of WorkRequests shared by the batcher's
// available-work queue and the post-pick staging area.

package sim

import (
	"fmt"
	"strings"
	"sync"
)

// RequestQueue is a goroutine-safe FIFO of work requests.
// The zero value is an empty queue ready to use.
type RequestQueue struct {
	mu    sync.Mutex
	queue []*WorkRequest
}

// Enqueue adds a request to the back of the queue.
func (q *RequestQueue) Enqueue(r *WorkRequest) {
	if r == nil {
		panic("Enqueue: req must not be nil")
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queue = append(q.queue, r)
}

// PrependFront inserts a request at the front of the queue.
// Used for rework: a voided request jumps ahead of all waiting work.
func (q *RequestQueue) PrependFront(r *WorkRequest) {
	if r == nil {
		panic("PrependFront: req must not be nil")
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queue = append([]*WorkRequest{r}, q.queue...)
}

// Dequeue removes and returns the request at the front of the queue.
func (q *RequestQueue) Dequeue() (*WorkRequest, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.queue) == 0 {
		return nil, false
	}
	r := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	return r, true
}

// Len returns the number of requests in the queue.
func (q *RequestQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queue)
}

// IDs returns the queued request ids, front first.
func (q *RequestQueue) IDs() []int {
	q.mu.Lock()
	defer q.mu.Unlock()
	ids := make([]int, len(q.queue))
	for i, r := range q.queue {
		ids[i] = r.ID()
	}
	return ids
}

func (q *RequestQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	ids := q.IDs()
	for i, id := range ids {
		sb.WriteString(fmt.Sprint(id))
		if i < len(ids)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
