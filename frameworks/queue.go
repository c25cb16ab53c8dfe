package frameworks

import "sync"

// opQueue runs submitted operations one at a time, in submission order.
type opQueue struct {
	mu       sync.Mutex
	pending  []func()
	draining bool
}

// submit enqueues op and returns a channel that receives its result.
func (q *opQueue) submit(op func() error) <-chan error {
	done := make(chan error, 1)

	q.mu.Lock()
	q.pending = append(q.pending, func() { done <- op() })
	if !q.draining {
		q.draining = true
		go q.drain()
	}
	q.mu.Unlock()

	return done
}

func (q *opQueue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		op := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		op()
	}
}
