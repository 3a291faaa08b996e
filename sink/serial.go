package sink

import "sync"

// serial runs jobs one after another on a single goroutine, in the order
// they were submitted.
type serial struct {
	mu     sync.RWMutex // guards closed and sends on jobs
	closed bool
	jobs   chan func()
	done   chan struct{}
}

func newSerial() *serial {
	s := &serial{
		jobs: make(chan func()),
		done: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *serial) run() {
	defer close(s.done)
	for job := range s.jobs {
		job()
	}
}

// do runs job and waits for it to complete. Jobs must not submit other
// jobs to the same queue.
func (s *serial) do(job func() error) error {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ErrClosed
	}
	result := make(chan error, 1)
	s.jobs <- func() { result <- job() }
	s.mu.RUnlock()
	return <-result
}

// close waits for pending jobs and stops the queue. It reports false if the
// queue had already been closed.
func (s *serial) close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.closed = true
	close(s.jobs)
	<-s.done
	return true
}
