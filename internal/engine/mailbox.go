package engine

import "sync"

// Mailbox is an unbounded single-consumer, multi-producer FIFO queue of
// Messages, per spec.md section 5 ("Mailboxes are unbounded single-consumer
// / multi-producer"). Modelled as a mutex-guarded slice with a condition
// variable for the blocking Recv path, in the spirit of eventloop's
// ChunkedIngress (a queue external goroutines push into, drained by the
// single owning goroutine) -- simplified to a plain growable slice, since
// mailbox traffic here is bounded by automaton fan-out rather than the
// high-throughput task dispatch ChunkedIngress is tuned for.
type Mailbox struct {
	mu    sync.Mutex
	cond  *sync.Cond
	queue []Message
}

// NewMailbox returns an empty, ready-to-use Mailbox.
func NewMailbox() *Mailbox {
	m := &Mailbox{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Send enqueues msg, waking any goroutine blocked in Recv. Safe to call
// from any goroutine, any number of times concurrently.
func (m *Mailbox) Send(msg Message) {
	m.mu.Lock()
	m.queue = append(m.queue, msg)
	m.mu.Unlock()
	m.cond.Signal()
}

// Recv blocks until a message is available, then returns it.
func (m *Mailbox) Recv() Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.queue) == 0 {
		m.cond.Wait()
	}
	msg := m.queue[0]
	m.queue = m.queue[1:]
	return msg
}

// TryRecv returns the next message without blocking, and false if the
// mailbox is currently empty -- backs the "drain_nonblocking" coalescing
// step of spec.md section 4.4.3.
func (m *Mailbox) TryRecv() (Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return Message{}, false
	}
	msg := m.queue[0]
	m.queue = m.queue[1:]
	return msg, true
}
