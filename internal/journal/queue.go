package journal

import "sync"

// Queue is a thread-safe ring buffer of pending entries. It doubles its
// capacity when it fills up, so producers never block on the writer.
type Queue struct {
	mu       sync.Mutex
	buf      []Entry
	head     int
	tail     int
	count    int
	capacity int
	closed   bool
}

// NewQueue creates a queue with the given initial capacity.
func NewQueue(initialCapacity int) *Queue {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	return &Queue{
		buf:      make([]Entry, initialCapacity),
		capacity: initialCapacity,
	}
}

// Push appends an entry. Returns false once the queue has been closed.
func (q *Queue) Push(entry Entry) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	if q.count == q.capacity {
		q.grow()
	}

	q.buf[q.tail] = entry
	q.tail = (q.tail + 1) % q.capacity
	q.count++
	return true
}

// Drain removes up to max entries, or everything when max <= 0.
func (q *Queue) Drain(max int) []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 {
		return nil
	}

	n := q.count
	if max > 0 && max < n {
		n = max
	}

	out := make([]Entry, n)
	for i := 0; i < n; i++ {
		out[i] = q.buf[q.head]
		q.buf[q.head] = Entry{}
		q.head = (q.head + 1) % q.capacity
		q.count--
	}
	return out
}

// Len returns the number of pending entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Close rejects further pushes. Pending entries remain drainable.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}

// grow doubles capacity. Caller holds the lock.
func (q *Queue) grow() {
	newBuf := make([]Entry, q.capacity*2)
	if q.head < q.tail {
		copy(newBuf, q.buf[q.head:q.tail])
	} else if q.count > 0 {
		n := copy(newBuf, q.buf[q.head:])
		copy(newBuf[n:], q.buf[:q.tail])
	}
	q.buf = newBuf
	q.head = 0
	q.tail = q.count
	q.capacity = len(newBuf)
}
