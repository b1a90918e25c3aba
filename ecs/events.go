package ecs

import (
	"iter"
	"reflect"
)

type eventQueueSwapper interface {
	swap()
}

type eventRecord[T any] struct {
	seq   uint64
	event T
}

// eventQueue is double buffered: events sent during frame N stay readable
// through frame N+1 and are dropped when frame N+2 begins.
type eventQueue[T any] struct {
	previous []eventRecord[T]
	current  []eventRecord[T]
	nextSeq  uint64
}

func (q *eventQueue[T]) swap() {
	q.previous, q.current = q.current, q.previous[:0]
}

func queueFor[T any](storage *Storage) *eventQueue[T] {
	t := reflect.TypeFor[eventQueue[T]]()
	if q, ok := storage.singletons[t].(*eventQueue[T]); ok {
		return q
	}
	q := &eventQueue[T]{}
	storage.singletons[t] = q
	storage.queues = append(storage.queues, q)
	return q
}

// swapEvents advances every event queue by one frame.
func (s *Storage) swapEvents() {
	for _, q := range s.queues {
		q.swap()
	}
}

// Events sends and reads events of type T. Each Events value keeps its own
// read cursor, so every reader sees each event exactly once.
type Events[T any] struct {
	queue *eventQueue[T]
	seen  uint64
}

// NewEvents returns a reader/writer bound to storage.
func NewEvents[T any](storage *Storage) *Events[T] {
	e := &Events[T]{}
	e.Init(storage)
	return e
}

// Init binds the reader to storage. The Scheduler calls it on registration.
// The cursor starts after the events already queued.
func (e *Events[T]) Init(storage *Storage) {
	e.queue = queueFor[T](storage)
	e.seen = e.queue.nextSeq
}

// Send queues event.
func (e *Events[T]) Send(event T) {
	e.queue.current = append(e.queue.current, eventRecord[T]{seq: e.queue.nextSeq, event: event})
	e.queue.nextSeq++
}

// Read yields the events this reader has not seen yet and advances its cursor.
func (e *Events[T]) Read() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, buf := range [][]eventRecord[T]{e.queue.previous, e.queue.current} {
			for _, rec := range buf {
				if rec.seq < e.seen {
					continue
				}
				e.seen = rec.seq + 1
				if !yield(rec.event) {
					return
				}
			}
		}
	}
}

// Len returns how many unread events are available.
func (e *Events[T]) Len() int {
	n := 0
	for _, buf := range [][]eventRecord[T]{e.queue.previous, e.queue.current} {
		for _, rec := range buf {
			if rec.seq >= e.seen {
				n++
			}
		}
	}
	return n
}

// Drain marks every pending event as read and reports whether there were any.
func (e *Events[T]) Drain() bool {
	pending := e.Len() > 0
	e.seen = e.queue.nextSeq
	return pending
}

// SendEvent queues event on storage without holding an Events reader.
func SendEvent[T any](storage *Storage, event T) {
	q := queueFor[T](storage)
	q.current = append(q.current, eventRecord[T]{seq: q.nextSeq, event: event})
	q.nextSeq++
}
