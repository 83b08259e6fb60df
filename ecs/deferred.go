package ecs

import "github.com/zyedidia/generic/heap"

// TaskID identifies a scheduled deferred task. Zero is never issued.
type TaskID uint64

type deferredTask struct {
	id TaskID
	at float64
	fn func(w *World)
}

// DeferredQueue runs one-shot callbacks once the world clock passes their
// fire time. Tasks are ordered by fire time, then by scheduling order.
// Cancelled tasks stay in the heap and are skipped when popped.
type DeferredQueue struct {
	heap    *heap.Heap[*deferredTask]
	pending map[TaskID]*deferredTask
	nextID  TaskID
}

func (q *DeferredQueue) init() {
	if q.heap != nil {
		return
	}
	q.heap = heap.New[*deferredTask](func(a, b *deferredTask) bool {
		if a.at != b.at {
			return a.at < b.at
		}
		return a.id < b.id
	})
	q.pending = make(map[TaskID]*deferredTask)
}

func (q *DeferredQueue) schedule(at float64, fn func(w *World)) TaskID {
	q.init()
	q.nextID++
	task := &deferredTask{id: q.nextID, at: at, fn: fn}
	q.heap.Push(task)
	q.pending[task.id] = task
	return task.id
}

// Cancel prevents a pending task from running. It reports whether the task
// was still pending.
func (q *DeferredQueue) Cancel(id TaskID) bool {
	if q == nil || q.pending == nil {
		return false
	}
	task, ok := q.pending[id]
	if !ok {
		return false
	}
	delete(q.pending, id)
	task.fn = nil
	return true
}

// Pending reports whether the task has neither fired nor been cancelled.
func (q *DeferredQueue) Pending(id TaskID) bool {
	if q == nil || q.pending == nil {
		return false
	}
	_, ok := q.pending[id]
	return ok
}

// Len returns the number of pending tasks.
func (q *DeferredQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.pending)
}

// Clear drops every pending task without running it.
func (q *DeferredQueue) Clear() {
	if q == nil {
		return
	}
	q.heap = nil
	q.pending = nil
}

// advance runs every task due at or before now. Tasks scheduled by a running
// task are eligible in the same pass when already due.
func (q *DeferredQueue) advance(w *World, now float64) {
	if q == nil || q.heap == nil {
		return
	}
	for q.heap != nil {
		next, ok := q.heap.Peek()
		if !ok || next.at > now {
			return
		}
		q.heap.Pop()
		if next.fn == nil {
			continue
		}
		delete(q.pending, next.id)
		next.fn(w)
	}
}
