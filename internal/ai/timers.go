package ai

import (
	"container/heap"
	"log/slog"
)

// TaskID identifies a scheduled task for cancellation.
type TaskID uint64

// task is a deferred action due at a simulation time.
type task struct {
	id       TaskID
	deadline float64
	name     string
	fn       func()
}

// taskHeap orders tasks by deadline; ties run in scheduling order.
type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].deadline == h[j].deadline {
		return h[i].id < h[j].id
	}
	return h[i].deadline < h[j].deadline
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)   { *h = append(*h, x.(*task)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// TaskQueue runs deferred actions against simulation time.
// It is advanced once per frame by the frame loop, so all tasks run inside the
// single-threaded tick. Not safe for concurrent use.
type TaskQueue struct {
	now       float64
	lastID    TaskID
	tasks     taskHeap
	cancelled map[TaskID]struct{}
}

// NewTaskQueue creates an empty queue at simulation time 0.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{cancelled: make(map[TaskID]struct{})}
}

// Now returns current simulation time in seconds.
func (q *TaskQueue) Now() float64 {
	return q.now
}

// After schedules fn to run once delay seconds of simulation time have passed.
func (q *TaskQueue) After(delay float64, name string, fn func()) TaskID {
	q.lastID++
	heap.Push(&q.tasks, &task{
		id:       q.lastID,
		deadline: q.now + max(delay, 0),
		name:     name,
		fn:       fn,
	})
	return q.lastID
}

// Cancel drops a pending task. Unknown or already executed ids are ignored.
func (q *TaskQueue) Cancel(id TaskID) {
	for _, t := range q.tasks {
		if t.id == id {
			q.cancelled[id] = struct{}{}
			return
		}
	}
}

// Advance moves simulation time forward by dt and runs every due task in
// deadline order. Tasks scheduled by a running task are run in the same call
// if they are already due. Returns number of executed tasks.
func (q *TaskQueue) Advance(dt float64) int {
	q.now += dt

	ran := 0
	for len(q.tasks) > 0 && q.tasks[0].deadline <= q.now {
		t := heap.Pop(&q.tasks).(*task)
		if _, ok := q.cancelled[t.id]; ok {
			delete(q.cancelled, t.id)
			continue
		}
		t.fn()
		ran++

		if IsDebugEnabled() {
			slog.Debug("task executed",
				"task", t.name,
				"deadline", t.deadline,
				"now", q.now)
		}
	}
	return ran
}

// Len returns number of pending (not cancelled) tasks.
func (q *TaskQueue) Len() int {
	return len(q.tasks) - len(q.cancelled)
}
