// Package schedule provides cancelable delayed callbacks.
//
// Queue is driven by the caller's delta time, so callbacks run on the
// caller's goroutine and fire deterministically under fixed steps.
package schedule

import (
	"sort"
	"time"
)

// Task is a handle to a scheduled callback.
type Task interface {
	// Cancel prevents the callback from running. It reports whether the
	// task was still pending.
	Cancel() bool
	// Done reports whether the task has fired or been canceled.
	Done() bool
}

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	After(d time.Duration, fn func()) Task
}

// Advancer is implemented by schedulers that are advanced by the caller.
type Advancer interface {
	Advance(dt time.Duration) int
}

// Queue is a dt-driven Scheduler. It is not safe for concurrent use.
type Queue struct {
	now   time.Duration
	seq   uint64
	tasks []*queuedTask
}

type queuedTask struct {
	at   time.Duration
	seq  uint64
	fn   func()
	done bool
}

func (t *queuedTask) Cancel() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

func (t *queuedTask) Done() bool {
	return t.done
}

// NewQueue creates an empty queue at time zero.
func NewQueue() *Queue {
	return &Queue{}
}

// After schedules fn to run once the queue has advanced by d.
// A non-positive d fires on the next Advance.
func (q *Queue) After(d time.Duration, fn func()) Task {
	if d < 0 {
		d = 0
	}
	q.seq++
	t := &queuedTask{at: q.now + d, seq: q.seq, fn: fn}
	q.tasks = append(q.tasks, t)
	return t
}

// Advance moves the queue clock forward and runs every due task in
// deadline order. It returns the number of callbacks run.
// Tasks scheduled by a callback are not run until the next Advance.
func (q *Queue) Advance(dt time.Duration) int {
	if dt > 0 {
		q.now += dt
	}

	var due, pending []*queuedTask
	for _, t := range q.tasks {
		switch {
		case t.done:
		case t.at <= q.now:
			due = append(due, t)
		default:
			pending = append(pending, t)
		}
	}
	q.tasks = pending

	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})

	fired := 0
	for _, t := range due {
		// An earlier callback may have canceled this one
		if t.done {
			continue
		}
		t.done = true
		if t.fn != nil {
			t.fn()
		}
		fired++
	}
	return fired
}

// Pending returns the number of tasks that have neither fired nor been canceled.
func (q *Queue) Pending() int {
	n := 0
	for _, t := range q.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

// Clear cancels every pending task.
func (q *Queue) Clear() {
	for _, t := range q.tasks {
		t.done = true
	}
	q.tasks = nil
}
