package formsubmit

import (
	"sync"
	"time"
)

type taskState int

const (
	taskPending taskState = iota
	taskFired
	taskCancelled
)

// Task is a one-shot delayed callback that can be cancelled until it fires.
type Task struct {
	mu    sync.Mutex
	state taskState
	timer *time.Timer
}

// Schedule runs fn once after d unless the task is cancelled first.
func Schedule(d time.Duration, fn func()) *Task {
	t := &Task{}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		if t.state != taskPending {
			t.mu.Unlock()
			return
		}
		t.state = taskFired
		t.mu.Unlock()
		fn()
	})
	return t
}

// Cancel stops the task. It reports whether the callback was prevented.
func (t *Task) Cancel() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != taskPending {
		return false
	}
	t.state = taskCancelled
	t.timer.Stop()
	return true
}

func (t *Task) Pending() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == taskPending
}

func (t *Task) Fired() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == taskFired
}
