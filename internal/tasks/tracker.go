// Package tasks tracks dispatched generation and regeneration calls.
package tasks

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a tracked task.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// maxTasks caps the in-memory log; older entries are truncated.
const maxTasks = 50

// Task is one dispatched backend call.
type Task struct {
	ID        string
	Type      string
	Action    string
	Status    Status
	Timestamp time.Time
	Error     string
	Details   string
}

// Sink receives finished tasks, e.g. for persistence.
type Sink interface {
	Record(task Task)
}

// Tracker is an append-only, capped log of tasks. It is safe for use from
// bubbletea command goroutines.
type Tracker struct {
	mu    sync.Mutex
	tasks []Task
	sink  Sink
}

// NewTracker creates an empty tracker. sink may be nil.
func NewTracker(sink Sink) *Tracker {
	return &Tracker{sink: sink}
}

// Add appends a new running task and returns its id.
func (t *Tracker) Add(taskType, action, details string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	task := Task{
		ID:        uuid.NewString(),
		Type:      taskType,
		Action:    action,
		Status:    StatusRunning,
		Timestamp: time.Now(),
		Details:   details,
	}
	t.tasks = append(t.tasks, task)
	if len(t.tasks) > maxTasks {
		t.tasks = t.tasks[len(t.tasks)-maxTasks:]
	}
	return task.ID
}

// Complete marks a task completed, optionally replacing its details.
func (t *Tracker) Complete(id, details string) {
	t.finish(id, StatusCompleted, "", details)
}

// Fail marks a task failed with the given error message.
func (t *Tracker) Fail(id, errMsg string) {
	t.finish(id, StatusFailed, errMsg, "")
}

func (t *Tracker) finish(id string, status Status, errMsg, details string) {
	t.mu.Lock()
	var finished *Task
	for i := range t.tasks {
		if t.tasks[i].ID == id {
			t.tasks[i].Status = status
			t.tasks[i].Error = errMsg
			if details != "" {
				t.tasks[i].Details = details
			}
			finished = &t.tasks[i]
			break
		}
	}
	var snapshot Task
	if finished != nil {
		snapshot = *finished
	}
	t.mu.Unlock()

	// A truncated task may already be gone; nothing to record then.
	if finished != nil && t.sink != nil {
		t.sink.Record(snapshot)
	}
}

// List returns the tracked tasks, newest first.
func (t *Tracker) List() []Task {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Task, len(t.tasks))
	for i, task := range t.tasks {
		out[len(t.tasks)-1-i] = task
	}
	return out
}

// Running returns the number of tasks still in flight.
func (t *Tracker) Running() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := 0
	for _, task := range t.tasks {
		if task.Status == StatusRunning {
			count++
		}
	}
	return count
}
