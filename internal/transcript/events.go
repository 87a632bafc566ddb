// Package transcript reads the session event log and correlates tool
// calls with their results.
package transcript

import (
	"encoding/json"
	"time"
)

// Reserved call names: TodoWrite carries the task list rather than real
// work, Task delegates to a sub-agent.
const (
	TaskListCall = "TodoWrite"
	SubagentCall = "Task"
)

// Kind distinguishes call records from result records in the shared log.
type Kind int

// Event kinds.
const (
	KindCall Kind = iota
	KindResult
)

// ToolEvent is one decoded record from the append-only event log.
type ToolEvent struct {
	Kind         Kind
	ID           string // call id, for calls
	CorrelatesTo string // referenced call id, for results
	Name         string
	Input        json.RawMessage
	IsError      bool
	Timestamp    time.Time
}

// TaskStatus is the lifecycle state of one task list item.
type TaskStatus string

// Task list item states.
const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// TaskItem is one entry in the bookkeeping call's task list payload.
type TaskItem struct {
	Content    string     `json:"content"`
	ActiveForm string     `json:"activeForm"`
	Status     TaskStatus `json:"status"`
}

// TaskList is the most recent authoritative task list.
type TaskList []TaskItem

// Progress returns completed and total item counts.
func (l TaskList) Progress() (done, total int) {
	for _, item := range l {
		if item.Status == TaskCompleted {
			done++
		}
	}
	return done, len(l)
}

// Active returns the first in-progress item, preferring its active-form
// label when present.
func (l TaskList) Active() (string, bool) {
	for _, item := range l {
		if item.Status != TaskInProgress {
			continue
		}
		if item.ActiveForm != "" {
			return item.ActiveForm, true
		}
		return item.Content, true
	}
	return "", false
}
