// Package task defines the task entity and the filter/sort engine that
// operates on collections of tasks.
package task

import (
	"fmt"
	"strings"

	"github.com/M-Chethipuzha/Task-Tracker/internal/dateutil"
)

// Status is a task's workflow state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Valid reports whether s is one of the recognized statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Priority is a task's urgency level.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the recognized priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Task is a single tracked task. IDs are assigned by the store and are
// immutable after creation. DueDate is either empty (no due date) or a
// valid YYYY-MM-DD string; the constructor and setters maintain that.
type Task struct {
	ID          int      `json:"id"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"due_date"`
	CreatedDate string   `json:"created_date"`
}

// New builds a task, sanitizing its inputs rather than failing: an
// invalid priority falls back to medium, an empty created date becomes
// today, and an invalid due date is cleared. Status always starts as
// pending.
func New(id int, description string, priority Priority, dueDate, createdDate string) Task {
	t := Task{
		ID:          id,
		Description: description,
		Status:      StatusPending,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedDate: createdDate,
	}
	if !t.Priority.Valid() {
		t.Priority = PriorityMedium
	}
	if t.CreatedDate == "" {
		t.CreatedDate = dateutil.CurrentDate()
	}
	if t.DueDate != "" && !dateutil.IsValidDate(t.DueDate) {
		t.DueDate = ""
	}
	return t
}

// SetStatus applies s, falling back to pending if s is not a recognized
// status. Callers that need hard validation must check Valid first.
func (t *Task) SetStatus(s Status) {
	if s.Valid() {
		t.Status = s
		return
	}
	t.Status = StatusPending
}

// SetPriority applies p, falling back to medium if p is not a recognized
// priority.
func (t *Task) SetPriority(p Priority) {
	if p.Valid() {
		t.Priority = p
		return
	}
	t.Priority = PriorityMedium
}

// SetDueDate applies d if it is empty or a valid date; otherwise the due
// date is left unchanged. Reports whether the value was applied.
func (t *Task) SetDueDate(d string) bool {
	if d == "" || dateutil.IsValidDate(d) {
		t.DueDate = d
		return true
	}
	return false
}

// SetCreatedDate applies d only if it is a valid date.
func (t *Task) SetCreatedDate(d string) {
	if dateutil.IsValidDate(d) {
		t.CreatedDate = d
	}
}

// IsOverdue reports whether the task has a due date chronologically
// before today.
func (t Task) IsOverdue() bool {
	if t.DueDate == "" {
		return false
	}
	return dateutil.IsDateBefore(t.DueDate, dateutil.CurrentDate())
}

// IsDueToday reports whether the task's due date equals today's date.
func (t Task) IsDueToday() bool {
	if t.DueDate == "" {
		return false
	}
	return dateutil.IsDateEqual(t.DueDate, dateutil.CurrentDate())
}

// DaysUntilDue returns the signed number of days from today to the due
// date, or -1 if the task has no due date.
func (t Task) DaysUntilDue() int {
	if t.DueDate == "" {
		return -1
	}
	return dateutil.DaysBetween(dateutil.CurrentDate(), t.DueDate)
}

// MatchesKeyword reports whether keyword occurs in the description,
// case-insensitively.
func (t Task) MatchesKeyword(keyword string) bool {
	return strings.Contains(strings.ToLower(t.Description), strings.ToLower(keyword))
}

// String renders the task on one line for logs and error messages.
func (t Task) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID: %d, Description: %s, Status: %s, Priority: %s", t.ID, t.Description, t.Status, t.Priority)
	if t.DueDate != "" {
		fmt.Fprintf(&b, ", Due: %s", t.DueDate)
	}
	fmt.Fprintf(&b, ", Created: %s", t.CreatedDate)
	return b.String()
}
