package store

import (
	"encoding/json"
	"fmt"

	"github.com/M-Chethipuzha/Task-Tracker/internal/task"
)

// ParseTasks decodes a tasks file. The outer document must be a JSON
// array; entries inside it are decoded tolerantly. Entries that are not
// objects, have a non-positive id, or lack a description are skipped and
// reported back as warnings rather than failing the whole file. A
// missing priority defaults to medium and unrecognized enum values are
// sanitized the same way construction does.
func ParseTasks(data []byte) ([]task.Task, []string, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse tasks file: %w", err)
	}

	tasks := make([]task.Task, 0, len(raw))
	var warnings []string
	for i, entry := range raw {
		var t task.Task
		if err := json.Unmarshal(entry, &t); err != nil {
			warnings = append(warnings, fmt.Sprintf("tasks[%d]: skipped malformed entry: %v", i, err))
			continue
		}
		if t.ID <= 0 {
			warnings = append(warnings, fmt.Sprintf("tasks[%d]: skipped entry with invalid id %d", i, t.ID))
			continue
		}
		if t.Description == "" {
			warnings = append(warnings, fmt.Sprintf("tasks[%d]: skipped entry with empty description", i))
			continue
		}
		if !t.Priority.Valid() {
			t.Priority = task.PriorityMedium
		}
		if !t.Status.Valid() {
			t.Status = task.StatusPending
		}
		tasks = append(tasks, t)
	}

	return tasks, warnings, nil
}

// SerializeTasks encodes the task list as a pretty-printed JSON array
// with a trailing newline. Field order is fixed by the Task struct tags,
// so the output is stable for identical inputs.
func SerializeTasks(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return append(data, '\n'), nil
}
