// Package store owns the authoritative in-memory task collection and
// keeps the tasks file on disk as a write-through mirror of it. The file
// is read once when the store opens; every mutation rewrites it in full
// before returning.
package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/M-Chethipuzha/Task-Tracker/internal/dateutil"
	"github.com/M-Chethipuzha/Task-Tracker/internal/task"
)

// ErrTaskNotFound is returned by operations that reference an id with no
// matching task.
var ErrTaskNotFound = errors.New("task not found")

// Store holds the task collection. It is not safe for concurrent use;
// the tracker is a single-threaded, single-user program.
type Store struct {
	path   string
	tasks  []task.Task
	nextID int
	logger *log.Logger
}

// Open loads the tasks file at path into a new store. A missing file
// means an empty task list. A malformed file is reported through the
// logger and the store starts empty rather than failing.
func Open(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{
		path:   path,
		nextID: 1,
		logger: logger,
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("cannot read tasks file, starting empty", "path", s.path, "err", err)
		}
		return
	}

	tasks, warnings, err := ParseTasks(data)
	if err != nil {
		s.logger.Warn("malformed tasks file, starting empty", "path", s.path, "err", err)
		return
	}
	for _, w := range warnings {
		s.logger.Warn(w, "path", s.path)
	}

	s.tasks = tasks
	for _, t := range s.tasks {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
}

// save rewrites the tasks file in full. On failure the in-memory state
// stays correct; the unsaved change is simply not durable.
func (s *Store) save() error {
	data, err := SerializeTasks(s.tasks)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}
	return nil
}

// Path returns the tasks file path backing this store.
func (s *Store) Path() string {
	return s.path
}

// AddTask creates a task with the next sequential id and persists the
// collection. IDs are never reused, even after deletes. An empty
// description is rejected. An invalid due date is cleared with a warning
// and the task is still created.
func (s *Store) AddTask(description string, priority task.Priority, dueDate string) (int, error) {
	if description == "" {
		return 0, errors.New("task description cannot be empty")
	}

	if dueDate != "" && !dateutil.IsValidDate(dueDate) {
		s.logger.Warn("invalid due date, cleared", "due_date", dueDate)
	}

	id := s.nextID
	s.nextID++
	s.tasks = append(s.tasks, task.New(id, description, priority, dueDate, ""))

	if err := s.save(); err != nil {
		s.logger.Error("task added but not saved", "id", id, "err", err)
		return id, err
	}
	return id, nil
}

// Update carries the optional fields for UpdateTask. Empty fields are
// left unchanged on the task. Status, priority and due date arrive as
// raw strings because validating them is this operation's job.
type Update struct {
	Description string
	Status      string
	Priority    string
	DueDate     string
}

// UpdateTask applies the non-empty fields of upd to the task with the
// given id, in the fixed order description, status, priority, due date.
// The description is accepted unconditionally; the other fields are
// validated and the operation aborts on the first invalid one, leaving
// any fields already applied in place but skipping the persist. Reports
// whether at least one field changed.
func (s *Store) UpdateTask(id int, upd Update) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, fmt.Errorf("%w: id %d", ErrTaskNotFound, id)
	}
	t := &s.tasks[i]

	updated := false

	if upd.Description != "" {
		t.Description = upd.Description
		updated = true
	}

	if upd.Status != "" {
		status := task.Status(upd.Status)
		if !status.Valid() {
			return false, fmt.Errorf("invalid status %q, valid statuses are: pending, in_progress, done", upd.Status)
		}
		t.SetStatus(status)
		updated = true
	}

	if upd.Priority != "" {
		priority := task.Priority(upd.Priority)
		if !priority.Valid() {
			return false, fmt.Errorf("invalid priority %q, valid priorities are: high, medium, low", upd.Priority)
		}
		t.SetPriority(priority)
		updated = true
	}

	if upd.DueDate != "" {
		if !dateutil.IsValidDate(upd.DueDate) {
			return false, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", upd.DueDate)
		}
		t.SetDueDate(upd.DueDate)
		updated = true
	}

	if updated {
		if err := s.save(); err != nil {
			s.logger.Error("task updated but not saved", "id", id, "err", err)
			return true, err
		}
	}
	return updated, nil
}

// DeleteTask removes the task with the given id and persists the
// collection.
func (s *Store) DeleteTask(id int) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrTaskNotFound, id)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)

	if err := s.save(); err != nil {
		s.logger.Error("task deleted but not saved", "id", id, "err", err)
		return err
	}
	return nil
}

// FindTask returns a copy of the task with the given id. Mutation goes
// through UpdateTask only; no caller ever holds a live reference into
// the collection.
func (s *Store) FindTask(id int) (task.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.tasks[i], true
}

// indexOf returns the position of the task with the given id, or -1.
func (s *Store) indexOf(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// AllTasks returns a copy of the full collection in insertion order.
func (s *Store) AllTasks() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Count returns the number of tasks in the store.
func (s *Store) Count() int {
	return len(s.tasks)
}

// TasksByStatus returns the tasks with the given status.
func (s *Store) TasksByStatus(status task.Status) []task.Task {
	return task.FilterByStatus(s.AllTasks(), status)
}

// TasksByPriority returns the tasks with the given priority.
func (s *Store) TasksByPriority(priority task.Priority) []task.Task {
	return task.FilterByPriority(s.AllTasks(), priority)
}

// SearchByKeyword returns the tasks whose description contains keyword.
func (s *Store) SearchByKeyword(keyword string) []task.Task {
	return task.FilterByKeyword(s.AllTasks(), keyword)
}

// TasksDueBy returns the tasks with a due date on or before date.
func (s *Store) TasksDueBy(date string) []task.Task {
	var out []task.Task
	for _, t := range s.tasks {
		if t.DueDate == "" {
			continue
		}
		if dateutil.IsDateEqual(t.DueDate, date) || dateutil.IsDateBefore(t.DueDate, date) {
			out = append(out, t)
		}
	}
	return out
}

// OverdueTasks returns the tasks with a due date in the past.
func (s *Store) OverdueTasks() []task.Task {
	return task.FilterOverdue(s.AllTasks())
}

// TasksDueToday returns the tasks due today.
func (s *Store) TasksDueToday() []task.Task {
	return task.FilterDueToday(s.AllTasks())
}

// TasksFiltered returns the tasks matching all supplied criteria.
func (s *Store) TasksFiltered(c task.Criteria) []task.Task {
	return task.FilterByCriteria(s.AllTasks(), c)
}

// TasksSorted returns all tasks ordered by the given field. An unknown
// field returns the collection in insertion order.
func (s *Store) TasksSorted(field string, ascending bool) []task.Task {
	return task.SortBy(s.AllTasks(), field, ascending)
}

// TasksFilteredAndSorted filters by c, then sorts by field if non-empty.
func (s *Store) TasksFilteredAndSorted(field string, ascending bool, c task.Criteria) []task.Task {
	return task.FilterAndSort(s.AllTasks(), field, ascending, c)
}
