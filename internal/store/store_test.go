package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/M-Chethipuzha/Task-Tracker/internal/dateutil"
	"github.com/M-Chethipuzha/Task-Tracker/internal/task"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel)
	return Open(path, logger)
}

func TestOpenMissingFile(t *testing.T) {
	s := testStore(t)
	if s.Count() != 0 {
		t.Errorf("Count = %d, want 0 for missing file", s.Count())
	}
}

func TestOpenMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel)

	s := Open(path, logger)
	if s.Count() != 0 {
		t.Errorf("Count = %d, want 0 for malformed file", s.Count())
	}
}

func TestAddTaskDefaults(t *testing.T) {
	s := testStore(t)

	id, err := s.AddTask("Buy milk", "", "")
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if id != 1 {
		t.Errorf("id = %d, want 1", id)
	}

	got, ok := s.FindTask(id)
	if !ok {
		t.Fatal("task not found after add")
	}
	if got.Priority != task.PriorityMedium {
		t.Errorf("Priority = %q, want medium", got.Priority)
	}
	if got.Status != task.StatusPending {
		t.Errorf("Status = %q, want pending", got.Status)
	}
	if got.DueDate != "" {
		t.Errorf("DueDate = %q, want empty", got.DueDate)
	}
	if got.CreatedDate != dateutil.CurrentDate() {
		t.Errorf("CreatedDate = %q, want today", got.CreatedDate)
	}
}

func TestAddTaskEmptyDescription(t *testing.T) {
	s := testStore(t)
	if _, err := s.AddTask("", "", ""); err == nil {
		t.Error("empty description should be rejected")
	}
	if s.Count() != 0 {
		t.Errorf("Count = %d, want 0 after rejected add", s.Count())
	}
}

func TestAddTaskInvalidDueDateCleared(t *testing.T) {
	s := testStore(t)
	id, err := s.AddTask("February oddity", "", "2025-02-30")
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	got, _ := s.FindTask(id)
	if got.DueDate != "" {
		t.Errorf("DueDate = %q, want cleared", got.DueDate)
	}
}

func TestIDsNeverReused(t *testing.T) {
	s := testStore(t)
	for _, desc := range []string{"one", "two", "three"} {
		if _, err := s.AddTask(desc, "", ""); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.DeleteTask(2); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	id, err := s.AddTask("four", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if id != 4 {
		t.Errorf("new id = %d, want 4 (never reuse 2)", id)
	}
}

func TestIDsResumeAfterReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel)

	s := Open(path, logger)
	if _, err := s.AddTask("one", "", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddTask("two", "", ""); err != nil {
		t.Fatal(err)
	}

	reopened := Open(path, logger)
	id, err := reopened.AddTask("three", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if id != 3 {
		t.Errorf("id after reopen = %d, want 3", id)
	}
}

func TestUpdateTask(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		s := testStore(t)
		_, err := s.UpdateTask(42, Update{Description: "x"})
		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("err = %v, want ErrTaskNotFound", err)
		}
	})

	t.Run("applies non-empty fields", func(t *testing.T) {
		s := testStore(t)
		id, _ := s.AddTask("initial", "", "")

		changed, err := s.UpdateTask(id, Update{
			Description: "rewritten",
			Status:      "in_progress",
			Priority:    "high",
			DueDate:     "2025-12-01",
		})
		if err != nil {
			t.Fatalf("UpdateTask: %v", err)
		}
		if !changed {
			t.Error("changed = false, want true")
		}

		got, _ := s.FindTask(id)
		if got.Description != "rewritten" || got.Status != task.StatusInProgress ||
			got.Priority != task.PriorityHigh || got.DueDate != "2025-12-01" {
			t.Errorf("task after update = %+v", got)
		}
	})

	t.Run("empty fields unchanged", func(t *testing.T) {
		s := testStore(t)
		id, _ := s.AddTask("keep me", task.PriorityHigh, "2025-12-01")

		changed, err := s.UpdateTask(id, Update{Status: "done"})
		if err != nil || !changed {
			t.Fatalf("UpdateTask = (%v, %v)", changed, err)
		}

		got, _ := s.FindTask(id)
		if got.Description != "keep me" || got.Priority != task.PriorityHigh || got.DueDate != "2025-12-01" {
			t.Errorf("untouched fields changed: %+v", got)
		}
	})

	t.Run("invalid status aborts without status change", func(t *testing.T) {
		s := testStore(t)
		id, _ := s.AddTask("x", "", "")

		_, err := s.UpdateTask(id, Update{Status: "bogus"})
		if err == nil {
			t.Fatal("invalid status should fail")
		}
		got, _ := s.FindTask(id)
		if got.Status != task.StatusPending {
			t.Errorf("Status = %q, want unchanged pending", got.Status)
		}
	})

	t.Run("invalid priority aborts", func(t *testing.T) {
		s := testStore(t)
		id, _ := s.AddTask("x", "", "")

		_, err := s.UpdateTask(id, Update{Priority: "urgent"})
		if err == nil {
			t.Fatal("invalid priority should fail")
		}
	})

	t.Run("invalid due date aborts", func(t *testing.T) {
		s := testStore(t)
		id, _ := s.AddTask("x", "", "")

		_, err := s.UpdateTask(id, Update{DueDate: "2025-02-30"})
		if err == nil {
			t.Fatal("invalid due date should fail")
		}
	})

	t.Run("earlier fields stay applied on later failure", func(t *testing.T) {
		s := testStore(t)
		id, _ := s.AddTask("before", "", "")

		_, err := s.UpdateTask(id, Update{Description: "after", Status: "bogus"})
		if err == nil {
			t.Fatal("invalid status should fail")
		}
		got, _ := s.FindTask(id)
		if got.Description != "after" {
			t.Errorf("Description = %q, want partially-applied %q", got.Description, "after")
		}
	})

	t.Run("all empty reports no change", func(t *testing.T) {
		s := testStore(t)
		id, _ := s.AddTask("x", "", "")

		changed, err := s.UpdateTask(id, Update{})
		if err != nil {
			t.Fatalf("UpdateTask: %v", err)
		}
		if changed {
			t.Error("changed = true, want false for empty update")
		}
	})
}

func TestDeleteTask(t *testing.T) {
	s := testStore(t)
	id, _ := s.AddTask("doomed", "", "")

	if err := s.DeleteTask(id); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if _, ok := s.FindTask(id); ok {
		t.Error("task still present after delete")
	}
	if !errors.Is(s.DeleteTask(id), ErrTaskNotFound) {
		t.Error("second delete should report not found")
	}
}

func TestWriteThroughPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel)

	s := Open(path, logger)
	id, _ := s.AddTask("durable", task.PriorityLow, "2025-12-01")
	if _, err := s.UpdateTask(id, Update{Status: "done"}); err != nil {
		t.Fatal(err)
	}

	// A fresh store sees every mutation without any explicit flush.
	reopened := Open(path, logger)
	got, ok := reopened.FindTask(id)
	if !ok {
		t.Fatal("task missing after reopen")
	}
	if got.Description != "durable" || got.Status != task.StatusDone ||
		got.Priority != task.PriorityLow || got.DueDate != "2025-12-01" {
		t.Errorf("reopened task = %+v", got)
	}
}

func TestQuerySurface(t *testing.T) {
	s := testStore(t)
	today := dateutil.CurrentDate()
	past := time.Now().AddDate(0, 0, -2).Format("2006-01-02")
	future := time.Now().AddDate(0, 0, 5).Format("2006-01-02")

	mustAdd := func(desc string, p task.Priority, due string) int {
		t.Helper()
		id, err := s.AddTask(desc, p, due)
		if err != nil {
			t.Fatal(err)
		}
		return id
	}

	a := mustAdd("write report", task.PriorityHigh, past)
	b := mustAdd("review report", task.PriorityLow, today)
	c := mustAdd("plan offsite", task.PriorityLow, future)
	d := mustAdd("idle chore", "", "")
	if _, err := s.UpdateTask(b, Update{Status: "done"}); err != nil {
		t.Fatal(err)
	}

	if got := s.AllTasks(); len(got) != 4 {
		t.Errorf("AllTasks len = %d, want 4", len(got))
	}
	if got := s.TasksByStatus(task.StatusDone); len(got) != 1 || got[0].ID != b {
		t.Errorf("TasksByStatus(done) = %v", got)
	}
	if got := s.TasksByPriority(task.PriorityLow); len(got) != 2 {
		t.Errorf("TasksByPriority(low) len = %d, want 2", len(got))
	}
	if got := s.SearchByKeyword("REPORT"); len(got) != 2 {
		t.Errorf("SearchByKeyword len = %d, want 2", len(got))
	}
	if got := s.TasksDueBy(today); len(got) != 2 {
		t.Errorf("TasksDueBy(today) len = %d, want 2 (past and today)", len(got))
	}
	if got := s.OverdueTasks(); len(got) != 1 || got[0].ID != a {
		t.Errorf("OverdueTasks = %v", got)
	}
	if got := s.TasksDueToday(); len(got) != 1 || got[0].ID != b {
		t.Errorf("TasksDueToday = %v", got)
	}
	if got := s.TasksFiltered(task.Criteria{Keyword: "report", Status: task.StatusPending}); len(got) != 1 || got[0].ID != a {
		t.Errorf("TasksFiltered = %v", got)
	}
	if got := s.TasksSorted("due_date", true); got[len(got)-1].ID != d {
		t.Errorf("TasksSorted should place undated task last, got %v", got)
	}
	got := s.TasksFilteredAndSorted("priority", true, task.Criteria{Status: task.StatusPending})
	if len(got) != 3 || got[0].ID != c || got[2].ID != a {
		t.Errorf("TasksFilteredAndSorted = %v", got)
	}
}

func TestGetAllTasksIdempotent(t *testing.T) {
	s := testStore(t)
	if _, err := s.AddTask("same twice", "", ""); err != nil {
		t.Fatal(err)
	}

	first := s.AllTasks()
	second := s.AllTasks()
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("element %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}

	// Mutating the returned slice must not affect the store.
	first[0].Description = "hijacked"
	if got, _ := s.FindTask(first[0].ID); got.Description == "hijacked" {
		t.Error("AllTasks leaked a mutable reference")
	}
}
