package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/M-Chethipuzha/Task-Tracker/internal/store"
	"github.com/M-Chethipuzha/Task-Tracker/internal/task"
)

func writeTasksFile(t *testing.T, tasks []task.Task) string {
	t.Helper()
	data, err := store.SerializeTasks(tasks)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTUIModelRefreshAndView(t *testing.T) {
	future := time.Now().AddDate(0, 0, 5).Format("2006-01-02")
	past := time.Now().AddDate(0, 0, -2).Format("2006-01-02")

	tasks := []task.Task{
		task.New(1, "Write report", task.PriorityHigh, future, ""),
		task.New(2, "Pay invoice", task.PriorityMedium, past, ""),
		task.New(3, "Archive notes", task.PriorityLow, "", ""),
	}
	tasks[2].SetStatus(task.StatusDone)

	m := newTUIModel(writeTasksFile(t, tasks))
	m.refresh()

	if m.loadErr != nil {
		t.Fatalf("refresh: %v", m.loadErr)
	}
	if len(m.tasks) != 3 {
		t.Fatalf("loaded %d tasks, want 3", len(m.tasks))
	}

	view := m.View()
	if !strings.Contains(view, "Total 3") {
		t.Errorf("summary missing, view:\n%s", view)
	}
	if !strings.Contains(view, "Overdue 1") {
		t.Errorf("overdue count missing, view:\n%s", view)
	}
	if !strings.Contains(view, "Write report") {
		t.Error("task line missing")
	}
}

func TestTUIModelMissingFileIsEmpty(t *testing.T) {
	m := newTUIModel(filepath.Join(t.TempDir(), "absent.json"))
	m.refresh()

	if m.loadErr != nil {
		t.Fatalf("missing file should not be an error: %v", m.loadErr)
	}
	if !strings.Contains(m.View(), "No tasks to show.") {
		t.Error("empty view missing placeholder")
	}
}

func TestTUIModelStatusFilterKeys(t *testing.T) {
	tasks := []task.Task{
		task.New(1, "Pending thing", task.PriorityMedium, "", ""),
		task.New(2, "Done thing", task.PriorityMedium, "", ""),
	}
	tasks[1].SetStatus(task.StatusDone)

	m := newTUIModel(writeTasksFile(t, tasks))
	m.refresh()

	m.Update(keyMsg("p"))
	if view := m.View(); strings.Contains(view, "Done thing") {
		t.Error("done task visible under pending filter")
	}

	m.Update(keyMsg("d"))
	if view := m.View(); strings.Contains(view, "Pending thing") {
		t.Error("pending task visible under done filter")
	}

	m.Update(keyMsg("a"))
	view := m.View()
	if !strings.Contains(view, "Pending thing") || !strings.Contains(view, "Done thing") {
		t.Error("all-tasks view should show both")
	}
}

func TestTUIModelOverdueToggle(t *testing.T) {
	past := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	tasks := []task.Task{
		task.New(1, "Late one", task.PriorityHigh, past, ""),
		task.New(2, "Fine one", task.PriorityLow, "", ""),
	}

	m := newTUIModel(writeTasksFile(t, tasks))
	m.refresh()

	m.Update(keyMsg("o"))
	if view := m.View(); strings.Contains(view, "Fine one") {
		t.Error("non-overdue task visible with overdue-only on")
	}

	m.Update(keyMsg("o"))
	if view := m.View(); !strings.Contains(view, "Fine one") {
		t.Error("overdue-only toggle did not clear")
	}
}

func TestTUIModelQuitKeys(t *testing.T) {
	m := newTUIModel(filepath.Join(t.TempDir(), "tasks.json"))

	for _, key := range []string{"q"} {
		_, cmd := m.Update(keyMsg(key))
		if cmd == nil {
			t.Errorf("key %q should quit", key)
		}
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Error("esc should quit")
	}
}

func TestTUIModelHelpToggle(t *testing.T) {
	m := newTUIModel(filepath.Join(t.TempDir(), "tasks.json"))
	m.refresh()

	m.Update(keyMsg("?"))
	if !strings.Contains(m.View(), "toggle this help") {
		t.Error("help view missing after toggle")
	}
	m.Update(keyMsg("?"))
	if strings.Contains(m.View(), "toggle this help") {
		t.Error("help view still shown after second toggle")
	}
}

func TestTUIModelTickRefreshes(t *testing.T) {
	path := writeTasksFile(t, []task.Task{task.New(1, "First", task.PriorityMedium, "", "")})
	m := newTUIModel(path)
	m.refresh()

	updated, err := store.SerializeTasks([]task.Task{
		task.New(1, "First", task.PriorityMedium, "", ""),
		task.New(2, "Second", task.PriorityMedium, "", ""),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, updated, 0644); err != nil {
		t.Fatal(err)
	}

	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if len(m.tasks) != 2 {
		t.Errorf("tick did not pick up file change, have %d tasks", len(m.tasks))
	}
}
