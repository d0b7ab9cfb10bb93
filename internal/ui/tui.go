package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/M-Chethipuzha/Task-Tracker/internal/store"
	"github.com/M-Chethipuzha/Task-Tracker/internal/task"
)

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RunTUI starts the live dashboard over the tasks file at path. The
// dashboard is read-only: it re-reads the file once a second so changes
// made by concurrent CLI invocations show up.
func RunTUI(ctx context.Context, path string) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newTUIModel(path)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	path         string
	tickInterval time.Duration
	loadErr      error
	tasks        []task.Task
	filter       task.Status // empty means no status filter
	overdueOnly  bool
	showHelp     bool
}

type tickMsg time.Time

func newTUIModel(path string) *tuiModel {
	return &tuiModel{
		path:         path,
		tickInterval: time.Second,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.tasks = nil
			m.loadErr = nil
			return
		}
		m.loadErr = err
		return
	}
	tasks, _, err := store.ParseTasks(data)
	if err != nil {
		m.loadErr = err
		return
	}
	m.tasks = tasks
	m.loadErr = nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "a":
			m.filter = ""
			m.overdueOnly = false
		case "p":
			m.filter = task.StatusPending
			m.overdueOnly = false
		case "i":
			m.filter = task.StatusInProgress
			m.overdueOnly = false
		case "d":
			m.filter = task.StatusDone
			m.overdueOnly = false
		case "o":
			m.overdueOnly = !m.overdueOnly
		case "?":
			m.showHelp = !m.showHelp
		}
	}
	return m, nil
}

var (
	tuiHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	tuiAlertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	tuiDimStyle    = lipgloss.NewStyle().Faint(true)
	tuiDoneStyle   = lipgloss.NewStyle().Faint(true).Strikethrough(true)
)

func (m *tuiModel) View() string {
	var b strings.Builder

	b.WriteString(tuiHeaderStyle.Render("Task Tracker"))
	b.WriteString("  ")
	b.WriteString(tuiDimStyle.Render(m.path))
	b.WriteString("\n\n")

	if m.loadErr != nil {
		b.WriteString(tuiAlertStyle.Render(fmt.Sprintf("cannot read tasks file: %v", m.loadErr)))
		b.WriteString("\n")
		return b.String()
	}

	if m.showHelp {
		b.WriteString(m.helpView())
		return b.String()
	}

	b.WriteString(m.summaryLine())
	b.WriteString("\n\n")

	visible := m.visibleTasks()
	if len(visible) == 0 {
		b.WriteString(tuiDimStyle.Render("No tasks to show."))
		b.WriteString("\n")
	} else {
		for _, t := range visible {
			b.WriteString(m.taskLine(t))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(tuiDimStyle.Render("a all  p pending  i in progress  d done  o overdue  ? help  q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *tuiModel) summaryLine() string {
	counts := map[task.Status]int{}
	overdue, dueToday := 0, 0
	for _, t := range m.tasks {
		counts[t.Status]++
		if t.IsOverdue() {
			overdue++
		}
		if t.IsDueToday() {
			dueToday++
		}
	}

	line := fmt.Sprintf("Total %d  |  Pending %d  |  Active %d  |  Done %d",
		len(m.tasks), counts[task.StatusPending], counts[task.StatusInProgress], counts[task.StatusDone])
	if overdue > 0 {
		line += "  |  " + tuiAlertStyle.Render(fmt.Sprintf("Overdue %d", overdue))
	}
	if dueToday > 0 {
		line += "  |  " + tuiHeaderStyle.Render(fmt.Sprintf("Due today %d", dueToday))
	}
	if m.filter != "" {
		line += tuiDimStyle.Render(fmt.Sprintf("   (filter: %s)", m.filter))
	}
	if m.overdueOnly {
		line += tuiDimStyle.Render("   (overdue only)")
	}
	return line
}

func (m *tuiModel) visibleTasks() []task.Task {
	visible := task.FilterByCriteria(m.tasks, task.Criteria{
		Status:      m.filter,
		OverdueOnly: m.overdueOnly,
	})
	return task.SortByDueDate(visible, true)
}

func (m *tuiModel) taskLine(t task.Task) string {
	line := fmt.Sprintf("%3d %s %s %s", t.ID, PrioritySymbol(t.Priority), StatusSymbol(t.Status), t.Description)
	switch {
	case t.Status == task.StatusDone:
		return tuiDoneStyle.Render(line)
	case t.IsOverdue():
		return tuiAlertStyle.Render(line + "  (overdue: " + t.DueDate + ")")
	case t.DueDate != "":
		return line + tuiDimStyle.Render("  (due: "+t.DueDate+")")
	default:
		return line
	}
}

func (m *tuiModel) helpView() string {
	return `Keys

  a       show all tasks
  p       show pending tasks
  i       show in-progress tasks
  d       show done tasks
  o       toggle overdue-only
  ?       toggle this help
  q, esc  quit

The dashboard is read-only and refreshes every second.
`
}
