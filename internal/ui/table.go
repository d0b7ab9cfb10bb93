// Package ui renders tasks to the terminal: the column view used by the
// CLI, the interactive shell, and the live dashboard.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/M-Chethipuzha/Task-Tracker/internal/task"
)

const descriptionWidth = 24

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	overdueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	todayStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

// TablePrinter writes task tables to w. With styling disabled every
// style collapses to plain text.
type TablePrinter struct {
	w      io.Writer
	styled bool
}

// NewTablePrinter returns a printer writing to w.
func NewTablePrinter(w io.Writer, styled bool) *TablePrinter {
	return &TablePrinter{w: w, styled: styled}
}

func (p *TablePrinter) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

// Print writes the tasks as a fixed-width table under the given title.
func (p *TablePrinter) Print(tasks []task.Task, title string) {
	if title != "" {
		fmt.Fprintf(p.w, "\n%s:\n", p.render(titleStyle, title))
		fmt.Fprintln(p.w, strings.Repeat("=", len(title)+1))
	}

	if len(tasks) == 0 {
		fmt.Fprintln(p.w, "No tasks found.")
		return
	}

	fmt.Fprintf(p.w, "%-4s %-3s %-25s %-15s %-12s %-10s\n",
		"ID", " P ", "Description", "Status", "Due Date", "Days Left")
	fmt.Fprintln(p.w, strings.Repeat("-", 70))

	for _, t := range tasks {
		fmt.Fprintf(p.w, "%-4d %-3s %-25s %-15s %-12s %-10s\n",
			t.ID,
			PrioritySymbol(t.Priority),
			truncate(t.Description, descriptionWidth),
			StatusSymbol(t.Status)+" "+string(t.Status),
			dueDisplay(t),
			p.daysLeft(t))
	}

	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.render(dimStyle, "Legend: [!] High Priority, [>] Medium Priority, [-] Low Priority"))
	fmt.Fprintln(p.w, p.render(dimStyle, "        [X] Done, [>] In Progress, [ ] Pending"))
}

func dueDisplay(t task.Task) string {
	if t.DueDate == "" {
		return "-"
	}
	return t.DueDate
}

func (p *TablePrinter) daysLeft(t task.Task) string {
	if t.DueDate == "" {
		return "-"
	}
	if t.IsOverdue() {
		return p.render(overdueStyle, "OVERDUE")
	}
	if t.IsDueToday() {
		return p.render(todayStyle, "TODAY")
	}
	if days := t.DaysUntilDue(); days >= 0 {
		return fmt.Sprintf("%d days", days)
	}
	return "-"
}

// truncate shortens s to at most width runes, ending in "..." when it
// was cut.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// PrioritySymbol returns the one-cell marker shown in the priority
// column.
func PrioritySymbol(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return "[!]"
	case task.PriorityMedium:
		return "[>]"
	case task.PriorityLow:
		return "[-]"
	default:
		return "[ ]"
	}
}

// StatusSymbol returns the one-cell marker shown next to the status.
func StatusSymbol(s task.Status) string {
	switch s {
	case task.StatusDone:
		return "[X]"
	case task.StatusInProgress:
		return "[>]"
	default:
		return "[ ]"
	}
}
