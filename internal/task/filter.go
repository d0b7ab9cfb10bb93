package task

import (
	"sort"

	"github.com/M-Chethipuzha/Task-Tracker/internal/dateutil"
)

// Criteria bundles the filter inputs for FilterByCriteria and
// FilterAndSort. Zero values mean "filter not applied".
type Criteria struct {
	Keyword      string
	Priority     Priority
	Status       Status
	DueDate      string
	OverdueOnly  bool
	DueTodayOnly bool
}

// FilterByKeyword returns the tasks whose description contains keyword,
// case-insensitively. An empty keyword returns the input unchanged.
func FilterByKeyword(tasks []Task, keyword string) []Task {
	if keyword == "" {
		return tasks
	}
	var filtered []Task
	for _, t := range tasks {
		if t.MatchesKeyword(keyword) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// FilterByPriority returns the tasks with the given priority. An empty
// priority returns the input unchanged.
func FilterByPriority(tasks []Task, priority Priority) []Task {
	if priority == "" {
		return tasks
	}
	var filtered []Task
	for _, t := range tasks {
		if t.Priority == priority {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// FilterByStatus returns the tasks with the given status. An empty
// status returns the input unchanged.
func FilterByStatus(tasks []Task, status Status) []Task {
	if status == "" {
		return tasks
	}
	var filtered []Task
	for _, t := range tasks {
		if t.Status == status {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// FilterByDueDate returns the tasks whose due date equals due exactly.
// An empty due date returns the input unchanged.
func FilterByDueDate(tasks []Task, due string) []Task {
	if due == "" {
		return tasks
	}
	var filtered []Task
	for _, t := range tasks {
		if t.DueDate == due {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// FilterByDateRange returns the tasks whose due date falls within
// [start, end] inclusive. Tasks without a due date never match. An empty
// start or end returns the input unchanged.
func FilterByDateRange(tasks []Task, start, end string) []Task {
	if start == "" || end == "" {
		return tasks
	}
	var filtered []Task
	for _, t := range tasks {
		if t.DueDate != "" && dateutil.IsDateInRange(t.DueDate, start, end) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// FilterOverdue returns the tasks whose due date is in the past.
func FilterOverdue(tasks []Task) []Task {
	var filtered []Task
	for _, t := range tasks {
		if t.IsOverdue() {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// FilterDueToday returns the tasks due today.
func FilterDueToday(tasks []Task) []Task {
	var filtered []Task
	for _, t := range tasks {
		if t.IsDueToday() {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// FilterByCriteria applies the supplied criteria as a pipeline, in the
// fixed order keyword, priority, status, due date, overdue, due today.
// Each stage narrows the previous one; empty criteria are skipped.
func FilterByCriteria(tasks []Task, c Criteria) []Task {
	result := tasks
	if c.Keyword != "" {
		result = FilterByKeyword(result, c.Keyword)
	}
	if c.Priority != "" {
		result = FilterByPriority(result, c.Priority)
	}
	if c.Status != "" {
		result = FilterByStatus(result, c.Status)
	}
	if c.DueDate != "" {
		result = FilterByDueDate(result, c.DueDate)
	}
	if c.OverdueOnly {
		result = FilterOverdue(result)
	}
	if c.DueTodayOnly {
		result = FilterDueToday(result)
	}
	return result
}

// PriorityRank maps a priority to its sort ordinal: low 1, medium 2,
// high 3. Unrecognized priorities rank 0 and sort before low.
func PriorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// StatusRank maps a status to its sort ordinal: pending 1, in_progress
// 2, done 3. Unrecognized statuses rank 0.
func StatusRank(s Status) int {
	switch s {
	case StatusPending:
		return 1
	case StatusInProgress:
		return 2
	case StatusDone:
		return 3
	default:
		return 0
	}
}

// SortByPriority returns a new slice ordered by priority rank. All sorts
// in this package are stable: ties keep their relative input order.
func SortByPriority(tasks []Task, ascending bool) []Task {
	sorted := copyTasks(tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := PriorityRank(sorted[i].Priority), PriorityRank(sorted[j].Priority)
		if ascending {
			return a < b
		}
		return a > b
	})
	return sorted
}

// SortByDueDate returns a new slice in chronological due-date order.
// Tasks without a due date sort to the end regardless of direction.
func SortByDueDate(tasks []Task, ascending bool) []Task {
	sorted := copyTasks(tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].DueDate, sorted[j].DueDate
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		if ascending {
			return dateutil.IsDateBefore(a, b)
		}
		return dateutil.IsDateBefore(b, a)
	})
	return sorted
}

// SortByStatus returns a new slice ordered by status rank.
func SortByStatus(tasks []Task, ascending bool) []Task {
	sorted := copyTasks(tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := StatusRank(sorted[i].Status), StatusRank(sorted[j].Status)
		if ascending {
			return a < b
		}
		return a > b
	})
	return sorted
}

// SortByID returns a new slice in numeric id order.
func SortByID(tasks []Task, ascending bool) []Task {
	sorted := copyTasks(tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].ID > sorted[j].ID
	})
	return sorted
}

// SortByCreatedDate returns a new slice in chronological creation order.
func SortByCreatedDate(tasks []Task, ascending bool) []Task {
	sorted := copyTasks(tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return dateutil.IsDateBefore(sorted[i].CreatedDate, sorted[j].CreatedDate)
		}
		return dateutil.IsDateBefore(sorted[j].CreatedDate, sorted[i].CreatedDate)
	})
	return sorted
}

// SortBy dispatches to the sort for the given field name. The aliases
// "due" and "created" map to "due_date" and "created_date". An unknown
// field is a no-op and returns a copy in the input order.
func SortBy(tasks []Task, field string, ascending bool) []Task {
	switch field {
	case "priority":
		return SortByPriority(tasks, ascending)
	case "due_date", "due":
		return SortByDueDate(tasks, ascending)
	case "status":
		return SortByStatus(tasks, ascending)
	case "id":
		return SortByID(tasks, ascending)
	case "created_date", "created":
		return SortByCreatedDate(tasks, ascending)
	default:
		return copyTasks(tasks)
	}
}

// ValidSortField reports whether field names one of the sort keys,
// including aliases.
func ValidSortField(field string) bool {
	switch field {
	case "priority", "due_date", "due", "status", "id", "created_date", "created":
		return true
	}
	return false
}

// FilterAndSort filters by c, then sorts by sortBy if it is non-empty.
func FilterAndSort(tasks []Task, sortBy string, ascending bool, c Criteria) []Task {
	result := FilterByCriteria(tasks, c)
	if sortBy != "" {
		result = SortBy(result, sortBy, ascending)
	}
	return result
}

func copyTasks(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	return sorted
}
