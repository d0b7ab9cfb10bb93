// Package cmd implements the CLI command structure for the tracker.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/M-Chethipuzha/Task-Tracker/internal/config"
	"github.com/M-Chethipuzha/Task-Tracker/internal/dateutil"
	"github.com/M-Chethipuzha/Task-Tracker/internal/logging"
	"github.com/M-Chethipuzha/Task-Tracker/internal/store"
	"github.com/M-Chethipuzha/Task-Tracker/internal/task"
	"github.com/M-Chethipuzha/Task-Tracker/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tracker CLI. User-level failures (bad input, unknown
// ids) are printed and swallowed so the process still exits 0; only
// unexpected errors are returned.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasktracker", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")
	interactive := fs.Bool("i", false, "Start interactive mode")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(os.Stdout)
		return nil
	}
	if *showVersion {
		fmt.Printf("tasktracker %s\n", Version)
		return nil
	}

	logger := logging.New(os.Stderr, logging.Options{
		Level:     logging.ParseLevel(cfg.LogLevel),
		Formatter: logging.ParseFormatter(cfg.LogFormat),
		Prefix:    "tasktracker",
	})

	rest := fs.Args()
	if *interactive {
		rest = append([]string{"interactive"}, rest...)
	}
	if len(rest) == 0 {
		printUsage(os.Stdout)
		return nil
	}

	st := store.Open(cfg.TasksFile, logger)
	h := &handler{
		store:   st,
		cfg:     cfg,
		out:     os.Stdout,
		errOut:  os.Stderr,
		printer: ui.NewTablePrinter(os.Stdout, !cfg.NoColor),
	}

	switch rest[0] {
	case "interactive", "-i":
		shell := ui.NewShell(st, h.process, os.Stdin, os.Stdout, !cfg.NoColor)
		return shell.Run()
	case "tui":
		return ui.RunTUI(ctx, cfg.TasksFile)
	default:
		h.process(rest)
		return nil
	}
}

// handler executes one command against the store. Errors are written to
// errOut; tables and confirmations to out.
type handler struct {
	store   *store.Store
	cfg     *config.Config
	out     io.Writer
	errOut  io.Writer
	printer *ui.TablePrinter
}

// process dispatches one tokenized command. It is also the shell's
// dispatcher, so it must never terminate the process.
func (h *handler) process(args []string) {
	if len(args) == 0 {
		printUsage(h.out)
		return
	}

	switch args[0] {
	case "add":
		h.handleAdd(args)
	case "list":
		h.handleList(args)
	case "update":
		h.handleUpdate(args)
	case "delete":
		h.handleDelete(args)
	case "done":
		h.handleStatusShortcut(args, task.StatusDone)
	case "progress":
		h.handleStatusShortcut(args, task.StatusInProgress)
	case "search":
		h.handleSearch(args)
	case "filter":
		h.handleFilter(args)
	case "sort":
		h.handleSort(args)
	case "due":
		h.handleDue(args)
	case "overdue":
		h.printer.Print(h.store.OverdueTasks(), "Overdue Tasks")
	case "today":
		h.printer.Print(h.store.TasksDueToday(), "Tasks Due Today")
	case "doctor":
		h.handleDoctor()
	case "version":
		fmt.Fprintf(h.out, "tasktracker %s\n", Version)
	case "help", "--help", "-h":
		printUsage(h.out)
	default:
		fmt.Fprintf(h.errOut, "Error: Unknown command %q\n", args[0])
		fmt.Fprintln(h.errOut, "Run 'help' for usage information.")
	}
}

func (h *handler) handleAdd(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(h.errOut, "Error: Please provide a task description.")
		fmt.Fprintln(h.errOut, `Usage: add "Task description" [--priority high|medium|low] [--due YYYY-MM-DD]`)
		return
	}

	description := args[1]
	priority := findArgument(args, "--priority", "-p")
	dueDate := findArgument(args, "--due", "-d")
	if priority == "" {
		priority = h.cfg.DefaultPriority
	}

	id, err := h.store.AddTask(description, task.Priority(priority), dueDate)
	if err != nil {
		fmt.Fprintf(h.errOut, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(h.out, "Task added successfully with ID: %d", id)
	if priority != "" && priority != string(task.PriorityMedium) {
		fmt.Fprintf(h.out, " (Priority: %s)", priority)
	}
	if t, ok := h.store.FindTask(id); ok && t.DueDate != "" {
		fmt.Fprintf(h.out, " (Due: %s)", t.DueDate)
	}
	fmt.Fprintln(h.out)
}

func (h *handler) handleList(args []string) {
	statusFilter := findArgument(args, "--status")
	priorityFilter := findArgument(args, "--priority", "-p")
	sortBy := findArgument(args, "--sort")
	ascending := isAscendingOrder(args)

	// Legacy form: a bare status as the second argument.
	if len(args) > 1 && statusFilter == "" && priorityFilter == "" && sortBy == "" {
		if task.Status(args[1]).Valid() {
			statusFilter = args[1]
		}
	}

	dueToday := hasFlag(args, "--due-today")
	overdue := hasFlag(args, "--overdue")

	if sortBy == "" && h.cfg.DefaultSort != "" {
		sortBy = h.cfg.DefaultSort
		ascending = !h.cfg.DefaultSortDesc
	}

	tasks := h.store.TasksFilteredAndSorted(sortBy, ascending, task.Criteria{
		Priority:     task.Priority(priorityFilter),
		Status:       task.Status(statusFilter),
		OverdueOnly:  overdue,
		DueTodayOnly: dueToday,
	})

	title := "All Tasks"
	if statusFilter != "" {
		title = statusFilter + " Tasks"
	}
	if priorityFilter != "" {
		title += " (Priority: " + priorityFilter + ")"
	}
	if dueToday {
		title = "Tasks Due Today"
	} else if overdue {
		title = "Overdue Tasks"
	}
	if sortBy != "" {
		order := " asc"
		if !ascending {
			order = " desc"
		}
		title += " (Sorted by " + sortBy + order + ")"
	}

	h.printer.Print(tasks, title)
}

func (h *handler) handleUpdate(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(h.errOut, "Error: Please provide a task ID.")
		fmt.Fprintln(h.errOut, `Usage: update <id> [--description "New desc"] [--status pending|in_progress|done] [--priority high|medium|low] [--due YYYY-MM-DD]`)
		return
	}

	id, ok := h.parseID(args[1])
	if !ok {
		return
	}

	upd := store.Update{
		Description: findArgument(args, "--description"),
		Status:      findArgument(args, "--status"),
		Priority:    findArgument(args, "--priority", "-p"),
		DueDate:     findArgument(args, "--due", "-d"),
	}

	// Legacy form: a bare status as the third argument.
	if len(args) >= 3 && upd == (store.Update{}) {
		upd.Status = args[2]
	}

	changed, err := h.store.UpdateTask(id, upd)
	if err != nil {
		fmt.Fprintf(h.errOut, "Error: %v\n", err)
		return
	}
	if changed {
		fmt.Fprintf(h.out, "Task %d updated successfully.\n", id)
	}
}

func (h *handler) handleDelete(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(h.errOut, "Error: Please provide a task ID.")
		fmt.Fprintln(h.errOut, "Usage: delete <id>")
		return
	}

	id, ok := h.parseID(args[1])
	if !ok {
		return
	}
	if err := h.store.DeleteTask(id); err != nil {
		fmt.Fprintf(h.errOut, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(h.out, "Task %d deleted successfully.\n", id)
}

func (h *handler) handleStatusShortcut(args []string, status task.Status) {
	if len(args) < 2 {
		fmt.Fprintln(h.errOut, "Error: Please provide a task ID.")
		fmt.Fprintf(h.errOut, "Usage: %s <id>\n", args[0])
		return
	}

	id, ok := h.parseID(args[1])
	if !ok {
		return
	}
	if _, err := h.store.UpdateTask(id, store.Update{Status: string(status)}); err != nil {
		fmt.Fprintf(h.errOut, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(h.out, "Task %d updated successfully.\n", id)
}

func (h *handler) handleSearch(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(h.errOut, "Error: Please provide a search keyword.")
		fmt.Fprintln(h.errOut, `Usage: search "keyword" [--status pending|in_progress|done] [--priority high|medium|low] [--sort field]`)
		return
	}

	keyword := args[1]
	statusFilter := findArgument(args, "--status")
	priorityFilter := findArgument(args, "--priority", "-p")
	sortBy := findArgument(args, "--sort")
	ascending := isAscendingOrder(args)

	results := h.store.TasksFilteredAndSorted(sortBy, ascending, task.Criteria{
		Keyword:  keyword,
		Priority: task.Priority(priorityFilter),
		Status:   task.Status(statusFilter),
	})

	title := fmt.Sprintf("Search Results for: %q", keyword)
	if statusFilter != "" || priorityFilter != "" {
		title += " (Filtered)"
	}
	h.printer.Print(results, title)
}

func (h *handler) handleFilter(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(h.errOut, "Error: Please provide filter criteria.")
		fmt.Fprintln(h.errOut, "Usage: filter priority high|medium|low")
		fmt.Fprintln(h.errOut, "       filter status pending|in_progress|done")
		return
	}

	switch args[1] {
	case "priority":
		h.printer.Print(h.store.TasksByPriority(task.Priority(args[2])), "Tasks with Priority: "+args[2])
	case "status":
		h.printer.Print(h.store.TasksByStatus(task.Status(args[2])), "Tasks with Status: "+args[2])
	default:
		fmt.Fprintln(h.errOut, "Error: Invalid filter type. Use 'priority' or 'status'.")
	}
}

func (h *handler) handleSort(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(h.errOut, "Error: Please provide sort criteria.")
		fmt.Fprintln(h.errOut, "Usage: sort priority|due_date|status|id|created_date [asc|desc]")
		return
	}

	sortBy := args[1]
	ascending := true
	if len(args) > 2 && (args[2] == "desc" || args[2] == "descending") {
		ascending = false
	}

	if !task.ValidSortField(sortBy) {
		fmt.Fprintln(h.errOut, "Error: Invalid sort field. Valid fields: priority, due_date, status, id, created_date")
		return
	}

	order := " ascending"
	if !ascending {
		order = " descending"
	}
	h.printer.Print(h.store.TasksSorted(sortBy, ascending), "All Tasks (Sorted by "+sortBy+order+")")
}

func (h *handler) handleDue(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(h.errOut, "Error: Please provide a date or 'today'.")
		fmt.Fprintln(h.errOut, "Usage: due YYYY-MM-DD")
		fmt.Fprintln(h.errOut, "       due today")
		return
	}

	if args[1] == "today" {
		h.printer.Print(h.store.TasksDueToday(), "Tasks Due Today")
		return
	}
	if !dateutil.IsValidDate(args[1]) {
		fmt.Fprintln(h.errOut, "Error: Invalid date format. Please use YYYY-MM-DD.")
		return
	}
	h.printer.Print(h.store.TasksDueBy(args[1]), "Tasks Due By: "+args[1])
}

func (h *handler) handleDoctor() {
	errs := store.ValidateFile(h.store.Path())
	if len(errs) == 0 {
		fmt.Fprintf(h.out, "%s: tasks file is valid\n", h.store.Path())
		return
	}
	fmt.Fprintf(h.errOut, "%s: %d problem(s) found\n", h.store.Path(), len(errs))
	for _, err := range errs {
		fmt.Fprintf(h.errOut, "  - %v\n", err)
	}
}

// parseID converts a CLI argument to a task id, reporting the standard
// message on failure.
func (h *handler) parseID(arg string) (int, bool) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintln(h.errOut, "Error: Invalid task ID. Please provide a valid number.")
		return 0, false
	}
	return id, true
}

// findArgument returns the value following the first of the given flags
// present in args, or "".
func findArgument(args []string, flags ...string) string {
	for _, flagName := range flags {
		for i, arg := range args {
			if arg == flagName && i+1 < len(args) {
				return args[i+1]
			}
		}
	}
	return ""
}

func hasFlag(args []string, flagName string) bool {
	for _, arg := range args {
		if arg == flagName {
			return true
		}
	}
	return false
}

func isAscendingOrder(args []string) bool {
	return !hasFlag(args, "desc") && !hasFlag(args, "descending")
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Task Tracker - Command Line Task Management Tool

USAGE:
  tasktracker [global flags] <command> [arguments]

BASIC COMMANDS:
  add "description" [options]    Add a new task
  list [filters]                 List tasks with filters and sorting
  update <id> [options]          Update task attributes
  delete <id>                    Delete a task
  done <id>                      Mark task as done
  progress <id>                  Mark task as in progress

ADVANCED COMMANDS:
  search "keyword" [filters]     Search tasks by keyword with filters
  filter <type> <value>          Filter tasks by specific criteria
  sort <field> [asc|desc]        Sort all tasks by field
  due <date|today>               Show tasks due by date
  overdue                        Show overdue tasks
  today                          Show tasks due today
  doctor                         Validate the tasks file
  interactive, -i                Start interactive mode
  tui                            Start the live dashboard

OPTIONS:
  --priority, -p <high|medium|low>     Set/filter by task priority
  --due, -d <YYYY-MM-DD>               Set/filter by due date
  --status <pending|in_progress|done>  Filter by status
  --sort <field> [asc|desc]            Sort results
  --description "text"                 Update description
  --due-today                          Filter tasks due today
  --overdue                            Filter overdue tasks

GLOBAL FLAGS:
  --file, -f <path>   Tasks file (default tasks.json)
  --log-level <level> Log level (debug, info, warn, error)
  --log-format <fmt>  Log format (text, json, logfmt)
  --no-color          Disable styled output
  --version, -v       Show version
  --help, -h          Show this help

SORT FIELDS:
  priority, due_date, status, id, created_date

EXAMPLES:
  tasktracker add "Review code" --priority high --due 2025-06-15
  tasktracker list --priority high --sort due_date
  tasktracker search "meeting" --status pending --sort priority desc
  tasktracker list --overdue --sort due_date
  tasktracker interactive
`)
}
