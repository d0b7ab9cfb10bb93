package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/M-Chethipuzha/Task-Tracker/internal/store"
	"github.com/M-Chethipuzha/Task-Tracker/internal/task"
)

// Dispatcher executes one tokenized command line. The shell forwards
// every line that is not a session-only command.
type Dispatcher func(args []string)

// Shell is the interactive line-based session. Session commands (help,
// stats, clear, exit) never touch task data; everything else goes to the
// dispatcher.
type Shell struct {
	store    *store.Store
	dispatch Dispatcher
	in       io.Reader
	out      io.Writer
	styled   bool
	commands int
}

// NewShell builds a shell reading commands from in and writing to out.
func NewShell(st *store.Store, dispatch Dispatcher, in io.Reader, out io.Writer, styled bool) *Shell {
	return &Shell{
		store:    st,
		dispatch: dispatch,
		in:       in,
		out:      out,
		styled:   styled,
	}
}

// Run starts the read-eval loop and returns when the user exits or the
// input reaches EOF.
func (sh *Shell) Run() error {
	sh.commands = 0
	sh.printBanner()

	scanner := bufio.NewScanner(sh.in)
	for {
		sh.printPrompt()
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		args := Tokenize(line)
		if len(args) == 0 {
			continue
		}
		if isExitCommand(args[0]) {
			break
		}

		sh.handleCommand(args)
		sh.commands++
	}

	sh.printGoodbye()
	return scanner.Err()
}

func (sh *Shell) handleCommand(args []string) {
	switch args[0] {
	case "help", "h":
		sh.printHelp()
	case "stats":
		sh.printStats()
	case "clear", "cls":
		sh.clearScreen()
		sh.printBanner()
	default:
		sh.dispatch(args)
	}
}

func isExitCommand(command string) bool {
	return command == "exit" || command == "quit" || command == "q"
}

func (sh *Shell) printBanner() {
	fmt.Fprintf(sh.out, "\n%s %s\n\n", sh.styledText(titleStyle.Render, "Task Tracker Interactive"), sh.styledText(dimStyle.Render, "v3.0.0"))
	rule := strings.Repeat("-", 50)
	fmt.Fprintln(sh.out, sh.styledText(dimStyle.Render, rule))
	fmt.Fprintln(sh.out, "Type help for commands, exit to quit")
	fmt.Fprintln(sh.out, sh.styledText(dimStyle.Render, rule))
	sh.printStats()
	fmt.Fprintln(sh.out)
}

func (sh *Shell) styledText(render func(...string) string, s string) string {
	if !sh.styled {
		return s
	}
	return render(s)
}

func (sh *Shell) printPrompt() {
	fmt.Fprint(sh.out, "\ntask-tracker > ")
}

func (sh *Shell) printGoodbye() {
	fmt.Fprintf(sh.out, "\nSession complete. Commands executed: %d\n", sh.commands)
	fmt.Fprintln(sh.out, "All changes saved.")
}

func (sh *Shell) printStats() {
	total := sh.store.Count()
	pending := len(sh.store.TasksByStatus(task.StatusPending))
	active := len(sh.store.TasksByStatus(task.StatusInProgress))
	done := len(sh.store.TasksByStatus(task.StatusDone))
	overdue := len(sh.store.OverdueTasks())
	dueToday := len(sh.store.TasksDueToday())

	fmt.Fprintln(sh.out, "\nTask Overview")
	fmt.Fprintf(sh.out, "Total: %d  |  Pending: %d  |  Active: %d  |  Done: %d\n", total, pending, active, done)
	if overdue > 0 || dueToday > 0 {
		fmt.Fprintf(sh.out, "Alerts: Overdue: %d  Due today: %d\n", overdue, dueToday)
	}
}

func (sh *Shell) clearScreen() {
	fmt.Fprint(sh.out, "\033[2J\033[H")
}

func (sh *Shell) printHelp() {
	fmt.Fprintln(sh.out, `
Task Management
  add "description" [--priority high|medium|low] [--due YYYY-MM-DD]
  list [--status ...] [--priority ...] [--sort field] [--overdue] [--due-today]
  update <id> [--description ...] [--status ...] [--priority ...] [--due ...]
  delete <id>  |  done <id>  |  progress <id>

Queries
  search "keyword" [filters]
  filter priority|status <value>
  sort priority|due_date|status|id|created_date [asc|desc]
  due <YYYY-MM-DD|today>  |  overdue  |  today

Session
  help, h       Show this help
  stats         Task statistics
  clear, cls    Clear screen
  exit, quit, q End session`)
}

// Tokenize splits an input line into arguments. Double quotes group
// words into one argument; a backslash before a quote keeps it literal.
func Tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c == '"' && (i == 0 || input[i-1] != '\\'):
			inQuotes = !inQuotes
		case c == ' ' && !inQuotes:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteByte(c)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}
