// Command aigopt is the interactive command-line dispatcher described
// in spec.md §6: a REPL over one *aig.Manager, reading commands from
// stdin one line at a time, in the same log-heavy, no-framework style
// the teacher module's cmd/main.go favors (log.SetFlags(log.Lmicroseconds),
// log.Printf for statistics lines) — though here the verbs are AIG
// commands, not a routing-table demo.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aigopt/aig"
	"github.com/aigopt/aig/aiger"
)

// app holds the one piece of state a command session carries between
// lines: the current network and the symbol table it was last read
// with (so write_aiger -s can round-trip names instead of
// resynthesizing placeholders every time).
type app struct {
	mgr     *aig.Manager
	symbols []aiger.Symbol
	verbose *log.Logger
}

func main() {
	log.SetFlags(log.Lmicroseconds)

	a := &app{mgr: aig.NewManager()}

	interactive := isTerminal(os.Stdin)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Fprint(os.Stdout, "aigopt> ")
		}
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		status, quit := a.dispatch(line)
		if quit {
			return
		}
		if status != 0 {
			os.Exit(status)
		}
	}
}

// isTerminal reports whether f looks like an interactive terminal, the
// stdlib-only substitute for a real isatty check: a char-device mode
// bit is as close as os.FileInfo gets without a platform-specific
// syscall, which is enough to suppress the prompt under test harnesses
// and pipes per §6 ("the prompt is not emitted on non-TTY input").
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// dispatch runs one command line, returning its exit status and
// whether the session should end (the `quit` command).
func (a *app) dispatch(line string) (status int, quit bool) {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintln(os.Stderr, "unknown command")
		return 1, false
	}
	return cmd(a, args)
}

var commands = map[string]func(a *app, args []string) (int, bool){
	"quit":        cmdQuit,
	"help":        cmdHelp,
	"empty":       cmdEmpty,
	"read_aiger":  cmdReadAiger,
	"write_aiger": cmdWriteAiger,
	"balance":     cmdBalance,
	"rewrite":     cmdRewrite,
	"refactor":    cmdRefactor,
	"resub":       cmdResub,
	"drw":         cmdDrw,
	"drf":         cmdDrf,
	"zero":        cmdZero,
}

// usageError reports a single-line diagnostic prefixed by the engine
// name and the failing command, per §7's "user-visible failures" rule,
// and returns the usage-error status.
func usageError(cmdName string, err error) (int, bool) {
	fmt.Fprintf(os.Stderr, "aigopt: %s: %v\n", cmdName, err)
	return 1, false
}
