package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aigopt/aig"
	"github.com/aigopt/aig/aiger"
)

// newFlagSet builds the one-flagset-per-command parser the AMBIENT
// STACK section calls for, with usage output suppressed (usageError
// prints its own single-line diagnostic instead of flag's default
// multi-line block).
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(discard{})
	return fs
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func cmdQuit(a *app, args []string) (int, bool) {
	fs := newFlagSet("quit")
	free := fs.Bool("s", false, "free memory before exiting")
	help := fs.Bool("h", false, "help")
	if err := fs.Parse(args); err != nil {
		s, q := usageError("quit", err)
		return s, q
	}
	if *help {
		fmt.Fprintln(os.Stdout, "quit [-s]: exit aigopt, -s frees the current network first")
		return 0, false
	}
	if *free {
		a.mgr = nil
	}
	return 0, true
}

func cmdHelp(a *app, args []string) (int, bool) {
	fs := newFlagSet("help")
	all := fs.Bool("a", false, "include hidden commands")
	detail := fs.Bool("d", false, "detail all commands")
	if err := fs.Parse(args); err != nil {
		return usageError("help", err)
	}
	fmt.Println("network:    empty, read_aiger, write_aiger, zero")
	fmt.Println("synthesis:  balance, rewrite, refactor, resub, drw, drf")
	fmt.Println("session:    help, quit")
	if *all || *detail {
		fmt.Println()
		fmt.Println("balance     -d duplicate logic, -s selective on critical path")
		fmt.Println("rewrite     -z allow zero-cost, -x precompute-only")
		fmt.Println("refactor    -N <n> node-size max, -C <n> cone max, -z zero-cost, -d don't-cares")
		fmt.Println("resub       -K <n> cut size in [4,16], -N <n> extra-node budget in [0,3]")
		fmt.Println("read_aiger  -c toggle post-read check")
		fmt.Println("write_aiger -s emit symbol table")
	}
	return 0, false
}

func cmdEmpty(a *app, args []string) (int, bool) {
	fs := newFlagSet("empty")
	help := fs.Bool("h", false, "help")
	if err := fs.Parse(args); err != nil {
		return usageError("empty", err)
	}
	if *help {
		fmt.Fprintln(os.Stdout, "empty: drops the current network")
		return 0, false
	}
	a.mgr = aig.NewManager()
	a.symbols = nil
	return 0, false
}

func cmdReadAiger(a *app, args []string) (int, bool) {
	fs := newFlagSet("read_aiger")
	noCheck := fs.Bool("c", false, "toggle post-read check (on by default, -c disables)")
	if err := fs.Parse(args); err != nil {
		return usageError("read_aiger", err)
	}
	if fs.NArg() < 1 {
		return usageError("read_aiger", fmt.Errorf("missing <file> argument"))
	}
	path := fs.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		return usageError("read_aiger", err)
	}
	defer f.Close()

	file, err := aiger.Parse(f)
	if err != nil {
		return usageError("read_aiger", err)
	}
	m, err := fromFile(file)
	if err != nil {
		return usageError("read_aiger", err)
	}

	if !*noCheck {
		if err := m.Check(); err != nil {
			return usageError("read_aiger", err)
		}
	}

	a.mgr = m
	a.symbols = file.Symbols
	return 0, false
}

func cmdWriteAiger(a *app, args []string) (int, bool) {
	fs := newFlagSet("write_aiger")
	withSyms := fs.Bool("s", false, "emit symbol table")
	if err := fs.Parse(args); err != nil {
		return usageError("write_aiger", err)
	}
	if fs.NArg() < 1 {
		return usageError("write_aiger", fmt.Errorf("missing <file> argument"))
	}
	path := fs.Arg(0)

	out, err := os.Create(path)
	if err != nil {
		return usageError("write_aiger", err)
	}
	defer out.Close()

	file := toFile(a.mgr, *withSyms, a.symbols)
	if err := aiger.Write(out, file, aiger.WriteOptions{StripSymbols: !*withSyms}); err != nil {
		return usageError("write_aiger", err)
	}
	return 0, false
}

func cmdBalance(a *app, args []string) (int, bool) {
	fs := newFlagSet("balance")
	duplicate := fs.Bool("d", false, "duplicate logic")
	_ = fs.Bool("s", false, "selective on critical path (accepted, no effect; see DESIGN.md)")
	if err := fs.Parse(args); err != nil {
		return usageError("balance", err)
	}
	if err := a.mgr.Balance(*duplicate); err != nil {
		return usageError("balance", err)
	}
	return 0, false
}

func cmdRewrite(a *app, args []string) (int, bool) {
	fs := newFlagSet("rewrite")
	zeroCost := fs.Bool("z", false, "allow zero-cost replacements")
	precomputeOnly := fs.Bool("x", false, "precompute-only")
	if err := fs.Parse(args); err != nil {
		return usageError("rewrite", err)
	}
	n, err := a.mgr.Rewrite(aig.RewriteParams{ZeroCost: *zeroCost, PrecomputeOnly: *precomputeOnly})
	if err != nil {
		return usageError("rewrite", err)
	}
	a.logf("rewrite: %d nodes replaced", n)
	return 0, false
}

func cmdRefactor(a *app, args []string) (int, bool) {
	fs := newFlagSet("refactor")
	nodeMax := fs.Int("N", 10, "node-size max (<=15)")
	coneMax := fs.Int("C", 16, "cone max")
	zeroCost := fs.Bool("z", false, "allow zero-cost replacements")
	dontCare := fs.Bool("d", false, "don't-cares (accepted, no effect; see DESIGN.md)")
	if err := fs.Parse(args); err != nil {
		return usageError("refactor", err)
	}
	if *nodeMax > 15 {
		return usageError("refactor", fmt.Errorf("-N must be <= 15"))
	}
	n, err := a.mgr.Refactor(aig.RefactorParams{
		NodeSizeMax: *nodeMax,
		ConeSizeMax: *coneMax,
		ZeroCost:    *zeroCost,
		UseDontCare: *dontCare,
	})
	if err != nil {
		return usageError("refactor", err)
	}
	a.logf("refactor: %d nodes replaced", n)
	return 0, false
}

func cmdResub(a *app, args []string) (int, bool) {
	fs := newFlagSet("resub")
	cutSize := fs.Int("K", 8, "cut size in [4,16]")
	extraNode := fs.Int("N", 1, "extra-node budget in [0,3]")
	if err := fs.Parse(args); err != nil {
		return usageError("resub", err)
	}
	if *cutSize < 4 || *cutSize > 16 {
		return usageError("resub", fmt.Errorf("-K must be in [4,16]"))
	}
	if *extraNode < 0 || *extraNode > 3 {
		return usageError("resub", fmt.Errorf("-N must be in [0,3]"))
	}
	n, err := a.mgr.Resub(aig.ResubParams{CutSize: *cutSize, ExtraNode: *extraNode})
	if err != nil {
		return usageError("resub", err)
	}
	a.logf("resub: %d nodes replaced", n)
	return 0, false
}

func cmdDrw(a *app, args []string) (int, bool) {
	fs := newFlagSet("drw")
	if err := fs.Parse(args); err != nil {
		return usageError("drw", err)
	}
	rp, _ := aig.PresetDeep()
	n, err := a.mgr.Rewrite(rp)
	if err != nil {
		return usageError("drw", err)
	}
	a.logf("drw: %d nodes replaced", n)
	return 0, false
}

func cmdDrf(a *app, args []string) (int, bool) {
	fs := newFlagSet("drf")
	if err := fs.Parse(args); err != nil {
		return usageError("drf", err)
	}
	_, rfp := aig.PresetDeep()
	n, err := a.mgr.Refactor(rfp)
	if err != nil {
		return usageError("drf", err)
	}
	a.logf("drf: %d nodes replaced", n)
	return 0, false
}

func cmdZero(a *app, args []string) (int, bool) {
	fs := newFlagSet("zero")
	if err := fs.Parse(args); err != nil {
		return usageError("zero", err)
	}
	a.mgr.ZeroLatches()
	return 0, false
}

// logf emits a verbose statistics line, matching the teacher's
// log.Printf convention; silent unless a.verbose was set up.
func (a *app) logf(format string, args ...any) {
	if a.verbose == nil {
		return
	}
	a.verbose.Printf(format, args...)
}
