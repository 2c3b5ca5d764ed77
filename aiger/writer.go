package aiger

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOptions controls optional trailing sections. StripSymbols omits
// the symbol table; `write_aiger` sets it unless its -s flag (emit the
// symbol table) is given.
type WriteOptions struct {
	StripSymbols bool
}

// Write serializes f in binary AIGER format.
//
// The header's optional B/C/J/F counts are only emitted as far as the
// last non-zero one, the same trailing-zero trimming the reference
// writer performs, so a file with no extended properties gets the
// plain "aig M I L O A" header.
func Write(w io.Writer, f *File, opts WriteOptions) error {
	bw := bufio.NewWriter(w)

	m := f.M()
	tail := []int{len(f.Bads), len(f.Constraints), len(f.Justices), len(f.Fairness)}
	last := -1
	for i, n := range tail {
		if n != 0 {
			last = i
		}
	}
	if _, err := fmt.Fprintf(bw, "aig %d %d %d %d %d", m, f.I, f.L, f.O, len(f.Ands)); err != nil {
		return err
	}
	if last >= 0 {
		for i := 0; i <= last; i++ {
			if _, err := fmt.Fprintf(bw, " %d", tail[i]); err != nil {
				return err
			}
		}
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return err
	}

	for _, l := range f.Latches {
		var err error
		if l.Reset == 0 {
			_, err = fmt.Fprintf(bw, "%d\n", l.Next)
		} else {
			_, err = fmt.Fprintf(bw, "%d %d\n", l.Next, l.Reset)
		}
		if err != nil {
			return err
		}
	}
	for _, o := range f.Outputs {
		if _, err := fmt.Fprintf(bw, "%d\n", o); err != nil {
			return err
		}
	}
	for _, b := range f.Bads {
		if _, err := fmt.Fprintf(bw, "%d\n", b); err != nil {
			return err
		}
	}
	for _, c := range f.Constraints {
		if _, err := fmt.Fprintf(bw, "%d\n", c); err != nil {
			return err
		}
	}
	for _, j := range f.Justices {
		if _, err := fmt.Fprintf(bw, "%d\n", len(j.Lits)); err != nil {
			return err
		}
		for _, lit := range j.Lits {
			if _, err := fmt.Fprintf(bw, "%d\n", lit); err != nil {
				return err
			}
		}
	}
	for _, fa := range f.Fairness {
		if _, err := fmt.Fprintf(bw, "%d\n", fa); err != nil {
			return err
		}
	}

	for _, a := range f.Ands {
		if err := encodeAnd(bw, a.Lhs, a.Rhs0, a.Rhs1); err != nil {
			return err
		}
	}

	if !opts.StripSymbols {
		for _, s := range f.Symbols {
			if _, err := fmt.Fprintf(bw, "%c%d %s\n", s.Kind, s.Index, s.Name); err != nil {
				return err
			}
		}
		if f.Comment != "" {
			if _, err := bw.WriteString("c\n"); err != nil {
				return err
			}
			if _, err := bw.WriteString(f.Comment); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}
