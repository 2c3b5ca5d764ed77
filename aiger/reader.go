package aiger

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads one binary AIGER file from r.
func Parse(r io.Reader) (*File, error) {
	br := bufio.NewReader(r)

	header, err := readLine(br)
	if err != nil {
		return nil, fmt.Errorf("aiger: reading header: %w", err)
	}
	fields := strings.Fields(header)
	if len(fields) < 6 || fields[0] != "aig" {
		return nil, fmt.Errorf("aiger: malformed header %q", header)
	}
	nums := make([]int, len(fields)-1)
	for i, s := range fields[1:] {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("aiger: malformed header field %q: %w", s, err)
		}
		nums[i] = n
	}
	get := func(i int) int {
		if i < len(nums) {
			return nums[i]
		}
		return 0
	}
	m, i, l, o, a := get(0), get(1), get(2), get(3), get(4)
	b, c, j, fN := get(5), get(6), get(7), get(8)
	if m != i+l+a {
		return nil, fmt.Errorf("aiger: header M=%d does not match I+L+A=%d", m, i+l+a)
	}

	f := &File{I: i, L: l, O: o, A: a}

	for k := 0; k < l; k++ {
		line, err := readLine(br)
		if err != nil {
			return nil, fmt.Errorf("aiger: reading latch %d: %w", k, err)
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			return nil, fmt.Errorf("aiger: empty latch line %d", k)
		}
		next, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("aiger: malformed latch line %q: %w", line, err)
		}
		lit := 2 * (i + 1 + k)
		lt := Latch{Lit: lit, Next: next, Reset: 0}
		if len(parts) > 1 {
			reset, err := strconv.Atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("aiger: malformed latch reset %q: %w", line, err)
			}
			lt.Reset = reset
		}
		f.Latches = append(f.Latches, lt)
	}

	readInts := func(n int, what string) ([]int, error) {
		out := make([]int, n)
		for k := 0; k < n; k++ {
			line, err := readLine(br)
			if err != nil {
				return nil, fmt.Errorf("aiger: reading %s %d: %w", what, k, err)
			}
			v, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				return nil, fmt.Errorf("aiger: malformed %s line %q: %w", what, line, err)
			}
			out[k] = v
		}
		return out, nil
	}

	if f.Outputs, err = readInts(o, "output"); err != nil {
		return nil, err
	}
	if f.Bads, err = readInts(b, "bad"); err != nil {
		return nil, err
	}
	if f.Constraints, err = readInts(c, "constraint"); err != nil {
		return nil, err
	}
	for k := 0; k < j; k++ {
		line, err := readLine(br)
		if err != nil {
			return nil, fmt.Errorf("aiger: reading justice %d size: %w", k, err)
		}
		size, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			return nil, fmt.Errorf("aiger: malformed justice size %q: %w", line, err)
		}
		lits, err := readInts(size, "justice literal")
		if err != nil {
			return nil, err
		}
		f.Justices = append(f.Justices, Justice{Lits: lits})
	}
	if f.Fairness, err = readInts(fN, "fairness"); err != nil {
		return nil, err
	}

	f.Ands = make([]AndGate, a)
	for k := 0; k < a; k++ {
		lhs := 2 * (i + l + 1 + k)
		rhs0, rhs1, err := decodeAnd(br, lhs)
		if err != nil {
			return nil, fmt.Errorf("aiger: reading AND gate %d: %w", k, err)
		}
		f.Ands[k] = AndGate{Lhs: lhs, Rhs0: rhs0, Rhs1: rhs1}
	}

	for {
		line, err := readLine(br)
		if err == io.EOF && line == "" {
			break
		}
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("aiger: reading symbol table: %w", err)
		}
		line = strings.TrimRight(line, "\n")
		if line == "" {
			if err == io.EOF {
				break
			}
			continue
		}
		if line == "c" {
			rest, _ := io.ReadAll(br)
			f.Comment = string(rest)
			break
		}
		sym, perr := parseSymbolLine(line)
		if perr != nil {
			return nil, perr
		}
		f.Symbols = append(f.Symbols, sym)
		if err == io.EOF {
			break
		}
	}

	return f, nil
}

// readLine returns one line with its trailing newline stripped. Unlike
// bufio.Scanner it tolerates a final line with no trailing newline,
// returning it alongside io.EOF.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if err == io.EOF && line != "" {
		return line, io.EOF
	}
	return line, err
}

func parseSymbolLine(line string) (Symbol, error) {
	kind := line[0]
	switch kind {
	case 'i', 'l', 'o', 'b', 'c', 'j', 'f':
	default:
		return Symbol{}, fmt.Errorf("aiger: unrecognized symbol-table line %q", line)
	}
	rest := line[1:]
	sp := strings.IndexByte(rest, ' ')
	if sp < 0 {
		return Symbol{}, fmt.Errorf("aiger: malformed symbol-table line %q", line)
	}
	idx, err := strconv.Atoi(rest[:sp])
	if err != nil {
		return Symbol{}, fmt.Errorf("aiger: malformed symbol index %q: %w", line, err)
	}
	return Symbol{Kind: kind, Index: idx, Name: rest[sp+1:]}, nil
}
