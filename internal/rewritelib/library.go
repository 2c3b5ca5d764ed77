package rewritelib

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// numNPNClasses is the number of 4-variable NPN equivalence classes
// (spec.md §4.5, §3's "the library groups subgraphs into 222
// NPN-equivalence classes").
const numNPNClasses = 222

// Library matches a live cut's truth table against the NPN-class
// template set, building each class's template lazily on first use and
// caching it - the practical equivalent of loading "a flat array of
// library-object records... from an embedded static table" (spec.md
// §4.5) when the actual 222-class reference table isn't available to
// embed verbatim (see DESIGN.md).
type Library struct {
	mu        sync.Mutex
	templates map[uint16]*Template
	seen      *bitset.BitSet // NPN classes matched at least once, keyed by canonical truth table
}

// NewLibrary returns a ready-to-use, empty library.
func NewLibrary() *Library {
	return &Library{
		templates: make(map[uint16]*Template),
		seen:      bitset.New(numNPNClasses),
	}
}

// Match classifies tt (a numLeaves-variable truth table, numLeaves <=
// NVars, padded into the low bits the way the cut enumerator already
// lays truth tables out) and returns the class's template together with
// the per-canonical-variable source leaf and negation needed to map the
// template back onto the live cut, and the class's output negation.
func (lib *Library) Match(tt uint16, numLeaves int) (tmpl *Template, tr Transform, ok bool) {
	width := 1 << uint(numLeaves)
	mask := uint16((1 << uint(width)) - 1)
	tt &= mask
	if tt == 0 || tt == mask {
		return nil, Transform{}, false // constant function: no AND/inverter subgraph needed
	}

	full := replicate(tt, width)
	class, transform := Canonicalize(full)

	lib.mu.Lock()
	defer lib.mu.Unlock()
	lib.seen.Set(uint(class))
	t, found := lib.templates[class]
	if !found {
		t = buildTemplate(factorTruth(class, NVars), class, NVars)
		lib.templates[class] = t
	}
	return t, transform, true
}

// replicate tiles a width-bit truth table (one variable per position;
// Match has masked tt down to those low bits, so a table the cut
// enumerator already replicated comes out unchanged) up to a full
// NVars-variable, 16-bit table, so Canonicalize
// sees a properly "don't-care-replicated" function of the unused upper
// variables rather than a function that spuriously evaluates false
// there.
func replicate(tt uint16, width int) uint16 {
	var out uint16
	for shift := 0; shift < 16; shift += width {
		out |= tt << uint(shift)
	}
	return out
}

// ClassesSeen returns the number of distinct NPN classes matched so
// far. Nothing in the module calls it; `rewrite -x` prints no class
// count.
func (lib *Library) ClassesSeen() int {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	return int(lib.seen.Count())
}
