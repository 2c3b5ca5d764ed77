package aig

// hashTable is the AIG's structural-hash table: a mapping from the
// canonical key (fanin0.ID, fanin0.Compl, fanin1.ID, fanin1.Compl) to the
// AND object implementing exactly that pair. Chaining is intrusive,
// through Object.hashNext, matching the "Cyclic pNext chains" design
// note: the table owns only the bucket head IDs, and the chain lives
// inside the objects themselves.
//
// Sized to the next prime at or above the requested capacity and grown
// (by rehashing into a larger prime-sized table) once the load factor
// gets too high, mirroring the structural-hash resize behavior of the
// source AIG package.
type hashTable struct {
	buckets []int32 // bucket head object ID, or -1
	count   int32   // number of entries (== number of strashed AND objects)
}

// smallPrimes lists candidate table sizes; the AIG hash table never
// needs to be larger than a few million entries for the graphs this
// engine targets, so a short hand-picked list (doubling, each entry
// nudged to the nearest prime) is simpler than a full primality sieve
// and matches the "sized to the next prime" requirement closely enough
// to preserve the good mixing properties that matter in practice.
var smallPrimes = []int{
	4999, 9973, 19997, 40009, 80021, 160001, 320009,
	640007, 1280023, 2560021, 5120009, 10240019,
	20480009, 40960001, 81920011, 163840001,
}

func nextPrimeSize(capHint int) int {
	for _, p := range smallPrimes {
		if p >= capHint {
			return p
		}
	}
	return smallPrimes[len(smallPrimes)-1]
}

func newHashTable(capHint int) *hashTable {
	size := nextPrimeSize(capHint)
	buckets := make([]int32, size)
	for i := range buckets {
		buckets[i] = -1
	}
	return &hashTable{buckets: buckets}
}

// key packs the canonical fanin pair into a single hash input. Fanins
// are always passed in already-canonicalized order (fanin0.ID <=
// fanin1.ID); see And() and the binary-canonicalization invariant.
func (h *hashTable) key(fanin0, fanin1 Edge) uint64 {
	var k uint64
	k = uint64(uint32(fanin0.ID)) * 2
	if fanin0.Compl {
		k++
	}
	k = k*0x9E3779B97F4A7C15 + uint64(uint32(fanin1.ID))*2
	if fanin1.Compl {
		k++
	}
	return k
}

func (h *hashTable) bucketIndex(fanin0, fanin1 Edge) int {
	k := h.key(fanin0, fanin1)
	return int(k % uint64(len(h.buckets)))
}

// lookup walks the bucket chain for (fanin0, fanin1), returning the
// matching AND object's ID, or false if none exists.
func (h *hashTable) lookup(m *Manager, fanin0, fanin1 Edge) (int32, bool) {
	idx := h.bucketIndex(fanin0, fanin1)
	cur := h.buckets[idx]
	for cur != -1 {
		o := m.Object(cur)
		if o == nil {
			break // defensive: a dangling chain entry should never occur
		}
		if o.Fanin0 == fanin0 && o.Fanin1 == fanin1 {
			return cur, true
		}
		cur = o.hashNext
	}
	return 0, false
}

// insert adds obj (already populated with its canonical fanins) to its
// bucket, growing the table first if the load factor has crept too high.
func (h *hashTable) insert(m *Manager, obj *Object) {
	if h.count >= int32(len(h.buckets))*2 {
		h.grow(m)
	}
	idx := h.bucketIndex(obj.Fanin0, obj.Fanin1)
	obj.hashNext = h.buckets[idx]
	h.buckets[idx] = obj.ID
	h.count++
}

// delete removes obj from its bucket chain. Callers must call this
// before mutating obj's fanins (the key depends on the fanins) and call
// insert again after, per the "bracket the mutation" shared-resource
// rule.
func (h *hashTable) delete(m *Manager, obj *Object) {
	idx := h.bucketIndex(obj.Fanin0, obj.Fanin1)
	cur := h.buckets[idx]
	if cur == obj.ID {
		h.buckets[idx] = obj.hashNext
		obj.hashNext = 0
		h.count--
		return
	}
	for cur != -1 {
		o := m.Object(cur)
		if o.hashNext == obj.ID {
			o.hashNext = obj.hashNext
			obj.hashNext = 0
			h.count--
			return
		}
		cur = o.hashNext
	}
}

// grow rehashes every live AND object into a freshly sized table.
func (h *hashTable) grow(m *Manager) {
	newSize := nextPrimeSize(len(h.buckets) * 2)
	if newSize == len(h.buckets) {
		return // already at the largest configured size
	}
	newBuckets := make([]int32, newSize)
	for i := range newBuckets {
		newBuckets[i] = -1
	}
	old := h.buckets
	h.buckets = newBuckets
	for _, head := range old {
		cur := head
		for cur != -1 {
			o := m.Object(cur)
			next := o.hashNext
			idx := h.bucketIndex(o.Fanin0, o.Fanin1)
			o.hashNext = h.buckets[idx]
			h.buckets[idx] = o.ID
			cur = next
		}
	}
}
