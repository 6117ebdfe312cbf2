// Package atom provides cheap-to-clone, hashable string interning for
// element and attribute names, namespace prefixes, and namespace URIs.
package atom

import (
	"sync"

	"github.com/minio/highwayhash"
)

// hashKey is the fixed HighwayHash key used to derive bucket hashes for
// interned strings. It does not need to be secret; it only needs to be
// stable across a process so that Hash is deterministic within a Table.
var hashKey = []byte("svgshrink-atom-table-key-0123456")

// Atom is an interned string identifier. The zero Atom is invalid; use
// Table.Intern to obtain one. Two atoms with equal contents compare equal
// in O(1), since both were produced by the same Table and therefore share
// an index.
type Atom struct {
	table *Table
	index int32
}

// IsZero reports whether a has never been assigned by a Table.
func (a Atom) IsZero() bool {
	return a.table == nil
}

// String returns the interned string. Calling String on the zero Atom
// returns "".
func (a Atom) String() string {
	if a.table == nil {
		return ""
	}
	return a.table.strings[a.index]
}

// Equal reports whether a and b were interned from equal strings by the
// same Table.
func (a Atom) Equal(b Atom) bool {
	return a.table == b.table && a.index == b.index
}

// Less provides an arbitrary but stable total order over atoms from the
// same table, used by passes that want deterministic output independent
// of interning order (e.g. a canonical attribute sort).
func (a Atom) Less(b Atom) bool {
	if a.table == b.table {
		return a.index < b.index
	}
	return a.String() < b.String()
}

// Table is a per-arena intern table. Its methods are guarded by an
// internal mutex; per §5 of the specification, one Table is owned by
// exactly one document's processing.
type Table struct {
	mu      sync.Mutex
	byHash  map[uint64][]int32
	strings []string
}

// NewTable returns an empty intern table.
func NewTable() *Table {
	return &Table{byHash: make(map[uint64][]int32)}
}

// hash computes the HighwayHash64 of s under the table's fixed key. This
// avoids Go's built-in map hashing from having to rehash long class/style
// strings on every lookup during a hot parsing loop.
func hash(s string) uint64 {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		// hashKey is a fixed 32-byte constant; New64 only fails on a
		// key of the wrong length.
		panic(err)
	}
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Intern returns the Atom for s, allocating a new slot the first time s
// is seen. Interning is idempotent: Intern(s) called twice returns equal
// atoms.
func (t *Table) Intern(s string) Atom {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := hash(s)
	for _, idx := range t.byHash[h] {
		if t.strings[idx] == s {
			return Atom{table: t, index: idx}
		}
	}

	idx := int32(len(t.strings))
	t.strings = append(t.strings, s)
	t.byHash[h] = append(t.byHash[h], idx)
	return Atom{table: t, index: idx}
}

// Len returns the number of distinct strings interned so far.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.strings)
}
