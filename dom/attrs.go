package dom

import (
	"sort"

	"github.com/svgshrink/svgshrink/atom"
	"github.com/svgshrink/svgshrink/pathdata"
)

// ValueKind discriminates the parsed-value variant described in §4.D:
// "free string, parsed path-data, parsed CSS property value, list of
// numbers, URL reference, enum".
type ValueKind int

const (
	ValueString ValueKind = iota
	ValuePathData
	ValueCSS
	ValueNumberList
	ValueURL
	ValueEnum
)

// ParsedValue is the lazily-computed, cached interpretation of an
// attribute's raw string value. Parsing is lazy: Attr.Parsed starts nil
// and is filled in by whichever code first parses the value; mutating
// Value (via AttrList.Set) invalidates the cache.
type ParsedValue struct {
	Kind ValueKind

	Path    []pathdata.Command // ValuePathData
	CSS     string             // ValueCSS: normalized declaration text
	Numbers []float64          // ValueNumberList
	URL     string             // ValueURL: dereferenced target, without url(...)
	Enum    string             // ValueEnum
}

// Attr is one (qualified-name, value, optional source-range) entry in an
// element's attribute list.
type Attr struct {
	Name   atom.QualName
	Value  string
	Range  *SourceRange
	Parsed *ParsedValue
}

// AttrList is the ordered attribute sequence carried by every Element
// node, with the invariant that no two entries share the same qualified
// name (§4.D's attribute-uniqueness invariant, property 4 in §8).
// Insertion order is preserved unless a sort pass reorders it.
type AttrList struct {
	entries []Attr
}

// Len returns the number of attributes.
func (l *AttrList) Len() int { return len(l.entries) }

// All returns the attributes in their current order. Callers must treat
// the returned slice as read-only; use Set/Remove to mutate.
func (l *AttrList) All() []Attr {
	return l.entries
}

func (l *AttrList) indexOf(name atom.QualName) int {
	for i := range l.entries {
		if l.entries[i].Name.Equal(name) {
			return i
		}
	}
	return -1
}

// Get returns the attribute named name and whether it exists.
func (l *AttrList) Get(name atom.QualName) (Attr, bool) {
	if i := l.indexOf(name); i >= 0 {
		return l.entries[i], true
	}
	return Attr{}, false
}

// GetLocal looks up an attribute by its local-name string only,
// regardless of prefix — a convenience used by passes that check
// presentation attributes (which are always unprefixed).
func (l *AttrList) GetLocal(local string) (Attr, bool) {
	for i := range l.entries {
		if l.entries[i].Name.Local.String() == local {
			return l.entries[i], true
		}
	}
	return Attr{}, false
}

// Set inserts or updates the attribute named name. Updating an existing
// entry preserves its position (insertion order) but clears its cached
// Parsed value and Range, since the raw value has changed.
func (l *AttrList) Set(name atom.QualName, value string) {
	if i := l.indexOf(name); i >= 0 {
		l.entries[i].Value = value
		l.entries[i].Parsed = nil
		l.entries[i].Range = nil
		return
	}
	l.entries = append(l.entries, Attr{Name: name, Value: value})
}

// SetRanged is Set plus a source range, used by the strict parser.
func (l *AttrList) SetRanged(name atom.QualName, value string, r *SourceRange) {
	l.Set(name, value)
	if i := l.indexOf(name); i >= 0 {
		l.entries[i].Range = r
	}
}

// Remove deletes the attribute named name, if present, preserving the
// relative order of the rest.
func (l *AttrList) Remove(name atom.QualName) {
	if i := l.indexOf(name); i >= 0 {
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
	}
}

// Retain keeps only attributes for which pred returns true, preserving
// relative order — the general-purpose primitive behind every
// RemoveXxxAttrs pass.
func (l *AttrList) Retain(pred func(Attr) bool) {
	out := l.entries[:0]
	for _, a := range l.entries {
		if pred(a) {
			out = append(out, a)
		}
	}
	l.entries = out
}

// XMLNSPolicy controls how Sort places xmlns/xmlns:* declarations.
type XMLNSPolicy int

const (
	// XMLNSFront places all xmlns attributes ahead of all non-xmlns
	// attributes.
	XMLNSFront XMLNSPolicy = iota
	// XMLNSAlphabetical sorts xmlns attributes alphabetically among the
	// rest, with no special placement.
	XMLNSAlphabetical
)

// Sort stably reorders attributes: entries whose local name appears in
// order is placed first, in that order; all others keep their original
// relative order after those. xmlns handling is controlled by policy.
// This implements §4.D's sort contract and §8's sort-stability
// invariant (property 5). The order slice passed by sortAttrs follows
// §4.F's canonical attribute order list literally; that list and the
// §8 worked example disagree on where cx/x2 fall relative to each
// other, and DESIGN.md records the decision to treat the prose list as
// normative — see "Note on the §8 sortAttrs worked example".
func (l *AttrList) Sort(order []string, policy XMLNSPolicy) {
	rank := make(map[string]int, len(order))
	for i, name := range order {
		rank[name] = i
	}

	isXMLNS := func(a Attr) bool {
		local := a.Name.Local.String()
		return local == "xmlns" || a.Name.Prefix.String() == "xmlns"
	}

	type keyed struct {
		attr     Attr
		origIdx  int
		rank     int
		inOrder  bool
		isXMLNS  bool
	}
	keys := make([]keyed, len(l.entries))
	for i, a := range l.entries {
		r, ok := rank[a.Name.Local.String()]
		keys[i] = keyed{attr: a, origIdx: i, rank: r, inOrder: ok, isXMLNS: isXMLNS(a)}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]

		if policy == XMLNSFront && a.isXMLNS != b.isXMLNS {
			return a.isXMLNS
		}

		if a.inOrder != b.inOrder {
			return a.inOrder
		}
		if a.inOrder && b.inOrder {
			return a.rank < b.rank
		}

		if policy == XMLNSAlphabetical {
			return a.attr.Name.Local.String() < b.attr.Name.Local.String()
		}

		return a.origIdx < b.origIdx
	})

	out := make([]Attr, len(keys))
	for i, k := range keys {
		out[i] = k.attr
	}
	l.entries = out
}
