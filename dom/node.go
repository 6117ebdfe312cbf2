// Package dom implements the arena-backed XML DOM tailored to SVG
// described in §4.D of the specification: node allocation, parent/child
// links, an ordered attribute list, two parser adapters (strict and
// permissive), and a serializer.
package dom

import "github.com/svgshrink/svgshrink/atom"

// Kind is the tagged-variant discriminator for Node, per §3.
type Kind int

const (
	KindDocument Kind = iota
	KindElement
	KindText
	KindCharacterData
	KindComment
	KindProcessingInstruction
	KindDocumentType
)

// NodeID is a unique, monotonically increasing identifier assigned at
// allocation; it is the "weak reference" mechanism described in §9 —
// cross-node links travel by id plus an Arena borrow, never by shared
// ownership, so the tree carries no owning cycles.
type NodeID uint32

// invalidNode is the zero value, never returned by Arena.Alloc.
const invalidNode NodeID = 0

// SourceRange is the optional (name, value, whole-attribute) byte-offset
// metadata populated only by ParseStrict, per §4.D's attribute glossary
// entry.
type SourceRange struct {
	NameStart, NameEnd   int
	ValueStart, ValueEnd int
	WholeStart, WholeEnd int
}

// Node is every DOM node as one tagged struct rather than an
// interface-per-kind, mirroring the closed, switch-dispatched style of
// the teacher's walk.go. Only the fields relevant to Kind are
// meaningful.
type Node struct {
	ID     NodeID
	Kind   Kind
	Parent NodeID // invalidNode for the document root

	Children []NodeID

	// KindElement
	Name  atom.QualName
	Attrs *AttrList

	// KindText, KindCharacterData, KindComment: character content.
	// KindProcessingInstruction: Data is the instruction body.
	Data string

	// KindProcessingInstruction
	Target string

	// KindDocumentType
	DoctypeName, PublicID, SystemID string
}

// IsElement reports whether n is a KindElement node.
func (n *Node) IsElement() bool { return n.Kind == KindElement }
