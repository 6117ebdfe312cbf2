package dom

import (
	"fmt"

	"github.com/svgshrink/svgshrink/atom"
)

// Arena is the process-scoped, per-document allocator described in §3:
// it owns every Node and the intern table for any copied strings. Nodes
// never outlive their Arena. Per §5, an Arena is used by exactly one
// goroutine at a time; a batch driver gives each document its own Arena
// and Table so that documents may be processed on separate goroutines
// without sharing mutable state.
type Arena struct {
	Atoms *atom.Table

	nodes   []*Node // index 0 is unused; NodeID 0 is invalid
	nextID  NodeID
	RootID  NodeID
}

// NewArena returns an empty arena with a fresh intern table.
func NewArena() *Arena {
	a := &Arena{Atoms: atom.NewTable()}
	a.nodes = make([]*Node, 1) // reserve index 0 as invalidNode
	a.nextID = 1
	return a
}

// Alloc allocates a new node of the given kind and returns its id. The
// node is unattached until Insert/Append links it under a parent.
func (a *Arena) Alloc(kind Kind) NodeID {
	id := a.nextID
	a.nextID++
	a.nodes = append(a.nodes, &Node{ID: id, Kind: kind})
	return id
}

// Node returns the node for id. It panics on an invalid or foreign id,
// the same contract a slice index out of range would give — arena
// borrows are expected to be used within the lifetime of the arena that
// produced them (§3's lifecycle note).
func (a *Arena) Node(id NodeID) *Node {
	if id == invalidNode || int(id) >= len(a.nodes) || a.nodes[id] == nil {
		panic(fmt.Sprintf("dom: invalid node id %d", id))
	}
	return a.nodes[id]
}

// Intern is a convenience wrapper around Atoms.Intern.
func (a *Arena) Intern(s string) atom.Atom {
	return a.Atoms.Intern(s)
}

// Append inserts child as the last child of parent.
func (a *Arena) Append(parent, child NodeID) {
	a.Insert(parent, -1, child)
}

// Insert inserts child at position among parent's children (0 <= position
// <= len(children)); position < 0 means append. Invariant: every attached
// child has a parent whose children list contains it exactly once.
func (a *Arena) Insert(parent NodeID, position int, child NodeID) {
	p := a.Node(parent)
	c := a.Node(child)
	if c.Parent != invalidNode {
		a.Detach(child)
	}
	c.Parent = parent
	if position < 0 || position > len(p.Children) {
		p.Children = append(p.Children, child)
		return
	}
	p.Children = append(p.Children, 0)
	copy(p.Children[position+1:], p.Children[position:])
	p.Children[position] = child
}

// Detach removes child from its parent's children list. Detaching is
// O(siblings) but does not invalidate other node references: the node's
// storage persists in the arena (§3's lifecycle note), only the
// parent/child edge is cut.
func (a *Arena) Detach(child NodeID) {
	c := a.Node(child)
	if c.Parent == invalidNode {
		return
	}
	p := a.Node(c.Parent)
	for i, id := range p.Children {
		if id == child {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	c.Parent = invalidNode
}

// Replace detaches old and inserts new in its place among old's former
// parent's children (at the same position), then leaves old detached.
func (a *Arena) Replace(oldID, newID NodeID) {
	old := a.Node(oldID)
	if old.Parent == invalidNode {
		return
	}
	p := a.Node(old.Parent)
	for i, id := range p.Children {
		if id == oldID {
			a.Detach(oldID)
			a.Insert(old.Parent, i, newID)
			return
		}
	}
}
