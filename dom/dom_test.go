package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svgshrink/svgshrink/atom"
)

func atomName(a *Arena, local string) atom.QualName {
	return atom.Name(a.Atoms, "", local, "")
}

func atomNameNS(a *Arena, prefix, local string) atom.QualName {
	return atom.Name(a.Atoms, prefix, local, atom.NamespaceFor(prefix))
}

func TestArenaAppendDetachReplace(t *testing.T) {
	a := NewArena()
	root := a.Alloc(KindElement)
	root2 := a.Node(root)
	root2.Name.Local = a.Intern("svg")

	child1 := a.Alloc(KindElement)
	child2 := a.Alloc(KindElement)
	a.Append(root, child1)
	a.Append(root, child2)
	require.Equal(t, []NodeID{child1, child2}, a.Node(root).Children)

	a.Detach(child1)
	require.Equal(t, []NodeID{child2}, a.Node(root).Children)
	require.Equal(t, invalidNode, a.Node(child1).Parent)

	child3 := a.Alloc(KindElement)
	a.Insert(root, 0, child3)
	require.Equal(t, []NodeID{child3, child2}, a.Node(root).Children)

	child4 := a.Alloc(KindElement)
	a.Replace(child2, child4)
	require.Equal(t, []NodeID{child3, child4}, a.Node(root).Children)
}

func TestArenaInvalidNodePanics(t *testing.T) {
	a := NewArena()
	assert.Panics(t, func() { a.Node(NodeID(999)) })
	assert.Panics(t, func() { a.Node(invalidNode) })
}

func TestAttrListUniqueness(t *testing.T) {
	a := NewArena()
	l := &AttrList{}
	name := atomName(a, "id")
	l.Set(name, "one")
	l.Set(name, "two")
	require.Equal(t, 1, l.Len())
	v, ok := l.Get(name)
	require.True(t, ok)
	assert.Equal(t, "two", v.Value)
}

func TestAttrListRemoveRetain(t *testing.T) {
	a := NewArena()
	l := &AttrList{}
	l.Set(atomName(a, "id"), "x")
	l.Set(atomName(a, "class"), "y")
	l.Set(atomName(a, "fill"), "red")

	l.Retain(func(at Attr) bool { return at.Name.Local.String() != "class" })
	require.Equal(t, 2, l.Len())

	l.Remove(atomName(a, "fill"))
	require.Equal(t, 1, l.Len())
	_, ok := l.Get(atomName(a, "fill"))
	assert.False(t, ok)
}

func TestAttrListSortCanonicalOrder(t *testing.T) {
	a := NewArena()
	l := &AttrList{}
	for _, name := range []string{"r", "b", "x2", "cx", "y1", "a", "y"} {
		l.Set(atomName(a, name), "")
	}
	order := []string{"id", "width", "height", "x", "x1", "x2", "y", "y1", "y2", "cx", "cy", "r", "fill", "stroke", "marker", "d", "points"}
	l.Sort(order, XMLNSFront)

	var got []string
	for _, at := range l.All() {
		got = append(got, at.Name.Local.String())
	}
	assert.Equal(t, []string{"x2", "y", "y1", "cx", "r", "b", "a"}, got)
}

func TestAttrListSortXMLNSFront(t *testing.T) {
	a := NewArena()
	l := &AttrList{}
	l.Set(atomName(a, "b"), "")
	l.Set(atomNameNS(a, "xlink", "href"), "")
	l.Set(atomName(a, "xmlns"), "")
	l.Set(atomName(a, "a"), "")

	l.Sort(nil, XMLNSFront)
	var got []string
	for _, at := range l.All() {
		got = append(got, at.Name.String())
	}
	assert.Equal(t, []string{"xmlns", "b", "xlink:href", "a"}, got)
}
