package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeRoundTripPreservesStructure(t *testing.T) {
	arena, root, err := ParseStrict(strings.NewReader(sampleSVG))
	require.NoError(t, err)

	out := Serialize(arena, root, DefaultWriteOptions())

	arena2, root2, err := ParseStrict(strings.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, arena.Node(root).Name.Local.String(), arena2.Node(root2).Name.Local.String())
	assert.Equal(t, len(elementChildren(arena, root)), len(elementChildren(arena2, root2)))
}

func TestSerializeSelfCloseWhenEmpty(t *testing.T) {
	arena := NewArena()
	root := arena.Alloc(KindElement)
	arena.RootID = root
	n := arena.Node(root)
	n.Name = atomName(arena, "rect")
	n.Attrs = &AttrList{}
	n.Attrs.Set(atomName(arena, "x"), "0")

	out := Serialize(arena, root, DefaultWriteOptions())
	assert.Equal(t, `<rect x="0"/>`, out)
}

func TestSerializeAttributeOrder(t *testing.T) {
	arena := NewArena()
	root := arena.Alloc(KindElement)
	arena.RootID = root
	n := arena.Node(root)
	n.Name = atomName(arena, "rect")
	n.Attrs = &AttrList{}
	n.Attrs.Set(atomName(arena, "fill"), "red")
	n.Attrs.Set(atomName(arena, "id"), "a")

	opts := DefaultWriteOptions()
	opts.AttributeOrder = []string{"id", "fill"}
	out := Serialize(arena, root, opts)
	assert.Equal(t, `<rect id="a" fill="red"/>`, out)

	// Original order is unaffected by serialization with an explicit order.
	var names []string
	for _, a := range n.Attrs.All() {
		names = append(names, a.Name.Local.String())
	}
	assert.Equal(t, []string{"fill", "id"}, names)
}

func TestSerializePreservesSpaceVerbatim(t *testing.T) {
	arena := NewArena()
	root := arena.Alloc(KindElement)
	arena.RootID = root
	n := arena.Node(root)
	n.Name = atomName(arena, "text")
	n.Attrs = &AttrList{}
	n.Attrs.Set(atomNameNS(arena, "xml", "space"), "preserve")

	text := arena.Alloc(KindText)
	arena.Node(text).Data = "  hello   world  "
	arena.Append(root, text)

	opts := DefaultWriteOptions()
	opts.Whitespace = WhitespaceCollapse
	out := Serialize(arena, root, opts)
	assert.Contains(t, out, "  hello   world  ")
}

func elementChildren(arena *Arena, id NodeID) []NodeID {
	var out []NodeID
	for _, c := range arena.Node(id).Children {
		if arena.Node(c).IsElement() {
			out = append(out, c)
		}
	}
	return out
}
