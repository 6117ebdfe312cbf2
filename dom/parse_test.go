package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSVG = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100">
  <!-- a comment -->
  <rect id="r1" x="0" y="0" width="10" height="10" fill="red"/>
  <g>
    <circle cx="5" cy="5" r="2"/>
  </g>
</svg>`

func TestParseStrictBasic(t *testing.T) {
	arena, root, err := ParseStrict(strings.NewReader(sampleSVG))
	require.NoError(t, err)

	rootNode := arena.Node(root)
	assert.True(t, rootNode.IsElement())
	assert.Equal(t, "svg", rootNode.Name.Local.String())

	widthAttr, ok := rootNode.Attrs.GetLocal("width")
	require.True(t, ok)
	assert.Equal(t, "100", widthAttr.Value)

	var sawComment, sawRect, sawGroup bool
	for _, c := range rootNode.Children {
		n := arena.Node(c)
		switch {
		case n.Kind == KindComment:
			sawComment = true
		case n.IsElement() && n.Name.Local.String() == "rect":
			sawRect = true
			id, ok := n.Attrs.GetLocal("id")
			require.True(t, ok)
			assert.Equal(t, "r1", id.Value)
		case n.IsElement() && n.Name.Local.String() == "g":
			sawGroup = true
		}
	}
	assert.True(t, sawComment)
	assert.True(t, sawRect)
	assert.True(t, sawGroup)
}

func TestParseStrictRejectsMalformed(t *testing.T) {
	_, _, err := ParseStrict(strings.NewReader(`<svg><rect></svg>`))
	assert.Error(t, err)
}

func TestParsePermissiveTolerant(t *testing.T) {
	arena, root, err := ParsePermissive(strings.NewReader(`<svg><rect id="a"><circle id="b"></svg>`))
	require.NoError(t, err)
	assert.True(t, arena.Node(root).IsElement())
}

func TestParseStrictAttributeUniqueness(t *testing.T) {
	arena, root, err := ParseStrict(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg" id="a" fill="red"/>`))
	require.NoError(t, err)
	n := arena.Node(root)
	assert.Equal(t, 3, n.Attrs.Len())
}
