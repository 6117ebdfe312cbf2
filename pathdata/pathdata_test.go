package pathdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimple(t *testing.T) {
	cmds, err := Parse("M0 0L10 10")
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, MoveTo, cmds[0].Kind)
	assert.Equal(t, LineTo, cmds[1].Kind)
	assert.Equal(t, 10.0, cmds[1].X)
}

func TestParseImplicitMoveContinuation(t *testing.T) {
	cmds, err := Parse("M0,0 10,10 20,0")
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	assert.Equal(t, MoveTo, cmds[0].Kind)
	assert.Equal(t, LineTo, cmds[1].Kind)
	assert.Equal(t, LineTo, cmds[2].Kind)
}

func TestParseRelativeAndClose(t *testing.T) {
	cmds, err := Parse("m1,1 l2,2 z")
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	assert.Equal(t, MoveBy, cmds[0].Kind)
	assert.Equal(t, LineBy, cmds[1].Kind)
	assert.Equal(t, ClosePath, cmds[2].Kind)
}

func TestParseHorizontalVertical(t *testing.T) {
	cmds, err := Parse("M0,0H5V5")
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	assert.Equal(t, 5.0, cmds[1].X)
	assert.Equal(t, 5.0, cmds[2].Y)
}

func TestParseArc(t *testing.T) {
	cmds, err := Parse("M0,0A5,5 0 1 0 10,10")
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	arc := cmds[1]
	assert.Equal(t, ArcTo, arc.Kind)
	assert.Equal(t, 5.0, arc.Rx)
	assert.True(t, arc.LargeArc)
	assert.False(t, arc.Sweep)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("M0,0 X")
	require.Error(t, err)
}

func TestParsePoints(t *testing.T) {
	cmds, err := ParsePoints("0,0 10,10 20,0")
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	assert.Equal(t, MoveTo, cmds[0].Kind)
	assert.Equal(t, LineTo, cmds[1].Kind)

	s := Serialize(cmds, FormPoints)
	assert.Equal(t, "0,0 10,10 20,0", s)
}

func TestPositionClosePathReturnsToBase(t *testing.T) {
	cmds, err := Parse("M1,1 L5,5 Z")
	require.NoError(t, err)
	positioned := Position(cmds)
	last := positioned[len(positioned)-1]
	assert.Equal(t, [2]float64{1, 1}, last.End)
}

func TestSerializeElidesRepeatedLetter(t *testing.T) {
	cmds, err := Parse("M0,0 L1,1 L2,2")
	require.NoError(t, err)
	s := Serialize(cmds, FormPath)
	assert.Equal(t, 1, countOccurrences(s, 'L'))
}

func TestSerializeDropsLeadingZero(t *testing.T) {
	s := formatNumber(0.5)
	assert.Equal(t, ".5", s)
	s = formatNumber(-0.5)
	assert.Equal(t, "-.5", s)
}

func TestCanonicalizeRoundsAndShrinks(t *testing.T) {
	cmds, err := Parse("M0.123456,0.123456 L10.999999,0")
	require.NoError(t, err)
	out := Canonicalize(cmds, CanonOptions{Precision: 2})
	original := Serialize(cmds, FormPath)
	rounded := Serialize(out, FormPath)
	assert.LessOrEqual(t, len(rounded), len(original))
}

func TestCanonicalizeDropsZeroDisplacement(t *testing.T) {
	cmds, err := Parse("M0,0 L0,0 L10,10")
	require.NoError(t, err)
	out := Canonicalize(cmds, CanonOptions{DropZeroDisplacement: true})
	require.Len(t, out, 2)
}

func TestCanonicalizePrefersClosePath(t *testing.T) {
	cmds, err := Parse("M0,0 L10,0 L10,10 L0,0")
	require.NoError(t, err)
	out := Canonicalize(cmds, CanonOptions{PreferClosePath: true, StrokeIsRound: true})
	assert.Equal(t, ClosePath, out[len(out)-1].Kind)
}

func TestCanonicalizeIdempotent(t *testing.T) {
	cmds, err := Parse("M10,10 l5,5 h-3 v2 z")
	require.NoError(t, err)
	opts := CanonOptions{Precision: 3, CollapseRepeated: true, DropZeroDisplacement: true}
	once := Canonicalize(cmds, opts)
	twice := Canonicalize(once, opts)
	assert.Equal(t, Serialize(once, FormPath), Serialize(twice, FormPath))
}

func countOccurrences(s string, b byte) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			n++
		}
	}
	return n
}
