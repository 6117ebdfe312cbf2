package pass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupAttrsTrimsAndCollapses(t *testing.T) {
	ctx := parseCtx(t, `<svg xmlns="http://www.w3.org/2000/svg"><rect class="  a   b  "/></svg>`)
	ctor, ok := Registry["cleanupAttrs"]
	require.True(t, ok)
	p := ctor(CleanupAttrsOptions{Trim: true, CollapseRuns: true})
	changed, err := p.Run(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	rect, _ := findFirst(ctx.Arena, ctx.Root, "rect")
	v, _ := getAttr(ctx.Arena, rect, "class")
	assert.Equal(t, "a b", v)
}

func TestCleanupNumericValuesRoundsPrecision(t *testing.T) {
	ctx := parseCtx(t, `<svg xmlns="http://www.w3.org/2000/svg"><rect x="1.23456789"/></svg>`)
	ctor, _ := Registry["cleanupNumericValues"]
	p := ctor(CleanupNumericValuesOptions{Precision: 2})
	changed, err := p.Run(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	rect, _ := findFirst(ctx.Arena, ctx.Root, "rect")
	v, _ := getAttr(ctx.Arena, rect, "x")
	assert.Equal(t, "1.23", v)
}

func TestRemoveEmptyAttrsDropsBlankButKeepsConditional(t *testing.T) {
	ctx, changed := runPass(t, "removeEmptyAttrs", `<svg xmlns="http://www.w3.org/2000/svg"><rect fill="" requiredFeatures=""/></svg>`)
	assert.True(t, changed)
	rect, _ := findFirst(ctx.Arena, ctx.Root, "rect")
	_, hasFill := getAttr(ctx.Arena, rect, "fill")
	assert.False(t, hasFill)
	_, hasRF := getAttr(ctx.Arena, rect, "requiredFeatures")
	assert.True(t, hasRF)
}

func TestRemoveUnknownsAndDefaultsDropsDefaultValue(t *testing.T) {
	ctx, changed := runPass(t, "removeUnknownsAndDefaults", `<svg xmlns="http://www.w3.org/2000/svg"><rect fill="black" stroke="red"/></svg>`)
	assert.True(t, changed)
	rect, _ := findFirst(ctx.Arena, ctx.Root, "rect")
	_, hasFill := getAttr(ctx.Arena, rect, "fill")
	assert.False(t, hasFill)
	v, ok := getAttr(ctx.Arena, rect, "stroke")
	assert.True(t, ok)
	assert.Equal(t, "red", v)
}

func TestRemoveUnknownsAndDefaultsDropsGrammarMismatch(t *testing.T) {
	ctx, changed := runPass(t, "removeUnknownsAndDefaults", `<svg xmlns="http://www.w3.org/2000/svg"><rect fill-rule="banana" stroke-linecap="round"/></svg>`)
	assert.True(t, changed)
	rect, _ := findFirst(ctx.Arena, ctx.Root, "rect")
	_, hasFillRule := getAttr(ctx.Arena, rect, "fill-rule")
	assert.False(t, hasFillRule)
	v, ok := getAttr(ctx.Arena, rect, "stroke-linecap")
	assert.True(t, ok)
	assert.Equal(t, "round", v)
}

func TestRemoveNonInheritableGroupAttrsDropsOpacityKeepsFill(t *testing.T) {
	ctx, changed := runPass(t, "removeNonInheritableGroupAttrs", `<svg xmlns="http://www.w3.org/2000/svg"><g opacity="0.5" fill="red"><rect/></g></svg>`)
	assert.True(t, changed)
	g, _ := findFirst(ctx.Arena, ctx.Root, "g")
	_, hasOpacity := getAttr(ctx.Arena, g, "opacity")
	assert.False(t, hasOpacity)
	v, ok := getAttr(ctx.Arena, g, "fill")
	assert.True(t, ok)
	assert.Equal(t, "red", v)
}

func TestRemoveAttributesBySelectorMatchesClass(t *testing.T) {
	ctx := parseCtx(t, `<svg xmlns="http://www.w3.org/2000/svg"><rect class="drop" stroke="red" fill="blue"/></svg>`)
	ctor, _ := Registry["removeAttributesBySelector"]
	p := ctor(RemoveAttributesBySelectorOptions{Selector: ".drop", Attributes: []string{"stroke"}})
	changed, err := p.Run(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	rect, _ := findFirst(ctx.Arena, ctx.Root, "rect")
	_, hasStroke := getAttr(ctx.Arena, rect, "stroke")
	assert.False(t, hasStroke)
	v, ok := getAttr(ctx.Arena, rect, "fill")
	assert.True(t, ok)
	assert.Equal(t, "blue", v)
}
