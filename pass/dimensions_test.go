package pass

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveDimensionsSynthesizesViewBox(t *testing.T) {
	ctx, changed := runPass(t, "removeDimensions", `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="50"><rect/></svg>`)
	assert.True(t, changed)
	_, hasWidth := getAttr(ctx.Arena, ctx.Root, "width")
	_, hasHeight := getAttr(ctx.Arena, ctx.Root, "height")
	assert.False(t, hasWidth)
	assert.False(t, hasHeight)
	vb, ok := getAttr(ctx.Arena, ctx.Root, "viewBox")
	assert.True(t, ok)
	assert.Equal(t, "0 0 100 50", vb)
}

func TestRemoveDimensionsDropsWhenViewBoxPresent(t *testing.T) {
	ctx, changed := runPass(t, "removeDimensions", `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="50" viewBox="0 0 100 50"><rect/></svg>`)
	assert.True(t, changed)
	_, hasWidth := getAttr(ctx.Arena, ctx.Root, "width")
	assert.False(t, hasWidth)
	vb, ok := getAttr(ctx.Arena, ctx.Root, "viewBox")
	assert.True(t, ok)
	assert.Equal(t, "0 0 100 50", vb)
}

func TestRemoveDimensionsNoopWhenNoDimensions(t *testing.T) {
	_, changed := runPass(t, "removeDimensions", `<svg xmlns="http://www.w3.org/2000/svg"><rect/></svg>`)
	assert.False(t, changed)
}
