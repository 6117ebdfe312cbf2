package pass

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertEllipseToCircleWhenRadiiEqual(t *testing.T) {
	ctx, changed := runPass(t, "convertEllipseToCircle", `<svg xmlns="http://www.w3.org/2000/svg"><ellipse cx="5" cy="5" rx="3" ry="3"/></svg>`)
	assert.True(t, changed)
	assert.Equal(t, 0, countElements(ctx.Arena, ctx.Root, "ellipse"))
	c, ok := findFirst(ctx.Arena, ctx.Root, "circle")
	assert.True(t, ok)
	v, ok := getAttr(ctx.Arena, c, "r")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestConvertEllipseToCircleLeavesUnequalRadii(t *testing.T) {
	_, changed := runPass(t, "convertEllipseToCircle", `<svg xmlns="http://www.w3.org/2000/svg"><ellipse cx="5" cy="5" rx="3" ry="4"/></svg>`)
	assert.False(t, changed)
}

func TestConvertShapeToPathRewritesLine(t *testing.T) {
	ctx, changed := runPass(t, "convertShapeToPath", `<svg xmlns="http://www.w3.org/2000/svg"><line x1="0" y1="0" x2="100" y2="100"/></svg>`)
	assert.True(t, changed)
	assert.Equal(t, 0, countElements(ctx.Arena, ctx.Root, "line"))
	p, ok := findFirst(ctx.Arena, ctx.Root, "path")
	assert.True(t, ok)
	_, hasD := getAttr(ctx.Arena, p, "d")
	assert.True(t, hasD)
}

func TestConvertShapeToPathSkipsRoundedRect(t *testing.T) {
	_, changed := runPass(t, "convertShapeToPath", `<svg xmlns="http://www.w3.org/2000/svg"><rect x="0" y="0" width="10" height="10" rx="2"/></svg>`)
	assert.False(t, changed)
}
