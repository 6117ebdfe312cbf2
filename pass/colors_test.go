package pass

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertColorsShortensHex(t *testing.T) {
	ctx, changed := runPass(t, "convertColors", `<svg xmlns="http://www.w3.org/2000/svg"><rect fill="#ffffff"/></svg>`)
	assert.True(t, changed)
	rect, _ := findFirst(ctx.Arena, ctx.Root, "rect")
	v, _ := getAttr(ctx.Arena, rect, "fill")
	assert.Equal(t, "#fff", v)
}

func TestConvertColorsNamedToHex(t *testing.T) {
	ctx, changed := runPass(t, "convertColors", `<svg xmlns="http://www.w3.org/2000/svg"><rect fill="red"/></svg>`)
	assert.True(t, changed)
	rect, _ := findFirst(ctx.Arena, ctx.Root, "rect")
	v, _ := getAttr(ctx.Arena, rect, "fill")
	assert.Equal(t, "#f00", v)
}

func TestConvertColorsRGBFunc(t *testing.T) {
	ctx, changed := runPass(t, "convertColors", `<svg xmlns="http://www.w3.org/2000/svg"><rect fill="rgb(0,128,0)"/></svg>`)
	assert.True(t, changed)
	rect, _ := findFirst(ctx.Arena, ctx.Root, "rect")
	v, _ := getAttr(ctx.Arena, rect, "fill")
	assert.Equal(t, "#008000", v)
}

func TestConvertColorsHSLFunc(t *testing.T) {
	ctx, changed := runPass(t, "convertColors", `<svg xmlns="http://www.w3.org/2000/svg"><rect fill="hsl(0,100%,50%)"/></svg>`)
	assert.True(t, changed)
	rect, _ := findFirst(ctx.Arena, ctx.Root, "rect")
	v, ok := getAttr(ctx.Arena, rect, "fill")
	assert.True(t, ok)
	assert.Regexp(t, `^#[0-9a-f]{3}([0-9a-f]{3})?$`, v)
}
