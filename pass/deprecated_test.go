package pass

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveDeprecatedAttrsDropsKerning(t *testing.T) {
	ctx, changed := runPass(t, "removeDeprecatedAttrs", `<svg xmlns="http://www.w3.org/2000/svg"><text kerning="1" font-size="12">t</text></svg>`)
	assert.True(t, changed)
	textEl, _ := findFirst(ctx.Arena, ctx.Root, "text")
	_, hasKerning := getAttr(ctx.Arena, textEl, "kerning")
	assert.False(t, hasKerning)
	v, ok := getAttr(ctx.Arena, textEl, "font-size")
	assert.True(t, ok)
	assert.Equal(t, "12", v)
}

func TestRemoveDeprecatedAttrsNoopOtherwise(t *testing.T) {
	_, changed := runPass(t, "removeDeprecatedAttrs", `<svg xmlns="http://www.w3.org/2000/svg"><rect fill="red"/></svg>`)
	assert.False(t, changed)
}
