package pass

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertPathDataCanonicalizesToRelative(t *testing.T) {
	ctx, changed := runPass(t, "convertPathData", `<svg xmlns="http://www.w3.org/2000/svg"><path d="M 10 10 L 20 10 L 20 20 Z"/></svg>`)
	assert.True(t, changed)
	p, _ := findFirst(ctx.Arena, ctx.Root, "path")
	v, ok := getAttr(ctx.Arena, p, "d")
	assert.True(t, ok)
	assert.NotEqual(t, "M 10 10 L 20 10 L 20 20 Z", v)
}

func TestMergePathsFusesSameStylePaths(t *testing.T) {
	ctx, changed := runPass(t, "mergePaths", `<svg xmlns="http://www.w3.org/2000/svg">
		<path d="M0 0L1 1" fill="red"/><path d="M2 2L3 3" fill="red"/>
	</svg>`)
	assert.True(t, changed)
	assert.Equal(t, 1, countElements(ctx.Arena, ctx.Root, "path"))
}

func TestMergePathsLeavesDifferentStyleAlone(t *testing.T) {
	_, changed := runPass(t, "mergePaths", `<svg xmlns="http://www.w3.org/2000/svg">
		<path d="M0 0L1 1" fill="red"/><path d="M2 2L3 3" fill="blue"/>
	</svg>`)
	assert.False(t, changed)
}
