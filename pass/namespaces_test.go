package pass

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveUnusedNSDropsUnreferencedPrefix(t *testing.T) {
	ctx, changed := runPass(t, "removeUnusedNS",
		`<svg xmlns="http://www.w3.org/2000/svg" xmlns:unused="http://example.com/unused"><rect/></svg>`)
	assert.True(t, changed)
	_, ok := getAttr(ctx.Arena, ctx.Root, "unused")
	assert.False(t, ok)
}

func TestRemoveUnusedNSKeepsReferencedPrefix(t *testing.T) {
	_, changed := runPass(t, "removeUnusedNS",
		`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink"><use xlink:href="#a"/></svg>`)
	assert.False(t, changed)
}
