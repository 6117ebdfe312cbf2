package pass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveCommentsStripsComments(t *testing.T) {
	_, changed := runPass(t, "removeComments", `<svg xmlns="http://www.w3.org/2000/svg"><!-- hi --><rect/></svg>`)
	assert.True(t, changed)
}

func TestRemoveMetadataRemovesElement(t *testing.T) {
	ctx, changed := runPass(t, "removeMetadata", `<svg xmlns="http://www.w3.org/2000/svg"><metadata>x</metadata><rect/></svg>`)
	assert.True(t, changed)
	assert.Equal(t, 0, countElements(ctx.Arena, ctx.Root, "metadata"))
}

func TestRemoveTitleAndDesc(t *testing.T) {
	ctx, changed := runPass(t, "removeTitle", `<svg xmlns="http://www.w3.org/2000/svg"><title>T</title><rect/></svg>`)
	assert.True(t, changed)
	assert.Equal(t, 0, countElements(ctx.Arena, ctx.Root, "title"))

	ctx, changed = runPass(t, "removeDesc", `<svg xmlns="http://www.w3.org/2000/svg"><desc>D</desc><rect/></svg>`)
	assert.True(t, changed)
	assert.Equal(t, 0, countElements(ctx.Arena, ctx.Root, "desc"))
}

func TestRemoveEmptyContainersDropsEmptyGroup(t *testing.T) {
	ctx, changed := runPass(t, "removeEmptyContainers", `<svg xmlns="http://www.w3.org/2000/svg"><g></g><rect/></svg>`)
	assert.True(t, changed)
	assert.Equal(t, 0, countElements(ctx.Arena, ctx.Root, "g"))
}

func TestRemoveEmptyContainersKeepsIDedGroup(t *testing.T) {
	_, changed := runPass(t, "removeEmptyContainers", `<svg xmlns="http://www.w3.org/2000/svg"><g id="keep"></g></svg>`)
	assert.False(t, changed)
}

func TestRemoveEmptyTextDropsWhitespaceOnly(t *testing.T) {
	_, changed := runPass(t, "removeEmptyText", "<svg xmlns=\"http://www.w3.org/2000/svg\"><text>   \n  </text></svg>")
	assert.True(t, changed)
}

func TestRemoveEmptyTextKeepsPreservedSpace(t *testing.T) {
	_, changed := runPass(t, "removeEmptyText", `<svg xmlns="http://www.w3.org/2000/svg" xml:space="preserve"><text>   </text></svg>`)
	assert.False(t, changed)
}

func TestRemoveUselessDefsDropsUnreferenced(t *testing.T) {
	ctx, changed := runPass(t, "removeUselessDefs", `<svg xmlns="http://www.w3.org/2000/svg"><defs><rect id="a"/></defs><rect/></svg>`)
	assert.True(t, changed)
	assert.Equal(t, 0, countElements(ctx.Arena, ctx.Root, "defs"))
}

func TestRemoveUselessDefsKeepsReferenced(t *testing.T) {
	_, changed := runPass(t, "removeUselessDefs", `<svg xmlns="http://www.w3.org/2000/svg"><defs><rect id="a"/></defs><use href="#a"/></svg>`)
	assert.False(t, changed)
}

func TestRemoveHiddenElemsDropsDisplayNone(t *testing.T) {
	ctx, changed := runPass(t, "removeHiddenElems", `<svg xmlns="http://www.w3.org/2000/svg"><rect display="none" width="1" height="1"/></svg>`)
	assert.True(t, changed)
	assert.Equal(t, 0, countElements(ctx.Arena, ctx.Root, "rect"))
}

func TestRemoveRasterImagesDropsJPEG(t *testing.T) {
	ctx, changed := runPass(t, "removeRasterImages", `<svg xmlns="http://www.w3.org/2000/svg"><image href="photo.jpg"/></svg>`)
	assert.True(t, changed)
	assert.Equal(t, 0, countElements(ctx.Arena, ctx.Root, "image"))
}

func TestRemoveRasterImagesKeepsSVGHref(t *testing.T) {
	_, changed := runPass(t, "removeRasterImages", `<svg xmlns="http://www.w3.org/2000/svg"><image href="icon.svg"/></svg>`)
	assert.False(t, changed)
}

func TestRemoveXMLNSRemovesDeclaration(t *testing.T) {
	ctx, changed := runPass(t, "removeXMLNS", `<svg xmlns="http://www.w3.org/2000/svg"><rect/></svg>`)
	require.NotNil(t, ctx)
	assert.True(t, changed)
	_, ok := getAttr(ctx.Arena, ctx.Root, "xmlns")
	assert.False(t, ok)
}

func TestRemoveEditorsNSDataStripsInkscape(t *testing.T) {
	ctx, changed := runPass(t, "removeEditorsNSData",
		`<svg xmlns="http://www.w3.org/2000/svg" xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape">`+
			`<rect inkscape:label="x"/></svg>`)
	assert.True(t, changed)
	_, ok := getAttr(ctx.Arena, ctx.Root, "inkscape")
	assert.False(t, ok)
}
