package pass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svgshrink/svgshrink/svgerr"
)

func TestCleanupIdsRemovesUnreferenced(t *testing.T) {
	ctx := parseCtx(t, `<svg xmlns="http://www.w3.org/2000/svg"><rect id="unused"/><rect id="used"/><use href="#used"/></svg>`)
	ctor, ok := Registry["cleanupIds"]
	require.True(t, ok)
	p := ctor(CleanupIdsOptions{})
	changed, err := p.Run(ctx)
	require.NoError(t, err)
	assert.True(t, changed)

	var rects []string
	for _, c := range ctx.Arena.Node(ctx.Root).Children {
		if localName(ctx.Arena, c) == "rect" {
			if v, ok := getAttr(ctx.Arena, c, "id"); ok {
				rects = append(rects, v)
			}
		}
	}
	assert.Equal(t, []string{"used"}, rects)
}

func TestCleanupIdsMinifiesAndRewritesReferences(t *testing.T) {
	ctx := parseCtx(t, `<svg xmlns="http://www.w3.org/2000/svg"><rect id="longname"/><use href="#longname"/></svg>`)
	ctor, _ := Registry["cleanupIds"]
	p := ctor(CleanupIdsOptions{Minify: true})
	changed, err := p.Run(ctx)
	require.NoError(t, err)
	assert.True(t, changed)

	rect, _ := findFirst(ctx.Arena, ctx.Root, "rect")
	newID, ok := getAttr(ctx.Arena, rect, "id")
	assert.True(t, ok)
	assert.Equal(t, "a", newID)

	use, _ := findFirst(ctx.Arena, ctx.Root, "use")
	href, _ := getAttr(ctx.Arena, use, "href")
	assert.Equal(t, "#a", href)
}

func TestCleanupIdsRefusesOnScripting(t *testing.T) {
	ctx := parseCtx(t, `<svg xmlns="http://www.w3.org/2000/svg"><script>x</script><rect id="a"/></svg>`)
	ctor, _ := Registry["cleanupIds"]
	p := ctor(CleanupIdsOptions{})
	_, err := p.Run(ctx)
	require.Error(t, err)
	var svgErr *svgerr.Error
	require.ErrorAs(t, err, &svgErr)
	assert.Equal(t, svgerr.Precheck, svgErr.Kind)
}

func TestGenerateShortIDSequence(t *testing.T) {
	var counter int
	assert.Equal(t, "a", generateShortID(&counter))
	for i := 0; i < 50; i++ {
		generateShortID(&counter)
	}
	assert.Equal(t, "Z", generateShortID(&counter))
	assert.Equal(t, "aa", generateShortID(&counter))
}
