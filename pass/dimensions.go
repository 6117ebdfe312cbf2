package pass

import (
	"fmt"

	"github.com/svgshrink/svgshrink/visitor"
)

func init() {
	register("removeDimensions", func(any) Pass { return &funcPass{"removeDimensions", runRemoveDimensions} })
}

// runRemoveDimensions implements the §8 worked example: when the root
// <svg> has width/height but no viewBox, it synthesizes
// viewBox="0 0 W H" and drops both; when a viewBox already exists, it
// drops width/height outright (the viewBox alone is sufficient for
// scaling).
func runRemoveDimensions(ctx *visitor.Context) (bool, error) {
	root := ctx.Root
	width, hasWidth := getAttr(ctx.Arena, root, "width")
	height, hasHeight := getAttr(ctx.Arena, root, "height")
	_, hasViewBox := getAttr(ctx.Arena, root, "viewBox")

	if !hasWidth && !hasHeight {
		return false, nil
	}

	if !hasViewBox && hasWidth && hasHeight {
		w, okW := parseLength(width)
		h, okH := parseLength(height)
		if okW && okH {
			setAttr(ctx.Arena, root, "viewBox", fmt.Sprintf("0 0 %s %s", trimNum(w), trimNum(h)))
		}
	}

	changed := false
	if hasWidth {
		removeAttr(ctx.Arena, root, "width")
		changed = true
	}
	if hasHeight {
		removeAttr(ctx.Arena, root, "height")
		changed = true
	}
	return changed, nil
}

func parseLength(s string) (float64, bool) {
	return parseFloatOr0(s), s != ""
}
