package pass

import (
	"github.com/svgshrink/svgshrink/dom"
	"github.com/svgshrink/svgshrink/visitor"
)

func init() {
	register("removeDeprecatedAttrs", func(any) Pass { return &funcPass{"removeDeprecatedAttrs", runRemoveDeprecatedAttrs} })
}

// deprecatedPresentationAttrs are presentation attributes deprecated by
// the SVG2 profile. requiredFeatures is handled by removeEmptyAttrs
// instead when empty, kept disjoint per §8.6.
var deprecatedPresentationAttrs = map[string]bool{
	"xml:base":            true,
	"enable-background":   true,
	"glyph-orientation-horizontal": true,
	"glyph-orientation-vertical":   true,
	"kerning":             true,
	"color-profile":       true,
}

func runRemoveDeprecatedAttrs(ctx *visitor.Context) (bool, error) {
	changed := false
	walkElements(ctx, func(id dom.NodeID) bool {
		n := ctx.Arena.Node(id)
		if n.Attrs == nil {
			return false
		}
		before := n.Attrs.Len()
		n.Attrs.Retain(func(a dom.Attr) bool {
			full := a.Name.String()
			return !deprecatedPresentationAttrs[full] && !deprecatedPresentationAttrs[a.Name.Local.String()]
		})
		if n.Attrs.Len() != before {
			changed = true
			return true
		}
		return false
	})
	return changed, nil
}
