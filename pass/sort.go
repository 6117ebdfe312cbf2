package pass

import (
	"sort"

	"github.com/svgshrink/svgshrink/dom"
	"github.com/svgshrink/svgshrink/visitor"
)

func init() {
	register("sortAttrs", func(any) Pass { return &funcPass{"sortAttrs", runSortAttrs} })
	register("sortDefsChildren", func(any) Pass { return &funcPass{"sortDefsChildren", runSortDefsChildren} })
}

// canonicalAttrOrder is §4.F's literal canonical list; see DESIGN.md's
// note on the worked example's apparent cx/x2 discrepancy.
var canonicalAttrOrder = []string{
	"id", "width", "height", "x", "x1", "x2", "y", "y1", "y2",
	"cx", "cy", "r", "fill", "stroke", "marker", "d", "points",
}

func runSortAttrs(ctx *visitor.Context) (bool, error) {
	changed := walkElements(ctx, func(id dom.NodeID) bool {
		n := ctx.Arena.Node(id)
		if n.Attrs == nil || n.Attrs.Len() < 2 {
			return false
		}
		before := append([]dom.Attr(nil), n.Attrs.All()...)
		n.Attrs.Sort(canonicalAttrOrder, dom.XMLNSFront)
		after := n.Attrs.All()
		for i := range before {
			if before[i].Name != after[i].Name {
				return true
			}
		}
		return false
	})
	return changed, nil
}

// runSortDefsChildren stably groups <defs> children by element name,
// preserving each group's relative order — improving downstream gzip
// ratio by clustering repeated tag names, per §4.F.
func runSortDefsChildren(ctx *visitor.Context) (bool, error) {
	changed := walkElements(ctx, func(id dom.NodeID) bool {
		if localName(ctx.Arena, id) != "defs" {
			return false
		}
		n := ctx.Arena.Node(id)
		before := append([]dom.NodeID(nil), n.Children...)
		freq := map[string]int{}
		firstSeen := map[string]int{}
		for i, c := range n.Children {
			name := localName(ctx.Arena, c)
			freq[name]++
			if _, ok := firstSeen[name]; !ok {
				firstSeen[name] = i
			}
		}
		sorted := append([]dom.NodeID(nil), n.Children...)
		sort.SliceStable(sorted, func(i, j int) bool {
			ni, nj := localName(ctx.Arena, sorted[i]), localName(ctx.Arena, sorted[j])
			if freq[ni] != freq[nj] {
				return freq[ni] > freq[nj]
			}
			return firstSeen[ni] < firstSeen[nj]
		})
		n.Children = sorted
		for i := range before {
			if before[i] != sorted[i] {
				return true
			}
		}
		return false
	})
	return changed, nil
}
