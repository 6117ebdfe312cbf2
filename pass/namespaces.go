package pass

import (
	"github.com/svgshrink/svgshrink/dom"
	"github.com/svgshrink/svgshrink/visitor"
)

func init() {
	register("removeUnusedNS", func(any) Pass { return &funcPass{"removeUnusedNS", runRemoveUnusedNS} })
}

// runRemoveUnusedNS drops xmlns:prefix declarations whose prefix never
// appears as a name or attribute prefix anywhere in the subtree,
// grounded on no_unused_xmlns.rs's reference scan.
func runRemoveUnusedNS(ctx *visitor.Context) (bool, error) {
	used := map[string]bool{}
	visitor.Walk(ctx, visitor.Hooks{
		Element: func(ctx *visitor.Context, id dom.NodeID) visitor.Action {
			n := ctx.Arena.Node(id)
			if p := n.Name.Prefix.String(); p != "" {
				used[p] = true
			}
			if n.Attrs != nil {
				for _, a := range n.Attrs.All() {
					if p := a.Name.Prefix.String(); p != "" && p != "xmlns" {
						used[p] = true
					}
				}
			}
			return visitor.ActionContinue
		},
	}, ctx.Root)

	changed := false
	root := ctx.Arena.Node(ctx.Root)
	if root.Attrs == nil {
		return false, nil
	}
	before := root.Attrs.Len()
	root.Attrs.Retain(func(a dom.Attr) bool {
		if a.Name.Prefix.String() != "xmlns" {
			return true
		}
		return used[a.Name.Local.String()]
	})
	if root.Attrs.Len() != before {
		changed = true
	}
	return changed, nil
}
