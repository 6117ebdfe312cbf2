package pass

import (
	"strings"

	"github.com/svgshrink/svgshrink/atom"
	"github.com/svgshrink/svgshrink/dom"
	"github.com/svgshrink/svgshrink/visitor"
)

func localName(arena *dom.Arena, id dom.NodeID) string {
	return arena.Node(id).Name.Local.String()
}

func attrName(arena *dom.Arena, local string) atom.QualName {
	return atom.Name(arena.Atoms, "", local, "")
}

func getAttr(arena *dom.Arena, id dom.NodeID, local string) (string, bool) {
	n := arena.Node(id)
	if n.Attrs == nil {
		return "", false
	}
	a, ok := n.Attrs.GetLocal(local)
	return a.Value, ok
}

func setAttr(arena *dom.Arena, id dom.NodeID, local, value string) {
	n := arena.Node(id)
	if n.Attrs == nil {
		n.Attrs = &dom.AttrList{}
	}
	n.Attrs.Set(attrName(arena, local), value)
}

func removeAttr(arena *dom.Arena, id dom.NodeID, local string) bool {
	n := arena.Node(id)
	if n.Attrs == nil {
		return false
	}
	if _, ok := n.Attrs.GetLocal(local); !ok {
		return false
	}
	n.Attrs.Remove(attrName(arena, local))
	return true
}

// walkElements runs fn over every element in document order under
// ctx.Root, collecting changed=true if any call reports a change.
func walkElements(ctx *visitor.Context, fn func(id dom.NodeID) bool) bool {
	changed := false
	visitor.Walk(ctx, visitor.Hooks{
		Element: func(ctx *visitor.Context, id dom.NodeID) visitor.Action {
			if fn(id) {
				changed = true
			}
			return visitor.ActionContinue
		},
	}, ctx.Root)
	return changed
}

// containerElements are elements whose emptiness (no children, no
// meaningful attributes) makes them removable by removeEmptyContainers.
var containerElements = map[string]bool{
	"g": true, "svg": true, "defs": true, "symbol": true,
	"marker": true, "mask": true, "pattern": true, "a": true,
	"switch": true, "clipPath": true,
}

// nonRenderingElements never themselves produce visible output and are
// exempt from removeHiddenElems's "display:none subtree" removal (they
// are legitimately referenced by url(#id) even while hidden).
var nonRenderingElements = map[string]bool{
	"defs": true, "symbol": true, "marker": true, "mask": true,
	"pattern": true, "clipPath": true, "linearGradient": true,
	"radialGradient": true, "filter": true,
}

func isWhitespace(s string) bool {
	return strings.TrimSpace(s) == ""
}

func detachSubtree(arena *dom.Arena, id dom.NodeID) {
	arena.Detach(id)
}
