package pass

import (
	"github.com/svgshrink/svgshrink/dom"
	"github.com/svgshrink/svgshrink/visitor"
)

func init() {
	register("collapseGroups", func(any) Pass { return &funcPass{"collapseGroups", runCollapseGroups} })
	register("moveElemsAttrsToGroup", func(any) Pass { return &funcPass{"moveElemsAttrsToGroup", runMoveElemsAttrsToGroup} })
	register("moveGroupAttrsToElems", func(any) Pass { return &funcPass{"moveGroupAttrsToElems", runMoveGroupAttrsToElems} })
}

// runCollapseGroups replaces a <g> with exactly one element child, no
// id of its own, and no presentation attribute that conflicts with the
// child's, by that child — merging the group's attributes onto it.
func runCollapseGroups(ctx *visitor.Context) (bool, error) {
	changed := false
	var collapsed []struct{ group, child dom.NodeID }
	visitor.Walk(ctx, visitor.Hooks{
		Exit: func(ctx *visitor.Context, id dom.NodeID) {
			n := ctx.Arena.Node(id)
			if !n.IsElement() || n.Name.Local.String() != "g" || id == ctx.Root {
				return
			}
			if _, hasID := getAttr(ctx.Arena, id, "id"); hasID {
				return
			}
			var onlyChild dom.NodeID
			childCount := 0
			for _, c := range n.Children {
				cn := ctx.Arena.Node(c)
				if cn.IsElement() {
					childCount++
					onlyChild = c
				} else if cn.Kind == dom.KindText && !isWhitespace(cn.Data) {
					return // meaningful text content blocks collapsing
				}
			}
			if childCount != 1 {
				return
			}
			if hasConflictingAttrs(ctx.Arena, id, onlyChild) {
				return
			}
			collapsed = append(collapsed, struct{ group, child dom.NodeID }{id, onlyChild})
		},
	}, ctx.Root)

	for _, pair := range collapsed {
		mergeGroupIntoChild(ctx.Arena, pair.group, pair.child)
		ctx.Arena.Replace(pair.group, pair.child)
		changed = true
	}
	return changed, nil
}

func hasConflictingAttrs(arena *dom.Arena, group, child dom.NodeID) bool {
	gn := arena.Node(group)
	if gn.Attrs == nil {
		return false
	}
	for _, a := range gn.Attrs.All() {
		if v, ok := getAttr(arena, child, a.Name.Local.String()); ok && v != a.Value {
			return true
		}
	}
	return false
}

func mergeGroupIntoChild(arena *dom.Arena, group, child dom.NodeID) {
	gn := arena.Node(group)
	if gn.Attrs == nil {
		return
	}
	cn := arena.Node(child)
	if cn.Attrs == nil {
		cn.Attrs = &dom.AttrList{}
	}
	for _, a := range gn.Attrs.All() {
		if _, ok := cn.Attrs.Get(a.Name); !ok {
			cn.Attrs.Set(a.Name, a.Value)
		}
	}
}

// runMoveElemsAttrsToGroup hoists a presentation attribute shared
// identically by every child of a <g> up onto the group itself,
// removing it from each child — reducing duplication when every
// sibling already agrees on the value.
func runMoveElemsAttrsToGroup(ctx *visitor.Context) (bool, error) {
	changed := false
	walkElements(ctx, func(id dom.NodeID) bool {
		if localName(ctx.Arena, id) != "g" {
			return false
		}
		n := ctx.Arena.Node(id)
		elementChildren := make([]dom.NodeID, 0, len(n.Children))
		for _, c := range n.Children {
			if ctx.Arena.Node(c).IsElement() {
				elementChildren = append(elementChildren, c)
			}
		}
		if len(elementChildren) < 2 {
			return false
		}
		local := false
		for _, prop := range mergeablePresentation {
			first, ok := getAttr(ctx.Arena, elementChildren[0], prop)
			if !ok {
				continue
			}
			shared := true
			for _, c := range elementChildren[1:] {
				v, ok := getAttr(ctx.Arena, c, prop)
				if !ok || v != first {
					shared = false
					break
				}
			}
			if !shared {
				continue
			}
			if existing, ok := getAttr(ctx.Arena, id, prop); ok && existing != first {
				continue
			}
			setAttr(ctx.Arena, id, prop, first)
			for _, c := range elementChildren {
				removeAttr(ctx.Arena, c, prop)
			}
			local = true
		}
		if local {
			changed = true
		}
		return local
	})
	return changed, nil
}

// runMoveGroupAttrsToElems is the inverse: when a <g> has exactly one
// element child, its presentation attributes are pushed down onto that
// child (clearing the group), enabling collapseGroups to fire on a
// later multipass iteration.
func runMoveGroupAttrsToElems(ctx *visitor.Context) (bool, error) {
	changed := false
	walkElements(ctx, func(id dom.NodeID) bool {
		if localName(ctx.Arena, id) != "g" {
			return false
		}
		n := ctx.Arena.Node(id)
		if n.Attrs == nil || n.Attrs.Len() == 0 {
			return false
		}
		var onlyChild dom.NodeID
		count := 0
		for _, c := range n.Children {
			if ctx.Arena.Node(c).IsElement() {
				count++
				onlyChild = c
			}
		}
		if count != 1 {
			return false
		}
		moved := false
		for _, a := range append([]dom.Attr(nil), n.Attrs.All()...) {
			prop := a.Name.Local.String()
			if !mergeablePresentationSet[prop] {
				continue
			}
			if _, exists := getAttr(ctx.Arena, onlyChild, prop); exists {
				continue
			}
			setAttr(ctx.Arena, onlyChild, prop, a.Value)
			removeAttr(ctx.Arena, id, prop)
			moved = true
		}
		if moved {
			changed = true
		}
		return moved
	})
	return changed, nil
}

var mergeablePresentationSet = func() map[string]bool {
	m := map[string]bool{}
	for _, name := range mergeablePresentation {
		m[name] = true
	}
	return m
}()
