package pass

import (
	"github.com/svgshrink/svgshrink/dom"
	"github.com/svgshrink/svgshrink/pathdata"
	"github.com/svgshrink/svgshrink/visitor"
)

func init() {
	register("convertPathData", func(opts any) Pass {
		o, _ := opts.(pathdata.CanonOptions)
		if o == (pathdata.CanonOptions{}) {
			o = defaultCanonOptions()
		}
		return &funcPass{"convertPathData", func(ctx *visitor.Context) (bool, error) { return runConvertPathData(ctx, o) }}
	})
	register("mergePaths", func(any) Pass { return &funcPass{"mergePaths", runMergePaths} })
}

func defaultCanonOptions() pathdata.CanonOptions {
	return pathdata.CanonOptions{
		Precision:            3,
		PreferRelative:       true,
		CollapseRepeated:     true,
		DropZeroDisplacement: true,
		ReduceArcs:           true,
		PreferClosePath:      true,
	}
}

// runConvertPathData drives §4.B canonicalization on the d attribute of
// every <path> element. StrokeIsRound, which allows ClosePath to replace
// an explicit closing line, is derived from the element's computed style
// via §4.C: it is set when no stroke applies, or when stroke-linecap and
// stroke-linejoin both compute to round.
func runConvertPathData(ctx *visitor.Context, opts pathdata.CanonOptions) (bool, error) {
	changed := walkElements(ctx, func(id dom.NodeID) bool {
		if localName(ctx.Arena, id) != "path" {
			return false
		}
		d, ok := getAttr(ctx.Arena, id, "d")
		if !ok {
			return false
		}
		commands, err := pathdata.Parse(d)
		if err != nil {
			return false
		}
		elemOpts := opts
		stroke, hasStroke := ctx.Style().Computed(id, "stroke")
		lc, hasLC := ctx.Style().Computed(id, "stroke-linecap")
		lj, hasLJ := ctx.Style().Computed(id, "stroke-linejoin")
		if !hasStroke || stroke.Value == "none" ||
			(hasLC && lc.Value == "round" && hasLJ && lj.Value == "round") {
			elemOpts.StrokeIsRound = true
		}
		canon := pathdata.Canonicalize(commands, elemOpts)
		out := pathdata.Serialize(canon, pathdata.FormPath)
		if out == d {
			return false
		}
		setAttr(ctx.Arena, id, "d", out)
		return true
	})
	return changed, nil
}

// mergeablePresentation is the set of presentation attributes that must
// match exactly between two adjacent <path> siblings for mergePaths to
// fuse them, since the merged path can carry only one value of each.
var mergeablePresentation = []string{
	"fill", "stroke", "stroke-width", "fill-rule", "fill-opacity",
	"stroke-opacity", "opacity", "class", "style",
}

// runMergePaths concatenates adjacent <path> siblings that share
// identical presentation, joining their command sequences with a
// leading MoveTo drawn from the second path's own first command (a
// subsequent path always starts with one).
func runMergePaths(ctx *visitor.Context) (bool, error) {
	changed := false
	visitor.Walk(ctx, visitor.Hooks{
		Element: func(ctx *visitor.Context, id dom.NodeID) visitor.Action {
			if mergeRunsOfPaths(ctx, id) {
				changed = true
			}
			return visitor.ActionContinue
		},
	}, ctx.Root)
	return changed, nil
}

func mergeRunsOfPaths(ctx *visitor.Context, parent dom.NodeID) bool {
	changed := false
	n := ctx.Arena.Node(parent)
	children := n.Children
	i := 0
	for i < len(children) {
		if !isMergeCandidate(ctx.Arena, children[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(children) && isMergeCandidate(ctx.Arena, children[j]) &&
			samePresentation(ctx.Arena, children[i], children[j]) {
			j++
		}
		if j-i > 1 {
			mergeGroup(ctx.Arena, children[i:j])
			for _, dead := range children[i+1 : j] {
				ctx.Arena.Detach(dead)
			}
			children = ctx.Arena.Node(parent).Children
			changed = true
		}
		i = j
	}
	return changed
}

func isMergeCandidate(arena *dom.Arena, id dom.NodeID) bool {
	n := arena.Node(id)
	if !n.IsElement() || n.Name.Local.String() != "path" {
		return false
	}
	_, ok := n.Attrs.GetLocal("d")
	return ok
}

func samePresentation(arena *dom.Arena, a, b dom.NodeID) bool {
	for _, name := range mergeablePresentation {
		va, oka := getAttr(arena, a, name)
		vb, okb := getAttr(arena, b, name)
		if oka != okb || va != vb {
			return false
		}
	}
	return true
}

func mergeGroup(arena *dom.Arena, group []dom.NodeID) {
	dAttr, _ := getAttr(arena, group[0], "d")
	merged, err := pathdata.Parse(dAttr)
	if err != nil {
		return
	}
	for _, id := range group[1:] {
		dv, _ := getAttr(arena, id, "d")
		cmds, err := pathdata.Parse(dv)
		if err != nil {
			continue
		}
		merged = append(merged, cmds...)
	}
	setAttr(arena, group[0], "d", pathdata.Serialize(merged, pathdata.FormPath))
}
