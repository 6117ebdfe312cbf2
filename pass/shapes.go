package pass

import (
	"strconv"

	"github.com/svgshrink/svgshrink/dom"
	"github.com/svgshrink/svgshrink/pathdata"
	"github.com/svgshrink/svgshrink/visitor"
)

func init() {
	register("convertEllipseToCircle", func(any) Pass { return &funcPass{"convertEllipseToCircle", runConvertEllipseToCircle} })
	register("convertShapeToPath", func(any) Pass { return &funcPass{"convertShapeToPath", runConvertShapeToPath} })
}

// runConvertEllipseToCircle rewrites <ellipse rx="n" ry="n"/> (or one of
// rx/ry equal to "auto", per spec.md) to <circle r="n"/>, reusing the
// teacher's shape-element field layout (elements_shapes.go) as the
// source schema being rewritten.
func runConvertEllipseToCircle(ctx *visitor.Context) (bool, error) {
	changed := walkElements(ctx, func(id dom.NodeID) bool {
		if localName(ctx.Arena, id) != "ellipse" {
			return false
		}
		rx, hasRx := getAttr(ctx.Arena, id, "rx")
		ry, hasRy := getAttr(ctx.Arena, id, "ry")
		var r string
		switch {
		case hasRx && hasRy && rx == ry:
			r = rx
		case hasRx && ry == "auto":
			r = rx
		case hasRy && rx == "auto":
			r = ry
		default:
			return false
		}
		n := ctx.Arena.Node(id)
		n.Name.Local = ctx.Arena.Intern("circle")
		removeAttr(ctx.Arena, id, "rx")
		removeAttr(ctx.Arena, id, "ry")
		setAttr(ctx.Arena, id, "r", r)
		return true
	})
	return changed, nil
}

// runConvertShapeToPath rewrites rect/circle/ellipse/line/polyline/polygon
// into an equivalent <path>, keeping the original only when the
// resulting "d" markup would be longer than the original element's own
// serialization (§4.F's size guard).
func runConvertShapeToPath(ctx *visitor.Context) (bool, error) {
	changed := walkElements(ctx, func(id dom.NodeID) bool {
		commands, ok := shapeToPathCommands(ctx.Arena, id)
		if !ok {
			return false
		}
		d := pathdata.Serialize(commands, pathdata.FormPath)
		if len(d) > estimateShapeMarkupLength(ctx.Arena, id) {
			return false
		}
		n := ctx.Arena.Node(id)
		for _, a := range append([]dom.Attr(nil), n.Attrs.All()...) {
			if shapeGeometryAttrs[a.Name.Local.String()] {
				removeAttr(ctx.Arena, id, a.Name.Local.String())
			}
		}
		n.Name.Local = ctx.Arena.Intern("path")
		setAttr(ctx.Arena, id, "d", d)
		return true
	})
	return changed, nil
}

var shapeGeometryAttrs = map[string]bool{
	"x": true, "y": true, "width": true, "height": true, "rx": true, "ry": true,
	"cx": true, "cy": true, "r": true, "x1": true, "y1": true, "x2": true, "y2": true,
	"points": true,
}

func estimateShapeMarkupLength(arena *dom.Arena, id dom.NodeID) int {
	total := 0
	n := arena.Node(id)
	if n.Attrs == nil {
		return total
	}
	for _, a := range n.Attrs.All() {
		if shapeGeometryAttrs[a.Name.Local.String()] {
			total += len(a.Name.Local.String()) + len(a.Value) + 4
		}
	}
	return total
}

func shapeToPathCommands(arena *dom.Arena, id dom.NodeID) ([]pathdata.Command, bool) {
	switch localName(arena, id) {
	case "rect":
		return rectToPath(arena, id)
	case "circle":
		return ellipseToPath(arena, id, attrFloat(arena, id, "r"), attrFloat(arena, id, "r"))
	case "ellipse":
		return ellipseToPath(arena, id, attrFloat(arena, id, "rx"), attrFloat(arena, id, "ry"))
	case "line":
		return lineToPath(arena, id)
	case "polyline":
		return polyToPath(arena, id, false)
	case "polygon":
		return polyToPath(arena, id, true)
	}
	return nil, false
}

func attrFloat(arena *dom.Arena, id dom.NodeID, local string) float64 {
	v, _ := getAttr(arena, id, local)
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

func rectToPath(arena *dom.Arena, id dom.NodeID) ([]pathdata.Command, bool) {
	if _, ok := getAttr(arena, id, "rx"); ok {
		return nil, false // rounded rects need elliptical arcs; left to convertPathData's own handling
	}
	x, y := attrFloat(arena, id, "x"), attrFloat(arena, id, "y")
	w, h := attrFloat(arena, id, "width"), attrFloat(arena, id, "height")
	if w <= 0 || h <= 0 {
		return nil, false
	}
	return []pathdata.Command{
		{Kind: pathdata.MoveTo, X: x, Y: y},
		{Kind: pathdata.HorizontalLineTo, X: x + w},
		{Kind: pathdata.VerticalLineTo, Y: y + h},
		{Kind: pathdata.HorizontalLineTo, X: x},
		{Kind: pathdata.ClosePath},
	}, true
}

func ellipseToPath(arena *dom.Arena, id dom.NodeID, rx, ry float64) ([]pathdata.Command, bool) {
	if rx <= 0 || ry <= 0 {
		return nil, false
	}
	cx, cy := attrFloat(arena, id, "cx"), attrFloat(arena, id, "cy")
	return []pathdata.Command{
		{Kind: pathdata.MoveTo, X: cx - rx, Y: cy},
		{Kind: pathdata.ArcTo, Rx: rx, Ry: ry, X: cx + rx, Y: cy, LargeArc: true, Sweep: true},
		{Kind: pathdata.ArcTo, Rx: rx, Ry: ry, X: cx - rx, Y: cy, LargeArc: true, Sweep: true},
		{Kind: pathdata.ClosePath},
	}, true
}

func lineToPath(arena *dom.Arena, id dom.NodeID) ([]pathdata.Command, bool) {
	return []pathdata.Command{
		{Kind: pathdata.MoveTo, X: attrFloat(arena, id, "x1"), Y: attrFloat(arena, id, "y1")},
		{Kind: pathdata.LineTo, X: attrFloat(arena, id, "x2"), Y: attrFloat(arena, id, "y2")},
	}, true
}

func polyToPath(arena *dom.Arena, id dom.NodeID, closed bool) ([]pathdata.Command, bool) {
	points, ok := getAttr(arena, id, "points")
	if !ok {
		return nil, false
	}
	coords, err := pathdata.ParsePoints(points)
	if err != nil || len(coords) == 0 {
		return nil, false
	}
	out := make([]pathdata.Command, 0, len(coords)+1)
	for i, c := range coords {
		if i == 0 {
			out = append(out, pathdata.Command{Kind: pathdata.MoveTo, X: c.X, Y: c.Y})
		} else {
			out = append(out, pathdata.Command{Kind: pathdata.LineTo, X: c.X, Y: c.Y})
		}
	}
	if closed {
		out = append(out, pathdata.Command{Kind: pathdata.ClosePath})
	}
	return out, true
}
