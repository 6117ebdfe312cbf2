package pathdata

import "math"

// CanonOptions controls Canonicalize per §4.B.
type CanonOptions struct {
	// Precision is the number of fractional digits kept when rounding
	// numeric arguments (half-away-from-zero). 0..8 per §6; values above
	// 5 are rejected by the pipeline's configuration validation before
	// reaching here.
	Precision int

	// PreferRelative, when true, breaks abs/rel ties in favor of the
	// relative ("By") form; otherwise ties favor absolute.
	PreferRelative bool

	// CollapseRepeated collapses runs of same-sign MoveBy/
	// HorizontalLineBy/VerticalLineBy commands into one.
	CollapseRepeated bool

	// DropZeroDisplacement removes commands that do not move the current
	// point, except MoveTo/MoveBy and ClosePath.
	DropZeroDisplacement bool

	// ReduceArcs replaces an arc whose estimated sagitta is below
	// arcFlatnessEpsilon with a straight line. Arcs with equal rx,ry keep
	// both radii; no single-radius form is produced.
	ReduceArcs bool

	// PreferClosePath replaces an explicit LineTo back to the sub-path
	// base with ClosePath when safe (round caps/joins or no stroke).
	PreferClosePath bool

	// StrokeIsRound reports whether it is safe to substitute ClosePath
	// for an explicit closing LineTo: stroke-linecap/linejoin are round,
	// or no stroke is applied at all.
	StrokeIsRound bool
}

// Canonicalize rewrites commands per the policies in CanonOptions. It
// never produces a form serializing (§8 property 7) to more bytes (under
// Serialize with the same precision) than the unmodified input would.
func Canonicalize(commands []Command, opts CanonOptions) []Command {
	out := roundCommands(commands, opts.Precision)

	if opts.ReduceArcs {
		out = reduceArcs(out)
	}
	if opts.DropZeroDisplacement {
		out = dropZeroDisplacement(out)
	}
	if opts.CollapseRepeated {
		out = collapseRepeated(out)
	}
	if opts.PreferClosePath && opts.StrokeIsRound {
		out = preferClosePath(out)
	}
	out = chooseForm(out, opts.PreferRelative)

	return out
}

// roundAwayFromZero rounds f to p fractional digits, half-away-from-zero.
func roundAwayFromZero(f float64, p int) float64 {
	scale := math.Pow(10, float64(p))
	if f >= 0 {
		return math.Floor(f*scale+0.5) / scale
	}
	return math.Ceil(f*scale-0.5) / scale
}

func roundCommands(commands []Command, precision int) []Command {
	out := make([]Command, len(commands))
	r := func(f float64) float64 {
		if math.IsNaN(f) {
			return f
		}
		return roundAwayFromZero(f, precision)
	}
	for i, c := range commands {
		c.X, c.Y = r(c.X), r(c.Y)
		c.X1, c.Y1 = r(c.X1), r(c.Y1)
		c.X2, c.Y2 = r(c.X2), r(c.Y2)
		c.Rx, c.Ry = r(c.Rx), r(c.Ry)
		c.XRotation = r(c.XRotation)
		out[i] = c
	}
	return out
}

// dropZeroDisplacement removes commands whose absolute endpoint equals
// their start point, computed against the positioned path, leaving
// moves (which start sub-paths) and ClosePath (which carries no
// displacement of its own) alone.
func dropZeroDisplacement(commands []Command) []Command {
	positioned := Position(commands)
	out := make([]Command, 0, len(commands))
	for _, p := range positioned {
		k := p.Command.Kind
		if k != ClosePath && k != MoveTo && k != MoveBy && IsZeroDisplacement(p.Command, p.Start) {
			continue
		}
		out = append(out, p.Command)
	}
	return out
}

// collapseRepeated merges adjacent same-kind, same-sign
// MoveBy/HorizontalLineBy/VerticalLineBy commands into a single command
// carrying the summed displacement.
func collapseRepeated(commands []Command) []Command {
	out := make([]Command, 0, len(commands))
	for _, c := range commands {
		if n := len(out); n > 0 {
			prev := out[n-1]
			if mergeable(prev, c) {
				out[n-1] = merge(prev, c)
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func sign(f float64) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}

func mergeable(a, b Command) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case MoveBy, LineBy:
		return sign(a.X) == sign(b.X) && sign(a.Y) == sign(b.Y)
	case HorizontalLineBy:
		return sign(a.X) == sign(b.X)
	case VerticalLineBy:
		return sign(a.Y) == sign(b.Y)
	}
	return false
}

func merge(a, b Command) Command {
	a.X += b.X
	a.Y += b.Y
	return a
}

// preferClosePath replaces any LineTo/LineBy whose absolute
// endpoint equals the current sub-path's base point with ClosePath.
func preferClosePath(commands []Command) []Command {
	positioned := Position(commands)
	out := make([]Command, 0, len(commands))
	for _, p := range positioned {
		c := p.Command
		if (c.Kind == LineTo || c.Kind == LineBy) && p.End == p.SubStart {
			out = append(out, Command{Kind: ClosePath})
			continue
		}
		out = append(out, c)
	}
	return out
}

// reduceArcs replaces arcs whose chord/sagitta relationship means a
// straight LineTo is visually indistinguishable (sagitta below
// arcFlatnessEpsilon) with that line. Arcs with equal rx and ry are
// left with both radii.
const arcFlatnessEpsilon = 1e-3

func reduceArcs(commands []Command) []Command {
	positioned := Position(commands)
	out := make([]Command, 0, len(commands))
	for _, p := range positioned {
		c := p.Command
		if c.Kind == ArcTo || c.Kind == ArcBy {
			if c.Rx == c.Ry {
				// Already a single effective radius; nothing to reduce,
				// but canonical form always writes Rx for both fields.
				c.Ry = c.Rx
			}
			if sagitta(c.Rx, dist(p.Start, p.End)) < arcFlatnessEpsilon {
				kind := LineTo
				if c.Kind == ArcBy {
					kind = LineBy
				}
				out = append(out, Command{Kind: kind, X: c.X, Y: c.Y})
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// sagitta approximates the height of the arc above its chord for a
// circular arc of radius r spanning chord length c (c <= 2r); used only
// as a flatness estimate, not an exact geometric sagitta for elliptical
// arcs with rotation.
func sagitta(r, chord float64) float64 {
	if r <= 0 || chord <= 0 || chord > 2*r {
		return math.Inf(1)
	}
	return r - math.Sqrt(r*r-(chord/2)*(chord/2))
}

// chooseForm converts each command to whichever of absolute/relative
// serializes shorter, breaking ties per preferRelative.
func chooseForm(commands []Command, preferRelative bool) []Command {
	positioned := Position(commands)
	out := make([]Command, len(commands))
	for i, p := range positioned {
		c := p.Command
		if c.Kind == ClosePath {
			out[i] = c
			continue
		}

		abs := toForm(c, p.Start, true)
		rel := toForm(c, p.Start, false)
		absLen := len(Serialize([]Command{abs}, FormPath))
		relLen := len(Serialize([]Command{rel}, FormPath))

		switch {
		case absLen < relLen:
			out[i] = abs
		case relLen < absLen:
			out[i] = rel
		case preferRelative:
			out[i] = rel
		default:
			out[i] = abs
		}
	}
	return out
}

// toForm rewrites c into its absolute or relative sibling kind,
// recomputing operands against start.
func toForm(c Command, start [2]float64, absolute bool) Command {
	cur := c
	if absolute {
		cur.Kind = c.Kind.toAbsolute()
	} else {
		cur.Kind = c.Kind.toRelative()
	}
	if c.Kind.IsAbsolute() == absolute {
		return cur
	}

	switch c.Kind {
	case HorizontalLineTo, HorizontalLineBy:
		if absolute {
			cur.X = relToAbsScalar(c.X, c.Kind, start[0])
		} else {
			cur.X = absToRelScalar(c.X, c.Kind, start[0])
		}
		return cur
	case VerticalLineTo, VerticalLineBy:
		if absolute {
			cur.Y = relToAbsScalar(c.Y, c.Kind, start[1])
		} else {
			cur.Y = absToRelScalar(c.Y, c.Kind, start[1])
		}
		return cur
	}

	if absolute {
		cur.X, cur.Y = c.X+start[0], c.Y+start[1]
		if hasControl1(c.Kind) {
			cur.X1, cur.Y1 = c.X1+start[0], c.Y1+start[1]
		}
		if hasControl2(c.Kind) {
			cur.X2, cur.Y2 = c.X2+start[0], c.Y2+start[1]
		}
	} else {
		cur.X, cur.Y = c.X-start[0], c.Y-start[1]
		if hasControl1(c.Kind) {
			cur.X1, cur.Y1 = c.X1-start[0], c.Y1-start[1]
		}
		if hasControl2(c.Kind) {
			cur.X2, cur.Y2 = c.X2-start[0], c.Y2-start[1]
		}
	}
	return cur
}

func relToAbsScalar(v float64, kind Kind, base float64) float64 {
	if kind.IsAbsolute() {
		return v
	}
	return base + v
}

func absToRelScalar(v float64, kind Kind, base float64) float64 {
	if !kind.IsAbsolute() {
		return v
	}
	return v - base
}

func hasControl1(k Kind) bool {
	switch k {
	case CubicBezierTo, CubicBezierBy, QuadraticBezierTo, QuadraticBezierBy:
		return true
	}
	return false
}

func hasControl2(k Kind) bool {
	switch k {
	case CubicBezierTo, CubicBezierBy, SmoothBezierTo, SmoothBezierBy:
		return true
	}
	return false
}
