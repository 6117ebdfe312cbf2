// Package pathdata parses, represents, positions, canonicalizes, and
// serializes SVG `d`/`points` command sequences (§4.B of the
// specification). The recursive-descent grammar below is adapted from
// pgavlin/svg2's elements_paths.go, restructured to materialize implicit
// command repetition into explicit Commands and to track byte offsets
// for error reporting instead of binding directly to xml.Unmarshaler.
package pathdata

// Kind enumerates the closed set of path commands from §3.
type Kind int

const (
	MoveTo Kind = iota
	MoveBy
	LineTo
	LineBy
	HorizontalLineTo
	HorizontalLineBy
	VerticalLineTo
	VerticalLineBy
	CubicBezierTo
	CubicBezierBy
	SmoothBezierTo
	SmoothBezierBy
	QuadraticBezierTo
	QuadraticBezierBy
	SmoothQuadraticBezierTo
	SmoothQuadraticBezierBy
	ArcTo
	ArcBy
	ClosePath
)

// IsAbsolute reports whether k is the "To" (absolute) member of a
// To/By pair. ClosePath is neither.
func (k Kind) IsAbsolute() bool {
	switch k {
	case MoveTo, LineTo, HorizontalLineTo, VerticalLineTo, CubicBezierTo,
		SmoothBezierTo, QuadraticBezierTo, SmoothQuadraticBezierTo, ArcTo:
		return true
	}
	return false
}

// Letter returns the command's canonical letter, upper for absolute.
func (k Kind) Letter() byte {
	letters := [...]byte{
		MoveTo: 'M', MoveBy: 'm',
		LineTo: 'L', LineBy: 'l',
		HorizontalLineTo: 'H', HorizontalLineBy: 'h',
		VerticalLineTo: 'V', VerticalLineBy: 'v',
		CubicBezierTo: 'C', CubicBezierBy: 'c',
		SmoothBezierTo: 'S', SmoothBezierBy: 's',
		QuadraticBezierTo: 'Q', QuadraticBezierBy: 'q',
		SmoothQuadraticBezierTo: 'T', SmoothQuadraticBezierBy: 't',
		ArcTo: 'A', ArcBy: 'a',
		ClosePath: 'Z',
	}
	return letters[k]
}

// Command is one operand-carrying step of a path. Not every field is
// meaningful for every Kind:
//   - Move/Line/SmoothQuadratic: X, Y only.
//   - HorizontalLine: X only. VerticalLine: Y only.
//   - Cubic: X1,Y1,X2,Y2,X,Y. Smooth cubic: X2,Y2,X,Y.
//   - Quadratic: X1,Y1,X,Y.
//   - Arc: Rx,Ry,XRotation,LargeArc,Sweep,X,Y.
//   - Close: no operands.
type Command struct {
	Kind Kind

	X, Y float64

	X1, Y1 float64
	X2, Y2 float64

	Rx, Ry    float64
	XRotation float64
	LargeArc  bool
	Sweep     bool
}

// toAbsolute/toRelative map a relative "By" kind to its absolute "To"
// sibling and back, used by canonicalization's abs/rel choice.
func (k Kind) toAbsolute() Kind {
	if k.IsAbsolute() || k == ClosePath {
		return k
	}
	return k - 1
}

func (k Kind) toRelative() Kind {
	if !k.IsAbsolute() || k == ClosePath {
		return k
	}
	return k + 1
}
