package pass

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/svgshrink/svgshrink/dom"
	"github.com/svgshrink/svgshrink/visitor"
)

func init() {
	register("convertTransform", func(any) Pass { return &funcPass{"convertTransform", runConvertTransform} })
}

// matrix2D is a 2x3 affine transform [a c e; b d f; 0 0 1], the common
// representation every transform function reduces to before
// re-factoring into its shortest equivalent form.
type matrix2D struct{ a, b, c, d, e, f float64 }

func identity() matrix2D { return matrix2D{a: 1, d: 1} }

func (m matrix2D) mul(n matrix2D) matrix2D {
	return matrix2D{
		a: m.a*n.a + m.c*n.b,
		b: m.b*n.a + m.d*n.b,
		c: m.a*n.c + m.c*n.d,
		d: m.b*n.c + m.d*n.d,
		e: m.a*n.e + m.c*n.f + m.e,
		f: m.b*n.e + m.d*n.f + m.f,
	}
}

func runConvertTransform(ctx *visitor.Context) (bool, error) {
	changed := walkElements(ctx, func(id dom.NodeID) bool {
		raw, ok := getAttr(ctx.Arena, id, "transform")
		if !ok {
			return false
		}
		m, ok := parseTransformList(raw)
		if !ok {
			return false
		}
		out := factorMatrix(m)
		if out == raw {
			return false
		}
		if out == "" {
			removeAttr(ctx.Arena, id, "transform")
			return true
		}
		setAttr(ctx.Arena, id, "transform", out)
		return true
	})
	return changed, nil
}

// parseTransformList multiplies every function in a transform list
// (translate/scale/rotate/skewX/skewY/matrix) into a single matrix2D,
// in source order, per SVG's composition rule.
func parseTransformList(s string) (matrix2D, bool) {
	m := identity()
	rest := s
	matched := false
	for {
		rest = strings.TrimSpace(rest)
		if rest == "" {
			break
		}
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			break
		}
		name := strings.TrimSpace(rest[:open])
		close := strings.IndexByte(rest[open:], ')')
		if close < 0 {
			break
		}
		argsStr := rest[open+1 : open+close]
		args := parseNumberList(argsStr)
		fn, ok := transformMatrix(name, args)
		if !ok {
			return identity(), false
		}
		m = m.mul(fn)
		matched = true
		rest = rest[open+close+1:]
	}
	return m, matched
}

func parseNumberList(s string) []float64 {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' })
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err == nil {
			out = append(out, v)
		}
	}
	return out
}

func transformMatrix(name string, a []float64) (matrix2D, bool) {
	switch name {
	case "translate":
		if len(a) == 1 {
			return matrix2D{a: 1, d: 1, e: a[0]}, true
		}
		if len(a) == 2 {
			return matrix2D{a: 1, d: 1, e: a[0], f: a[1]}, true
		}
	case "scale":
		if len(a) == 1 {
			return matrix2D{a: a[0], d: a[0]}, true
		}
		if len(a) == 2 {
			return matrix2D{a: a[0], d: a[1]}, true
		}
	case "rotate":
		if len(a) == 1 || len(a) == 3 {
			rad := a[0] * math.Pi / 180
			rot := matrix2D{a: math.Cos(rad), b: math.Sin(rad), c: -math.Sin(rad), d: math.Cos(rad)}
			if len(a) == 3 {
				t1 := matrix2D{a: 1, d: 1, e: a[1], f: a[2]}
				t2 := matrix2D{a: 1, d: 1, e: -a[1], f: -a[2]}
				return t1.mul(rot).mul(t2), true
			}
			return rot, true
		}
	case "skewX":
		if len(a) == 1 {
			return matrix2D{a: 1, d: 1, c: math.Tan(a[0] * math.Pi / 180)}, true
		}
	case "skewY":
		if len(a) == 1 {
			return matrix2D{a: 1, d: 1, b: math.Tan(a[0] * math.Pi / 180)}, true
		}
	case "matrix":
		if len(a) == 6 {
			return matrix2D{a: a[0], b: a[1], c: a[2], d: a[3], e: a[4], f: a[5]}, true
		}
	}
	return identity(), false
}

// factorMatrix emits the shortest equivalent transform function for m:
// a translate if it is pure translation, a scale if pure (non-skewed,
// non-rotated) scaling, otherwise the general matrix(...) form.
func factorMatrix(m matrix2D) string {
	const eps = 1e-9
	isIdentityLinear := math.Abs(m.b) < eps && math.Abs(m.c) < eps
	switch {
	case isIdentityLinear && math.Abs(m.a-1) < eps && math.Abs(m.d-1) < eps:
		if math.Abs(m.e) < eps && math.Abs(m.f) < eps {
			return "" // pure identity — callers drop the attribute entirely
		}
		if math.Abs(m.f) < eps {
			return fmt.Sprintf("translate(%s)", trimNum(m.e))
		}
		return fmt.Sprintf("translate(%s,%s)", trimNum(m.e), trimNum(m.f))
	case isIdentityLinear && math.Abs(m.e) < eps && math.Abs(m.f) < eps:
		if math.Abs(m.a-m.d) < eps {
			return fmt.Sprintf("scale(%s)", trimNum(m.a))
		}
		return fmt.Sprintf("scale(%s,%s)", trimNum(m.a), trimNum(m.d))
	default:
		return fmt.Sprintf("matrix(%s,%s,%s,%s,%s,%s)",
			trimNum(m.a), trimNum(m.b), trimNum(m.c), trimNum(m.d), trimNum(m.e), trimNum(m.f))
	}
}

func trimNum(f float64) string {
	return strconv.FormatFloat(roundToPrecision(f, 5), 'f', -1, 64)
}
