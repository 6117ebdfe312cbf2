package pass

import (
	"strconv"
	"strings"

	"github.com/svgshrink/svgshrink/dom"
	"github.com/svgshrink/svgshrink/style"
	"github.com/svgshrink/svgshrink/svgerr"
	"github.com/svgshrink/svgshrink/visitor"
)

func init() {
	register("cleanupAttrs", func(opts any) Pass {
		o, _ := opts.(CleanupAttrsOptions)
		return &funcPass{"cleanupAttrs", func(ctx *visitor.Context) (bool, error) { return runCleanupAttrs(ctx, o) }}
	})
	register("cleanupNumericValues", func(opts any) Pass {
		o, _ := opts.(CleanupNumericValuesOptions)
		return &funcPass{"cleanupNumericValues", func(ctx *visitor.Context) (bool, error) { return runCleanupNumericValues(ctx, o) }}
	})
	register("cleanupListOfValues", func(opts any) Pass {
		o, _ := opts.(CleanupNumericValuesOptions)
		return &funcPass{"cleanupListOfValues", func(ctx *visitor.Context) (bool, error) { return runCleanupListOfValues(ctx, o) }}
	})
	register("removeEmptyAttrs", func(any) Pass { return &funcPass{"removeEmptyAttrs", runRemoveEmptyAttrs} })
	register("removeUnknownsAndDefaults", func(any) Pass { return &funcPass{"removeUnknownsAndDefaults", runRemoveDefaults} })
	register("removeNonInheritableGroupAttrs", func(any) Pass { return &funcPass{"removeNonInheritableGroupAttrs", runRemoveNonInheritableGroupAttrs} })
	register("removeAttributesBySelector", func(opts any) Pass {
		o, _ := opts.(RemoveAttributesBySelectorOptions)
		return &funcPass{"removeAttributesBySelector", func(ctx *visitor.Context) (bool, error) { return runRemoveAttributesBySelector(ctx, o) }}
	})
}

// CleanupAttrsOptions configures cleanupAttrs's three independent
// whitespace-normalization flags, per spec.md §4.F.
type CleanupAttrsOptions struct {
	NewlinesToSpace bool
	Trim            bool
	CollapseRuns    bool
}

func runCleanupAttrs(ctx *visitor.Context, o CleanupAttrsOptions) (bool, error) {
	changed := false
	walkElements(ctx, func(id dom.NodeID) bool {
		n := ctx.Arena.Node(id)
		if n.Attrs == nil || ctx.PreservesSpace(id) {
			return false
		}
		localChanged := false
		for _, a := range n.Attrs.All() {
			v := a.Value
			if o.NewlinesToSpace {
				v = strings.ReplaceAll(v, "\n", " ")
			}
			if o.CollapseRuns {
				v = strings.Join(strings.Fields(v), " ")
			}
			if o.Trim {
				v = strings.TrimSpace(v)
			}
			if v != a.Value {
				n.Attrs.Set(a.Name, v)
				localChanged = true
			}
		}
		if localChanged {
			changed = true
		}
		return localChanged
	})
	return changed, nil
}

// CleanupNumericValuesOptions configures cleanupNumericValues and, with
// the same shape, cleanupListOfValues (§4.F groups them as "the
// space/comma-separated variant of the above").
type CleanupNumericValuesOptions struct {
	Precision      int
	ConvertToPx    bool
	RemoveDefaultUnit bool
}

// numericAttrs lists the presentation/geometry attributes whose values
// are bare numbers (with an optional unit suffix) subject to
// cleanupNumericValues.
var numericAttrs = map[string]bool{
	"x": true, "y": true, "width": true, "height": true,
	"cx": true, "cy": true, "r": true, "rx": true, "ry": true,
	"x1": true, "y1": true, "x2": true, "y2": true,
	"stroke-width": true, "stroke-dashoffset": true,
	"font-size": true, "opacity": true, "fill-opacity": true, "stroke-opacity": true,
}

func runCleanupNumericValues(ctx *visitor.Context, o CleanupNumericValuesOptions) (bool, error) {
	if o.Precision == 0 {
		o.Precision = 3
	}
	changed := false
	walkElements(ctx, func(id dom.NodeID) bool {
		n := ctx.Arena.Node(id)
		if n.Attrs == nil {
			return false
		}
		local := false
		for _, a := range n.Attrs.All() {
			if !numericAttrs[a.Name.Local.String()] {
				continue
			}
			nv, ok := cleanupNumericString(a.Value, o)
			if ok && nv != a.Value {
				n.Attrs.Set(a.Name, nv)
				local = true
			}
		}
		if local {
			changed = true
		}
		return local
	})
	return changed, nil
}

func runCleanupListOfValues(ctx *visitor.Context, o CleanupNumericValuesOptions) (bool, error) {
	if o.Precision == 0 {
		o.Precision = 3
	}
	changed := false
	walkElements(ctx, func(id dom.NodeID) bool {
		n := ctx.Arena.Node(id)
		if n.Attrs == nil {
			return false
		}
		local := false
		for _, a := range n.Attrs.All() {
			if a.Name.Local.String() != "stroke-dasharray" && a.Name.Local.String() != "points" {
				continue
			}
			parts := strings.FieldsFunc(a.Value, func(r rune) bool { return r == ',' || r == ' ' })
			changedAny := false
			for i, p := range parts {
				nv, ok := cleanupNumericString(p, o)
				if ok {
					if nv != p {
						changedAny = true
					}
					parts[i] = nv
				}
			}
			if changedAny {
				n.Attrs.Set(a.Name, strings.Join(parts, ","))
				local = true
			}
		}
		if local {
			changed = true
		}
		return local
	})
	return changed, nil
}

func cleanupNumericString(s string, o CleanupNumericValuesOptions) (string, bool) {
	s = strings.TrimSpace(s)
	unit := ""
	numPart := s
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c == '%') {
			unit = string(c) + unit
			numPart = s[:i]
		} else {
			break
		}
	}
	f, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return s, false
	}
	rounded := roundToPrecision(f, o.Precision)
	out := strconv.FormatFloat(rounded, 'f', -1, 64)
	if strings.HasPrefix(out, "0.") {
		out = out[1:]
	} else if strings.HasPrefix(out, "-0.") {
		out = "-" + out[2:]
	}
	if o.RemoveDefaultUnit && unit == "px" {
		unit = ""
	}
	return out + unit, true
}

func roundToPrecision(f float64, precision int) float64 {
	scale := 1.0
	for i := 0; i < precision; i++ {
		scale *= 10
	}
	if f >= 0 {
		return float64(int64(f*scale+0.5)) / scale
	}
	return -float64(int64(-f*scale+0.5)) / scale
}

func runRemoveEmptyAttrs(ctx *visitor.Context) (bool, error) {
	changed := false
	walkElements(ctx, func(id dom.NodeID) bool {
		n := ctx.Arena.Node(id)
		if n.Attrs == nil {
			return false
		}
		before := n.Attrs.Len()
		n.Attrs.Retain(func(a dom.Attr) bool {
			if a.Value != "" {
				return true
			}
			switch a.Name.Local.String() {
			case "requiredFeatures", "requiredExtensions", "systemLanguage":
				return true
			}
			return false
		})
		if n.Attrs.Len() != before {
			changed = true
			return true
		}
		return false
	})
	return changed, nil
}

// presentationDefaults holds the SVG initial value for presentation
// properties commonly set redundantly, grounded on the CSS/SVG
// property tables spec.md's glossary cites for RemoveDefaultPresentationAttrs.
var presentationDefaults = map[string]string{
	"fill":               "black",
	"fill-opacity":       "1",
	"fill-rule":          "nonzero",
	"stroke":             "none",
	"stroke-width":       "1",
	"stroke-opacity":     "1",
	"stroke-linecap":     "butt",
	"stroke-linejoin":    "miter",
	"stroke-dasharray":   "none",
	"stroke-dashoffset":  "0",
	"opacity":            "1",
	"visibility":         "visible",
	"display":            "inline",
	"clip-rule":          "nonzero",
	"stop-opacity":       "1",
}

func runRemoveDefaults(ctx *visitor.Context) (bool, error) {
	changed := false
	walkElements(ctx, func(id dom.NodeID) bool {
		n := ctx.Arena.Node(id)
		if n.Attrs == nil {
			return false
		}
		before := n.Attrs.Len()
		n.Attrs.Retain(func(a dom.Attr) bool {
			name := a.Name.Local.String()
			if def, ok := presentationDefaults[name]; ok && a.Value == def {
				return false
			}
			return matchesGrammar(name, a.Value)
		})
		if n.Attrs.Len() != before {
			changed = true
			return true
		}
		return false
	})
	return changed, nil
}

// groupNonInheritable lists the presentation attributes §4.F says to
// drop from <g> elements: not inherited, so meaningless to set directly
// on a group (they apply only to the group's own, nonexistent,
// rendering). vector-effect is always dropped regardless of
// inheritability, per spec.md.
var groupNonInheritable = map[string]bool{
	"opacity": true, "clip-path": true, "mask": true, "filter": true,
	"vector-effect": true,
}

func runRemoveNonInheritableGroupAttrs(ctx *visitor.Context) (bool, error) {
	changed := false
	walkElements(ctx, func(id dom.NodeID) bool {
		if localName(ctx.Arena, id) != "g" {
			return false
		}
		n := ctx.Arena.Node(id)
		if n.Attrs == nil {
			return false
		}
		before := n.Attrs.Len()
		n.Attrs.Retain(func(a dom.Attr) bool {
			name := a.Name.Local.String()
			if name == "vector-effect" {
				return false
			}
			if style.IsInheritable(name) {
				return true
			}
			return !groupNonInheritable[name]
		})
		if n.Attrs.Len() != before {
			changed = true
			return true
		}
		return false
	})
	return changed, nil
}

// RemoveAttributesBySelectorOptions names a CSS selector and the
// attribute local names to strip from every element it matches.
type RemoveAttributesBySelectorOptions struct {
	Selector   string
	Attributes []string
}

func runRemoveAttributesBySelector(ctx *visitor.Context, o RemoveAttributesBySelectorOptions) (bool, error) {
	if o.Selector == "" || len(o.Attributes) == 0 {
		return false, nil
	}
	matches, err := style.Select(ctx.Arena, ctx.Root, o.Selector)
	if err != nil {
		return false, svgerr.Wrap(svgerr.Selector, err)
	}
	changed := false
	for _, id := range matches {
		n := ctx.Arena.Node(id)
		if n.Attrs == nil {
			continue
		}
		for _, attrLocal := range o.Attributes {
			if removeAttr(ctx.Arena, id, attrLocal) {
				changed = true
			}
		}
	}
	return changed, nil
}
