// Package style implements the computed-style resolution described in
// §4.C: per-element presentation-attribute and CSS-property values,
// tagged with their origin (static presentation attribute vs. dynamic
// stylesheet/inline rule) and resolved through SVG's inheritance model.
package style

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	selcss "github.com/ericchiang/css"
	"golang.org/x/net/html"

	"github.com/svgshrink/svgshrink/dom"
)

// Origin distinguishes where a resolved property value came from, per
// §4.C: a "static" presentation attribute (e.g. fill="red") carries
// lower cascade priority than a "dynamic" CSS rule (stylesheet or
// inline style="..." declaration).
type Origin int

const (
	OriginStatic Origin = iota
	OriginDynamic
)

// Entry is one resolved property value together with its origin and
// whether it was inherited from an ancestor rather than set directly on
// the element.
type Entry struct {
	Value     string
	Origin    Origin
	Important bool
	Inherited bool
}

// Sheet is a parsed, element-independent stylesheet: the rules from one
// <style> element or external sheet, ready to be matched against
// elements via a Resolver.
type Sheet struct {
	rules []*css.Rule
}

// ParseSheet parses CSS rule text (the contents of a <style> element)
// into a Sheet. Grounded on cogentcore-core's css.go/context.go use of
// douceur's parser.Parse.
func ParseSheet(text string) (*Sheet, error) {
	ss, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return &Sheet{rules: ss.Rules}, nil
}

// ParseInlineDeclarations parses the contents of a style="..." attribute
// into a rule with no selector, grounded on coredom/context.go's Config
// method (which appends a trailing ";" since douceur's parser is strict
// about it).
func ParseInlineDeclarations(text string) ([]*css.Declaration, error) {
	text = strings.TrimSpace(text)
	if text != "" && !strings.HasSuffix(text, ";") {
		text += ";"
	}
	return parser.ParseDeclarations(text)
}

// mirrorTree mirrors an arena's element tree into a throwaway
// golang.org/x/net/html tree carrying only tag name, id, and class —
// the minimum ericchiang/css needs to match CSS selectors — plus a
// side table mapping mirror nodes back to arena NodeIDs. Grounded on
// cogentcore-core/coredom/context.go's Styles map[*html.Node][]*css.Rule
// pattern, adapted because ericchiang/css.Selector.Select is hard-wired
// to *html.Node and the arena's dom.Node is not that type.
type mirrorTree struct {
	root     *html.Node
	byMirror map[*html.Node]dom.NodeID
	byNode   map[dom.NodeID]*html.Node
}

func buildMirror(arena *dom.Arena, root dom.NodeID) *mirrorTree {
	m := &mirrorTree{
		byMirror: map[*html.Node]dom.NodeID{},
		byNode:   map[dom.NodeID]*html.Node{},
	}
	m.root = m.mirror(arena, root)
	return m
}

func (m *mirrorTree) mirror(arena *dom.Arena, id dom.NodeID) *html.Node {
	n := arena.Node(id)
	if !n.IsElement() {
		return nil
	}
	hn := &html.Node{
		Type: html.ElementNode,
		Data: n.Name.Local.String(),
	}
	if idAttr, ok := n.Attrs.GetLocal("id"); ok {
		hn.Attr = append(hn.Attr, html.Attribute{Key: "id", Val: idAttr.Value})
	}
	if classAttr, ok := n.Attrs.GetLocal("class"); ok {
		hn.Attr = append(hn.Attr, html.Attribute{Key: "class", Val: classAttr.Value})
	}
	m.byMirror[hn] = id
	m.byNode[id] = hn

	var prev *html.Node
	for _, c := range n.Children {
		child := m.mirror(arena, c)
		if child == nil {
			continue
		}
		child.Parent = hn
		if prev == nil {
			hn.FirstChild = child
		} else {
			prev.NextSibling = child
		}
		prev = child
	}
	return hn
}

// Select compiles selectorText (a comma-separated selector list, as it
// appears in a CSS rule's prelude) and returns the arena NodeIDs under
// root that it matches. Used by removeAttributesBySelector and the
// safe-preset's selector-sensitivity check (§8).
func Select(arena *dom.Arena, root dom.NodeID, selectorText string) ([]dom.NodeID, error) {
	m := buildMirror(arena, root)
	sel, err := selcss.Parse(selectorText)
	if err != nil {
		return nil, err
	}
	matches := sel.Select(m.root)
	out := make([]dom.NodeID, 0, len(matches))
	for _, hn := range matches {
		out = append(out, m.byMirror[hn])
	}
	return out, nil
}

// Resolver computes a per-element Entry map for a document by applying
// a Sheet's rules (via selector matching) and each element's own
// presentation attributes and inline style.
type Resolver struct {
	arena  *dom.Arena
	mirror *mirrorTree
	sheets []*Sheet
}

// NewResolver builds a Resolver for the subtree rooted at root, with the
// given sheets applied in increasing priority order (later sheets win
// ties, mirroring cascade order of appearance).
func NewResolver(arena *dom.Arena, root dom.NodeID, sheets []*Sheet) *Resolver {
	return &Resolver{arena: arena, mirror: buildMirror(arena, root), sheets: sheets}
}

// presentationAttrs lists the SVG presentation attribute local names
// that participate in the style cascade, grounded on the teacher's
// renderer_style.go getAttr switch.
var presentationAttrs = map[string]bool{
	"fill": true, "fill-opacity": true, "fill-rule": true,
	"stroke": true, "stroke-width": true, "stroke-opacity": true,
	"stroke-linecap": true, "stroke-linejoin": true, "stroke-dasharray": true,
	"stroke-dashoffset": true, "opacity": true, "color": true,
	"font-family": true, "font-size": true, "font-weight": true, "font-style": true,
	"text-anchor": true, "display": true, "visibility": true,
	"clip-path": true, "clip-rule": true, "marker-start": true,
	"marker-mid": true, "marker-end": true, "stop-color": true, "stop-opacity": true,
}

// inheritable lists the presentation properties SVG defines as
// inherited by default (§4.C), mirroring the teacher's getAttr ancestor
// walk which only continues past an element when the property in
// question is one of these.
var inheritable = map[string]bool{
	"fill": true, "fill-opacity": true, "fill-rule": true,
	"stroke": true, "stroke-width": true, "stroke-opacity": true,
	"stroke-linecap": true, "stroke-linejoin": true, "stroke-dasharray": true,
	"stroke-dashoffset": true, "color": true,
	"font-family": true, "font-size": true, "font-weight": true, "font-style": true,
	"text-anchor": true, "visibility": true, "clip-rule": true,
}

// IsInheritable reports whether property is defined as inherited.
func IsInheritable(property string) bool { return inheritable[property] }

// own returns the directly-set (non-inherited) entries for a single
// element: its own presentation attributes, then any matching
// stylesheet rules, then its inline style — in increasing priority,
// matching CSS cascade order (specificity ties broken by source order;
// ericchiang/css does not expose specificity, so rule order is used as
// the tiebreak, the same simplification coredom's Context.Parent takes).
func (r *Resolver) own(id dom.NodeID) map[string]Entry {
	out := map[string]Entry{}
	n := r.arena.Node(id)
	if n.Attrs == nil {
		return out
	}
	for _, a := range n.Attrs.All() {
		name := a.Name.Local.String()
		if presentationAttrs[name] {
			out[name] = Entry{Value: a.Value, Origin: OriginStatic}
		}
	}

	hn, ok := r.mirror.byNode[id]
	if ok {
		for _, sheet := range r.sheets {
			for _, rule := range sheet.rules {
				if !ruleMatches(rule, hn) {
					continue
				}
				for _, decl := range rule.Declarations {
					out[decl.Property] = Entry{
						Value:     decl.Value,
						Origin:    OriginDynamic,
						Important: decl.Important,
					}
				}
			}
		}
	}

	if styleAttr, ok := n.Attrs.GetLocal("style"); ok {
		decls, err := ParseInlineDeclarations(styleAttr.Value)
		if err == nil {
			for _, decl := range decls {
				out[decl.Property] = Entry{
					Value:     decl.Value,
					Origin:    OriginDynamic,
					Important: decl.Important,
				}
			}
		}
	}
	return out
}

func ruleMatches(rule *css.Rule, hn *html.Node) bool {
	if len(rule.Selectors) == 0 {
		return false
	}
	sel, err := selcss.Parse(strings.Join(rule.Selectors, ","))
	if err != nil {
		return false
	}
	for _, m := range sel.Select(rootOf(hn)) {
		if m == hn {
			return true
		}
	}
	return false
}

func rootOf(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// CollectSheets walks the subtree rooted at root and parses every
// <style> element's text content into a Sheet, in document order. A
// <style> element whose content fails to parse contributes no sheet
// and is silently skipped — embedded CSS errors surface later, when a
// pass actually needs the rule that failed to parse, as a CssSyntax
// error from that pass instead of aborting collection for the whole
// document.
func CollectSheets(arena *dom.Arena, root dom.NodeID) []*Sheet {
	var sheets []*Sheet
	var walk func(id dom.NodeID)
	walk = func(id dom.NodeID) {
		n := arena.Node(id)
		if n.IsElement() && n.Name.Local.String() == "style" {
			var text strings.Builder
			for _, c := range n.Children {
				cn := arena.Node(c)
				if cn.Kind == dom.KindText || cn.Kind == dom.KindCharacterData {
					text.WriteString(cn.Data)
				}
			}
			if sheet, err := ParseSheet(text.String()); err == nil {
				sheets = append(sheets, sheet)
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return sheets
}

// Computed resolves the effective value of property at id, walking
// ancestors for inherited properties with no own value — the same
// ancestor-stack technique as renderer_style.go's getAttr, generalized
// off one-Go-field-per-property onto a string-keyed map.
func (r *Resolver) Computed(id dom.NodeID, property string) (Entry, bool) {
	cur := id
	inherited := false
	for cur != 0 {
		if e, ok := r.own(cur)[property]; ok {
			e.Inherited = inherited
			return e, true
		}
		if !IsInheritable(property) {
			return Entry{}, false
		}
		parent := r.arena.Node(cur).Parent
		if parent == cur {
			break
		}
		cur = parent
		inherited = true
	}
	return Entry{}, false
}
