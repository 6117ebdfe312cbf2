package pass

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/parser"

	"github.com/svgshrink/svgshrink/dom"
	"github.com/svgshrink/svgshrink/visitor"
)

func init() {
	register("minifyStyles", func(any) Pass { return &funcPass{"minifyStyles", runMinifyStyles} })
}

// runMinifyStyles minifies the text content of every <style> element
// and every style="..." attribute: parses with douceur (reusing the
// same parser the style package's Sheet/inline-declaration helpers
// use), then re-renders with no whitespace beyond the minimum CSS
// requires.
func runMinifyStyles(ctx *visitor.Context) (bool, error) {
	changed := false
	visitor.Walk(ctx, visitor.Hooks{
		Element: func(ctx *visitor.Context, id dom.NodeID) visitor.Action {
			n := ctx.Arena.Node(id)
			if localName(ctx.Arena, id) == "style" {
				if minifyStyleElementContent(ctx.Arena, id) {
					changed = true
				}
			}
			if n.Attrs != nil {
				if a, ok := n.Attrs.GetLocal("style"); ok {
					if m, ok := minifyDeclarations(a.Value); ok && m != a.Value {
						setAttr(ctx.Arena, id, "style", m)
						changed = true
					}
				}
			}
			return visitor.ActionContinue
		},
	}, ctx.Root)
	return changed, nil
}

func minifyStyleElementContent(arena *dom.Arena, styleEl dom.NodeID) bool {
	changed := false
	for _, c := range arena.Node(styleEl).Children {
		n := arena.Node(c)
		if n.Kind != dom.KindText && n.Kind != dom.KindCharacterData {
			continue
		}
		m, ok := minifyStylesheet(n.Data)
		if ok && m != n.Data {
			n.Data = m
			changed = true
		}
	}
	return changed
}

func minifyStylesheet(text string) (string, bool) {
	ss, err := parser.Parse(text)
	if err != nil {
		return text, false
	}
	var b strings.Builder
	for _, rule := range ss.Rules {
		for i, sel := range rule.Selectors {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strings.Join(strings.Fields(sel), " "))
		}
		b.WriteByte('{')
		for _, d := range rule.Declarations {
			b.WriteString(d.Property)
			b.WriteByte(':')
			b.WriteString(strings.Join(strings.Fields(d.Value), " "))
			if d.Important {
				b.WriteString("!important")
			}
			b.WriteByte(';')
		}
		b.WriteByte('}')
	}
	return b.String(), true
}

func minifyDeclarations(text string) (string, bool) {
	decls, err := parser.ParseDeclarations(ensureTrailingSemicolon(text))
	if err != nil {
		return text, false
	}
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		s := fmt.Sprintf("%s:%s", d.Property, strings.Join(strings.Fields(d.Value), " "))
		if d.Important {
			s += "!important"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ";"), true
}

func ensureTrailingSemicolon(s string) string {
	s = strings.TrimSpace(s)
	if s != "" && !strings.HasSuffix(s, ";") {
		s += ";"
	}
	return s
}
