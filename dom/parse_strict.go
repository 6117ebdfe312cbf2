package dom

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/svgshrink/svgshrink/atom"
	"github.com/svgshrink/svgshrink/svgerr"
)

// ParseStrict implements the "Strict XML" adapter from §4.D: it rejects
// non-well-formed input, and preserves processing instructions, doctype,
// CDATA (folded into character data, since the grammar draws no semantic
// distinction the optimizer needs), comments, and attribute source
// ranges. It is token-driven on encoding/xml.Decoder, the same raw,
// namespace-unresolved token consumption ucarion-c14n/c14n.go uses for
// c14n's RawTokenReader walk — adapted here to also record byte offsets
// via Decoder.InputOffset.
func ParseStrict(r io.Reader) (*Arena, NodeID, error) {
	arena := NewArena()
	doc := arena.Alloc(KindDocument)
	arena.RootID = doc

	dec := xml.NewDecoder(r)
	dec.Strict = true

	stack := []NodeID{doc}
	top := func() NodeID { return stack[len(stack)-1] }

	lastOffset := int64(0)
	for {
		startOffset := dec.InputOffset()
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, invalidNode, svgerr.At(svgerr.ParseSyntax, err.Error(), int(lastOffset), int(dec.InputOffset()))
		}
		endOffset := dec.InputOffset()
		lastOffset = endOffset

		switch t := tok.(type) {
		case xml.StartElement:
			id := arena.Alloc(KindElement)
			node := arena.Node(id)
			node.Name = qualNameOf(arena, t.Name)
			node.Attrs = &AttrList{}
			for _, a := range t.Attr {
				rng := &SourceRange{
					WholeStart: int(startOffset), WholeEnd: int(endOffset),
				}
				node.Attrs.SetRanged(qualNameOf(arena, a.Name), a.Value, rng)
			}
			arena.Append(top(), id)
			stack = append(stack, id)

		case xml.EndElement:
			if len(stack) <= 1 {
				return nil, invalidNode, svgerr.New(svgerr.ParseSyntax, "unbalanced end element </"+t.Name.Local+">")
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			text := string(t)
			if strings.TrimSpace(text) == "" && top() == doc {
				// Leading/trailing whitespace at document level carries
				// no meaning the optimizer preserves (§1 non-goals).
				continue
			}
			id := arena.Alloc(KindText)
			arena.Node(id).Data = text
			arena.Append(top(), id)

		case xml.Comment:
			id := arena.Alloc(KindComment)
			arena.Node(id).Data = string(t)
			arena.Append(top(), id)

		case xml.ProcInst:
			if t.Target == "xml" {
				continue // XML declaration; not modeled as a node.
			}
			id := arena.Alloc(KindProcessingInstruction)
			node := arena.Node(id)
			node.Target = t.Target
			node.Data = string(t.Inst)
			arena.Append(top(), id)

		case xml.Directive:
			name, public, system := parseDoctype(string(t))
			id := arena.Alloc(KindDocumentType)
			node := arena.Node(id)
			node.DoctypeName, node.PublicID, node.SystemID = name, public, system
			arena.Append(top(), id)
		}
	}

	if len(stack) != 1 {
		return nil, invalidNode, svgerr.New(svgerr.ParseSyntax, "unexpected end of input: unclosed element")
	}

	root, ok := firstElementChild(arena, doc)
	if !ok {
		return nil, invalidNode, svgerr.New(svgerr.ParseSyntax, "document has no root element")
	}
	return arena, root, nil
}

// qualNameOf interns a RawToken name; RawToken leaves a name's prefix,
// unresolved, in Space.
func qualNameOf(arena *Arena, n xml.Name) atom.QualName {
	prefix := n.Space
	local := n.Local
	if prefix == "" {
		if i := strings.IndexByte(n.Local, ':'); i >= 0 {
			prefix = n.Local[:i]
			local = n.Local[i+1:]
		}
	}
	ns := atom.NamespaceFor(prefix)
	return atom.Name(arena.Atoms, prefix, local, ns)
}

func firstElementChild(arena *Arena, id NodeID) (NodeID, bool) {
	for _, c := range arena.Node(id).Children {
		if arena.Node(c).IsElement() {
			return c, true
		}
	}
	return invalidNode, false
}

// parseDoctype extracts a DOCTYPE directive's name and optional
// PUBLIC/SYSTEM identifiers from its raw textual form, e.g.
// `DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "svg11.dtd"`.
func parseDoctype(directive string) (name, public, system string) {
	fields := strings.Fields(strings.TrimPrefix(directive, "DOCTYPE"))
	if len(fields) == 0 {
		return "", "", ""
	}
	name = fields[0]
	rest := strings.TrimSpace(strings.TrimPrefix(directive, "DOCTYPE "+name))
	switch {
	case strings.HasPrefix(rest, "PUBLIC"):
		parts := splitQuoted(rest)
		if len(parts) > 0 {
			public = parts[0]
		}
		if len(parts) > 1 {
			system = parts[1]
		}
	case strings.HasPrefix(rest, "SYSTEM"):
		parts := splitQuoted(rest)
		if len(parts) > 0 {
			system = parts[0]
		}
	}
	return name, public, system
}

func splitQuoted(s string) []string {
	var out []string
	for {
		i := strings.IndexByte(s, '"')
		if i < 0 {
			break
		}
		s = s[i+1:]
		j := strings.IndexByte(s, '"')
		if j < 0 {
			break
		}
		out = append(out, s[:j])
		s = s[j+1:]
	}
	return out
}
