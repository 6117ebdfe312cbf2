package dom

import (
	"strings"
)

// Indent selects the indentation style used by Serialize when WriteOptions
// requests pretty output.
type Indent int

const (
	IndentNone Indent = iota
	IndentSpaces
	IndentTabs
)

// SelfClose controls when an empty element is written as <tag/> rather
// than <tag></tag>.
type SelfClose int

const (
	SelfCloseWhenEmpty SelfClose = iota
	SelfCloseAlways
	SelfCloseNever
)

// WhitespaceMode controls how text node content is written.
type WhitespaceMode int

const (
	WhitespaceAuto WhitespaceMode = iota
	WhitespacePreserve
	WhitespaceCollapse
)

// WriteOptions configures Serialize. It is intentionally separate from
// the optimization pipeline's Config: the serializer is usable on its own
// (e.g. for round-tripping untouched documents), grounded on the
// teacher's own `(*any).MarshalXML`/`encoding/xml.Encoder` habit of
// taking writer options independent of any higher-level policy.
type WriteOptions struct {
	Indent        Indent
	IndentWidth   int // used when Indent == IndentSpaces
	SelfClose     SelfClose
	Whitespace    WhitespaceMode
	EmitXMLDecl   bool
	XMLNSPolicy   XMLNSPolicy
	AttributeOrder []string
}

// DefaultWriteOptions matches the teacher's default marshaling shape:
// two-space indent, self-close empty elements, no declaration.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		Indent:      IndentSpaces,
		IndentWidth: 2,
		SelfClose:   SelfCloseWhenEmpty,
		Whitespace:  WhitespaceAuto,
	}
}

// Serialize renders the subtree rooted at root back to XML text. Root is
// usually the document's root element, but any node may be serialized in
// isolation (e.g. a single moved subtree for diagnostics).
func Serialize(arena *Arena, root NodeID, opts WriteOptions) string {
	var b strings.Builder
	if opts.EmitXMLDecl {
		b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
		if opts.Indent != IndentNone {
			b.WriteByte('\n')
		}
	}
	w := &writer{arena: arena, opts: opts, buf: &b}
	w.writeNode(root, 0, false)
	return b.String()
}

type writer struct {
	arena *Arena
	opts  WriteOptions
	buf   *strings.Builder
}

func (w *writer) newline(depth int) {
	if w.opts.Indent == IndentNone {
		return
	}
	w.buf.WriteByte('\n')
	switch w.opts.Indent {
	case IndentSpaces:
		w.buf.WriteString(strings.Repeat(" ", depth*w.opts.IndentWidth))
	case IndentTabs:
		w.buf.WriteString(strings.Repeat("\t", depth))
	}
}

// writeNode writes n at the given depth. preserveSpace is true if an
// ancestor carries xml:space="preserve", per Open Question 2's
// resolution: such subtrees are written verbatim, with no added
// indentation whitespace and no text collapsing.
func (w *writer) writeNode(id NodeID, depth int, preserveSpace bool) {
	n := w.arena.Node(id)
	switch n.Kind {
	case KindDocument:
		for i, c := range n.Children {
			if i > 0 {
				w.newline(depth)
			}
			w.writeNode(c, depth, preserveSpace)
		}

	case KindElement:
		preserveSpace = preserveSpace || hasPreserveSpace(n)
		w.writeStartTag(n)
		if len(n.Children) == 0 {
			switch w.opts.SelfClose {
			case SelfCloseAlways, SelfCloseWhenEmpty:
				w.buf.WriteString("/>")
				return
			}
		}
		w.buf.WriteByte('>')
		childDepth := depth + 1
		allText := allTextChildren(w.arena, n)
		for _, c := range n.Children {
			if !preserveSpace && !allText {
				w.newline(childDepth)
			}
			w.writeNode(c, childDepth, preserveSpace)
		}
		if !preserveSpace && !allText && len(n.Children) > 0 {
			w.newline(depth)
		}
		w.buf.WriteString("</")
		w.writeQName(n.Name)
		w.buf.WriteByte('>')

	case KindText, KindCharacterData:
		w.buf.WriteString(escapeText(w.textContent(n, preserveSpace)))

	case KindComment:
		w.buf.WriteString("<!--")
		w.buf.WriteString(n.Data)
		w.buf.WriteString("-->")

	case KindProcessingInstruction:
		w.buf.WriteString("<?")
		w.buf.WriteString(n.Target)
		w.buf.WriteByte(' ')
		w.buf.WriteString(n.Data)
		w.buf.WriteString("?>")

	case KindDocumentType:
		w.buf.WriteString("<!DOCTYPE ")
		w.buf.WriteString(n.DoctypeName)
		if n.PublicID != "" {
			w.buf.WriteString(` PUBLIC "`)
			w.buf.WriteString(n.PublicID)
			w.buf.WriteByte('"')
			if n.SystemID != "" {
				w.buf.WriteString(` "`)
				w.buf.WriteString(n.SystemID)
				w.buf.WriteByte('"')
			}
		} else if n.SystemID != "" {
			w.buf.WriteString(` SYSTEM "`)
			w.buf.WriteString(n.SystemID)
			w.buf.WriteByte('"')
		}
		w.buf.WriteByte('>')
	}
}

func (w *writer) textContent(n *Node, preserveSpace bool) string {
	if preserveSpace || w.opts.Whitespace == WhitespacePreserve {
		return n.Data
	}
	if w.opts.Whitespace == WhitespaceCollapse {
		return strings.Join(strings.Fields(n.Data), " ")
	}
	return n.Data
}

func (w *writer) writeStartTag(n *Node) {
	w.buf.WriteByte('<')
	w.writeQName(n.Name)
	if n.Attrs != nil {
		order := w.opts.AttributeOrder
		attrs := n.Attrs
		if order != nil {
			attrs = cloneAttrList(attrs)
			attrs.Sort(order, w.opts.XMLNSPolicy)
		}
		for _, a := range attrs.All() {
			w.buf.WriteByte(' ')
			w.writeQName(a.Name)
			w.buf.WriteString(`="`)
			w.buf.WriteString(escapeAttrValue(a.Value))
			w.buf.WriteByte('"')
		}
	}
}

func (w *writer) writeQName(name interface{ String() string }) {
	w.buf.WriteString(name.String())
}

func cloneAttrList(l *AttrList) *AttrList {
	out := &AttrList{entries: make([]Attr, len(l.entries))}
	copy(out.entries, l.entries)
	return out
}

func hasPreserveSpace(n *Node) bool {
	if n.Attrs == nil {
		return false
	}
	a, ok := n.Attrs.GetLocal("space")
	return ok && a.Name.Prefix.String() == "xml" && a.Value == "preserve"
}

func allTextChildren(arena *Arena, n *Node) bool {
	if len(n.Children) != 1 {
		return false
	}
	return arena.Node(n.Children[0]).Kind == KindText
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeAttrValue(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;")
	return r.Replace(s)
}
