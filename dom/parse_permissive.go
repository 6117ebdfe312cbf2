package dom

import (
	"io"

	"golang.org/x/net/html"
	xhtmlatom "golang.org/x/net/html/atom"

	"github.com/svgshrink/svgshrink/atom"
	"github.com/svgshrink/svgshrink/svgerr"
)

// ParsePermissive implements the "Permissive XML" adapter from §4.D: it
// never fails on malformed markup, at the cost of discarding source
// ranges and normalizing away some syntactic detail (self-closing
// foreign tags, duplicate attributes — the last one wins, matching
// golang.org/x/net/html's own tokenizer behavior). Grounded on
// cogentcore-core/coredom's use of x/net/html to turn arbitrary,
// possibly-malformed markup into a forgiving tree before further
// processing.
func ParsePermissive(r io.Reader) (*Arena, NodeID, error) {
	htmlRoot, err := html.ParseFragment(r, &html.Node{
		Type:     html.ElementNode,
		Data:     "svg",
		DataAtom: xhtmlatom.Svg,
	})
	if err != nil {
		return nil, invalidNode, svgerr.Wrap(svgerr.ParseSyntax, err)
	}

	arena := NewArena()
	doc := arena.Alloc(KindDocument)
	arena.RootID = doc

	var rootID NodeID
	for _, top := range htmlRoot {
		id := convertHTMLNode(arena, top)
		if id == invalidNode {
			continue
		}
		arena.Append(doc, id)
		if rootID == invalidNode && arena.Node(id).IsElement() {
			rootID = id
		}
	}

	if rootID == invalidNode {
		return nil, invalidNode, svgerr.New(svgerr.ParseSyntax, "document has no root element")
	}
	return arena, rootID, nil
}

func convertHTMLNode(arena *Arena, n *html.Node) NodeID {
	switch n.Type {
	case html.ElementNode:
		id := arena.Alloc(KindElement)
		node := arena.Node(id)
		node.Name = htmlQualName(arena, n)
		node.Attrs = &AttrList{}
		for _, a := range n.Attr {
			name := atom.Name(arena.Atoms, a.Namespace, a.Key, atom.NamespaceFor(a.Namespace))
			node.Attrs.Set(name, a.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			childID := convertHTMLNode(arena, c)
			if childID != invalidNode {
				arena.Append(id, childID)
			}
		}
		return id

	case html.TextNode:
		id := arena.Alloc(KindText)
		arena.Node(id).Data = n.Data
		return id

	case html.CommentNode:
		id := arena.Alloc(KindComment)
		arena.Node(id).Data = n.Data
		return id

	case html.DoctypeNode:
		id := arena.Alloc(KindDocumentType)
		node := arena.Node(id)
		node.DoctypeName = n.Data
		for _, a := range n.Attr {
			switch a.Key {
			case "public":
				node.PublicID = a.Val
			case "system":
				node.SystemID = a.Val
			}
		}
		return id

	default:
		return invalidNode
	}
}

func htmlQualName(arena *Arena, n *html.Node) atom.QualName {
	prefix := n.Namespace
	local := n.Data
	if n.DataAtom != 0 {
		local = n.DataAtom.String()
	}
	return atom.Name(arena.Atoms, prefix, local, atom.NamespaceFor(prefix))
}
