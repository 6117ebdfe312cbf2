package pass

import (
	"strconv"
	"strings"

	"github.com/svgshrink/svgshrink/dom"
	"github.com/svgshrink/svgshrink/visitor"
)

func init() {
	register("removeDoctype", func(any) Pass { return &funcPass{"removeDoctype", runRemoveDoctype} })
	register("removeXmlProcInst", func(any) Pass { return &funcPass{"removeXmlProcInst", runRemoveXmlProcInst} })
	register("removeComments", func(any) Pass { return &funcPass{"removeComments", runRemoveComments} })
	register("removeMetadata", func(any) Pass { return &funcPass{"removeMetadata", runRemoveNamedElement("metadata")} })
	register("removeTitle", func(any) Pass { return &funcPass{"removeTitle", runRemoveNamedElement("title")} })
	register("removeDesc", func(any) Pass { return &funcPass{"removeDesc", runRemoveDesc} })
	register("removeStyleElement", func(any) Pass { return &funcPass{"removeStyleElement", runRemoveNamedElement("style")} })
	register("removeScriptElement", func(any) Pass { return &funcPass{"removeScriptElement", runRemoveNamedElement("script")} })
	register("removeXMLNS", func(any) Pass { return &funcPass{"removeXMLNS", runRemoveXMLNS} })
	register("removeEditorsNSData", func(any) Pass { return &funcPass{"removeEditorsNSData", runRemoveEditorsNSData} })
	register("removeEmptyContainers", func(any) Pass { return &funcPass{"removeEmptyContainers", runRemoveEmptyContainers} })
	register("removeEmptyText", func(any) Pass { return &funcPass{"removeEmptyText", runRemoveEmptyText} })
	register("removeUselessDefs", func(any) Pass { return &funcPass{"removeUselessDefs", runRemoveUselessDefs} })
	register("removeHiddenElems", func(any) Pass { return &funcPass{"removeHiddenElems", runRemoveHiddenElems} })
	register("removeRasterImages", func(any) Pass { return &funcPass{"removeRasterImages", runRemoveRasterImages} })
	register("removeOffCanvasPaths", func(any) Pass { return &funcPass{"removeOffCanvasPaths", runRemoveOffCanvasPaths} })
}

func runRemoveDoctype(ctx *visitor.Context) (bool, error) {
	changed := false
	var doctypes []dom.NodeID
	visitor.Walk(ctx, visitor.Hooks{
		Doctype: func(ctx *visitor.Context, id dom.NodeID) visitor.Action {
			doctypes = append(doctypes, id)
			return visitor.ActionContinue
		},
	}, ctx.Arena.RootID)
	for _, id := range doctypes {
		ctx.Arena.Detach(id)
		changed = true
	}
	return changed, nil
}

func runRemoveXmlProcInst(ctx *visitor.Context) (bool, error) {
	changed := false
	var pis []dom.NodeID
	visitor.Walk(ctx, visitor.Hooks{
		PI: func(ctx *visitor.Context, id dom.NodeID) visitor.Action {
			pis = append(pis, id)
			return visitor.ActionContinue
		},
	}, ctx.Arena.RootID)
	for _, id := range pis {
		if ctx.Arena.Node(id).Target == "xml-stylesheet" {
			continue // not the XML declaration; left to removeDeprecatedAttrs's neighbors
		}
		ctx.Arena.Detach(id)
		changed = true
	}
	return changed, nil
}

func runRemoveComments(ctx *visitor.Context) (bool, error) {
	changed := false
	var comments []dom.NodeID
	visitor.Walk(ctx, visitor.Hooks{
		Comment: func(ctx *visitor.Context, id dom.NodeID) visitor.Action {
			comments = append(comments, id)
			return visitor.ActionContinue
		},
	}, ctx.Root)
	for _, id := range comments {
		ctx.Arena.Detach(id)
		changed = true
	}
	return changed, nil
}

// runRemoveNamedElement returns a run function that removes every
// element with the given local name, anywhere in the tree.
func runRemoveNamedElement(name string) func(*visitor.Context) (bool, error) {
	return func(ctx *visitor.Context) (bool, error) {
		var targets []dom.NodeID
		visitor.Walk(ctx, visitor.Hooks{
			Element: func(ctx *visitor.Context, id dom.NodeID) visitor.Action {
				if localName(ctx.Arena, id) == name {
					targets = append(targets, id)
					return visitor.ActionSkip
				}
				return visitor.ActionContinue
			},
		}, ctx.Root)
		for _, id := range targets {
			ctx.Arena.Detach(id)
		}
		return len(targets) > 0, nil
	}
}

// runRemoveDesc removes every <desc> element unconditionally; editor
// markers such as "Created with ..." get no exception.
func runRemoveDesc(ctx *visitor.Context) (bool, error) {
	return runRemoveNamedElement("desc")(ctx)
}

func runRemoveXMLNS(ctx *visitor.Context) (bool, error) {
	changed := false
	walkElements(ctx, func(id dom.NodeID) bool {
		n := ctx.Arena.Node(id)
		if n.Attrs == nil {
			return false
		}
		before := n.Attrs.Len()
		n.Attrs.Retain(func(a dom.Attr) bool {
			return a.Name.Local.String() != "xmlns" && a.Name.Prefix.String() != "xmlns"
		})
		if n.Attrs.Len() != before {
			changed = true
			return true
		}
		return false
	})
	return changed, nil
}

// editorNamespaceURIs are the namespace URIs of known vector editor
// metadata vocabularies (Inkscape, Sodipodi, Adobe Illustrator).
var editorNamespaceURIs = map[string]bool{
	"http://www.inkscape.org/namespaces/inkscape": true,
	"http://sodipodi.sourceforge.net/DTD/sodipodi-0.0.dtd": true,
	"http://ns.adobe.com/AdobeIllustrator/10.0/":           true,
	"http://ns.adobe.com/Extensibility/1.0/":                true,
	"http://ns.adobe.com/Graphs/1.0/":                        true,
	"http://ns.adobe.com/AdobeSVGViewerExtensions/3.0/":      true,
	"http://ns.adobe.com/Variables/1.0/":                     true,
	"http://ns.adobe.com/SaveForWeb/1.0/":                    true,
	"http://ns.adobe.com/Flows/1.0/":                         true,
	"http://ns.adobe.com/ImageReplacement/1.0/":              true,
	"http://ns.adobe.com/GenericCustomNamespace/1.0/":        true,
	"http://ns.adobe.com/XPath/1.0/":                         true,
	"http://www.w3.org/1999/02/22-rdf-syntax-ns#":            true,
	"http://creativecommons.org/ns#":                          true,
	"http://purl.org/dc/elements/1.1/":                        true,
}

// runRemoveEditorsNSData drops elements, attributes, and xmlns
// declarations whose namespace belongs to a known vector-editor
// metadata vocabulary.
func runRemoveEditorsNSData(ctx *visitor.Context) (bool, error) {
	prefixes := map[string]bool{}
	root := ctx.Arena.Node(ctx.Root)
	if root.Attrs != nil {
		for _, a := range root.Attrs.All() {
			if a.Name.Prefix.String() == "xmlns" && editorNamespaceURIs[a.Value] {
				prefixes[a.Name.Local.String()] = true
			}
			if a.Name.Local.String() == "xmlns" && editorNamespaceURIs[a.Value] {
				prefixes[""] = true
			}
		}
	}
	if len(prefixes) == 0 {
		return false, nil
	}

	changed := false
	var toRemove []dom.NodeID
	visitor.Walk(ctx, visitor.Hooks{
		Element: func(ctx *visitor.Context, id dom.NodeID) visitor.Action {
			n := ctx.Arena.Node(id)
			if prefixes[n.Name.Prefix.String()] {
				toRemove = append(toRemove, id)
				return visitor.ActionSkip
			}
			if n.Attrs != nil {
				before := n.Attrs.Len()
				n.Attrs.Retain(func(a dom.Attr) bool {
					return !prefixes[a.Name.Prefix.String()]
				})
				if n.Attrs.Len() != before {
					changed = true
				}
			}
			return visitor.ActionContinue
		},
	}, ctx.Root)
	for _, id := range toRemove {
		ctx.Arena.Detach(id)
		changed = true
	}
	if root.Attrs != nil {
		before := root.Attrs.Len()
		root.Attrs.Retain(func(a dom.Attr) bool {
			if a.Name.Prefix.String() != "xmlns" {
				return true
			}
			return !editorNamespaceURIs[a.Value]
		})
		if root.Attrs.Len() != before {
			changed = true
		}
	}
	return changed, nil
}

func runRemoveEmptyContainers(ctx *visitor.Context) (bool, error) {
	changed := false
	var toRemove []dom.NodeID
	visitor.Walk(ctx, visitor.Hooks{
		Exit: func(ctx *visitor.Context, id dom.NodeID) {
			n := ctx.Arena.Node(id)
			if !n.IsElement() || id == ctx.Root {
				return
			}
			if !containerElements[n.Name.Local.String()] {
				return
			}
			if len(n.Children) > 0 {
				return
			}
			if _, ok := getAttr(ctx.Arena, id, "id"); ok {
				return // may still be referenced by url(#id)
			}
			toRemove = append(toRemove, id)
		},
	}, ctx.Root)
	for _, id := range toRemove {
		ctx.Arena.Detach(id)
		changed = true
	}
	return changed, nil
}

func runRemoveEmptyText(ctx *visitor.Context) (bool, error) {
	changed := false
	var toRemove []dom.NodeID
	visitor.Walk(ctx, visitor.Hooks{
		Text: func(ctx *visitor.Context, id dom.NodeID) visitor.Action {
			n := ctx.Arena.Node(id)
			if isWhitespace(n.Data) && !ctx.PreservesSpace(id) {
				toRemove = append(toRemove, id)
			}
			return visitor.ActionContinue
		},
	}, ctx.Root)
	for _, id := range toRemove {
		ctx.Arena.Detach(id)
		changed = true
	}
	return changed, nil
}

// runRemoveUselessDefs removes a <defs> element whose every child is
// itself unreferenced (no id, or an id no url()/href anywhere in the
// document points at) — narrower than removeEmptyContainers, since a
// non-empty <defs> can still be entirely useless.
func runRemoveUselessDefs(ctx *visitor.Context) (bool, error) {
	referenced := collectReferencedIDs(ctx)
	changed := false
	var toRemove []dom.NodeID
	visitor.Walk(ctx, visitor.Hooks{
		Element: func(ctx *visitor.Context, id dom.NodeID) visitor.Action {
			if localName(ctx.Arena, id) != "defs" {
				return visitor.ActionContinue
			}
			useless := true
			for _, c := range ctx.Arena.Node(id).Children {
				if idVal, ok := getAttr(ctx.Arena, c, "id"); ok && referenced[idVal] {
					useless = false
					break
				}
			}
			if useless {
				toRemove = append(toRemove, id)
				return visitor.ActionSkip
			}
			return visitor.ActionContinue
		},
	}, ctx.Root)
	for _, id := range toRemove {
		ctx.Arena.Detach(id)
		changed = true
	}
	return changed, nil
}

// collectReferencedIDs scans every attribute value in the document for
// url(#id), href="#id", or xlink:href="#id" references, grounded on
// oxvg's no_unused_ids.rs reference scan.
func collectReferencedIDs(ctx *visitor.Context) map[string]bool {
	refs := map[string]bool{}
	visitor.Walk(ctx, visitor.Hooks{
		Element: func(ctx *visitor.Context, id dom.NodeID) visitor.Action {
			n := ctx.Arena.Node(id)
			if n.Attrs == nil {
				return visitor.ActionContinue
			}
			for _, a := range n.Attrs.All() {
				collectIDRefsFrom(a.Value, refs)
			}
			return visitor.ActionContinue
		},
	}, ctx.Root)
	return refs
}

func collectIDRefsFrom(value string, out map[string]bool) {
	if strings.HasPrefix(value, "#") {
		out[strings.TrimPrefix(value, "#")] = true
	}
	for {
		i := strings.Index(value, "url(")
		if i < 0 {
			break
		}
		rest := value[i+4:]
		j := strings.IndexByte(rest, ')')
		if j < 0 {
			break
		}
		ref := strings.Trim(rest[:j], `'" `)
		if strings.HasPrefix(ref, "#") {
			out[strings.TrimPrefix(ref, "#")] = true
		}
		value = rest[j+1:]
	}
}

// runRemoveHiddenElems removes elements judged unable to render: a
// display="none" attribute, opacity="0", a computed display of none, or
// a zero width/height. Visibility is not examined, so
// visibility:hidden elements are kept.
func runRemoveHiddenElems(ctx *visitor.Context) (bool, error) {
	changed := false
	var toRemove []dom.NodeID
	visitor.Walk(ctx, visitor.Hooks{
		Element: func(ctx *visitor.Context, id dom.NodeID) visitor.Action {
			name := localName(ctx.Arena, id)
			if nonRenderingElements[name] || name == "svg" {
				return visitor.ActionContinue
			}
			if isHiddenElement(ctx, id) {
				toRemove = append(toRemove, id)
				return visitor.ActionSkip
			}
			return visitor.ActionContinue
		},
	}, ctx.Root)
	for _, id := range toRemove {
		ctx.Arena.Detach(id)
		changed = true
	}
	return changed, nil
}

func isHiddenElement(ctx *visitor.Context, id dom.NodeID) bool {
	if display, ok := getAttr(ctx.Arena, id, "display"); ok && display == "none" {
		return true
	}
	if opacity, ok := getAttr(ctx.Arena, id, "opacity"); ok && opacity == "0" {
		return true
	}
	if entry, ok := ctx.Style().Computed(id, "display"); ok && entry.Value == "none" {
		return true
	}
	for _, dim := range []string{"width", "height"} {
		if v, ok := getAttr(ctx.Arena, id, dim); ok && v == "0" {
			return true
		}
	}
	return false
}

func runRemoveRasterImages(ctx *visitor.Context) (bool, error) {
	var toRemove []dom.NodeID
	visitor.Walk(ctx, visitor.Hooks{
		Element: func(ctx *visitor.Context, id dom.NodeID) visitor.Action {
			if localName(ctx.Arena, id) != "image" {
				return visitor.ActionContinue
			}
			href, ok := getAttr(ctx.Arena, id, "href")
			if !ok {
				href, ok = getAttr(ctx.Arena, id, "xlink:href")
			}
			if ok && isRasterHref(href) {
				toRemove = append(toRemove, id)
				return visitor.ActionSkip
			}
			return visitor.ActionContinue
		},
	}, ctx.Root)
	for _, id := range toRemove {
		ctx.Arena.Detach(id)
	}
	return len(toRemove) > 0, nil
}

func isRasterHref(href string) bool {
	lower := strings.ToLower(href)
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return strings.Contains(lower, "data:image/png") ||
		strings.Contains(lower, "data:image/jpeg") ||
		strings.Contains(lower, "data:image/gif") ||
		strings.Contains(lower, "data:image/webp")
}

// runRemoveOffCanvasPaths drops top-level shapes whose bounding box lies
// entirely outside the document's viewBox, when one is declared on the
// root. Conservative: only axis-aligned rect bounding boxes derived
// from presentation attributes are checked; anything else is left
// alone rather than risk dropping a visible element.
func runRemoveOffCanvasPaths(ctx *visitor.Context) (bool, error) {
	vb, ok := getAttr(ctx.Arena, ctx.Root, "viewBox")
	if !ok {
		return false, nil
	}
	fields := strings.Fields(vb)
	if len(fields) != 4 {
		return false, nil
	}
	minX, minY, w, h := parseFloatOr0(fields[0]), parseFloatOr0(fields[1]), parseFloatOr0(fields[2]), parseFloatOr0(fields[3])
	maxX, maxY := minX+w, minY+h

	var toRemove []dom.NodeID
	for _, c := range ctx.Arena.Node(ctx.Root).Children {
		n := ctx.Arena.Node(c)
		if !n.IsElement() || localName(ctx.Arena, c) != "rect" {
			continue
		}
		x, hasX := getAttr(ctx.Arena, c, "x")
		y, hasY := getAttr(ctx.Arena, c, "y")
		rw, hasW := getAttr(ctx.Arena, c, "width")
		rh, hasH := getAttr(ctx.Arena, c, "height")
		if !hasX || !hasY || !hasW || !hasH {
			continue
		}
		rx, ry, rwF, rhF := parseFloatOr0(x), parseFloatOr0(y), parseFloatOr0(rw), parseFloatOr0(rh)
		if rx+rwF < minX || rx > maxX || ry+rhF < minY || ry > maxY {
			toRemove = append(toRemove, c)
		}
	}
	for _, id := range toRemove {
		ctx.Arena.Detach(id)
	}
	return len(toRemove) > 0, nil
}

func parseFloatOr0(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
