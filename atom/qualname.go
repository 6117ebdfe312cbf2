package atom

// Well-known namespace URIs bound to their conventional prefixes, per
// §4.A of the specification.
const (
	NamespaceSVG   = "http://www.w3.org/2000/svg"
	NamespaceXML   = "http://www.w3.org/XML/1998/namespace"
	NamespaceXLink = "http://www.w3.org/1999/xlink"
	NamespaceXMLNS = "http://www.w3.org/2000/xmlns/"
)

var wellKnownPrefixes = map[string]string{
	"xml":   NamespaceXML,
	"xlink": NamespaceXLink,
	"xmlns": NamespaceXMLNS,
}

// NamespaceFor returns the namespace URI bound to prefix, or "" for the
// default (unprefixed) binding, which callers resolve to NamespaceSVG
// unless an explicit xmlns overrides it.
func NamespaceFor(prefix string) string {
	if ns, ok := wellKnownPrefixes[prefix]; ok {
		return ns
	}
	return ""
}

// QualName is a tuple (prefix?, local, namespace). Equality for the
// purposes of attribute-list uniqueness (§4.D) compares prefix and local
// only; namespace is derived and used for semantic predicates such as
// IsPresentation.
type QualName struct {
	Prefix Atom // zero Atom means no prefix
	Local  Atom
	NS     Atom
}

// Name interns prefix (optional) and local into table and resolves the
// namespace the same way a conforming XML processor would: well-known
// prefixes bind to their fixed URI; everything else is the caller's
// responsibility (typically resolved from in-scope xmlns declarations
// before calling Name).
func Name(table *Table, prefix, local, ns string) QualName {
	var p Atom
	if prefix != "" {
		p = table.Intern(prefix)
	}
	return QualName{
		Prefix: p,
		Local:  table.Intern(local),
		NS:     table.Intern(ns),
	}
}

// Equal compares prefix and local only, per §4.A.
func (q QualName) Equal(o QualName) bool {
	return q.Prefix.Equal(o.Prefix) && q.Local.Equal(o.Local)
}

// String renders "prefix:local" or "local" for diagnostics and
// serialization of attribute names that carry no namespace remapping.
func (q QualName) String() string {
	if q.Prefix.IsZero() {
		return q.Local.String()
	}
	return q.Prefix.String() + ":" + q.Local.String()
}
