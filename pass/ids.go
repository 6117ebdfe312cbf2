package pass

import (
	"strings"

	"github.com/svgshrink/svgshrink/dom"
	"github.com/svgshrink/svgshrink/visitor"
)

func init() {
	register("cleanupIds", func(opts any) Pass {
		o, _ := opts.(CleanupIdsOptions)
		return &funcPass{"cleanupIds", func(ctx *visitor.Context) (bool, error) { return runCleanupIds(ctx, o) }}
	})
}

// CleanupIdsOptions controls whether ids are only pruned (never
// referenced) or also minified to short generated names.
type CleanupIdsOptions struct {
	Minify bool
}

var scriptingElements = map[string]bool{"script": true, "animate": true, "animateMotion": true, "animateTransform": true, "set": true}

// runCleanupIds removes id attributes that no url(#id)/href reference
// anywhere in the document points at, and optionally renames the
// remaining ones to short generated identifiers. It refuses to run (a
// Precheck error) over documents that use SMIL animation or scripting,
// since those can reference ids dynamically in ways static analysis
// cannot see — grounded on the "unused identifier" scan shape of
// oxvg's no_unused_ids lint rule.
func runCleanupIds(ctx *visitor.Context, o CleanupIdsOptions) (bool, error) {
	hasScripting := false
	visitor.Walk(ctx, visitor.Hooks{
		Element: func(ctx *visitor.Context, id dom.NodeID) visitor.Action {
			if scriptingElements[localName(ctx.Arena, id)] {
				hasScripting = true
				return visitor.ActionStop
			}
			return visitor.ActionContinue
		},
	}, ctx.Root)
	if hasScripting {
		return false, precheckError("cleanupIds: document uses scripting or animation elements")
	}

	referenced := collectReferencedIDs(ctx)
	changed := false
	var counter int
	var toRename []dom.NodeID

	walkElements(ctx, func(id dom.NodeID) bool {
		idVal, ok := getAttr(ctx.Arena, id, "id")
		if !ok {
			return false
		}
		if !referenced[idVal] {
			removeAttr(ctx.Arena, id, "id")
			changed = true
			return true
		}
		if o.Minify {
			toRename = append(toRename, id)
		}
		return false
	})

	if o.Minify {
		for _, id := range toRename {
			old, _ := getAttr(ctx.Arena, id, "id")
			newID := generateShortID(&counter)
			if newID == old {
				continue
			}
			renameIDReferences(ctx, old, newID)
			setAttr(ctx.Arena, id, "id", newID)
			changed = true
		}
	}
	return changed, nil
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateShortID produces the n-th short identifier in bijective
// base-52 order: a, b, ..., Z, aa, ab, ... — never starting with a
// digit, since SVG ids must be valid XML Names.
func generateShortID(counter *int) string {
	n := *counter + 1
	*counter++
	base := len(idAlphabet)
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{idAlphabet[n%base]}, out...)
		n /= base
	}
	return string(out)
}

func renameIDReferences(ctx *visitor.Context, oldID, newID string) {
	walkElements(ctx, func(id dom.NodeID) bool {
		n := ctx.Arena.Node(id)
		if n.Attrs == nil {
			return false
		}
		changed := false
		for _, a := range append([]dom.Attr(nil), n.Attrs.All()...) {
			nv, ok := replaceIDRef(a.Value, oldID, newID)
			if ok {
				n.Attrs.Set(a.Name, nv)
				changed = true
			}
		}
		return changed
	})
}

func replaceIDRef(value, oldID, newID string) (string, bool) {
	changed := false
	if value == "#"+oldID {
		return "#" + newID, true
	}
	if strings.Contains(value, "url(#"+oldID+")") {
		value = strings.ReplaceAll(value, "url(#"+oldID+")", "url(#"+newID+")")
		changed = true
	}
	return value, changed
}
