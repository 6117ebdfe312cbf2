// Package visitor implements the pre-order traversal and pass-hook
// contract described in §4.E: a Context carrying computed style and
// per-run diagnostics, and Visit/Exit hooks that a Pass implements,
// with support for skipping a subtree or ending traversal early, and
// for mutating the tree during the walk.
package visitor

import (
	"github.com/svgshrink/svgshrink/dom"
	"github.com/svgshrink/svgshrink/style"
	"github.com/svgshrink/svgshrink/svgerr"
)

// Info carries per-run bookkeeping shared by every pass during one
// optimization run: the source path (for diagnostics), the multipass
// iteration counter, and accumulated warnings.
type Info struct {
	SourcePath     string
	MultipassCount int
	Warnings       svgerr.List
}

// Context is threaded through every hook call. It exposes the arena,
// computed style (lazily built on first use, since not every pass
// needs it), and the shared Info block. Grounded on pgavlin-svg2/walk.go's
// single-struct traversal state, generalized with a style resolver and
// mutation bookkeeping oxvg's visitor contract implies (skip/exit,
// remove-self, replace-self).
type Context struct {
	Arena *dom.Arena
	Root  dom.NodeID
	Info  *Info

	sheets   []*style.Sheet
	resolver *style.Resolver
}

// NewContext builds a traversal context over the subtree rooted at
// root, with sheets collected from any <style> elements (callers
// typically gather these with CollectSheets before constructing the
// Context).
func NewContext(arena *dom.Arena, root dom.NodeID, info *Info, sheets []*style.Sheet) *Context {
	return &Context{Arena: arena, Root: root, Info: info, sheets: sheets}
}

// Style lazily builds and returns the style.Resolver for this context's
// tree.
func (c *Context) Style() *style.Resolver {
	if c.resolver == nil {
		c.resolver = style.NewResolver(c.Arena, c.Root, c.sheets)
	}
	return c.resolver
}

// PreservesSpace reports whether id or any ancestor carries
// xml:space="preserve" — the resolution of Open Question 2: whitespace
// passes must consult this before collapsing or trimming text.
func (c *Context) PreservesSpace(id dom.NodeID) bool {
	for cur := id; cur != 0; {
		n := c.Arena.Node(cur)
		if n.Attrs != nil {
			if a, ok := n.Attrs.GetLocal("space"); ok && a.Name.Prefix.String() == "xml" {
				if a.Value == "preserve" {
					return true
				}
				if a.Value == "default" {
					return false
				}
			}
		}
		parent := n.Parent
		if parent == cur {
			return false
		}
		cur = parent
	}
	return false
}

// Action is returned by a hook to control traversal.
type Action int

const (
	// ActionContinue walks into id's children as normal.
	ActionContinue Action = iota
	// ActionSkip walks past id's children but continues the traversal
	// with its following siblings.
	ActionSkip
	// ActionStop ends the entire traversal immediately.
	ActionStop
)

// Hooks is the set of callbacks a Pass may implement; every field is
// optional (nil means "do nothing"). Grounded on the closed,
// kind-dispatched switch in pgavlin-svg2/walk.go, split into named hooks
// so a pass only implements the node kinds it cares about.
type Hooks struct {
	Document func(ctx *Context, id dom.NodeID) Action
	Element  func(ctx *Context, id dom.NodeID) Action
	Exit     func(ctx *Context, id dom.NodeID)
	Text     func(ctx *Context, id dom.NodeID) Action
	Comment  func(ctx *Context, id dom.NodeID) Action
	PI       func(ctx *Context, id dom.NodeID) Action
	Doctype  func(ctx *Context, id dom.NodeID) Action
}

// Walk runs a pre-order traversal of the subtree rooted at id, calling
// the matching Hooks entry before descending into children and Exit
// after. Mutation during traversal is supported via the arena's own
// Detach/Insert/Replace: Walk snapshots a node's Children once, then
// checks before each visit that the child is still attached there, so a
// sibling removed or replaced by an earlier hook is skipped. Nodes
// inserted during the walk are not in the snapshot and are not visited.
func Walk(ctx *Context, hooks Hooks, id dom.NodeID) Action {
	n := ctx.Arena.Node(id)
	var action Action

	switch n.Kind {
	case dom.KindDocument:
		if hooks.Document != nil {
			action = hooks.Document(ctx, id)
		}
	case dom.KindElement:
		if hooks.Element != nil {
			action = hooks.Element(ctx, id)
		}
	case dom.KindText, dom.KindCharacterData:
		if hooks.Text != nil {
			action = hooks.Text(ctx, id)
		}
	case dom.KindComment:
		if hooks.Comment != nil {
			action = hooks.Comment(ctx, id)
		}
	case dom.KindProcessingInstruction:
		if hooks.PI != nil {
			action = hooks.PI(ctx, id)
		}
	case dom.KindDocumentType:
		if hooks.Doctype != nil {
			action = hooks.Doctype(ctx, id)
		}
	}

	if action == ActionStop {
		return ActionStop
	}

	if action != ActionSkip {
		children := append([]dom.NodeID(nil), ctx.Arena.Node(id).Children...)
		for _, c := range children {
			if !stillChildOf(ctx.Arena, id, c) {
				continue // removed or replaced by an earlier sibling's hook
			}
			if Walk(ctx, hooks, c) == ActionStop {
				return ActionStop
			}
		}
	}

	if hooks.Exit != nil {
		hooks.Exit(ctx, id)
	}
	return ActionContinue
}

func stillChildOf(arena *dom.Arena, parent, child dom.NodeID) bool {
	for _, c := range arena.Node(parent).Children {
		if c == child {
			return true
		}
	}
	return false
}
