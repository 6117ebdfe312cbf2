// Package pass implements the 39 stable-identifier optimization passes
// named in §6, grouped into one file per category (attrs, elements,
// shapes, paths, transform, sort, ids, colors, deprecated, dimensions,
// namespaces, style). Every pass is idempotent and order-sensitive, per
// §4.F.
package pass

import (
	"github.com/svgshrink/svgshrink/svgerr"
	"github.com/svgshrink/svgshrink/visitor"
)

// Pass is one optimization step. Its decoded options, if any, are
// handed to the pass's Constructor when the Pass is built.
type Pass interface {
	// ID is the pass's stable, camelCase identifier from §6.
	ID() string
	// Run executes the pass over the subtree rooted at ctx.Root and
	// reports whether it changed the tree (used for multipass
	// convergence) and any pass-level error.
	Run(ctx *visitor.Context) (changed bool, err error)
}

// Constructor builds a Pass from its decoded options. Passes with no
// configurable options ignore opts.
type Constructor func(opts any) Pass

// Registry maps every stable pass identifier to its Constructor. It is
// populated once, in init, by every category file in this package.
var Registry = map[string]Constructor{}

func register(id string, ctor Constructor) {
	if _, exists := Registry[id]; exists {
		panic("pass: duplicate registration for " + id)
	}
	Registry[id] = ctor
}

// precheckError builds the Precheck error kind described in §7, used by
// passes that refuse to run against animated/scripted/conditional
// documents.
func precheckError(reason string) error {
	return svgerr.New(svgerr.Precheck, reason)
}

// funcPass adapts a bare run function (the common case: no persistent
// state beyond options) into a Pass.
type funcPass struct {
	id  string
	run func(ctx *visitor.Context) (bool, error)
}

func (p *funcPass) ID() string { return p.id }
func (p *funcPass) Run(ctx *visitor.Context) (bool, error) { return p.run(ctx) }
