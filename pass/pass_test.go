package pass

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/svgshrink/svgshrink/dom"
	"github.com/svgshrink/svgshrink/visitor"
)

func parseCtx(t *testing.T, src string) *visitor.Context {
	t.Helper()
	arena, root, err := dom.ParseStrict(strings.NewReader(src))
	require.NoError(t, err)
	return visitor.NewContext(arena, root, &visitor.Info{}, nil)
}

func runPass(t *testing.T, id string, src string) (*visitor.Context, bool) {
	t.Helper()
	ctx := parseCtx(t, src)
	ctor, ok := Registry[id]
	require.True(t, ok, "pass %q not registered", id)
	p := ctor(nil)
	changed, err := p.Run(ctx)
	require.NoError(t, err)
	return ctx, changed
}

func findFirst(arena *dom.Arena, root dom.NodeID, local string) (dom.NodeID, bool) {
	var found dom.NodeID
	var ok bool
	var walk func(id dom.NodeID)
	walk = func(id dom.NodeID) {
		if ok {
			return
		}
		n := arena.Node(id)
		if n.IsElement() && n.Name.Local.String() == local {
			found, ok = id, true
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return found, ok
}

func countElements(arena *dom.Arena, root dom.NodeID, local string) int {
	n := 0
	var walk func(id dom.NodeID)
	walk = func(id dom.NodeID) {
		nd := arena.Node(id)
		if nd.IsElement() && nd.Name.Local.String() == local {
			n++
		}
		for _, c := range nd.Children {
			walk(c)
		}
	}
	walk(root)
	return n
}
