package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazyjson/internal/graph"
	"github.com/rebeliceyang/lazyjson/internal/jsondoc"
)

type recorder struct {
	focused []string
}

func (r *recorder) FocusNode(n *graph.Node) { r.focused = append(r.focused, n.Path) }

func build(t *testing.T, text string, opts graph.Options) *graph.Tree {
	t.Helper()
	v, err := jsondoc.ParseString(text)
	require.NoError(t, err)
	return graph.Build(v, opts)
}

func TestIsMatch(t *testing.T) {
	tree := build(t, `{"Name":"Alice","nested":{"alice":1},"list":["x"],"n":12.5,"flag":true,"nil":null}`, graph.DefaultOptions())
	byName := map[string]*graph.Node{}
	for _, n := range tree.RenderedNodes() {
		byName[n.Path] = n
	}

	tests := []struct {
		path  string
		query string
		want  bool
	}{
		{"$.Name", "name", true},
		{"$.Name", "ALI", true},
		{"$.nested", "alice", false}, // aggregate content is not matched
		{"$.nested", "nest", true},
		{"$.nested.alice", "alice", true},
		{"$.list[0]", "x", true},
		{"$.list[0]", "0", true}, // index is the name
		{"$.n", "12.5", true},
		{"$.flag", "TRUE", true},
		{"$.nil", "null", true},
		{"$.n", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.query, func(t *testing.T) {
			n := byName[tt.path]
			require.NotNil(t, n)
			assert.Equal(t, tt.want, IsMatch(n, tt.query))
		})
	}
	assert.False(t, IsMatch(tree.Root, "$"))
}

func TestEngine_CyclesThroughThreeMatches(t *testing.T) {
	tree := build(t, `{"foo":1,"bar":"has foo inside","baz":{"food":true},"other":2}`, graph.DefaultOptions())
	rec := &recorder{}
	e := NewEngine(rec)

	count := e.SetQuery("FOO", tree.RenderedNodes())
	require.Equal(t, 3, count)
	assert.Equal(t, StatusHasMatches, e.Status())
	assert.Equal(t, []string{"$.foo"}, rec.focused)

	var visited []int
	for i := 0; i < 3; i++ {
		_, ok := e.Next()
		require.True(t, ok)
		visited = append(visited, e.Index())
	}
	assert.Equal(t, []int{1, 2, 0}, visited)
	assert.Equal(t, []string{"$.foo", "$.bar", "$.baz.food", "$.foo"}, rec.focused)
}

func TestEngine_EmptyQueryIsInactive(t *testing.T) {
	tree := build(t, `{"a":1}`, graph.DefaultOptions())
	rec := &recorder{}
	e := NewEngine(rec)

	e.SetQuery("a", tree.RenderedNodes())
	rec.focused = nil

	e.SetQuery("", tree.RenderedNodes())
	_, ok := e.Count()
	assert.False(t, ok)
	assert.Equal(t, StatusInactive, e.Status())
	assert.Empty(t, rec.focused)
}

func TestEngine_NoMatches(t *testing.T) {
	tree := build(t, `{"a":{"b":[1,2,"c"]}}`, graph.DefaultOptions())
	rec := &recorder{}
	e := NewEngine(rec)

	assert.Equal(t, 0, e.SetQuery("xyz", tree.RenderedNodes()))
	count, ok := e.Count()
	assert.True(t, ok)
	assert.Equal(t, 0, count)
	assert.Equal(t, StatusNoMatches, e.Status())

	_, moved := e.Next()
	assert.False(t, moved)
	assert.Empty(t, rec.focused)
}

func TestEngine_SkipsCollapsedSubtrees(t *testing.T) {
	tree := build(t, `{"open":{"needle":1},"closed":{"needle":2}}`, graph.DefaultOptions())
	tree.Root.Children()[1].Collapse()

	e := NewEngine(nil)
	e.SetQuery("needle", tree.RenderedNodes())
	require.Len(t, e.Matches(), 1)
	assert.Equal(t, "$.open.needle", e.Matches()[0].Path)
}

func TestEngine_SkipsUnpaginatedRemainder(t *testing.T) {
	items := make([]string, 60)
	for i := range items {
		items[i] = fmt.Sprintf(`"v%d"`, i)
	}
	tree := build(t, "["+strings.Join(items, ",")+"]", graph.DefaultOptions())

	e := NewEngine(nil)
	e.SetQuery("v55", tree.RenderedNodes())
	assert.Equal(t, StatusNoMatches, e.Status())

	tree.Root.ShowMore()
	e.Refresh(tree.RenderedNodes())
	assert.Equal(t, StatusHasMatches, e.Status())
}

func TestEngine_RefreshKeepsCursorOnSameNode(t *testing.T) {
	tree := build(t, `{"k1":1,"x":{"k2":2},"k3":3}`, graph.DefaultOptions())
	rec := &recorder{}
	e := NewEngine(rec)
	e.SetQuery("k", tree.RenderedNodes())
	e.Next()
	e.Next() // on $.k3
	rec.focused = nil

	tree.Root.Children()[1].Collapse()
	e.Refresh(tree.RenderedNodes())

	n, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, "$.k3", n.Path)
	assert.Equal(t, 1, e.Index())
	assert.Empty(t, rec.focused)
}

func TestEngine_IsMatchFollowsMatchSet(t *testing.T) {
	tree := build(t, `{"k1":1,"x":{"k2":2}}`, graph.DefaultOptions())
	e := NewEngine(nil)
	e.SetQuery("k", tree.RenderedNodes())

	k1, k2, x := tree.FindByPath("$.k1"), tree.FindByPath("$.x.k2"), tree.FindByPath("$.x")
	assert.True(t, e.IsMatch(k1))
	assert.True(t, e.IsMatch(k2))
	assert.False(t, e.IsMatch(x))

	x.Collapse()
	e.Refresh(tree.RenderedNodes())
	assert.True(t, e.IsMatch(k1))
	assert.False(t, e.IsMatch(k2), "hidden nodes leave the match set")

	e.Clear()
	assert.False(t, e.IsMatch(k1))
}
