package algos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type node struct {
	deps []string
}

func graph(deps map[string][]string) (map[string]node, func(node) map[string]struct{}) {
	nodes := map[string]node{}
	for k, v := range deps {
		nodes[k] = node{deps: v}
	}
	edges := func(n node) map[string]struct{} {
		out := map[string]struct{}{}
		for _, d := range n.deps {
			out[d] = struct{}{}
		}
		return out
	}
	return nodes, edges
}

func TestTopologicalLayers(t *testing.T) {
	nodes, edges := graph(map[string][]string{
		"nat":    nil,
		"bool":   nil,
		"add":    {"nat"},
		"mul":    {"add", "nat"},
		"not":    {"bool"},
		"double": {"add", "external"},
	})

	layers, ok := TopologicalLayers(nodes, edges)
	assert.True(t, ok)
	assert.Equal(t, [][]string{
		{"bool", "nat"},
		{"add", "not"},
		{"double", "mul"},
	}, layers)
}

func TestTopologicalLayersCycle(t *testing.T) {
	nodes, edges := graph(map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
		"d": nil,
	})

	layers, ok := TopologicalLayers(nodes, edges)
	assert.False(t, ok)
	assert.Equal(t, [][]string{{"d"}}, layers)

	assert.Equal(t, []string{"a", "b", "c"}, FindCycle(nodes, edges))
}

func TestFindCycleAcyclic(t *testing.T) {
	nodes, edges := graph(map[string][]string{
		"a": {"b"},
		"b": nil,
	})
	assert.Nil(t, FindCycle(nodes, edges))
}

func TestFindCycleSelfLoop(t *testing.T) {
	nodes, edges := graph(map[string][]string{
		"a": nil,
		"b": {"b"},
	})
	assert.Equal(t, []string{"b"}, FindCycle(nodes, edges))
}

func TestUniq(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, Uniq([]string{"b", "a", "b", "c", "a"}))
	assert.Empty(t, Uniq([]int(nil)))
}
