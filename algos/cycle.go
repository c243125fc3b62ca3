package algos

import (
	"cmp"
	"slices"
)

// FindCycle returns the keys along one dependency cycle, starting from the
// smallest key that reaches it, or nil when the graph is acyclic.
func FindCycle[T any, K cmp.Ordered](nodes map[K]T, edges func(T) map[K]struct{}) []K {
	visited := map[K]bool{}
	onStack := map[K]bool{}
	var stack []K
	var cycle []K

	var dfs func(K) bool
	dfs = func(k K) bool {
		if onStack[k] {
			cycle = slices.Clone(stack[slices.Index(stack, k):])
			return true
		}
		if visited[k] {
			return false
		}

		visited[k] = true
		onStack[k] = true
		stack = append(stack, k)

		for _, dep := range sortedKeys(edges(nodes[k])) {
			if _, ok := nodes[dep]; !ok {
				continue
			}
			if dfs(dep) {
				return true
			}
		}

		stack = stack[:len(stack)-1]
		onStack[k] = false
		return false
	}

	for _, k := range sortedKeys(nodes) {
		if dfs(k) {
			return cycle
		}
	}
	return nil
}
