package algos

import (
	"cmp"
	"maps"
	"slices"
)

// TopologicalLayers groups nodes so that every node comes after the nodes it
// depends on. Nodes in the same layer are independent of each other. Edges to
// keys outside nodes are ignored. ok is false when a cycle leaves nodes
// unplaced.
func TopologicalLayers[T any, K cmp.Ordered](nodes map[K]T, edges func(T) map[K]struct{}) (layers [][]K, ok bool) {
	pending := map[K]int{}
	dependents := map[K][]K{}
	for _, k := range sortedKeys(nodes) {
		for dep := range edges(nodes[k]) {
			if _, known := nodes[dep]; !known {
				continue
			}
			pending[k]++
			dependents[dep] = append(dependents[dep], k)
		}
	}

	var layer []K
	for _, k := range sortedKeys(nodes) {
		if pending[k] == 0 {
			layer = append(layer, k)
		}
	}

	placed := 0
	for len(layer) > 0 {
		slices.Sort(layer)
		layers = append(layers, layer)
		placed += len(layer)

		var next []K
		for _, k := range layer {
			for _, d := range dependents[k] {
				pending[d]--
				if pending[d] == 0 {
					next = append(next, d)
				}
			}
		}
		layer = next
	}

	return layers, placed == len(nodes)
}

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}
