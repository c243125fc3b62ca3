package source

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/algos"
	. "github.com/Brahmastra-Labs/logicaffeine-sub001/common"
)

// CycleError reports declarations that refer to each other.
type CycleError struct {
	Names []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic declarations: %s", strings.Join(e.Names, " -> "))
}

// DeclarationLayers orders the declarations among cmds by the globals they
// refer to. Each layer holds indices into cmds of declarations that depend
// only on declarations of earlier layers. The first declaration of a name is
// the one others depend on.
func DeclarationLayers(cmds []Command) ([][]int, error) {
	providers := map[string]int{}
	nodes := map[int]Command{}
	for i, cmd := range cmds {
		if !IsDeclaration(cmd) {
			continue
		}
		nodes[i] = cmd
		for _, name := range Provides(cmd) {
			if _, ok := providers[name]; !ok {
				providers[name] = i
			}
		}
	}

	edges := func(cmd Command) map[int]struct{} {
		deps := NewSet[int]()
		for _, name := range Requires(cmd) {
			if i, ok := providers[name]; ok {
				deps.Add(i)
			}
		}
		return deps
	}

	layers, ok := algos.TopologicalLayers(nodes, edges)
	if ok {
		return layers, nil
	}

	cycle := algos.FindCycle(nodes, edges)
	return nil, &CycleError{
		Names: lo.Map(cycle, func(i int, _ int) string { return Provides(cmds[i])[0] }),
	}
}
