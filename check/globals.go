package check

import (
	"slices"
	"sync"

	. "github.com/Brahmastra-Labs/logicaffeine-sub001/common"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

type Inductive struct {
	Name string
	// Sort is the polymorphic arity, a Pi chain over the parameters ending in a Sort.
	Sort         tree.Term
	Params       int
	Constructors []string
}

type Constructor struct {
	Name      string
	Inductive string
	Type      tree.Term
}

type Definition struct {
	Name string
	Type tree.Term
	Body tree.Term
}

// ========================

// Globals is the session-lived symbol table. A forked table stages
// registrations on top of its parent until Commit publishes them.
type Globals struct {
	mu     sync.RWMutex
	parent *Globals

	inductives   Map[string, *Inductive]
	constructors Map[string, *Constructor]
	definitions  Map[string, *Definition]
	declarations Map[string, tree.Term]
	hints        []string
	order        []string
}

func NewGlobals() *Globals {
	return &Globals{
		inductives:   NewMap[string, *Inductive](),
		constructors: NewMap[string, *Constructor](),
		definitions:  NewMap[string, *Definition](),
		declarations: NewMap[string, tree.Term](),
	}
}

func (g *Globals) Fork() *Globals {
	overlay := NewGlobals()
	overlay.parent = g
	return overlay
}

// Commit publishes a forked table's registrations into its parent. It fails,
// publishing nothing, when the parent gained one of the names meanwhile.
func (g *Globals) Commit() error {
	Assert(g.parent != nil, "commit on a root symbol table")

	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, name := range g.order {
		if g.parent.Defined(name) {
			return &AlreadyDefined{Name: name}
		}
	}

	p := g.parent
	p.mu.Lock()
	defer p.mu.Unlock()

	p.inductives.Merge(g.inductives)
	p.constructors.Merge(g.constructors)
	p.definitions.Merge(g.definitions)
	p.declarations.Merge(g.declarations)
	p.hints = append(p.hints, g.hints...)
	p.order = append(p.order, g.order...)
	return nil
}

// ========================

func (g *Globals) Inductive(name string) (*Inductive, bool) {
	g.mu.RLock()
	ind, ok := g.inductives[name]
	g.mu.RUnlock()
	if !ok && g.parent != nil {
		return g.parent.Inductive(name)
	}
	return ind, ok
}

func (g *Globals) Constructor(name string) (*Constructor, bool) {
	g.mu.RLock()
	ctor, ok := g.constructors[name]
	g.mu.RUnlock()
	if !ok && g.parent != nil {
		return g.parent.Constructor(name)
	}
	return ctor, ok
}

func (g *Globals) Definition(name string) (*Definition, bool) {
	g.mu.RLock()
	def, ok := g.definitions[name]
	g.mu.RUnlock()
	if !ok && g.parent != nil {
		return g.parent.Definition(name)
	}
	return def, ok
}

func (g *Globals) Declaration(name string) (tree.Term, bool) {
	g.mu.RLock()
	ty, ok := g.declarations[name]
	g.mu.RUnlock()
	if !ok && g.parent != nil {
		return g.parent.Declaration(name)
	}
	return ty, ok
}

// Lookup returns the type of any registered global.
func (g *Globals) Lookup(name string) (tree.Term, bool) {
	if ind, ok := g.Inductive(name); ok {
		return ind.Sort, true
	}
	if ctor, ok := g.Constructor(name); ok {
		return ctor.Type, true
	}
	if def, ok := g.Definition(name); ok {
		return def.Type, true
	}
	return g.Declaration(name)
}

func (g *Globals) Defined(name string) bool {
	_, ok := g.Lookup(name)
	return ok
}

func (g *Globals) Hints() []string {
	g.mu.RLock()
	hints := slices.Clone(g.hints)
	g.mu.RUnlock()
	if g.parent != nil {
		return append(g.parent.Hints(), hints...)
	}
	return hints
}

// Names lists every registered global in registration order.
func (g *Globals) Names() []string {
	g.mu.RLock()
	names := slices.Clone(g.order)
	g.mu.RUnlock()
	if g.parent != nil {
		return append(g.parent.Names(), names...)
	}
	return names
}

// ========================

func (g *Globals) AddInductive(name string, sort tree.Term) error {
	if g.Defined(name) {
		return &AlreadyDefined{Name: name}
	}
	params, _ := tree.PiChain(sort)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.inductives.Add(name, &Inductive{Name: name, Sort: sort, Params: len(params)})
	g.order = append(g.order, name)
	return nil
}

func (g *Globals) AddConstructor(name, inductive string, ty tree.Term) error {
	if g.Defined(name) {
		return &AlreadyDefined{Name: name}
	}
	ind, ok := g.Inductive(inductive)
	if !ok {
		return &NotAnInductive{Type: tree.NewGlobal(inductive)}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	// copy so that a parent's entry is only changed by Commit
	staged := *ind
	staged.Constructors = append(slices.Clone(ind.Constructors), name)
	g.inductives.Add(inductive, &staged)
	g.constructors.Add(name, &Constructor{Name: name, Inductive: inductive, Type: ty})
	g.order = append(g.order, name)
	return nil
}

func (g *Globals) AddDefinition(name string, ty, body tree.Term) error {
	if g.Defined(name) {
		return &AlreadyDefined{Name: name}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.definitions.Add(name, &Definition{Name: name, Type: ty, Body: body})
	g.order = append(g.order, name)
	return nil
}

func (g *Globals) AddDeclaration(name string, ty tree.Term) error {
	if g.Defined(name) {
		return &AlreadyDefined{Name: name}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.declarations.Add(name, ty)
	g.order = append(g.order, name)
	return nil
}

func (g *Globals) AddHint(name string) error {
	if !g.Defined(name) {
		return &UnboundVariable{Name: name}
	}
	if slices.Contains(g.Hints(), name) {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.hints = append(g.hints, name)
	return nil
}
