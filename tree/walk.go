package tree

import (
	"github.com/davecgh/go-spew/spew"

	. "github.com/Brahmastra-Labs/logicaffeine-sub001/common"
)

type TermVisitor interface {
	Visit(t Term) TermVisitor
}

type VisitFunc func(t Term) bool

func (f VisitFunc) Visit(t Term) TermVisitor {
	if f(t) {
		return f
	}
	return nil
}

func WalkTerm(v TermVisitor, t Term) {
	if t == nil {
		return
	}
	if v = v.Visit(t); v == nil {
		return
	}

	switch n := t.(type) {
	case *Sort, *Var, *Global, *Lit, *Hole:
	case *Pi:
		WalkTerm(v, n.ParamType)
		WalkTerm(v, n.BodyType)
	case *Lambda:
		WalkTerm(v, n.ParamType)
		WalkTerm(v, n.Body)
	case *App:
		WalkTerm(v, n.Func)
		WalkTerm(v, n.Arg)
	case *Match:
		WalkTerm(v, n.Discriminant)
		WalkTerm(v, n.Motive)
		for _, c := range n.Cases {
			WalkTerm(v, c)
		}
	case *Fix:
		WalkTerm(v, n.Body)
	default:
		spew.Dump(t)
		panic("unreachable")
	}
}

// MentionsGlobal reports whether the global name appears anywhere in t.
func MentionsGlobal(name string, t Term) bool {
	found := false
	WalkTerm(VisitFunc(func(t Term) bool {
		if g, ok := t.(*Global); ok && g.Name == name {
			found = true
		}
		return !found
	}), t)
	return found
}

// Globals collects the globals t refers to, excluding binder placeholders.
func Globals(t Term) Set[string] {
	names := NewSet[string]()
	WalkTerm(VisitFunc(func(t Term) bool {
		if g, ok := t.(*Global); ok && g.Name != Placeholder {
			names.Add(g.Name)
		}
		return true
	}), t)
	return names
}

// FreeVars collects the names of Vars not bound inside t.
func FreeVars(t Term) Set[string] {
	free := NewSet[string]()
	collectFree(t, NewSet[string](), free)
	return free
}

func collectFree(t Term, bound, free Set[string]) {
	under := func(name string, body Term) {
		if bound.Contains(name) {
			collectFree(body, bound, free)
			return
		}
		inner := MergeSets(bound)
		inner.Add(name)
		collectFree(body, inner, free)
	}

	switch t := t.(type) {
	case *Sort, *Global, *Lit, *Hole:
	case *Var:
		if !bound.Contains(t.Name) {
			free.Add(t.Name)
		}
	case *Pi:
		collectFree(t.ParamType, bound, free)
		under(t.Param, t.BodyType)
	case *Lambda:
		collectFree(t.ParamType, bound, free)
		under(t.Param, t.Body)
	case *App:
		collectFree(t.Func, bound, free)
		collectFree(t.Arg, bound, free)
	case *Match:
		collectFree(t.Discriminant, bound, free)
		collectFree(t.Motive, bound, free)
		for _, c := range t.Cases {
			collectFree(c, bound, free)
		}
	case *Fix:
		under(t.Name, t.Body)
	default:
		spew.Dump(t)
		panic("unreachable")
	}
}

// Occurs reports whether the variable name occurs free in t.
func Occurs(name string, t Term) bool {
	return FreeVars(t).Contains(name)
}
