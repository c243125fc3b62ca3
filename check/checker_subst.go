package check

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/samber/lo"

	. "github.com/Brahmastra-Labs/logicaffeine-sub001/common"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

// Substitute replaces the free occurrences of name in body with replacement.
// Binders named name shadow it; binders that would capture a free variable
// of replacement are renamed first.
func Substitute(body tree.Term, name string, replacement tree.Term) tree.Term {
	return substitute(body, name, replacement, tree.FreeVars(replacement))
}

func Rename(body tree.Term, from, to string) tree.Term {
	if from == to {
		return body
	}
	return Substitute(body, from, tree.NewVar(to))
}

func substitute(t tree.Term, name string, repl tree.Term, replFree Set[string]) tree.Term {
	switch t := t.(type) {
	case *tree.Var:
		if t.Name == name {
			return repl
		}
		return t
	case *tree.Sort, *tree.Global, *tree.Lit, *tree.Hole:
		return t
	case *tree.Pi:
		paramType := substitute(t.ParamType, name, repl, replFree)
		if t.Param == name {
			return tree.NewPi(t.Param, paramType, t.BodyType)
		}
		param, body := avoidCapture(t.Param, t.BodyType, name, replFree)
		return tree.NewPi(param, paramType, substitute(body, name, repl, replFree))
	case *tree.Lambda:
		paramType := substitute(t.ParamType, name, repl, replFree)
		if t.Param == name {
			return tree.NewLambda(t.Param, paramType, t.Body)
		}
		param, body := avoidCapture(t.Param, t.Body, name, replFree)
		return tree.NewLambda(param, paramType, substitute(body, name, repl, replFree))
	case *tree.Fix:
		if t.Name == name {
			return t
		}
		self, body := avoidCapture(t.Name, t.Body, name, replFree)
		return &tree.Fix{Name: self, Body: substitute(body, name, repl, replFree)}
	case *tree.App:
		return tree.NewApp(
			substitute(t.Func, name, repl, replFree),
			substitute(t.Arg, name, repl, replFree),
		)
	case *tree.Match:
		return &tree.Match{
			Discriminant: substitute(t.Discriminant, name, repl, replFree),
			Motive:       substitute(t.Motive, name, repl, replFree),
			Cases: lo.Map(t.Cases, func(c tree.Term, _ int) tree.Term {
				return substitute(c, name, repl, replFree)
			}),
		}
	default:
		spew.Dump(t)
		panic("unreachable")
	}
}

// avoidCapture renames binder in body when substituting for name underneath
// it would capture one of replFree.
func avoidCapture(binder string, body tree.Term, name string, replFree Set[string]) (string, tree.Term) {
	if !replFree.Contains(binder) || !tree.Occurs(name, body) {
		return binder, body
	}
	bodyFree := tree.FreeVars(body)
	fresh := Fresh(binder, func(n string) bool {
		return n == name || replFree.Contains(n) || bodyFree.Contains(n)
	})
	return fresh, Rename(body, binder, fresh)
}

// alignBinders brings two binder bodies under a common bound name.
func alignBinders(p1 string, b1 tree.Term, p2 string, b2 tree.Term) (tree.Term, tree.Term) {
	if p1 == p2 {
		return b1, b2
	}
	if !tree.Occurs(p1, b2) {
		return b1, Rename(b2, p2, p1)
	}
	free := MergeSets(tree.FreeVars(b1), tree.FreeVars(b2))
	fresh := Fresh(p1, func(n string) bool {
		return n == p2 || free.Contains(n)
	})
	return Rename(b1, p1, fresh), Rename(b2, p2, fresh)
}

// betaReduce contracts head redexes only.
func betaReduce(t tree.Term) tree.Term {
	head, args := tree.Spine(t)
	reduced := false
	for len(args) > 0 {
		lam, ok := head.(*tree.Lambda)
		if !ok {
			break
		}
		var arg tree.Term
		arg, args = args[0], args[1:]
		head = Substitute(lam.Body, lam.Param, arg)
		reduced = true
	}
	if !reduced {
		return t
	}
	return tree.Apps(head, args...)
}
