package check

import (
	"fmt"
	"maps"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	. "github.com/Brahmastra-Labs/logicaffeine-sub001/common"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

// CheckTermination enforces the guard condition on a fixpoint body: every
// recursive call must pass, in structural position, a variable obtained by
// matching on the structural parameter or on something already smaller.
func (c *Checker) CheckTermination(ctx *Context, fixName string, body tree.Term) error {
	index, ok := c.structuralIndex(ctx, body)
	if !ok {
		return &TerminationViolation{FixName: fixName, Reason: "no inductive parameter to recurse on"}
	}

	g := &guard{
		checker: c,
		ctx:     ctx,
		fixName: fixName,
		index:   index,
	}

	scope := guardScope{
		active:   true,
		smaller:  NewSet[string](),
		matchers: map[string]string{},
	}

	binders, rest := tree.LambdaChain(body)
	for i, lam := range binders {
		if err := g.walk(lam.ParamType, scope); err != nil {
			return err
		}
		scope = scope.bind(fixName, lam.Param)
		if i == index {
			ind, _ := tree.HeadGlobal(lam.ParamType)
			scope = scope.decreasing(lam.Param, ind)
			c.traceGuard("structural parameter", zap.String("fix", fixName), zap.String("param", lam.Param), zap.String("inductive", ind))
		}
	}
	return g.walk(rest, scope)
}

type guard struct {
	checker *Checker
	ctx     *Context
	fixName string
	index   int
}

// guardScope is the state along one path of the walk. It is copied, never
// shared, when a binder changes it.
type guardScope struct {
	// active is false once a binder shadows the fixpoint name.
	active bool
	// smaller holds the variables structurally below the structural parameter.
	smaller Set[string]
	// matchers maps the variables whose cases yield smaller binders to
	// their inductive.
	matchers map[string]string
}

func (s guardScope) bind(fixName, name string) guardScope {
	_, matcher := s.matchers[name]
	if !matcher && !s.smaller.Contains(name) && !(s.active && name == fixName) {
		return s
	}
	next := s.clone()
	next.active = s.active && name != fixName
	next.smaller.Remove(name)
	delete(next.matchers, name)
	return next
}

// decreasing records that matching on name yields smaller binders.
func (s guardScope) decreasing(name, inductive string) guardScope {
	next := s.clone()
	next.matchers[name] = inductive
	return next
}

func (s guardScope) withSmaller(name, inductive string) guardScope {
	next := s.clone()
	next.smaller.Add(name)
	if inductive != "" {
		next.matchers[name] = inductive
	}
	return next
}

func (s guardScope) clone() guardScope {
	return guardScope{
		active:   s.active,
		smaller:  MergeSets(s.smaller),
		matchers: maps.Clone(s.matchers),
	}
}

func (g *guard) violation(format string, args ...any) error {
	return &TerminationViolation{FixName: g.fixName, Reason: fmt.Sprintf(format, args...)}
}

func (g *guard) walk(t tree.Term, s guardScope) error {
	switch t := t.(type) {
	case *tree.Sort, *tree.Global, *tree.Lit, *tree.Hole:
		return nil
	case *tree.Var:
		if s.active && t.Name == g.fixName {
			return g.violation("%s is used without being applied to its structural argument", g.fixName)
		}
		return nil
	case *tree.App:
		return g.walkApp(t, s)
	case *tree.Lambda:
		if err := g.walk(t.ParamType, s); err != nil {
			return err
		}
		return g.walk(t.Body, s.bind(g.fixName, t.Param))
	case *tree.Pi:
		if err := g.walk(t.ParamType, s); err != nil {
			return err
		}
		return g.walk(t.BodyType, s.bind(g.fixName, t.Param))
	case *tree.Fix:
		return g.walk(t.Body, s.bind(g.fixName, t.Name))
	case *tree.Match:
		return g.walkMatch(t, s)
	default:
		spew.Dump(t)
		panic("unreachable")
	}
}

func (g *guard) walkApp(t *tree.App, s guardScope) error {
	head, args := tree.Spine(t)

	if v, ok := head.(*tree.Var); ok && s.active && v.Name == g.fixName {
		if len(args) <= g.index {
			return g.violation("recursive call %v does not reach the structural argument", t)
		}
		arg, ok := args[g.index].(*tree.Var)
		if !ok || !s.smaller.Contains(arg.Name) {
			return g.violation("recursive call on %v, which is not structurally smaller", args[g.index])
		}
		g.checker.traceGuard("guarded call", zap.Stringer("call", t))
	} else if err := g.walk(head, s); err != nil {
		return err
	}

	for _, arg := range args {
		if err := g.walk(arg, s); err != nil {
			return err
		}
	}
	return nil
}

func (g *guard) walkMatch(m *tree.Match, s guardScope) error {
	if err := g.walk(m.Discriminant, s); err != nil {
		return err
	}
	if err := g.walk(m.Motive, s); err != nil {
		return err
	}

	var ctors []string
	if v, ok := m.Discriminant.(*tree.Var); ok {
		if ind, ok := s.matchers[v.Name]; ok {
			ctors = g.ctx.Constructors(ind)
		}
	}

	for i, c := range m.Cases {
		if i >= len(ctors) {
			if err := g.walk(c, s); err != nil {
				return err
			}
			continue
		}
		if err := g.walkCase(c, ctors[i], s); err != nil {
			return err
		}
	}
	return nil
}

// walkCase marks the binders of a case over a decreasing variable smaller.
// Every constructor argument counts, not only the recursive ones.
func (g *guard) walkCase(c tree.Term, ctorName string, s guardScope) error {
	params := g.valueParamInductives(ctorName)
	for _, ind := range params {
		lam, ok := c.(*tree.Lambda)
		if !ok {
			break
		}
		if err := g.walk(lam.ParamType, s); err != nil {
			return err
		}
		s = s.bind(g.fixName, lam.Param)
		if lam.Param != tree.Placeholder {
			s = s.withSmaller(lam.Param, ind)
		}
		c = lam.Body
	}
	return g.walk(c, s)
}

// valueParamInductives lists, for each value parameter of a constructor,
// the inductive heading its type or "" when there is none.
func (g *guard) valueParamInductives(ctorName string) []string {
	ctor, ok := g.ctx.Globals().Constructor(ctorName)
	if !ok {
		return nil
	}
	ind, ok := g.ctx.Globals().Inductive(ctor.Inductive)
	if !ok {
		return nil
	}
	binders, _ := tree.PiChain(ctor.Type)
	if len(binders) < ind.Params {
		return nil
	}

	var result []string
	for _, pi := range binders[ind.Params:] {
		name, ok := tree.HeadGlobal(pi.ParamType)
		if ok && g.ctx.IsInductive(name) {
			result = append(result, name)
		} else {
			result = append(result, "")
		}
	}
	return result
}
