package check

import (
	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

func (c *Checker) InferType(ctx *Context, t tree.Term) (tree.Term, error) {
	ty, err := c.synth(ctx, t)
	if err != nil {
		return nil, err
	}
	c.traceChecker("infer", zap.Stringer("term", t), zap.Stringer("type", ty))
	return ty, nil
}

func (c *Checker) synth(ctx *Context, t tree.Term) (tree.Term, error) {
	switch t := t.(type) {
	case *tree.Sort:
		return tree.NewSort(t.Universe.Succ()), nil
	case *tree.Var:
		return c.synthVar(ctx, t)
	case *tree.Global:
		return c.synthGlobal(ctx, t)
	case *tree.Pi:
		return c.synthPi(ctx, t)
	case *tree.Lambda:
		return c.synthLambda(ctx, t)
	case *tree.App:
		return c.synthApp(ctx, t)
	case *tree.Match:
		return c.synthMatch(ctx, t)
	case *tree.Fix:
		return c.synthFix(ctx, t)
	case *tree.Lit:
		return tree.NewGlobal(t.Value.TypeName()), nil
	case *tree.Hole:
		return nil, &CannotInferHole{}
	default:
		spew.Dump(t)
		panic("unreachable")
	}
}

func (c *Checker) synthVar(ctx *Context, t *tree.Var) (tree.Term, error) {
	ty, ok := ctx.Get(t.Name)
	if !ok {
		return nil, &UnboundVariable{Name: t.Name}
	}
	return ty, nil
}

func (c *Checker) synthGlobal(ctx *Context, t *tree.Global) (tree.Term, error) {
	ty, ok := ctx.GetGlobal(t.Name)
	if !ok {
		return nil, &UnboundVariable{Name: t.Name}
	}
	return ty, nil
}

func (c *Checker) synthPi(ctx *Context, t *tree.Pi) (tree.Term, error) {
	i, err := c.inferSort(ctx, t.ParamType)
	if err != nil {
		return nil, err
	}
	j, err := c.inferSort(ctx.Extend(t.Param, t.ParamType), t.BodyType)
	if err != nil {
		return nil, err
	}
	return tree.NewSort(i.Max(j)), nil
}

func (c *Checker) synthLambda(ctx *Context, t *tree.Lambda) (tree.Term, error) {
	if _, err := c.inferSort(ctx, t.ParamType); err != nil {
		return nil, err
	}
	bodyType, err := c.InferType(ctx.Extend(t.Param, t.ParamType), t.Body)
	if err != nil {
		return nil, err
	}
	return tree.NewPi(t.Param, t.ParamType, bodyType), nil
}

func (c *Checker) synthApp(ctx *Context, t *tree.App) (tree.Term, error) {
	fnType, err := c.InferType(ctx, t.Func)
	if err != nil {
		return nil, err
	}
	pi, ok := c.asPi(ctx, fnType)
	if !ok {
		return nil, &NotAFunction{Type: fnType}
	}
	if err := c.CheckType(ctx, t.Arg, pi.ParamType); err != nil {
		return nil, err
	}
	return Substitute(pi.BodyType, pi.Param, t.Arg), nil
}

// ========================

// inferSort requires t to be a type and returns its universe.
func (c *Checker) inferSort(ctx *Context, t tree.Term) (tree.Universe, error) {
	ty, err := c.InferType(ctx, t)
	if err != nil {
		return tree.Universe{}, err
	}
	if sort, ok := c.asSort(ctx, ty); ok {
		return sort.Universe, nil
	}
	return tree.Universe{}, &NotAType{Term: t}
}

func (c *Checker) asSort(ctx *Context, t tree.Term) (*tree.Sort, bool) {
	if sort, ok := t.(*tree.Sort); ok {
		return sort, true
	}
	sort, ok := c.Normalize(ctx, t).(*tree.Sort)
	return sort, ok
}

func (c *Checker) asPi(ctx *Context, t tree.Term) (*tree.Pi, bool) {
	if pi, ok := t.(*tree.Pi); ok {
		return pi, true
	}
	pi, ok := c.Normalize(ctx, t).(*tree.Pi)
	return pi, ok
}
