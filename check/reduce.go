package check

import (
	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

// Normalize reduces a checked term to normal form. It must not be handed
// unchecked terms: only the termination guard makes it total, the fuel is a
// backstop.
func (c *Checker) Normalize(ctx *Context, t tree.Term) tree.Term {
	current := t
	for fuel := c.config.Fuel; fuel > 0; fuel-- {
		next, changed := c.step(ctx, current)
		if !changed {
			return current
		}
		c.traceReduce("step", zap.Stringer("from", current), zap.Stringer("to", next))
		current = next
	}
	c.logger.Warn("normalization ran out of fuel", zap.Int("fuel", c.config.Fuel), zap.Stringer("term", t))
	return current
}

// step performs one reduction, outermost redex first.
func (c *Checker) step(ctx *Context, t tree.Term) (tree.Term, bool) {
	switch t := t.(type) {
	case *tree.Sort, *tree.Var, *tree.Lit, *tree.Hole:
		return t, false
	case *tree.Global:
		if body, ok := ctx.DefinitionBody(t.Name); ok {
			return body, true
		}
		return t, false
	case *tree.App:
		return c.stepApp(ctx, t)
	case *tree.Match:
		if idx, args, ok := c.constructorForm(ctx, t.Discriminant); ok && idx < len(t.Cases) {
			return tree.Apps(t.Cases[idx], args...), true
		}
		if disc, ok := c.step(ctx, t.Discriminant); ok {
			return &tree.Match{Discriminant: disc, Motive: t.Motive, Cases: t.Cases}, true
		}
		return t, false
	case *tree.Lambda:
		if paramType, ok := c.step(ctx, t.ParamType); ok {
			return tree.NewLambda(t.Param, paramType, t.Body), true
		}
		if body, ok := c.step(ctx, t.Body); ok {
			return tree.NewLambda(t.Param, t.ParamType, body), true
		}
		return t, false
	case *tree.Pi:
		if paramType, ok := c.step(ctx, t.ParamType); ok {
			return tree.NewPi(t.Param, paramType, t.BodyType), true
		}
		if body, ok := c.step(ctx, t.BodyType); ok {
			return tree.NewPi(t.Param, t.ParamType, body), true
		}
		return t, false
	case *tree.Fix:
		if body, ok := c.step(ctx, t.Body); ok {
			return &tree.Fix{Name: t.Name, Body: body}, true
		}
		return t, false
	default:
		spew.Dump(t)
		panic("unreachable")
	}
}

func (c *Checker) stepApp(ctx *Context, t *tree.App) (tree.Term, bool) {
	if result, ok := c.primitive(ctx, t); ok {
		return result, true
	}

	if fn, ok := t.Func.(*tree.Lambda); ok {
		return Substitute(fn.Body, fn.Param, t.Arg), true
	}

	// a fixpoint only unfolds once its structural argument is a constructor
	head, args := tree.Spine(t)
	if fix, ok := head.(*tree.Fix); ok {
		if idx, ok := c.structuralIndex(ctx, fix.Body); ok && idx < len(args) {
			if _, _, ok := c.constructorForm(ctx, args[idx]); ok {
				unfolded := Substitute(fix.Body, fix.Name, fix)
				return tree.Apps(unfolded, args...), true
			}
		}
	}

	if fn, ok := c.step(ctx, t.Func); ok {
		return tree.NewApp(fn, t.Arg), true
	}
	if arg, ok := c.step(ctx, t.Arg); ok {
		return tree.NewApp(t.Func, arg), true
	}
	return t, false
}

// constructorForm recognizes a constructor application and returns the
// constructor's position in its inductive together with its value arguments.
func (c *Checker) constructorForm(ctx *Context, t tree.Term) (int, []tree.Term, bool) {
	head, args := tree.Spine(t)
	g, ok := head.(*tree.Global)
	if !ok {
		return 0, nil, false
	}
	ctor, ok := ctx.Globals().Constructor(g.Name)
	if !ok {
		return 0, nil, false
	}
	ind, ok := ctx.Globals().Inductive(ctor.Inductive)
	if !ok {
		return 0, nil, false
	}
	for idx, name := range ind.Constructors {
		if name != g.Name {
			continue
		}
		if len(args) < ind.Params {
			return idx, nil, true
		}
		return idx, args[ind.Params:], true
	}
	return 0, nil, false
}

// structuralIndex is the position of the first leading parameter of a
// fixpoint body whose type is an inductive.
func (c *Checker) structuralIndex(ctx *Context, body tree.Term) (int, bool) {
	binders, _ := tree.LambdaChain(body)
	for i, lam := range binders {
		if name, ok := tree.HeadGlobal(lam.ParamType); ok && ctx.IsInductive(name) {
			return i, true
		}
	}
	return 0, false
}

var primitives = map[string]func(x, y int64) (int64, bool){
	"add": func(x, y int64) (int64, bool) {
		r := x + y
		overflow := (x > 0 && y > 0 && r < 0) || (x < 0 && y < 0 && r >= 0)
		return r, !overflow
	},
	"sub": func(x, y int64) (int64, bool) {
		r := x - y
		overflow := (x >= 0 && y < 0 && r < 0) || (x < 0 && y > 0 && r >= 0)
		return r, !overflow
	},
	"mul": func(x, y int64) (int64, bool) {
		if x == 0 || y == 0 {
			return 0, true
		}
		r := x * y
		return r, r/y == x && !(x == -1 && y == minInt64) && !(y == -1 && x == minInt64)
	},
	"div": func(x, y int64) (int64, bool) {
		if y == 0 || (x == minInt64 && y == -1) {
			return 0, false
		}
		return x / y, true
	},
	"mod": func(x, y int64) (int64, bool) {
		if y == 0 || (x == minInt64 && y == -1) {
			return 0, false
		}
		return x % y, true
	},
}

const minInt64 = -1 << 63

// primitive evaluates a saturated prelude operation on two Int literals.
// Overflow and division by zero leave the application stuck.
func (c *Checker) primitive(ctx *Context, t *tree.App) (tree.Term, bool) {
	inner, ok := t.Func.(*tree.App)
	if !ok {
		return nil, false
	}
	op, ok := inner.Func.(*tree.Global)
	if !ok {
		return nil, false
	}
	eval, ok := primitives[op.Name]
	if !ok {
		return nil, false
	}
	if _, ok := ctx.Globals().Declaration(op.Name); !ok {
		return nil, false
	}
	x, ok := intLiteral(inner.Arg)
	if !ok {
		return nil, false
	}
	y, ok := intLiteral(t.Arg)
	if !ok {
		return nil, false
	}
	r, ok := eval(x, y)
	if !ok {
		return nil, false
	}
	return tree.NewInt(r), true
}

func intLiteral(t tree.Term) (int64, bool) {
	lit, ok := t.(*tree.Lit)
	if !ok {
		return 0, false
	}
	i, ok := lit.Value.(*tree.IntLiteral)
	if !ok {
		return 0, false
	}
	return i.Value, true
}
