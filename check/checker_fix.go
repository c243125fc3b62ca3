package check

import (
	"go.uber.org/zap"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

// synthFix reads the fixpoint's type off its binders and its return motive,
// so the recursive name is never needed to type the body. The guard runs
// first: it needs no types, and a recursive call outside a match would
// otherwise surface as an unbound variable.
func (c *Checker) synthFix(ctx *Context, fix *tree.Fix) (tree.Term, error) {
	if err := c.CheckTermination(ctx, fix.Name, fix.Body); err != nil {
		return nil, err
	}

	structural, err := c.fixType(ctx, fix.Body)
	if err != nil {
		return nil, err
	}
	c.traceChecker("fix", zap.String("name", fix.Name), zap.Stringer("type", structural))

	if err := c.CheckType(ctx.Extend(fix.Name, structural), fix.Body, structural); err != nil {
		return nil, err
	}
	return structural, nil
}

func (c *Checker) fixType(ctx *Context, body tree.Term) (tree.Term, error) {
	switch body := body.(type) {
	case *tree.Lambda:
		if _, err := c.inferSort(ctx, body.ParamType); err != nil {
			return nil, err
		}
		inner, err := c.fixType(ctx.Extend(body.Param, body.ParamType), body.Body)
		if err != nil {
			return nil, err
		}
		return tree.NewPi(body.Param, body.ParamType, inner), nil
	case *tree.Match:
		return c.matchReturnType(ctx, body)
	default:
		return c.InferType(ctx, body)
	}
}

func (c *Checker) matchReturnType(ctx *Context, m *tree.Match) (tree.Term, error) {
	if lam, ok := m.Motive.(*tree.Lambda); ok {
		return Substitute(lam.Body, lam.Param, m.Discriminant), nil
	}
	motiveType, err := c.InferType(ctx, m.Motive)
	if err != nil {
		return nil, err
	}
	if _, ok := c.asSort(ctx, motiveType); ok {
		return m.Motive, nil
	}
	return betaReduce(tree.NewApp(m.Motive, m.Discriminant)), nil
}
