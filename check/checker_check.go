package check

import (
	"go.uber.org/zap"

	. "github.com/Brahmastra-Labs/logicaffeine-sub001/common"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

func (c *Checker) CheckType(ctx *Context, t, expected tree.Term) error {
	c.traceChecker("check", zap.Stringer("term", t), zap.Stringer("expected", expected))

	if _, ok := expected.(*tree.Hole); ok {
		_, err := c.InferType(ctx, t)
		return err
	}

	if _, ok := t.(*tree.Hole); ok {
		if _, ok := c.asSort(ctx, expected); ok {
			return nil
		}
		return &TypeMismatch{Expected: expected, Found: t}
	}

	if lam, ok := t.(*tree.Lambda); ok && tree.IsPlaceholder(lam.ParamType) {
		return c.checkLambdaBinder(ctx, lam, expected)
	}

	found, err := c.InferType(ctx, t)
	if err != nil {
		return err
	}
	if !c.IsSubtype(ctx, found, expected) {
		return &TypeMismatch{Expected: expected, Found: found}
	}
	return nil
}

// checkLambdaBinder types a lambda whose binder type was left out, such as
// a match-case binder, by reading the binder type off the expected product.
func (c *Checker) checkLambdaBinder(ctx *Context, lam *tree.Lambda, expected tree.Term) error {
	pi, ok := c.asPi(ctx, expected)
	if !ok {
		return &TypeMismatch{
			Expected: expected,
			Found:    tree.NewPi(lam.Param, lam.ParamType, &tree.Hole{}),
		}
	}

	param, body := lam.Param, lam.Body
	bodyType := pi.BodyType
	if pi.Param != param {
		if tree.Occurs(param, bodyType) {
			// the binder would capture a free variable of the expected type
			free := MergeSets(tree.FreeVars(body), tree.FreeVars(bodyType))
			fresh := Fresh(param, func(n string) bool {
				return free.Contains(n) || ctx.Bound(n)
			})
			body = Rename(body, param, fresh)
			param = fresh
		}
		bodyType = Rename(bodyType, pi.Param, param)
	}

	return c.CheckType(ctx.Extend(param, pi.ParamType), body, bodyType)
}
