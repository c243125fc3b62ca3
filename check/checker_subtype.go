package check

import (
	"go.uber.org/zap"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

// IsSubtype decides a <= b after normalizing both sides: universes are
// cumulative and products are contravariant in their domain.
func (c *Checker) IsSubtype(ctx *Context, a, b tree.Term) bool {
	na := c.Normalize(ctx, a)
	nb := c.Normalize(ctx, b)
	ok := subtype(na, nb)
	c.traceChecker("subtype", zap.Stringer("sub", na), zap.Stringer("super", nb), zap.Bool("ok", ok))
	return ok
}

func subtype(a, b tree.Term) bool {
	switch a := a.(type) {
	case *tree.Sort:
		if b, ok := b.(*tree.Sort); ok {
			return a.Universe.IsSubtypeOf(b.Universe)
		}
	case *tree.Pi:
		if b, ok := b.(*tree.Pi); ok {
			if !subtype(b.ParamType, a.ParamType) {
				return false
			}
			body1, body2 := alignBinders(a.Param, a.BodyType, b.Param, b.BodyType)
			return subtype(body1, body2)
		}
	}
	return TypesEqual(a, b)
}
