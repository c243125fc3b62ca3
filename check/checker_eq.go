package check

import (
	"github.com/davecgh/go-spew/spew"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

// TypesEqual compares two terms up to renaming of bound variables.
// Holes and binder placeholders match anything.
func TypesEqual(a, b tree.Term) bool {
	if tree.IsPlaceholder(a) || tree.IsPlaceholder(b) {
		return true
	}

	switch a := a.(type) {
	case *tree.Sort:
		if b, ok := b.(*tree.Sort); ok {
			return a.Universe == b.Universe
		}
		return false
	case *tree.Var:
		if b, ok := b.(*tree.Var); ok {
			return a.Name == b.Name
		}
		return false
	case *tree.Global:
		if b, ok := b.(*tree.Global); ok {
			return a.Name == b.Name
		}
		return false
	case *tree.Lit:
		if b, ok := b.(*tree.Lit); ok {
			return tree.LiteralEqual(a.Value, b.Value)
		}
		return false
	case *tree.App:
		if b, ok := b.(*tree.App); ok {
			return TypesEqual(a.Func, b.Func) && TypesEqual(a.Arg, b.Arg)
		}
		return false
	case *tree.Pi:
		if b, ok := b.(*tree.Pi); ok {
			if !TypesEqual(a.ParamType, b.ParamType) {
				return false
			}
			body1, body2 := alignBinders(a.Param, a.BodyType, b.Param, b.BodyType)
			return TypesEqual(body1, body2)
		}
		return false
	case *tree.Lambda:
		if b, ok := b.(*tree.Lambda); ok {
			if !TypesEqual(a.ParamType, b.ParamType) {
				return false
			}
			body1, body2 := alignBinders(a.Param, a.Body, b.Param, b.Body)
			return TypesEqual(body1, body2)
		}
		return false
	case *tree.Fix:
		if b, ok := b.(*tree.Fix); ok {
			body1, body2 := alignBinders(a.Name, a.Body, b.Name, b.Body)
			return TypesEqual(body1, body2)
		}
		return false
	case *tree.Match:
		if b, ok := b.(*tree.Match); ok {
			if len(a.Cases) != len(b.Cases) {
				return false
			}
			if !TypesEqual(a.Discriminant, b.Discriminant) || !TypesEqual(a.Motive, b.Motive) {
				return false
			}
			for i := range a.Cases {
				if !TypesEqual(a.Cases[i], b.Cases[i]) {
					return false
				}
			}
			return true
		}
		return false
	default:
		spew.Dump(a)
		panic("unreachable")
	}
}
