package check

import (
	"fmt"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

// CheckPositivity rejects constructor types in which the inductive occurs
// to the left of an arrow inside one of the constructor's parameters, as in
// (I -> False) -> I.
func CheckPositivity(inductive, constructor string, ty tree.Term) error {
	p := positivity{inductive: inductive, constructor: constructor}
	return p.check(ty)
}

type positivity struct {
	inductive   string
	constructor string
}

func (p positivity) check(t tree.Term) error {
	switch t := t.(type) {
	case *tree.Pi:
		if err := p.checkParam(t.ParamType, "parameter type"); err != nil {
			return err
		}
		return p.check(t.BodyType)
	case *tree.Lambda:
		if err := p.checkParam(t.ParamType, "lambda parameter"); err != nil {
			return err
		}
		return p.check(t.Body)
	case *tree.App:
		if err := p.check(t.Func); err != nil {
			return err
		}
		return p.check(t.Arg)
	case *tree.Match:
		if err := p.check(t.Discriminant); err != nil {
			return err
		}
		if err := p.check(t.Motive); err != nil {
			return err
		}
		for _, c := range t.Cases {
			if err := p.check(c); err != nil {
				return err
			}
		}
		return nil
	case *tree.Fix:
		return p.check(t.Body)
	default:
		return nil
	}
}

func (p positivity) checkParam(paramType tree.Term, where string) error {
	if p.isRecursiveArgument(paramType) {
		return nil
	}
	if tree.MentionsGlobal(p.inductive, paramType) {
		return &PositivityViolation{
			Inductive:   p.inductive,
			Constructor: p.constructor,
			Reason:      fmt.Sprintf("'%s' occurs in negative position (inside %s %v)", p.inductive, where, paramType),
		}
	}
	return nil
}

// isRecursiveArgument accepts I itself and I applied to arguments that do
// not mention I, such as List A.
func (p positivity) isRecursiveArgument(t tree.Term) bool {
	head, args := tree.Spine(t)
	g, ok := head.(*tree.Global)
	if !ok || g.Name != p.inductive {
		return false
	}
	for _, arg := range args {
		if tree.MentionsGlobal(p.inductive, arg) {
			return false
		}
	}
	return true
}
