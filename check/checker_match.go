package check

import (
	"fmt"

	"go.uber.org/zap"

	. "github.com/Brahmastra-Labs/logicaffeine-sub001/common"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

func (c *Checker) synthMatch(ctx *Context, m *tree.Match) (tree.Term, error) {
	discType, err := c.InferType(ctx, m.Discriminant)
	if err != nil {
		return nil, err
	}
	discType = c.Normalize(ctx, discType)

	ind, typeArgs, err := c.inductiveOf(ctx, discType)
	if err != nil {
		return nil, err
	}

	motive, err := c.effectiveMotive(ctx, m.Motive, discType)
	if err != nil {
		return nil, err
	}

	if len(m.Cases) != len(ind.Constructors) {
		return nil, &WrongNumberOfCases{Expected: len(ind.Constructors), Found: len(m.Cases)}
	}

	for i, name := range ind.Constructors {
		ctor, _ := ctx.Globals().Constructor(name)
		expected := caseType(motive, ctor, typeArgs)
		c.traceChecker("case", zap.String("constructor", name), zap.Stringer("expected", expected))
		if err := c.CheckType(ctx, m.Cases[i], expected); err != nil {
			return nil, err
		}
	}

	return betaReduce(tree.NewApp(motive, m.Discriminant)), nil
}

// inductiveOf splits a normalized type I a1 ... an into the registered
// inductive I and its parameters.
func (c *Checker) inductiveOf(ctx *Context, ty tree.Term) (*Inductive, []tree.Term, error) {
	head, args := tree.Spine(ty)
	g, ok := head.(*tree.Global)
	if !ok {
		return nil, nil, &NotAnInductive{Type: ty}
	}
	ind, ok := ctx.Globals().Inductive(g.Name)
	if !ok || len(args) != ind.Params {
		return nil, nil, &NotAnInductive{Type: ty}
	}
	return ind, args, nil
}

// effectiveMotive turns a constant motive T into fun _ : I => T and
// validates a dependent one.
func (c *Checker) effectiveMotive(ctx *Context, motive, discType tree.Term) (tree.Term, error) {
	motiveType, err := c.InferType(ctx, motive)
	if err != nil {
		return nil, err
	}

	switch mt := c.Normalize(ctx, motiveType).(type) {
	case *tree.Sort:
		return tree.NewLambda(tree.Placeholder, discType, motive), nil
	case *tree.Pi:
		if !TypesEqual(mt.ParamType, discType) {
			return nil, &InvalidMotive{
				Reason: fmt.Sprintf("motive parameter %v doesn't match discriminant type %v", mt.ParamType, discType),
			}
		}
		if _, ok := mt.BodyType.(*tree.Sort); !ok {
			return nil, &InvalidMotive{
				Reason: fmt.Sprintf("motive body %v is not a type", mt.BodyType),
			}
		}
		return motive, nil
	default:
		return nil, &InvalidMotive{
			Reason: fmt.Sprintf("motive %v is not a function or type", motive),
		}
	}
}

// caseType is the type a case must have: the constructor's value parameters,
// bound as __arg0 ... __argN, over the motive applied to the constructor.
// A binder name free in the motive or the type arguments is primed.
func caseType(motive tree.Term, ctor *Constructor, typeArgs []tree.Term) tree.Term {
	taken := tree.FreeVars(motive)
	for _, arg := range typeArgs {
		taken = MergeSets(taken, tree.FreeVars(arg))
	}

	ty := ctor.Type
	for _, arg := range typeArgs {
		pi, ok := ty.(*tree.Pi)
		if !ok {
			break
		}
		ty = Substitute(pi.BodyType, pi.Param, arg)
	}

	var binders []*tree.Pi
	var values []tree.Term
	for i := 0; ; i++ {
		pi, ok := ty.(*tree.Pi)
		if !ok {
			break
		}
		name := Fresh(fmt.Sprintf("__arg%d", i), taken.Contains)
		taken.Add(name)
		binders = append(binders, tree.NewPi(name, pi.ParamType, nil))
		values = append(values, tree.NewVar(name))
		ty = Substitute(pi.BodyType, pi.Param, tree.NewVar(name))
	}

	applied := tree.Apps(tree.Apps(tree.NewGlobal(ctor.Name), typeArgs...), values...)
	result := betaReduce(tree.NewApp(motive, applied))
	for i := len(binders) - 1; i >= 0; i-- {
		result = tree.NewPi(binders[i].Param, binders[i].ParamType, result)
	}
	return result
}
