package check

import (
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

type Binder struct {
	Name string
	Type tree.Term
}

type ConstructorDecl struct {
	Name string
	Type tree.Term
}

// DefineDefinition checks body, against ty when one is given, and registers
// it as a transparent definition. It returns the registered type.
func (c *Checker) DefineDefinition(ctx *Context, name string, ty, body tree.Term) (tree.Term, error) {
	staged, ty, err := c.StageDefinition(ctx, name, ty, body)
	if err != nil {
		return nil, err
	}
	if err := staged.Commit(); err != nil {
		return nil, err
	}
	return ty, nil
}

// StageDefinition checks a definition and records it on a fork of the
// symbol table, leaving publication to the caller.
func (c *Checker) StageDefinition(ctx *Context, name string, ty, body tree.Term) (*Globals, tree.Term, error) {
	if ctx.Globals().Defined(name) {
		return nil, nil, &AlreadyDefined{Name: name}
	}

	if ty != nil {
		if _, err := c.inferSort(ctx, ty); err != nil {
			return nil, nil, err
		}
		if err := c.CheckType(ctx, body, ty); err != nil {
			return nil, nil, err
		}
	} else {
		inferred, err := c.InferType(ctx, body)
		if err != nil {
			return nil, nil, err
		}
		ty = inferred
	}

	staged := ctx.Globals().Fork()
	if err := staged.AddDefinition(name, ty, body); err != nil {
		return nil, nil, err
	}
	c.logger.Debug("checked definition", zap.String("name", name), zap.Stringer("type", ty))
	return staged, ty, nil
}

// Declare registers an opaque constant of type ty.
func (c *Checker) Declare(ctx *Context, name string, ty tree.Term) error {
	staged, err := c.StageDeclaration(ctx, name, ty)
	if err != nil {
		return err
	}
	return staged.Commit()
}

func (c *Checker) StageDeclaration(ctx *Context, name string, ty tree.Term) (*Globals, error) {
	if _, err := c.inferSort(ctx, ty); err != nil {
		return nil, err
	}
	staged := ctx.Globals().Fork()
	if err := staged.AddDeclaration(name, ty); err != nil {
		return nil, err
	}
	return staged, nil
}

// DefineInductive registers an inductive type with its constructors. The
// parameters are prefixed to the arity and to every constructor type.
func (c *Checker) DefineInductive(ctx *Context, name string, params []Binder, sort tree.Term, ctors []ConstructorDecl) error {
	staged, err := c.StageInductive(ctx, name, params, sort, ctors)
	if err != nil {
		return err
	}
	return staged.Commit()
}

// StageInductive validates an inductive declaration on a fork of the symbol
// table. Positivity is checked first, then each constructor must be a type
// concluding in the inductive applied to its parameters.
func (c *Checker) StageInductive(ctx *Context, name string, params []Binder, sort tree.Term, ctors []ConstructorDecl) (*Globals, error) {
	if sort == nil {
		sort = tree.NewSort(tree.TypeN(0))
	}
	if _, ok := sort.(*tree.Sort); !ok {
		return nil, &NotAType{Term: sort}
	}
	if ctx.Globals().Defined(name) {
		return nil, &AlreadyDefined{Name: name}
	}

	paramNames := lo.Map(params, func(p Binder, _ int) string { return p.Name })
	params = lo.Map(params, func(p Binder, _ int) Binder {
		return Binder{Name: p.Name, Type: bindParams(p.Type, paramNames)}
	})

	arity := prefixParams(params, sort)
	if _, err := c.inferSort(ctx, arity); err != nil {
		return nil, err
	}

	polymorphic := make([]tree.Term, len(ctors))
	for i, ctor := range ctors {
		polymorphic[i] = prefixParams(params, bindParams(ctor.Type, paramNames))
		if err := CheckPositivity(name, ctor.Name, polymorphic[i]); err != nil {
			return nil, err
		}
	}

	overlay := ctx.Globals().Fork()
	staged := ctx.WithGlobals(overlay)
	if err := staged.AddInductive(name, arity); err != nil {
		return nil, err
	}

	for i, ctor := range ctors {
		if err := c.checkConstructor(staged, name, paramNames, ctor.Name, polymorphic[i]); err != nil {
			return nil, err
		}
		if err := staged.AddConstructor(ctor.Name, name, polymorphic[i]); err != nil {
			return nil, err
		}
	}

	c.logger.Debug("checked inductive",
		zap.String("name", name),
		zap.Stringer("arity", arity),
		zap.Strings("constructors", lo.Map(ctors, func(d ConstructorDecl, _ int) string { return d.Name })),
	)
	return overlay, nil
}

// checkConstructor requires ty to be a type whose conclusion is the
// inductive applied to exactly its parameters.
func (c *Checker) checkConstructor(ctx *Context, inductive string, params []string, name string, ty tree.Term) error {
	if _, err := c.inferSort(ctx, ty); err != nil {
		return err
	}

	binders, conclusion := tree.PiChain(ty)
	head, args := tree.Spine(conclusion)
	if g, ok := head.(*tree.Global); !ok || g.Name != inductive {
		return &InvalidConstructor{
			Inductive:   inductive,
			Constructor: name,
			Reason:      fmt.Sprintf("conclusion %v is not %s", conclusion, inductive),
		}
	}
	if len(args) != len(params) {
		return &InvalidConstructor{
			Inductive:   inductive,
			Constructor: name,
			Reason:      fmt.Sprintf("conclusion %v must apply %s to its %d parameters", conclusion, inductive, len(params)),
		}
	}
	for i, arg := range args {
		v, ok := arg.(*tree.Var)
		if !ok || v.Name != binders[i].Param {
			return &InvalidConstructor{
				Inductive:   inductive,
				Constructor: name,
				Reason:      fmt.Sprintf("argument %v of %v is not the parameter %s", arg, conclusion, params[i]),
			}
		}
	}
	return nil
}

func prefixParams(params []Binder, t tree.Term) tree.Term {
	for i := len(params) - 1; i >= 0; i-- {
		t = tree.NewPi(params[i].Name, params[i].Type, t)
	}
	return t
}

// bindParams turns references to inductive parameters that were parsed as
// globals into bound variables.
func bindParams(t tree.Term, params []string) tree.Term {
	for _, p := range params {
		t = replaceGlobal(t, p, tree.NewVar(p))
	}
	return t
}

func replaceGlobal(t tree.Term, name string, repl tree.Term) tree.Term {
	switch t := t.(type) {
	case *tree.Global:
		if t.Name == name {
			return repl
		}
		return t
	case *tree.Sort, *tree.Var, *tree.Lit, *tree.Hole:
		return t
	case *tree.Pi:
		return tree.NewPi(t.Param, replaceGlobal(t.ParamType, name, repl), replaceGlobal(t.BodyType, name, repl))
	case *tree.Lambda:
		return tree.NewLambda(t.Param, replaceGlobal(t.ParamType, name, repl), replaceGlobal(t.Body, name, repl))
	case *tree.App:
		return tree.NewApp(replaceGlobal(t.Func, name, repl), replaceGlobal(t.Arg, name, repl))
	case *tree.Fix:
		return &tree.Fix{Name: t.Name, Body: replaceGlobal(t.Body, name, repl)}
	case *tree.Match:
		return &tree.Match{
			Discriminant: replaceGlobal(t.Discriminant, name, repl),
			Motive:       replaceGlobal(t.Motive, name, repl),
			Cases: lo.Map(t.Cases, func(c tree.Term, _ int) tree.Term {
				return replaceGlobal(c, name, repl)
			}),
		}
	default:
		panic("unreachable")
	}
}
