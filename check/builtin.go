package check

import (
	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

// PrimitiveTypes are the opaque types classifying literals.
var PrimitiveTypes = []string{"Int", "Float", "Text"}

var PrimitiveOps = []string{"add", "sub", "mul", "div", "mod"}

// LoadPrelude registers the primitive types and arithmetic, the propositions
// True and False, and the connectives Not, And, Or and Ex.
func (c *Checker) LoadPrelude(ctx *Context) error {
	type0 := tree.NewSort(tree.TypeN(0))
	prop := tree.NewSort(tree.Prop)
	integer := tree.NewGlobal("Int")

	for _, name := range PrimitiveTypes {
		if err := c.Declare(ctx, name, type0); err != nil {
			return err
		}
	}

	binop := tree.Arrow(integer, tree.Arrow(integer, integer))
	for _, name := range PrimitiveOps {
		if err := c.Declare(ctx, name, binop); err != nil {
			return err
		}
	}

	if err := c.DefineInductive(ctx, "True", nil, prop, []ConstructorDecl{
		{Name: "I", Type: tree.NewGlobal("True")},
	}); err != nil {
		return err
	}

	if err := c.DefineInductive(ctx, "False", nil, prop, nil); err != nil {
		return err
	}

	return c.loadConnectives(ctx)
}

func (c *Checker) loadConnectives(ctx *Context) error {
	prop := tree.NewSort(tree.Prop)
	a, b := tree.NewVar("A"), tree.NewVar("B")
	props := []Binder{{Name: "A", Type: prop}, {Name: "B", Type: prop}}

	// Not P unfolds to P -> False.
	notType := tree.Arrow(prop, prop)
	notBody := tree.NewLambda("P", prop, tree.Arrow(tree.NewVar("P"), tree.NewGlobal("False")))
	if _, err := c.DefineDefinition(ctx, "Not", notType, notBody); err != nil {
		return err
	}

	and := tree.Apps(tree.NewGlobal("And"), a, b)
	if err := c.DefineInductive(ctx, "And", props, prop, []ConstructorDecl{
		{Name: "conj", Type: tree.Arrow(a, tree.Arrow(b, and))},
	}); err != nil {
		return err
	}

	or := tree.Apps(tree.NewGlobal("Or"), a, b)
	if err := c.DefineInductive(ctx, "Or", props, prop, []ConstructorDecl{
		{Name: "left", Type: tree.Arrow(a, or)},
		{Name: "right", Type: tree.Arrow(b, or)},
	}); err != nil {
		return err
	}

	// Ex A P holds when some x : A satisfies P.
	pred := tree.NewVar("P")
	return c.DefineInductive(ctx, "Ex", []Binder{
		{Name: "A", Type: tree.NewSort(tree.TypeN(0))},
		{Name: "P", Type: tree.Arrow(a, prop)},
	}, prop, []ConstructorDecl{
		{Name: "witness", Type: tree.NewPi("x", a,
			tree.Arrow(tree.NewApp(pred, tree.NewVar("x")), tree.Apps(tree.NewGlobal("Ex"), a, pred)))},
	})
}

// NewPreludeContext returns a fresh session context, with the prelude
// loaded when withPrelude is set.
func (c *Checker) NewPreludeContext(withPrelude bool) (*Context, error) {
	ctx := NewContext(NewGlobals())
	if !withPrelude {
		return ctx, nil
	}
	if err := c.LoadPrelude(ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}
