package tree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestUniverse(t *testing.T) {
	assert.Equal(t, TypeN(0), Prop.Succ())
	assert.Equal(t, TypeN(3), TypeN(2).Succ())

	assert.Equal(t, TypeN(1), Prop.Max(TypeN(1)))
	assert.Equal(t, TypeN(0), TypeN(0).Max(Prop))
	assert.Equal(t, Prop, Prop.Max(Prop))
	assert.Equal(t, TypeN(4), TypeN(4).Max(TypeN(2)))

	assert.True(t, Prop.IsSubtypeOf(TypeN(0)))
	assert.True(t, Prop.IsSubtypeOf(Prop))
	assert.True(t, TypeN(1).IsSubtypeOf(TypeN(2)))
	assert.False(t, TypeN(2).IsSubtypeOf(TypeN(1)))
	assert.False(t, TypeN(0).IsSubtypeOf(Prop))

	assert.Equal(t, "Prop", Prop.String())
	assert.Equal(t, "Type7", TypeN(7).String())
}

func TestPrint(t *testing.T) {
	nat := NewGlobal("Nat")

	tests := []struct {
		term Term
		want string
	}{
		{Arrow(nat, nat), "Nat -> Nat"},
		{Arrow(Arrow(nat, nat), nat), "(Nat -> Nat) -> Nat"},
		{Arrow(nat, Arrow(nat, nat)), "Nat -> Nat -> Nat"},
		{NewPi("x", nat, nat), "Nat -> Nat"},
		{NewPi("A", NewSort(Prop), NewVar("A")), "forall A : Prop, A"},
		{NewLambda("x", nat, NewVar("x")), "(fun x : Nat => x)"},
		{Apps(NewGlobal("f"), NewVar("a"), NewVar("b")), "((f a) b)"},
		{NewApp(NewGlobal("f"), Arrow(nat, nat)), "(f (Nat -> Nat))"},
		{&Fix{Name: "f", Body: NewVar("f")}, "(fix f => f)"},
		{
			&Match{Discriminant: NewVar("n"), Motive: nat, Cases: []Term{nat, NewLambda("k", NewGlobal(Placeholder), NewVar("k"))}},
			"(match n return Nat with | Nat | (fun k : _ => k) end)",
		},
		{NewInt(-3), "-3"},
		{NewFloat(2), "2.0"},
		{NewFloat(1.5), "1.5"},
		{NewText("a\"b"), `"a\"b"`},
		{&Hole{}, "_"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.term.String())
		})
	}
}

func TestSpine(t *testing.T) {
	a, b, c := NewVar("a"), NewVar("b"), NewVar("c")
	head, args := Spine(Apps(NewGlobal("f"), a, b, c))

	assert.Equal(t, NewGlobal("f"), head)
	if diff := cmp.Diff([]Term{a, b, c}, args); diff != "" {
		t.Errorf("Spine() args mismatch (-want +got):\n%s", diff)
	}

	name, ok := HeadGlobal(Apps(NewGlobal("Cons"), a))
	assert.True(t, ok)
	assert.Equal(t, "Cons", name)

	_, ok = HeadGlobal(NewApp(NewVar("f"), a))
	assert.False(t, ok)
}

func TestChains(t *testing.T) {
	ty := NewPi("A", NewSort(TypeN(0)), Arrow(NewVar("A"), NewSort(Prop)))
	binders, result := PiChain(ty)
	assert.Len(t, binders, 2)
	assert.Equal(t, "A", binders[0].Param)
	assert.Equal(t, NewSort(Prop), result)

	lams, body := LambdaChain(NewLambda("x", NewGlobal("Nat"), NewLambda("y", NewGlobal("Nat"), NewVar("x"))))
	assert.Len(t, lams, 2)
	assert.Equal(t, NewVar("x"), body)
}

func TestFreeVars(t *testing.T) {
	// fun x : A => f x y, with A, f and y free
	var term Term = NewLambda("x", NewVar("A"), Apps(NewVar("f"), NewVar("x"), NewVar("y")))
	assert.ElementsMatch(t, []string{"A", "f", "y"}, keys(FreeVars(term)))

	// the binder type is outside the binder's scope
	term = NewPi("x", NewVar("x"), NewVar("x"))
	assert.ElementsMatch(t, []string{"x"}, keys(FreeVars(term)))

	assert.True(t, Occurs("y", NewApp(NewVar("y"), NewVar("z"))))
	assert.False(t, Occurs("f", &Fix{Name: "f", Body: NewVar("f")}))
}

func TestGlobals(t *testing.T) {
	term := NewLambda("k", NewGlobal(Placeholder), Apps(NewGlobal("Succ"), NewApp(NewGlobal("add"), NewVar("k"))))
	assert.ElementsMatch(t, []string{"Succ", "add"}, keys(Globals(term)))
	assert.True(t, MentionsGlobal("add", term))
	assert.False(t, MentionsGlobal("k", term))
}

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, IsPlaceholder(NewGlobal(Placeholder)))
	assert.True(t, IsPlaceholder(&Hole{}))
	assert.False(t, IsPlaceholder(NewGlobal("Nat")))
}

func TestLiteralEqual(t *testing.T) {
	assert.True(t, LiteralEqual(&IntLiteral{Value: 1}, &IntLiteral{Value: 1}))
	assert.False(t, LiteralEqual(&IntLiteral{Value: 1}, &IntLiteral{Value: 2}))
	assert.False(t, LiteralEqual(&IntLiteral{Value: 1}, &FloatLiteral{Value: 1}))
	assert.True(t, LiteralEqual(&TextLiteral{Value: "x"}, &TextLiteral{Value: "x"}))
	assert.Equal(t, "Float", (&FloatLiteral{}).TypeName())
}

func keys[T comparable](s map[T]struct{}) []T {
	var out []T
	for k := range s {
		out = append(out, k)
	}
	return out
}
