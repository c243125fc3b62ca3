package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/parse"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/source"
)

func commands(t *testing.T, script string) []source.Command {
	t.Helper()
	file, err := parse.NewParser().ParseSource("test.v", []byte(script))
	require.NoError(t, err)
	return file.Commands
}

func TestProvidesAndRequires(t *testing.T) {
	cmds := commands(t, `
		Inductive List (A : Type0) := Nil : List A | Cons : A -> List A -> List A.
		Definition length : forall A : Type0, List A -> Nat :=
		  fun A : Type0 => fix length => fun l : List A =>
		    match l return Nat with | Nil => Zero | Cons x rest => Succ (length rest) end.
		Axiom em : forall P : Prop, Or P (Not P).
		Check length Nat.
		Hint em.
	`)
	require.Len(t, cmds, 5)

	assert.Equal(t, []string{"List", "Nil", "Cons"}, source.Provides(cmds[0]))
	assert.Empty(t, source.Requires(cmds[0]), "an inductive refers to itself and its parameters")

	assert.Equal(t, []string{"length"}, source.Provides(cmds[1]))
	assert.Equal(t, []string{"List", "Nat", "Succ", "Zero"}, source.Requires(cmds[1]))

	assert.Equal(t, []string{"Not", "Or"}, source.Requires(cmds[2]))

	assert.Nil(t, source.Provides(cmds[3]))
	assert.Equal(t, []string{"Nat", "length"}, source.Requires(cmds[3]))
	assert.Equal(t, []string{"em"}, source.Requires(cmds[4]))

	assert.True(t, source.IsDeclaration(cmds[0]))
	assert.True(t, source.IsDeclaration(cmds[2]))
	assert.False(t, source.IsDeclaration(cmds[3]))
	assert.False(t, source.IsDeclaration(cmds[4]))
}

func TestDeclarationLayers(t *testing.T) {
	cmds := commands(t, `
		Definition double := fun n : Nat => add n n.
		Check double.
		Definition add := fix add => fun n : Nat => fun m : Nat => match n return Nat with | Zero => m | Succ k => Succ (add k m) end.
		Inductive Nat := Zero : Nat | Succ : Nat -> Nat.
		Inductive Bool := true : Bool | false : Bool.
	`)

	layers, err := source.DeclarationLayers(cmds)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{3, 4}, {2}, {0}}, layers)
}

func TestDeclarationLayersFirstProviderWins(t *testing.T) {
	cmds := commands(t, `
		Axiom A : Prop.
		Axiom uses : A.
		Axiom A : Type0.
	`)

	layers, err := source.DeclarationLayers(cmds)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 2}, {1}}, layers)
}

func TestDeclarationLayersCycle(t *testing.T) {
	cmds := commands(t, `
		Axiom Z : Prop.
		Definition even := fun n : Nat => odd n.
		Definition odd := fun n : Nat => even n.
	`)
	cmds = append(cmds, nil)

	_, err := source.DeclarationLayers(cmds)
	var cycle *source.CycleError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []string{"even", "odd"}, cycle.Names)
	assert.Equal(t, "cyclic declarations: even -> odd", cycle.Error())
}

func TestPackage(t *testing.T) {
	pkg := source.NewPackage("scripts")
	a := &source.FileDef{Path: "a.v", Commands: commands(t, "Check Prop. Check Type0.")}
	b := &source.FileDef{Path: "b.v", Commands: commands(t, "Check Type1.")}
	pkg.AddFile(a)
	pkg.AddFile(b)

	cmds := pkg.Commands()
	require.Len(t, cmds, 3)
	assert.Same(t, a, pkg.Locate(0))
	assert.Same(t, a, pkg.Locate(1))
	assert.Same(t, b, pkg.Locate(2))
	assert.Nil(t, pkg.Locate(3))
}

func TestCommandString(t *testing.T) {
	cmds := commands(t, `
		Inductive Nat : Type0 := Zero : Nat | Succ : Nat -> Nat.
		Definition one : Nat := Succ Zero.
		Eval one.
	`)
	assert.Equal(t, "Inductive Nat : Type0 := Zero : Nat | Succ : Nat -> Nat.", cmds[0].String())
	assert.Equal(t, "Definition one : Nat := (Succ Zero).", cmds[1].String())
	assert.Equal(t, "Eval one.", cmds[2].String())
}
