package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/source"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

func TestLex(t *testing.T) {
	toks, err := lex("", "f (x) : A -> B => C := , . | 42 -7 1.5 2e3 \"s\"")
	require.NoError(t, err)

	var kinds []tokenKind
	for _, tok := range toks {
		kinds = append(kinds, tok.kind)
	}
	assert.Equal(t, []tokenKind{
		tokIdent, tokLParen, tokIdent, tokRParen, tokColon, tokIdent, tokArrow, tokIdent,
		tokDoubleArrow, tokIdent, tokAssign, tokComma, tokDot, tokBar,
		tokInt, tokInt, tokFloat, tokFloat, tokString, tokEOF,
	}, kinds)
	assert.Equal(t, "-7", toks[15].text)
}

func TestLexPositions(t *testing.T) {
	toks, err := lex("", "a\n  bc (* skip\n me *) d")
	require.NoError(t, err)
	require.Len(t, toks, 4)

	assert.Equal(t, source.Pos{Line: 1, Column: 1}, toks[0].pos)
	assert.Equal(t, source.Pos{Line: 2, Column: 3}, toks[1].pos)
	assert.Equal(t, source.Pos{Line: 3, Column: 8}, toks[2].pos)
	assert.Equal(t, "bc", toks[1].text)
	assert.Equal(t, 4, toks[1].offset)
	assert.Equal(t, 6, toks[1].end)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"(* open (* nested *)", "unterminated comment"},
		{`"abc`, "unterminated string"},
		{"a # b", `unexpected character '#'`},
	}
	for _, tt := range tests {
		_, err := lex("x.v", tt.input)
		var perr *Error
		require.ErrorAs(t, err, &perr, tt.input)
		assert.Equal(t, "x.v", perr.Path)
		assert.Equal(t, tt.msg, perr.Msg)
	}
}

func TestParseTerm(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"fun x : Nat => x", "(fun x : Nat => x)"},
		{"λ x : Nat ⇒ x", "(fun x : Nat => x)"},
		{"fun (A : Type0) (x : A) => x", "(fun A : Type0 => (fun x : A => x))"},
		{"fun x y : Nat => x", "(fun x : Nat => (fun y : Nat => x))"},
		{"forall A : Prop, A -> A", "forall A : Prop, A -> A"},
		{"∀ A : Prop, A → A", "forall A : Prop, A -> A"},
		{"A -> B -> C", "A -> B -> C"},
		{"(A -> B) -> C", "(A -> B) -> C"},
		{"f a b", "((f a) b)"},
		{"f (g a) b", "((f (g a)) b)"},
		{"Type", "Type0"},
		{"Type 2", "Type2"},
		{"Type5", "Type5"},
		{"Prop", "Prop"},
		{"_", "_"},
		{"42", "42"},
		{"add -7 3", "((add -7) 3)"},
		{"1.5", "1.5"},
		{`"a\nb"`, `"a\nb"`},
		{"fix f => fun n : Nat => f n", "(fix f => (fun n : Nat => (f n)))"},
		{"match n return Nat with | Zero => Zero | Succ k => k end", "(match n return Nat with | Zero | (fun k : _ => k) end)"},
		{"match n return Nat with | Zero => Zero", "(match n return Nat with | Zero end)"},
		{"match n return Nat with end", "(match n return Nat with end)"},
		{"(* note *) f -- trailing\n a", "(f a)"},
		{"x'", "x'"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			term, err := NewParser().ParseTerm(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, term.String())
		})
	}
}

func TestParseTermScoping(t *testing.T) {
	term, err := NewParser().ParseTerm("fun (A : Type0) (x : A) => f x")
	require.NoError(t, err)

	outer := term.(*tree.Lambda)
	inner := outer.Body.(*tree.Lambda)
	assert.IsType(t, &tree.Var{}, inner.ParamType, "A is bound in later binder types")

	app := inner.Body.(*tree.App)
	assert.IsType(t, &tree.Global{}, app.Func)
	assert.IsType(t, &tree.Var{}, app.Arg)

	// binders go out of scope after their body
	term, err = NewParser().ParseTerm("(fun x : Nat => x) x")
	require.NoError(t, err)
	assert.IsType(t, &tree.Global{}, term.(*tree.App).Arg)
}

func TestParseMatchCases(t *testing.T) {
	term, err := NewParser().ParseTerm("match l return Nat with | Cons x rest => f rest | Nil => Zero end")
	require.NoError(t, err)

	m := term.(*tree.Match)
	require.Len(t, m.Cases, 2)

	lams, body := tree.LambdaChain(m.Cases[0])
	require.Len(t, lams, 2)
	assert.Equal(t, "x", lams[0].Param)
	assert.Equal(t, "rest", lams[1].Param)
	assert.True(t, tree.IsPlaceholder(lams[0].ParamType))
	assert.Equal(t, "(f rest)", body.String())
	assert.IsType(t, &tree.Var{}, body.(*tree.App).Arg)

	assert.Equal(t, "Zero", m.Cases[1].String(), "cases keep their written order")
}

func TestParseUnicodeNormalization(t *testing.T) {
	composed, err := NewParser().ParseTerm("Caf\u00e9")
	require.NoError(t, err)
	decomposed, err := NewParser().ParseTerm("Cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, composed.String(), decomposed.String())
}

func TestParseTermErrors(t *testing.T) {
	tests := []string{
		"fun x => x",
		"(f a",
		"f )",
		"forall A : Prop A",
		"match n with | Zero => Zero",
		"fun fun : Nat => fun",
		"99999999999999999999",
		"",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := NewParser().ParseTerm(input)
			var perr *Error
			assert.ErrorAs(t, err, &perr)
		})
	}
}

// ========================

func TestParseCommand(t *testing.T) {
	p := NewParser()

	cmd, err := p.ParseCommand("Definition id (A : Type0) (x : A) : A := x.")
	require.NoError(t, err)
	def := cmd.(*source.Definition)
	assert.Equal(t, "id", def.Name)
	assert.Equal(t, "forall A : Type0, A -> A", def.Type.String())
	assert.Equal(t, "(fun A : Type0 => (fun x : A => x))", def.Body.String())
	assert.Equal(t, "Definition id (A : Type0) (x : A) : A := x.", def.Source())
	assert.Equal(t, source.Pos{Line: 1, Column: 1}, def.Position())

	cmd, err = p.ParseCommand("Definition two := Succ (Succ Zero)")
	require.NoError(t, err)
	def = cmd.(*source.Definition)
	assert.Nil(t, def.Type)
	assert.Equal(t, "Definition two := Succ (Succ Zero).", def.Source(), "period is added when left out")

	cmd, err = p.ParseCommand("Axiom em : forall P : Prop, P.")
	require.NoError(t, err)
	assert.Equal(t, "Axiom em : forall P : Prop, P.", cmd.String())

	cmd, err = p.ParseCommand("Check Zero.")
	require.NoError(t, err)
	assert.Equal(t, "Zero", cmd.(*source.Check).Term.String())

	cmd, err = p.ParseCommand("Eval add 1 2.")
	require.NoError(t, err)
	assert.Equal(t, "((add 1) 2)", cmd.(*source.Eval).Term.String())

	cmd, err = p.ParseCommand("Hint trivial.")
	require.NoError(t, err)
	assert.Equal(t, "trivial", cmd.(*source.Hint).Name)
}

func TestParseInductive(t *testing.T) {
	p := NewParser()

	cmd, err := p.ParseCommand("Inductive List (A : Type0) := | Nil : List A | Cons : A -> List A -> List A.")
	require.NoError(t, err)
	ind := cmd.(*source.Inductive)
	assert.Equal(t, "List", ind.Name)
	require.Len(t, ind.Params, 1)
	assert.Equal(t, "A", ind.Params[0].Name)
	assert.Nil(t, ind.Sort)
	require.Len(t, ind.Constructors, 2)
	assert.Equal(t, "Nil", ind.Constructors[0].Name)
	assert.Equal(t, "(List A)", ind.Constructors[0].Type.String())
	assert.IsType(t, &tree.Var{}, ind.Constructors[0].Type.(*tree.App).Arg, "parameters are bound in constructor types")
	assert.Equal(t, "A -> (List A) -> (List A)", ind.Constructors[1].Type.String())

	cmd, err = p.ParseCommand("Inductive Empty : Prop := .")
	require.NoError(t, err)
	ind = cmd.(*source.Inductive)
	assert.Equal(t, "Prop", ind.Sort.String())
	assert.Empty(t, ind.Constructors)
}

func TestParseCommandErrors(t *testing.T) {
	tests := []string{
		"Lemma x.",
		"Definition := x.",
		"Definition x : Nat.",
		"Axiom x.",
		"Check Zero. Check Zero.",
		"Inductive Nat := Zero Nat.",
		"check Zero.",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := NewParser().ParseCommand(input)
			var perr *Error
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestParseSource(t *testing.T) {
	script := "(* naturals *)\nInductive Nat := Zero : Nat | Succ : Nat -> Nat.\n\nCheck Succ Zero.\nEval Zero.\n"
	file, err := NewParser().ParseSource("nat.v", []byte(script))
	require.NoError(t, err)

	assert.Equal(t, "nat.v", file.Path)
	require.Len(t, file.Commands, 3)
	assert.Equal(t, source.Pos{Line: 2, Column: 1}, file.Commands[0].Position())
	assert.Equal(t, source.Pos{Line: 4, Column: 1}, file.Commands[1].Position())
	assert.Equal(t, "Check Succ Zero.", file.Commands[1].Source())

	_, err = NewParser().ParseSource("bad.v", []byte("Check Zero"))
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "bad.v", perr.Path)
}
