package check_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/check"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/compile"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/parse"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

const natDecl = `Inductive Nat := Zero : Nat | Succ : Nat -> Nat.`

const addDecl = `Definition add : Nat -> Nat -> Nat :=
  fix add => fun n : Nat => fun m : Nat =>
    match n return Nat with
    | Zero => m
    | Succ k => Succ (add k m)
    end.`

const listDecl = `Inductive List (A : Type0) := Nil : List A | Cons : A -> List A -> List A.`

const lengthDecl = `Definition length : forall A : Type0, List A -> Nat :=
  fun A : Type0 =>
    fix length => fun l : List A =>
      match l return Nat with
      | Nil => Zero
      | Cons x rest => Succ (length rest)
      end.`

func newSession(t *testing.T, prelude bool, script ...string) *compile.Session {
	t.Helper()
	checker := check.NewChecker(check.DefaultConfig(), nil)
	s, err := compile.NewSession(context.Background(), checker, nil, compile.SessionOptions{Prelude: prelude})
	require.NoError(t, err)
	for _, cmd := range script {
		_, err := s.Execute(context.Background(), cmd)
		require.NoError(t, err, cmd)
	}
	return s
}

func exec(t *testing.T, s *compile.Session, cmd string) (string, error) {
	t.Helper()
	return s.Execute(context.Background(), cmd)
}

func term(t *testing.T, input string) tree.Term {
	t.Helper()
	parsed, err := parse.NewParser().ParseTerm(input)
	require.NoError(t, err)
	return parsed
}

// ========================

func TestCheckConstructor(t *testing.T) {
	s := newSession(t, false, natDecl)

	out, err := exec(t, s, "Check Zero.")
	require.NoError(t, err)
	assert.Equal(t, "Zero : Nat", out)
}

func TestCheckLambda(t *testing.T) {
	s := newSession(t, false, natDecl)

	out, err := exec(t, s, "Check (fun n : Nat => n).")
	require.NoError(t, err)
	assert.Equal(t, "(fun n : Nat => n) : Nat -> Nat", out)
}

func TestPositivityRejectsNegativeOccurrence(t *testing.T) {
	s := newSession(t, true)

	_, err := exec(t, s, "Inductive Bad := Cons : (Bad -> False) -> Bad.")
	var violation *check.PositivityViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "Bad", violation.Inductive)
	assert.Equal(t, "Cons", violation.Constructor)

	assert.False(t, s.Context().IsInductive("Bad"), "rejected inductive must not be registered")
	assert.False(t, s.Context().IsConstructor("Cons"))
}

func TestAddFixpoint(t *testing.T) {
	s := newSession(t, false, natDecl, addDecl)

	out, err := exec(t, s, "Check add.")
	require.NoError(t, err)
	assert.Equal(t, "add : Nat -> Nat -> Nat", out)

	out, err = exec(t, s, "Eval add (Succ (Succ Zero)) (Succ Zero).")
	require.NoError(t, err)
	assert.Equal(t, "(Succ (Succ (Succ Zero)))", out)
}

func TestNonTerminatingFixpoint(t *testing.T) {
	s := newSession(t, false, natDecl)

	_, err := exec(t, s, "Check fix loop => fun n : Nat => loop n.")
	var violation *check.TerminationViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "loop", violation.FixName)
}

func TestCaseBindersAvoidOuterNames(t *testing.T) {
	s := newSession(t, false, natDecl, listDecl)

	for _, name := range []string{"A", "__arg0", "__arg1"} {
		t.Run(name, func(t *testing.T) {
			_, err := exec(t, s, "Check fun "+name+" : Type0 => fun n : Nat => match n return List "+name+" with | Zero => Nil "+name+" | Succ k => Nil "+name+" end.")
			assert.NoError(t, err)
		})
	}

	_, err := exec(t, s, `Check fun __arg0 : Type0 => fun x : __arg0 => fun l : List __arg0 =>
		match l return List __arg0 with | Nil => Cons __arg0 x (Nil __arg0) | Cons y rest => Cons __arg0 x rest end.`)
	assert.NoError(t, err)
}

func TestPreludeConnectives(t *testing.T) {
	s := newSession(t, true, natDecl)

	tests := []struct {
		name  string
		input string
	}{
		{"and elimination", `Definition and_fst (A : Prop) (B : Prop) (p : And A B) : A :=
			match p return A with | conj a b => a end.`},
		{"or commutes", `Definition or_swap (A : Prop) (B : Prop) (p : Or A B) : Or B A :=
			match p return Or B A with | left a => right B A a | right b => left B A b end.`},
		{"negation unfolds", `Definition not_false : Not False := fun f : False => f.`},
		{"existential", `Definition some_nat : Ex Nat (fun n : Nat => True) := witness Nat (fun n : Nat => True) Zero I.`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := exec(t, s, tt.input)
			assert.NoError(t, err)
		})
	}

	_, err := exec(t, s, "Inductive And := Both : And.")
	var dup *check.AlreadyDefined
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "And", dup.Name)
}

func TestTermination(t *testing.T) {
	s := newSession(t, true, natDecl)

	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"nested pattern", `Check fix half => fun n : Nat => match n return Nat with
			| Zero => Zero
			| Succ k => match k return Nat with | Zero => Zero | Succ j => Succ (half j) end
			end.`, true},
		{"shadowed name is not a call", "Check fix f => fun n : Nat => fun f : Nat => f.", true},
		{"same argument", "Check fix f => fun n : Nat => match n return Nat with | Zero => Zero | Succ k => f n end.", false},
		{"constructor argument", "Check fix f => fun n : Nat => match n return Nat with | Zero => Zero | Succ k => f (Succ k) end.", false},
		{"unapplied", "Check fix f => fun n : Nat => match n return Nat with | Zero => Zero | Succ k => f end.", false},
		{"no inductive parameter", "Check fix f => fun P : Prop => P.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := exec(t, s, tt.input)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var violation *check.TerminationViolation
			require.ErrorAs(t, err, &violation)
			assert.Equal(t, "f", violation.FixName)
		})
	}
}

func TestEvalConstructorIsNormal(t *testing.T) {
	s := newSession(t, false, natDecl)

	out, err := exec(t, s, "Eval (Succ (Succ Zero)).")
	require.NoError(t, err)
	assert.Equal(t, "(Succ (Succ Zero))", out)
}

func TestPolymorphicListLength(t *testing.T) {
	s := newSession(t, false, natDecl, listDecl, lengthDecl)

	out, err := exec(t, s, "Eval length Nat (Cons Nat Zero (Cons Nat (Succ Zero) (Nil Nat))).")
	require.NoError(t, err)
	assert.Equal(t, "(Succ (Succ Zero))", out)

	out, err = exec(t, s, "Check Cons Nat Zero.")
	require.NoError(t, err)
	assert.Equal(t, "((Cons Nat) Zero) : (List Nat) -> (List Nat)", out)
}

func TestWrongNumberOfCases(t *testing.T) {
	s := newSession(t, false, natDecl)

	tests := []struct {
		name  string
		input string
		found int
	}{
		{"too few", "Check fun n : Nat => match n return Nat with | Zero => Zero end.", 1},
		{"too many", "Check fun n : Nat => match n return Nat with | Zero => Zero | Succ k => k | Succ j => j end.", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := exec(t, s, tt.input)
			var wrong *check.WrongNumberOfCases
			require.ErrorAs(t, err, &wrong)
			assert.Equal(t, 2, wrong.Expected)
			assert.Equal(t, tt.found, wrong.Found)
		})
	}
}

func TestKernelErrors(t *testing.T) {
	s := newSession(t, true, natDecl)

	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"unbound", "Check missing.", new(*check.UnboundVariable)},
		{"not a function", "Check Zero Zero.", new(*check.NotAFunction)},
		{"type mismatch", "Check Succ Prop.", new(*check.TypeMismatch)},
		{"not a type", "Check fun x : Zero => x.", new(*check.NotAType)},
		{"not an inductive", "Check match Prop return Nat with end.", new(*check.NotAnInductive)},
		{"invalid motive", "Check fun n : Nat => match n return Zero with | Zero => Zero | Succ k => k end.", new(*check.InvalidMotive)},
		{"hole", "Check _.", new(*check.CannotInferHole)},
		{"duplicate", "Definition Zero := Prop.", new(*check.AlreadyDefined)},
		{"bad conclusion", "Inductive Weird := mk : Nat.", new(*check.InvalidConstructor)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := exec(t, s, tt.input)
			require.Error(t, err)
			assert.True(t, errors.As(err, tt.want), "got %T: %v", err, err)

			var kernelErr check.KernelError
			assert.ErrorAs(t, err, &kernelErr)
		})
	}
}

func TestDefinitionAgainstDeclaredType(t *testing.T) {
	s := newSession(t, false, natDecl)

	_, err := exec(t, s, "Definition one : Nat := Succ Zero.")
	require.NoError(t, err)

	_, err = exec(t, s, "Definition bad : Nat := Nat.")
	var mismatch *check.TypeMismatch
	require.ErrorAs(t, err, &mismatch)

	out, err := exec(t, s, "Eval Succ one.")
	require.NoError(t, err)
	assert.Equal(t, "(Succ (Succ Zero))", out)
}

func TestUniverseHierarchy(t *testing.T) {
	s := newSession(t, true)

	tests := []struct {
		input string
		want  string
	}{
		{"Check Prop.", "Prop : Type0"},
		{"Check Type0.", "Type0 : Type1"},
		{"Check Type 3.", "Type3 : Type4"},
		{"Check True -> False.", "True -> False : Prop"},
		{"Check forall A : Prop, A.", "forall A : Prop, A : Type0"},
	}
	for _, tt := range tests {
		out, err := exec(t, s, tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, out, tt.input)
	}

	// cumulativity: Prop : Type0 <= Type1
	_, err := exec(t, s, "Definition lifted : Type1 := Prop.")
	require.NoError(t, err)
	_, err = exec(t, s, "Definition lowered : Type0 := Type0.")
	require.Error(t, err)
}

func TestPrimitiveArithmetic(t *testing.T) {
	s := newSession(t, true)

	tests := []struct {
		input string
		want  string
	}{
		{"Eval add 40 2.", "42"},
		{"Eval sub 2 40.", "-38"},
		{"Eval mul (add 1 2) 4.", "12"},
		{"Eval div 7 2.", "3"},
		{"Eval mod 7 2.", "1"},
		{"Eval div 1 0.", "((div 1) 0)"},
		{"Eval add 9223372036854775807 1.", "((add 9223372036854775807) 1)"},
	}
	for _, tt := range tests {
		out, err := exec(t, s, tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, out, tt.input)
	}

	out, err := exec(t, s, `Check "hi".`)
	require.NoError(t, err)
	assert.Equal(t, `"hi" : Text`, out)
}

func TestPrimitiveNamesAreOrdinaryWithoutPrelude(t *testing.T) {
	s := newSession(t, false, natDecl, addDecl)

	out, err := exec(t, s, "Eval add Zero Zero.")
	require.NoError(t, err)
	assert.Equal(t, "Zero", out)
}

func TestHints(t *testing.T) {
	s := newSession(t, true, "Definition trivial : True := I.")

	_, err := exec(t, s, "Hint trivial.")
	require.NoError(t, err)
	_, err = exec(t, s, "Hint trivial.")
	require.NoError(t, err)
	assert.Equal(t, []string{"trivial"}, s.Context().Hints())

	_, err = exec(t, s, "Hint nothing.")
	var unbound *check.UnboundVariable
	require.ErrorAs(t, err, &unbound)
}

func TestDependentMotive(t *testing.T) {
	s := newSession(t, false, natDecl,
		"Inductive Unit := tt : Unit.",
		`Definition pick : forall n : Nat, Nat :=
		   fun n : Nat => match n return (fun x : Nat => Nat) with | Zero => Zero | Succ k => k end.`,
	)

	out, err := exec(t, s, "Eval pick (Succ (Succ Zero)).")
	require.NoError(t, err)
	assert.Equal(t, "(Succ Zero)", out)

	_, err = exec(t, s, "Check fun u : Unit => match u return (fun x : Nat => Nat) with | tt => Zero end.")
	var invalid *check.InvalidMotive
	require.ErrorAs(t, err, &invalid)
}

// ========================

func TestTypePreservationUnderBeta(t *testing.T) {
	s := newSession(t, false, natDecl, addDecl)
	checker := check.NewChecker(check.DefaultConfig(), nil)

	inputs := []string{
		"(fun n : Nat => Succ n) Zero",
		"(fun f : Nat -> Nat => f Zero) (fun x : Nat => Succ x)",
		"add (Succ Zero) (Succ Zero)",
		"(fun A : Type0 => fun x : A => x) Nat Zero",
	}
	for _, input := range inputs {
		tm := term(t, input)
		before, err := checker.InferType(s.Context(), tm)
		require.NoError(t, err, input)

		normal := checker.Normalize(s.Context(), tm)
		after, err := checker.InferType(s.Context(), normal)
		require.NoError(t, err, input)

		assert.True(t, check.TypesEqual(checker.Normalize(s.Context(), before), checker.Normalize(s.Context(), after)),
			"%s: %v became %v", input, before, after)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	s := newSession(t, false, natDecl, addDecl)
	checker := check.NewChecker(check.DefaultConfig(), nil)

	inputs := []string{
		"add (Succ Zero) (Succ (Succ Zero))",
		"fun n : Nat => add Zero n",
		"add",
		"forall n : Nat, Nat",
	}
	for _, input := range inputs {
		once := checker.Normalize(s.Context(), term(t, input))
		twice := checker.Normalize(s.Context(), once)
		assert.True(t, check.TypesEqual(once, twice), "%s: %v then %v", input, once, twice)
	}
}

func TestNormalizeStopsWhenFuelRunsOut(t *testing.T) {
	s := newSession(t, false, natDecl, addDecl)
	checker := check.NewChecker(check.Config{Fuel: 1}, nil)

	result := checker.Normalize(s.Context(), term(t, "add (Succ Zero) Zero"))
	assert.NotEqual(t, "(Succ Zero)", result.String())
}
