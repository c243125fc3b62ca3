package tree

import (
	"fmt"
)

// Placeholder is the binder type the parser leaves on match-case binders.
const Placeholder = "_"

// ========================

type Term interface {
	fmt.Stringer
	_Term()
}

type TermBase struct{}

func (*TermBase) _Term() {}

// ========================

type Sort struct {
	TermBase
	Universe Universe
}

type Var struct {
	TermBase
	Name string
}

type Global struct {
	TermBase
	Name string
}

type Pi struct {
	TermBase
	Param     string
	ParamType Term
	BodyType  Term
}

type Lambda struct {
	TermBase
	Param     string
	ParamType Term
	Body      Term
}

type App struct {
	TermBase
	Func Term
	Arg  Term
}

type Match struct {
	TermBase
	Discriminant Term
	Motive       Term
	Cases        []Term
}

type Fix struct {
	TermBase
	Name string
	Body Term
}

type Lit struct {
	TermBase
	Value Literal
}

type Hole struct {
	TermBase
}

// ========================

func NewSort(u Universe) *Sort {
	return &Sort{Universe: u}
}

func NewVar(name string) *Var {
	return &Var{Name: name}
}

func NewGlobal(name string) *Global {
	return &Global{Name: name}
}

func NewPi(param string, paramType, bodyType Term) *Pi {
	return &Pi{Param: param, ParamType: paramType, BodyType: bodyType}
}

func NewLambda(param string, paramType, body Term) *Lambda {
	return &Lambda{Param: param, ParamType: paramType, Body: body}
}

func NewApp(fn, arg Term) *App {
	return &App{Func: fn, Arg: arg}
}

// Arrow is the non-dependent function type A -> B.
func Arrow(from, to Term) *Pi {
	return NewPi(Placeholder, from, to)
}

// Apps builds the left-nested application f a1 ... an.
func Apps(fn Term, args ...Term) Term {
	for _, arg := range args {
		fn = NewApp(fn, arg)
	}
	return fn
}

// Spine splits f a1 ... an into its head f and arguments a1 ... an.
func Spine(t Term) (Term, []Term) {
	var args []Term
	for {
		app, ok := t.(*App)
		if !ok {
			break
		}
		args = append(args, app.Arg)
		t = app.Func
	}
	for i, j := 0, len(args)-1; i < j; i, j = i+1, j-1 {
		args[i], args[j] = args[j], args[i]
	}
	return t, args
}

// HeadGlobal returns the name of the global at the head of an application spine.
func HeadGlobal(t Term) (string, bool) {
	head, _ := Spine(t)
	if g, ok := head.(*Global); ok {
		return g.Name, true
	}
	return "", false
}

// IsPlaceholder reports whether t stands for a binder type left to be filled in.
func IsPlaceholder(t Term) bool {
	switch t := t.(type) {
	case *Global:
		return t.Name == Placeholder
	case *Hole:
		return true
	default:
		return false
	}
}

// PiChain peels the leading Pi binders of t.
func PiChain(t Term) ([]*Pi, Term) {
	var binders []*Pi
	for {
		pi, ok := t.(*Pi)
		if !ok {
			return binders, t
		}
		binders = append(binders, pi)
		t = pi.BodyType
	}
}

// LambdaChain peels the leading Lambda binders of t.
func LambdaChain(t Term) ([]*Lambda, Term) {
	var binders []*Lambda
	for {
		lam, ok := t.(*Lambda)
		if !ok {
			return binders, t
		}
		binders = append(binders, lam)
		t = lam.Body
	}
}
