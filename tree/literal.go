package tree

import (
	"fmt"
	"strconv"
	"strings"
)

type Literal interface {
	fmt.Stringer
	// TypeName is the opaque global classifying the literal.
	TypeName() string
	_Literal()
}

type LiteralBase struct{}

func (*LiteralBase) _Literal() {}

type IntLiteral struct {
	LiteralBase
	Value int64
}

type FloatLiteral struct {
	LiteralBase
	Value float64
}

type TextLiteral struct {
	LiteralBase
	Value string
}

func (*IntLiteral) TypeName() string   { return "Int" }
func (*FloatLiteral) TypeName() string { return "Float" }
func (*TextLiteral) TypeName() string  { return "Text" }

func (l *IntLiteral) String() string {
	return strconv.FormatInt(l.Value, 10)
}

func (l *FloatLiteral) String() string {
	s := strconv.FormatFloat(l.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func (l *TextLiteral) String() string {
	return strconv.Quote(l.Value)
}

func NewInt(v int64) *Lit {
	return &Lit{Value: &IntLiteral{Value: v}}
}

func NewFloat(v float64) *Lit {
	return &Lit{Value: &FloatLiteral{Value: v}}
}

func NewText(v string) *Lit {
	return &Lit{Value: &TextLiteral{Value: v}}
}

func LiteralEqual(a, b Literal) bool {
	switch a := a.(type) {
	case *IntLiteral:
		b, ok := b.(*IntLiteral)
		return ok && a.Value == b.Value
	case *FloatLiteral:
		b, ok := b.(*FloatLiteral)
		return ok && a.Value == b.Value
	case *TextLiteral:
		b, ok := b.(*TextLiteral)
		return ok && a.Value == b.Value
	default:
		panic("unreachable")
	}
}
