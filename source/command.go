package source

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ========================

type Command interface {
	fmt.Stringer
	Position() Pos
	Source() string
	_Command()
}

type CommandBase struct {
	Pos Pos
	// Text is the command as written, terminating period included.
	Text string
}

func (*CommandBase) _Command() {}

func (c *CommandBase) Position() Pos {
	return c.Pos
}

func (c *CommandBase) Source() string {
	return c.Text
}

// ========================

type Binder struct {
	Name string
	Type tree.Term
}

func (b Binder) String() string {
	return fmt.Sprintf("(%s : %v)", b.Name, b.Type)
}

type Constructor struct {
	Name string
	Type tree.Term
}

type Definition struct {
	CommandBase
	Name string
	// Type is nil when the type is to be inferred.
	Type tree.Term
	Body tree.Term
}

type Axiom struct {
	CommandBase
	Name string
	Type tree.Term
}

type Inductive struct {
	CommandBase
	Name         string
	Params       []Binder
	Sort         tree.Term
	Constructors []Constructor
}

type Check struct {
	CommandBase
	Term tree.Term
}

type Eval struct {
	CommandBase
	Term tree.Term
}

type Hint struct {
	CommandBase
	Name string
}

// ========================

func (c *Definition) String() string {
	if c.Type == nil {
		return fmt.Sprintf("Definition %s := %v.", c.Name, c.Body)
	}
	return fmt.Sprintf("Definition %s : %v := %v.", c.Name, c.Type, c.Body)
}

func (c *Axiom) String() string {
	return fmt.Sprintf("Axiom %s : %v.", c.Name, c.Type)
}

func (c *Inductive) String() string {
	var sb strings.Builder
	sb.WriteString("Inductive ")
	sb.WriteString(c.Name)
	for _, p := range c.Params {
		fmt.Fprintf(&sb, " %v", p)
	}
	if c.Sort != nil {
		fmt.Fprintf(&sb, " : %v", c.Sort)
	}
	sb.WriteString(" :=")
	ctors := lo.Map(c.Constructors, func(ctor Constructor, _ int) string {
		return fmt.Sprintf(" %s : %v", ctor.Name, ctor.Type)
	})
	sb.WriteString(strings.Join(ctors, " |"))
	sb.WriteString(".")
	return sb.String()
}

func (c *Check) String() string {
	return fmt.Sprintf("Check %v.", c.Term)
}

func (c *Eval) String() string {
	return fmt.Sprintf("Eval %v.", c.Term)
}

func (c *Hint) String() string {
	return fmt.Sprintf("Hint %s.", c.Name)
}
