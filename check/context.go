package check

import (
	"fmt"
	"strings"

	. "github.com/Brahmastra-Labs/logicaffeine-sub001/common"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

// Context is a local typing scope over a global symbol table.
// Extend never mutates the receiver.
type Context struct {
	parent  *Context
	name    string
	ty      tree.Term
	globals *Globals
}

func NewContext(globals *Globals) *Context {
	return &Context{globals: globals}
}

func (c *Context) String() string {
	var parts []string
	for cur := c; cur.parent != nil; cur = cur.parent {
		parts = PushFront(parts, fmt.Sprintf("%s : %v", cur.name, cur.ty))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (c *Context) Extend(name string, ty tree.Term) *Context {
	return &Context{parent: c, name: name, ty: ty, globals: c.globals}
}

// Get looks up the innermost local binding of name.
func (c *Context) Get(name string) (tree.Term, bool) {
	for cur := c; cur.parent != nil; cur = cur.parent {
		if cur.name == name {
			return cur.ty, true
		}
	}
	return nil, false
}

func (c *Context) Bound(name string) bool {
	_, ok := c.Get(name)
	return ok
}

func (c *Context) Globals() *Globals {
	return c.globals
}

// WithGlobals rebinds the same local scope over another symbol table.
func (c *Context) WithGlobals(globals *Globals) *Context {
	if c.parent == nil {
		return NewContext(globals)
	}
	return c.parent.WithGlobals(globals).Extend(c.name, c.ty)
}

// ========================

func (c *Context) GetGlobal(name string) (tree.Term, bool) {
	return c.globals.Lookup(name)
}

func (c *Context) IsInductive(name string) bool {
	_, ok := c.globals.Inductive(name)
	return ok
}

func (c *Context) IsConstructor(name string) bool {
	_, ok := c.globals.Constructor(name)
	return ok
}

func (c *Context) IsDefinition(name string) bool {
	_, ok := c.globals.Definition(name)
	return ok
}

func (c *Context) ConstructorInductive(name string) (string, bool) {
	ctor, ok := c.globals.Constructor(name)
	if !ok {
		return "", false
	}
	return ctor.Inductive, true
}

// Constructors lists an inductive's constructors in declaration order.
func (c *Context) Constructors(inductive string) []string {
	ind, ok := c.globals.Inductive(inductive)
	if !ok {
		return nil
	}
	return ind.Constructors
}

func (c *Context) DefinitionBody(name string) (tree.Term, bool) {
	def, ok := c.globals.Definition(name)
	if !ok {
		return nil, false
	}
	return def.Body, true
}

func (c *Context) AddDefinition(name string, ty, body tree.Term) error {
	return c.globals.AddDefinition(name, ty, body)
}

func (c *Context) AddInductive(name string, sort tree.Term) error {
	return c.globals.AddInductive(name, sort)
}

func (c *Context) AddConstructor(name, inductive string, ty tree.Term) error {
	return c.globals.AddConstructor(name, inductive, ty)
}

func (c *Context) AddDeclaration(name string, ty tree.Term) error {
	return c.globals.AddDeclaration(name, ty)
}

func (c *Context) AddHint(name string) error {
	return c.globals.AddHint(name)
}

func (c *Context) Hints() []string {
	return c.globals.Hints()
}
