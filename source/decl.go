package source

import (
	"slices"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/algos"
	. "github.com/Brahmastra-Labs/logicaffeine-sub001/common"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

// IsDeclaration reports whether cmd registers globals.
func IsDeclaration(cmd Command) bool {
	switch cmd.(type) {
	case *Definition, *Axiom, *Inductive:
		return true
	default:
		return false
	}
}

// Provides lists the globals a command registers, in registration order.
func Provides(cmd Command) []string {
	switch cmd := cmd.(type) {
	case *Definition:
		return []string{cmd.Name}
	case *Axiom:
		return []string{cmd.Name}
	case *Inductive:
		names := []string{cmd.Name}
		for _, ctor := range cmd.Constructors {
			names = append(names, ctor.Name)
		}
		return names
	default:
		return nil
	}
}

// Requires lists the globals a command refers to, other than the ones it
// registers itself, in order of first mention.
func Requires(cmd Command) []string {
	var terms []tree.Term
	var named []string

	switch cmd := cmd.(type) {
	case *Definition:
		terms = append(terms, cmd.Type, cmd.Body)
	case *Axiom:
		terms = append(terms, cmd.Type)
	case *Inductive:
		for _, p := range cmd.Params {
			terms = append(terms, p.Type)
		}
		terms = append(terms, cmd.Sort)
		for _, ctor := range cmd.Constructors {
			terms = append(terms, ctor.Type)
		}
	case *Check:
		terms = append(terms, cmd.Term)
	case *Eval:
		terms = append(terms, cmd.Term)
	case *Hint:
		named = append(named, cmd.Name)
	}

	for _, t := range terms {
		if t == nil {
			continue
		}
		named = append(named, SortedStrings(tree.Globals(t))...)
	}

	own := NewSet(Provides(cmd)...)
	if ind, ok := cmd.(*Inductive); ok {
		for _, p := range ind.Params {
			own.Add(p.Name)
		}
	}
	return slices.DeleteFunc(algos.Uniq(named), own.Contains)
}
