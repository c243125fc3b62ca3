package tree

import (
	"fmt"
)

type UniverseKind int

const (
	UniverseProp UniverseKind = iota
	UniverseType
)

type Universe struct {
	Kind  UniverseKind
	Level int
}

var Prop = Universe{Kind: UniverseProp}

func TypeN(level int) Universe {
	return Universe{Kind: UniverseType, Level: level}
}

func (u Universe) IsProp() bool {
	return u.Kind == UniverseProp
}

// Succ is the universe containing u. Prop lives in Type0.
func (u Universe) Succ() Universe {
	switch u.Kind {
	case UniverseProp:
		return TypeN(0)
	case UniverseType:
		return TypeN(u.Level + 1)
	default:
		panic("unreachable")
	}
}

func (u Universe) Max(other Universe) Universe {
	switch {
	case u.IsProp():
		return other
	case other.IsProp():
		return u
	default:
		return TypeN(max(u.Level, other.Level))
	}
}

// IsSubtypeOf is cumulativity: Prop <= Type(n) and Type(i) <= Type(j) iff i <= j.
func (u Universe) IsSubtypeOf(other Universe) bool {
	switch {
	case u.IsProp():
		return true
	case other.IsProp():
		return false
	default:
		return u.Level <= other.Level
	}
}

func (u Universe) String() string {
	if u.IsProp() {
		return "Prop"
	}
	return fmt.Sprintf("Type%d", u.Level)
}
