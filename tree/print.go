package tree

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

func (t *Sort) String() string {
	return t.Universe.String()
}

func (t *Var) String() string {
	return t.Name
}

func (t *Global) String() string {
	return t.Name
}

// Non-dependent products print as arrows; a product in domain position is
// parenthesized since arrows associate to the right.
func (t *Pi) String() string {
	if t.Param == Placeholder || !Occurs(t.Param, t.BodyType) {
		return fmt.Sprintf("%v -> %v", parenPi(t.ParamType), t.BodyType)
	}
	return fmt.Sprintf("forall %s : %v, %v", t.Param, t.ParamType, t.BodyType)
}

func (t *Lambda) String() string {
	return fmt.Sprintf("(fun %s : %v => %v)", t.Param, t.ParamType, t.Body)
}

func (t *App) String() string {
	return fmt.Sprintf("(%v %v)", parenPi(t.Func), parenPi(t.Arg))
}

func (t *Match) String() string {
	cases := lo.Map(t.Cases, func(c Term, _ int) string {
		return fmt.Sprintf("| %v ", c)
	})
	return fmt.Sprintf("(match %v return %v with %send)", t.Discriminant, t.Motive, strings.Join(cases, ""))
}

func (t *Fix) String() string {
	return fmt.Sprintf("(fix %s => %v)", t.Name, t.Body)
}

func (t *Lit) String() string {
	return t.Value.String()
}

func (*Hole) String() string {
	return "_"
}

func parenPi(t Term) string {
	if _, ok := t.(*Pi); ok {
		return fmt.Sprintf("(%v)", t)
	}
	return t.String()
}
