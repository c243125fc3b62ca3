package parse

import (
	"regexp"
	"strconv"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/source"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

var typeN = regexp.MustCompile(`^Type([0-9]+)$`)

// term ::= fun binders => term
//        | forall binders , term
//        | fix name => term
//        | match app return app with (| name name* => term)* [end]
//        | app [-> term]
func (s *state) term() (tree.Term, error) {
	switch {
	case s.atKeyword("fun"):
		return s.lambda()
	case s.atKeyword("forall"):
		return s.forall()
	case s.atKeyword("fix"):
		return s.fix()
	case s.atKeyword("match"):
		return s.match()
	default:
		return s.arrow()
	}
}

func (s *state) lambda() (tree.Term, error) {
	s.advance()
	binders, err := s.binders()
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(tokDoubleArrow); err != nil {
		return nil, err
	}
	body, err := s.term()
	if err != nil {
		return nil, err
	}
	s.unbind(binderNames(binders)...)
	return lambdas(binders, body), nil
}

func (s *state) forall() (tree.Term, error) {
	s.advance()
	binders, err := s.binders()
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(tokComma); err != nil {
		return nil, err
	}
	body, err := s.term()
	if err != nil {
		return nil, err
	}
	s.unbind(binderNames(binders)...)
	return pis(binders, body), nil
}

func (s *state) fix() (tree.Term, error) {
	s.advance()
	name, err := s.name()
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(tokDoubleArrow); err != nil {
		return nil, err
	}
	s.bind(name)
	body, err := s.term()
	if err != nil {
		return nil, err
	}
	s.unbind(name)
	return &tree.Fix{Name: name, Body: body}, nil
}

func (s *state) match() (tree.Term, error) {
	s.advance()
	discriminant, err := s.app()
	if err != nil {
		return nil, err
	}
	if err := s.expectKeyword("return"); err != nil {
		return nil, err
	}
	motive, err := s.app()
	if err != nil {
		return nil, err
	}
	if err := s.expectKeyword("with"); err != nil {
		return nil, err
	}

	var cases []tree.Term
	for s.accept(tokBar) {
		c, err := s.matchCase()
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	if s.atKeyword("end") {
		s.advance()
	}

	return &tree.Match{Discriminant: discriminant, Motive: motive, Cases: cases}, nil
}

// matchCase reads `C x y => t` as fun x y => t. The binder types are left
// for the checker to fill in from the constructor.
func (s *state) matchCase() (tree.Term, error) {
	if _, err := s.name(); err != nil {
		return nil, err
	}
	var names []string
	for s.atName() {
		names = append(names, s.advance().text)
	}
	if _, err := s.expect(tokDoubleArrow); err != nil {
		return nil, err
	}

	s.bind(names...)
	body, err := s.term()
	if err != nil {
		return nil, err
	}
	s.unbind(names...)

	for i := len(names) - 1; i >= 0; i-- {
		body = tree.NewLambda(names[i], tree.NewGlobal(tree.Placeholder), body)
	}
	return body, nil
}

func (s *state) arrow() (tree.Term, error) {
	left, err := s.app()
	if err != nil {
		return nil, err
	}
	if !s.accept(tokArrow) {
		return left, nil
	}
	right, err := s.term()
	if err != nil {
		return nil, err
	}
	return tree.Arrow(left, right), nil
}

func (s *state) app() (tree.Term, error) {
	fn, err := s.atom()
	if err != nil {
		return nil, err
	}
	for s.atAtom() {
		arg, err := s.atom()
		if err != nil {
			return nil, err
		}
		fn = tree.NewApp(fn, arg)
	}
	return fn, nil
}

func (s *state) atName() bool {
	tok := s.peek()
	return tok.kind == tokIdent && !keywords[tok.text]
}

func (s *state) atAtom() bool {
	switch s.peek().kind {
	case tokLParen, tokInt, tokFloat, tokString:
		return true
	default:
		return s.atName()
	}
}

func (s *state) atom() (tree.Term, error) {
	tok := s.peek()
	switch tok.kind {
	case tokLParen:
		s.advance()
		t, err := s.term()
		if err != nil {
			return nil, err
		}
		if _, err := s.expect(tokRParen); err != nil {
			return nil, err
		}
		return t, nil
	case tokInt:
		s.advance()
		n, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			return nil, s.errorf(tok.pos, "integer literal %s out of range", tok.text)
		}
		return tree.NewInt(n), nil
	case tokFloat:
		s.advance()
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, s.errorf(tok.pos, "invalid float literal %s", tok.text)
		}
		return tree.NewFloat(f), nil
	case tokString:
		s.advance()
		return tree.NewText(tok.text), nil
	}

	if !s.atName() {
		return nil, s.unexpected("term")
	}
	s.advance()

	switch name := tok.text; {
	case name == tree.Placeholder:
		return &tree.Hole{}, nil
	case name == "Prop":
		return tree.NewSort(tree.Prop), nil
	case name == "Type":
		if lvl := s.peek(); lvl.kind == tokInt && lvl.text[0] != '-' {
			s.advance()
			n, err := strconv.Atoi(lvl.text)
			if err != nil {
				return nil, s.errorf(lvl.pos, "universe level %s out of range", lvl.text)
			}
			return tree.NewSort(tree.TypeN(n)), nil
		}
		return tree.NewSort(tree.TypeN(0)), nil
	case typeN.MatchString(name):
		n, err := strconv.Atoi(name[len("Type"):])
		if err != nil {
			return nil, s.errorf(tok.pos, "universe level %s out of range", name)
		}
		return tree.NewSort(tree.TypeN(n)), nil
	case s.bound[name] > 0:
		return tree.NewVar(name), nil
	default:
		return tree.NewGlobal(name), nil
	}
}

// ========================

// binders reads either `x y : T` or one or more groups `(x y : T)`. The
// names are left bound for the caller to unbind.
func (s *state) binders() ([]source.Binder, error) {
	if !s.at(tokLParen) {
		return s.binderGroup()
	}
	var result []source.Binder
	for s.accept(tokLParen) {
		group, err := s.binderGroup()
		if err != nil {
			return nil, err
		}
		if _, err := s.expect(tokRParen); err != nil {
			return nil, err
		}
		result = append(result, group...)
	}
	return result, nil
}

// groupedBinders reads zero or more `(x y : T)` groups.
func (s *state) groupedBinders() ([]source.Binder, error) {
	if !s.at(tokLParen) {
		return nil, nil
	}
	return s.binders()
}

func (s *state) binderGroup() ([]source.Binder, error) {
	var names []string
	for s.atName() {
		names = append(names, s.advance().text)
	}
	if len(names) == 0 {
		return nil, s.unexpected("binder name")
	}
	if _, err := s.expect(tokColon); err != nil {
		return nil, err
	}
	ty, err := s.term()
	if err != nil {
		return nil, err
	}
	s.bind(names...)

	group := make([]source.Binder, len(names))
	for i, name := range names {
		group[i] = source.Binder{Name: name, Type: ty}
	}
	return group, nil
}

func binderNames(binders []source.Binder) []string {
	names := make([]string, len(binders))
	for i, b := range binders {
		names[i] = b.Name
	}
	return names
}

func lambdas(binders []source.Binder, body tree.Term) tree.Term {
	for i := len(binders) - 1; i >= 0; i-- {
		body = tree.NewLambda(binders[i].Name, binders[i].Type, body)
	}
	return body
}

func pis(binders []source.Binder, body tree.Term) tree.Term {
	for i := len(binders) - 1; i >= 0; i-- {
		body = tree.NewPi(binders[i].Name, binders[i].Type, body)
	}
	return body
}
