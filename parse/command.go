package parse

import (
	"github.com/Brahmastra-Labs/logicaffeine-sub001/source"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

// command reads one Vernacular command. With terminated unset the closing
// period is optional at the end of the input.
func (s *state) command(terminated bool) (source.Command, error) {
	start := s.peek()
	if start.kind != tokIdent {
		return nil, s.unexpected("command")
	}

	var cmd source.Command
	var err error
	switch start.text {
	case "Definition":
		cmd, err = s.definition()
	case "Axiom":
		cmd, err = s.axiom()
	case "Inductive":
		cmd, err = s.inductive()
	case "Check":
		s.advance()
		var t tree.Term
		if t, err = s.term(); err == nil {
			cmd = &source.Check{Term: t}
		}
	case "Eval":
		s.advance()
		var t tree.Term
		if t, err = s.term(); err == nil {
			cmd = &source.Eval{Term: t}
		}
	case "Hint":
		s.advance()
		var name string
		if name, err = s.name(); err == nil {
			cmd = &source.Hint{Name: name}
		}
	default:
		return nil, s.errorf(start.pos, "unknown command %q", start.text)
	}
	if err != nil {
		return nil, err
	}

	base := commandBase(cmd)
	base.Pos = start.pos
	switch {
	case s.accept(tokDot):
		base.Text = s.input[start.offset:s.toks[s.pos-1].end]
	case !terminated && s.at(tokEOF):
		base.Text = s.input[start.offset:s.toks[s.pos-1].end] + "."
	default:
		return nil, s.unexpected("'.'")
	}
	return cmd, nil
}

func commandBase(cmd source.Command) *source.CommandBase {
	switch cmd := cmd.(type) {
	case *source.Definition:
		return &cmd.CommandBase
	case *source.Axiom:
		return &cmd.CommandBase
	case *source.Inductive:
		return &cmd.CommandBase
	case *source.Check:
		return &cmd.CommandBase
	case *source.Eval:
		return &cmd.CommandBase
	case *source.Hint:
		return &cmd.CommandBase
	default:
		panic("unreachable")
	}
}

// Definition name (x : A)* [: T] := body.
func (s *state) definition() (source.Command, error) {
	s.advance()
	name, err := s.name()
	if err != nil {
		return nil, err
	}
	binders, err := s.groupedBinders()
	if err != nil {
		return nil, err
	}

	var ty tree.Term
	if s.accept(tokColon) {
		if ty, err = s.term(); err != nil {
			return nil, err
		}
		ty = pis(binders, ty)
	}
	if _, err := s.expect(tokAssign); err != nil {
		return nil, err
	}
	body, err := s.term()
	if err != nil {
		return nil, err
	}
	s.unbind(binderNames(binders)...)

	return &source.Definition{Name: name, Type: ty, Body: lambdas(binders, body)}, nil
}

// Axiom name (x : A)* : T.
func (s *state) axiom() (source.Command, error) {
	s.advance()
	name, err := s.name()
	if err != nil {
		return nil, err
	}
	binders, err := s.groupedBinders()
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(tokColon); err != nil {
		return nil, err
	}
	ty, err := s.term()
	if err != nil {
		return nil, err
	}
	s.unbind(binderNames(binders)...)

	return &source.Axiom{Name: name, Type: pis(binders, ty)}, nil
}

// Inductive Name (A : T)* [: Sort] := [|] C : T (| C : T)*.
func (s *state) inductive() (source.Command, error) {
	s.advance()
	name, err := s.name()
	if err != nil {
		return nil, err
	}
	params, err := s.groupedBinders()
	if err != nil {
		return nil, err
	}

	cmd := &source.Inductive{Name: name, Params: params}
	if s.accept(tokColon) {
		if cmd.Sort, err = s.term(); err != nil {
			return nil, err
		}
	}
	if _, err := s.expect(tokAssign); err != nil {
		return nil, err
	}

	s.accept(tokBar)
	for s.atName() {
		ctor, err := s.constructor()
		if err != nil {
			return nil, err
		}
		cmd.Constructors = append(cmd.Constructors, ctor)
		if !s.accept(tokBar) {
			break
		}
	}
	s.unbind(binderNames(params)...)

	return cmd, nil
}

func (s *state) constructor() (source.Constructor, error) {
	name, err := s.name()
	if err != nil {
		return source.Constructor{}, err
	}
	if _, err := s.expect(tokColon); err != nil {
		return source.Constructor{}, err
	}
	ty, err := s.term()
	if err != nil {
		return source.Constructor{}, err
	}
	return source.Constructor{Name: name, Type: ty}, nil
}
