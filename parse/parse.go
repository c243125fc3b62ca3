package parse

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/files"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/source"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

// Error is a syntax error at a position of the input.
type Error struct {
	Path string
	Pos  source.Pos
	Msg  string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s:%v: %s", e.Path, e.Pos, e.Msg)
}

// ========================

type Parser interface {
	ParseFile(path string) (*source.FileDef, error)
	ParseSource(path string, data []byte) (*source.FileDef, error)
	ParseCommand(input string) (source.Command, error)
	ParseTerm(input string) (tree.Term, error)
}

func NewParser() Parser {
	return &parser{}
}

type parser struct{}

func (p *parser) ParseFile(path string) (*source.FileDef, error) {
	data, err := files.ReadScript(path)
	if err != nil {
		return nil, err
	}
	return p.ParseSource(path, data)
}

func (p *parser) ParseSource(path string, data []byte) (*source.FileDef, error) {
	s, err := newState(path, string(norm.NFC.Bytes(data)))
	if err != nil {
		return nil, err
	}

	file := &source.FileDef{Path: path}
	for !s.at(tokEOF) {
		cmd, err := s.command(true)
		if err != nil {
			return nil, err
		}
		file.Commands = append(file.Commands, cmd)
	}
	return file, nil
}

// ParseCommand parses a single command. The closing period may be left out.
func (p *parser) ParseCommand(input string) (source.Command, error) {
	s, err := newState("", norm.NFC.String(input))
	if err != nil {
		return nil, err
	}
	cmd, err := s.command(false)
	if err != nil {
		return nil, err
	}
	if !s.at(tokEOF) {
		return nil, s.unexpected("end of command")
	}
	return cmd, nil
}

func (p *parser) ParseTerm(input string) (tree.Term, error) {
	s, err := newState("", norm.NFC.String(input))
	if err != nil {
		return nil, err
	}
	t, err := s.term()
	if err != nil {
		return nil, err
	}
	if !s.at(tokEOF) {
		return nil, s.unexpected("end of term")
	}
	return t, nil
}

// ========================

// state is the cursor of one parse. bound counts the enclosing binders of
// each name so that references to them become variables.
type state struct {
	path  string
	input string
	toks  []token
	pos   int
	bound map[string]int
}

func newState(path, input string) (*state, error) {
	toks, err := lex(path, input)
	if err != nil {
		return nil, err
	}
	return &state{path: path, input: input, toks: toks, bound: map[string]int{}}, nil
}

func (s *state) peek() token {
	return s.toks[s.pos]
}

func (s *state) peekAt(n int) token {
	if s.pos+n >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}
	return s.toks[s.pos+n]
}

func (s *state) advance() token {
	tok := s.toks[s.pos]
	if tok.kind != tokEOF {
		s.pos++
	}
	return tok
}

func (s *state) at(kind tokenKind) bool {
	return s.peek().kind == kind
}

func (s *state) atKeyword(word string) bool {
	tok := s.peek()
	return tok.kind == tokIdent && tok.text == word
}

func (s *state) accept(kind tokenKind) bool {
	if s.at(kind) {
		s.advance()
		return true
	}
	return false
}

func (s *state) expect(kind tokenKind) (token, error) {
	if !s.at(kind) {
		return token{}, s.unexpected(kind.String())
	}
	return s.advance(), nil
}

func (s *state) expectKeyword(word string) error {
	if !s.atKeyword(word) {
		return s.unexpected(fmt.Sprintf("%q", word))
	}
	s.advance()
	return nil
}

// name reads a binder or declaration name.
func (s *state) name() (string, error) {
	tok := s.peek()
	if tok.kind != tokIdent || keywords[tok.text] {
		return "", s.unexpected("identifier")
	}
	s.advance()
	return tok.text, nil
}

func (s *state) errorf(pos source.Pos, format string, args ...any) error {
	return &Error{Path: s.path, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (s *state) unexpected(expected string) error {
	tok := s.peek()
	return s.errorf(tok.pos, "expected %s, found %v", expected, tok)
}

func (s *state) bind(names ...string) {
	for _, name := range names {
		s.bound[name]++
	}
}

func (s *state) unbind(names ...string) {
	for _, name := range names {
		s.bound[name]--
		if s.bound[name] == 0 {
			delete(s.bound, name)
		}
	}
}
