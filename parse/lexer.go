package parse

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/source"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokFloat
	tokString
	tokLParen
	tokRParen
	tokColon
	tokAssign
	tokComma
	tokDot
	tokBar
	tokDoubleArrow
	tokArrow
)

var tokenNames = map[tokenKind]string{
	tokEOF:         "end of input",
	tokIdent:       "identifier",
	tokInt:         "integer",
	tokFloat:       "float",
	tokString:      "string",
	tokLParen:      "'('",
	tokRParen:      "')'",
	tokColon:       "':'",
	tokAssign:      "':='",
	tokComma:       "','",
	tokDot:         "'.'",
	tokBar:         "'|'",
	tokDoubleArrow: "'=>'",
	tokArrow:       "'->'",
}

func (k tokenKind) String() string {
	return tokenNames[k]
}

type token struct {
	kind tokenKind
	text string
	pos  source.Pos
	// offset and end delimit the token in the input, in bytes.
	offset int
	end    int
}

func (t token) String() string {
	switch t.kind {
	case tokIdent, tokInt, tokFloat:
		return fmt.Sprintf("%q", t.text)
	case tokString:
		return fmt.Sprintf("string %q", t.text)
	default:
		return t.kind.String()
	}
}

// keywords cannot be used as names.
var keywords = map[string]bool{
	"fun":    true,
	"forall": true,
	"fix":    true,
	"match":  true,
	"return": true,
	"with":   true,
	"end":    true,
}

// ========================

type lexer struct {
	input string
	path  string
	off   int
	line  int
	col   int
}

func lex(path, input string) ([]token, error) {
	l := &lexer{input: input, path: path, line: 1, col: 1}
	var toks []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks, nil
		}
	}
}

func (l *lexer) errorf(pos source.Pos, format string, args ...any) error {
	return &Error{Path: l.path, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) pos() source.Pos {
	return source.Pos{Line: l.line, Column: l.col}
}

func (l *lexer) peek() rune {
	if l.off >= len(l.input) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.off:])
	return r
}

func (l *lexer) peekAt(n int) rune {
	off := l.off
	for ; n > 0 && off < len(l.input); n-- {
		_, size := utf8.DecodeRuneInString(l.input[off:])
		off += size
	}
	if off >= len(l.input) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(l.input[off:])
	return r
}

func (l *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.input[l.off:])
	l.off += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) atEnd() bool {
	return l.off >= len(l.input)
}

func (l *lexer) skipSpace() error {
	for !l.atEnd() {
		switch r := l.peek(); {
		case unicode.IsSpace(r):
			l.advance()
		case r == '(' && l.peekAt(1) == '*':
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		case r == '-' && l.peekAt(1) == '-':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

// skipBlockComment skips a possibly nested (* ... *) comment.
func (l *lexer) skipBlockComment() error {
	start := l.pos()
	depth := 0
	for !l.atEnd() {
		switch {
		case l.peek() == '(' && l.peekAt(1) == '*':
			l.advance()
			l.advance()
			depth++
		case l.peek() == '*' && l.peekAt(1) == ')':
			l.advance()
			l.advance()
			depth--
			if depth == 0 {
				return nil
			}
		default:
			l.advance()
		}
	}
	return l.errorf(start, "unterminated comment")
}

func (l *lexer) next() (token, error) {
	if err := l.skipSpace(); err != nil {
		return token{}, err
	}

	start, offset := l.pos(), l.off
	emit := func(kind tokenKind, text string) (token, error) {
		return token{kind: kind, text: text, pos: start, offset: offset, end: l.off}, nil
	}

	if l.atEnd() {
		return emit(tokEOF, "")
	}

	r := l.peek()
	switch {
	case isIdentStart(r):
		for !l.atEnd() && isIdentPart(l.peek()) {
			l.advance()
		}
		return emit(tokIdent, l.input[offset:l.off])
	case isDigit(r):
		return l.number(start, offset)
	case r == '-' && isDigit(l.peekAt(1)):
		l.advance()
		return l.number(start, offset)
	case r == '"':
		return l.text(start, offset)
	}

	l.advance()
	switch r {
	case '(':
		return emit(tokLParen, "(")
	case ')':
		return emit(tokRParen, ")")
	case ',':
		return emit(tokComma, ",")
	case '.':
		return emit(tokDot, ".")
	case '|':
		return emit(tokBar, "|")
	case ':':
		if l.peek() == '=' {
			l.advance()
			return emit(tokAssign, ":=")
		}
		return emit(tokColon, ":")
	case '=':
		if l.peek() == '>' {
			l.advance()
			return emit(tokDoubleArrow, "=>")
		}
	case '-':
		if l.peek() == '>' {
			l.advance()
			return emit(tokArrow, "->")
		}
	case '→':
		return emit(tokArrow, "->")
	case '⇒':
		return emit(tokDoubleArrow, "=>")
	case 'λ':
		return emit(tokIdent, "fun")
	case '∀':
		return emit(tokIdent, "forall")
	}
	return token{}, l.errorf(start, "unexpected character %q", r)
}

func (l *lexer) number(start source.Pos, offset int) (token, error) {
	kind := tokInt
	for !l.atEnd() && isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		kind = tokFloat
		l.advance()
		for !l.atEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}
	if r := l.peek(); r == 'e' || r == 'E' {
		next := l.peekAt(1)
		if isDigit(next) || (next == '+' || next == '-') && isDigit(l.peekAt(2)) {
			kind = tokFloat
			l.advance()
			l.advance()
			for !l.atEnd() && isDigit(l.peek()) {
				l.advance()
			}
		}
	}
	return token{kind: kind, text: l.input[offset:l.off], pos: start, offset: offset, end: l.off}, nil
}

func (l *lexer) text(start source.Pos, offset int) (token, error) {
	l.advance()
	var sb strings.Builder
	for {
		if l.atEnd() {
			return token{}, l.errorf(start, "unterminated string")
		}
		switch r := l.advance(); r {
		case '"':
			return token{kind: tokString, text: sb.String(), pos: start, offset: offset, end: l.off}, nil
		case '\\':
			if l.atEnd() {
				return token{}, l.errorf(start, "unterminated string")
			}
			switch e := l.advance(); e {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune(e)
			}
		default:
			sb.WriteRune(r)
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || (unicode.IsLetter(r) && r != 'λ')
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '\'' || (unicode.IsLetter(r) && r != 'λ') || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
