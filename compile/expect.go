package compile

import (
	"errors"
	"regexp"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/check"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/files"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/parse"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/source"
)

var expectPattern = regexp.MustCompile(`\(\*\s*expect:\s*([A-Za-z]+)\s*\*\)`)

// ReadExpectation returns the error kind a script declares with a
// "(* expect: Kind *)" comment, or "" when it declares none.
func ReadExpectation(path string) (string, error) {
	data, err := files.ReadScript(path)
	if err != nil {
		return "", err
	}
	if m := expectPattern.FindSubmatch(data); m != nil {
		return string(m[1]), nil
	}
	return "", nil
}

var errorKinds = map[string]func(error) bool{
	"UnboundVariable":      is[*check.UnboundVariable],
	"NotAFunction":         is[*check.NotAFunction],
	"NotAnInductive":       is[*check.NotAnInductive],
	"InvalidMotive":        is[*check.InvalidMotive],
	"WrongNumberOfCases":   is[*check.WrongNumberOfCases],
	"TypeMismatch":         is[*check.TypeMismatch],
	"NotAType":             is[*check.NotAType],
	"PositivityViolation":  is[*check.PositivityViolation],
	"TerminationViolation": is[*check.TerminationViolation],
	"CannotInferHole":      is[*check.CannotInferHole],
	"AlreadyDefined":       is[*check.AlreadyDefined],
	"InvalidConstructor":   is[*check.InvalidConstructor],
	"CycleError":           is[*source.CycleError],
	"ParseError":           is[*parse.Error],
}

func is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

// HasKind reports whether err, or an error it wraps, is of the named kind.
// Unknown kinds never match.
func HasKind(err error, kind string) bool {
	match, ok := errorKinds[kind]
	return ok && err != nil && match(err)
}
