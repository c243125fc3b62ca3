package check

import (
	"fmt"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/tree"
)

// KernelError is implemented by every rejection the kernel reports.
type KernelError interface {
	error
	_KernelError()
}

type KernelErrorBase struct{}

func (*KernelErrorBase) _KernelError() {}

// ========================

type UnboundVariable struct {
	KernelErrorBase
	Name string
}

func (e *UnboundVariable) Error() string {
	return fmt.Sprintf("unbound variable: %s", e.Name)
}

type NotAFunction struct {
	KernelErrorBase
	Type tree.Term
}

func (e *NotAFunction) Error() string {
	return fmt.Sprintf("not a function type: %v", e.Type)
}

type NotAnInductive struct {
	KernelErrorBase
	Type tree.Term
}

func (e *NotAnInductive) Error() string {
	return fmt.Sprintf("not an inductive type: %v", e.Type)
}

type InvalidMotive struct {
	KernelErrorBase
	Reason string
}

func (e *InvalidMotive) Error() string {
	return fmt.Sprintf("invalid motive: %s", e.Reason)
}

type WrongNumberOfCases struct {
	KernelErrorBase
	Expected int
	Found    int
}

func (e *WrongNumberOfCases) Error() string {
	return fmt.Sprintf("wrong number of cases: expected %d, found %d", e.Expected, e.Found)
}

type TypeMismatch struct {
	KernelErrorBase
	Expected tree.Term
	Found    tree.Term
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: expected %v, found %v", e.Expected, e.Found)
}

type NotAType struct {
	KernelErrorBase
	Term tree.Term
}

func (e *NotAType) Error() string {
	return fmt.Sprintf("not a type: %v", e.Term)
}

type PositivityViolation struct {
	KernelErrorBase
	Inductive   string
	Constructor string
	Reason      string
}

func (e *PositivityViolation) Error() string {
	return fmt.Sprintf("positivity violation in %s.%s: %s", e.Inductive, e.Constructor, e.Reason)
}

type TerminationViolation struct {
	KernelErrorBase
	FixName string
	Reason  string
}

func (e *TerminationViolation) Error() string {
	return fmt.Sprintf("termination violation in %s: %s", e.FixName, e.Reason)
}

type CannotInferHole struct {
	KernelErrorBase
}

func (*CannotInferHole) Error() string {
	return "cannot infer the type of a hole"
}

type AlreadyDefined struct {
	KernelErrorBase
	Name string
}

func (e *AlreadyDefined) Error() string {
	return fmt.Sprintf("already defined: %s", e.Name)
}

type InvalidConstructor struct {
	KernelErrorBase
	Inductive   string
	Constructor string
	Reason      string
}

func (e *InvalidConstructor) Error() string {
	return fmt.Sprintf("invalid constructor %s.%s: %s", e.Inductive, e.Constructor, e.Reason)
}
