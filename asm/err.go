package asm

import (
	"errors"

	"github.com/ezrec/c8asm/translate"
)

var f = translate.From

var (
	ErrProgramSize = errors.New(f("program exceeds address space"))
)

// ErrSyntax locates an assembly error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrLabelReserved is a label line whose name operands would read as a
// register, keyword or value, so it could never be referenced.
type ErrLabelReserved string

func (err ErrLabelReserved) Error() string {
	return f("label %v is a reserved operand name", string(err))
}

// ErrExpression is a $(...) expression that did not evaluate to an
// unsigned 16-bit integer.
type ErrExpression string

func (err ErrExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
