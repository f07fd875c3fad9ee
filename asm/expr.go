package asm

import (
	"fmt"
	"regexp"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// exprPattern matches a $(...) constant expression.
var exprPattern = regexp.MustCompile(`\$\([^\$]*\)`)

// predeclared builds the names visible to expressions: the system
// constants, then predefines, then labels.
func (asm *Assembler) predeclared(st *SymbolTable) starlark.StringDict {
	pred := starlark.StringDict{
		"BASE": starlark.MakeInt(int(BASE_ADDR)),
		"END":  starlark.MakeInt(int(st.End)),
	}
	for name, value := range asm.predefine {
		pred[name] = starlark.MakeInt(int(value))
	}
	for name, addr := range st.Label {
		pred[name] = starlark.MakeInt(int(addr))
	}
	return pred
}

// evaluate evaluates a single expression to an unsigned 16-bit value.
func evaluate(expr string, pred starlark.StringDict) (value uint16, err error) {
	thread := &starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 || st_int64 > 0xffff {
		err = ErrExpression(expr)
		return
	}
	value = uint16(st_int64)
	return
}

// expand replaces every $(...) expression in args by its hex value.
func (asm *Assembler) expand(args string, st *SymbolTable) (out string, err error) {
	if !exprPattern.MatchString(args) {
		out = args
		return
	}

	pred := asm.predeclared(st)
	out = exprPattern.ReplaceAllStringFunc(args, func(str string) string {
		if err != nil {
			return str
		}
		value, _err := evaluate(str[2:len(str)-1], pred)
		if _err != nil {
			err = _err
			return str
		}
		return fmt.Sprintf("0x%X", value)
	})
	if err != nil {
		out = ""
	}
	return
}
