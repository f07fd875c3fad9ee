// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/c8asm/chip8"
	"github.com/ezrec/c8asm/internal"
)

// Assembler is a two pass assembler for CHIP-8 source text.
type Assembler struct {
	Log logrus.FieldLogger // Logger for assembler actions. Defaults to the logrus standard logger.

	predefine map[string]uint16 // Expression constants.
}

// Predefine defines, or redefines, a constant visible to $(...) expressions.
func (asm *Assembler) Predefine(name string, value uint16) {
	if asm.predefine == nil {
		asm.predefine = map[string]uint16{}
	}
	asm.predefine[labelKey(name)] = value
}

// logger returns the configured logger.
func (asm *Assembler) logger() logrus.FieldLogger {
	if asm.Log == nil {
		return logrus.StandardLogger()
	}
	return asm.Log
}

// Assemble assembles source into its binary image.
func Assemble(source string) (code []byte, err error) {
	prog, err := (&Assembler{}).Assemble(source)
	if err != nil {
		return
	}

	code = prog.Binary()
	return
}

// Assemble assembles source text into a Program. On error no Program is
// returned; the error is an *ErrSyntax locating the failing line, unless the
// whole program is too large.
func (asm *Assembler) Assemble(source string) (prog *Program, err error) {
	log := asm.logger()

	st := asm.ResolveLabels(source)
	if st.End > ADDR_LIMIT {
		err = fmt.Errorf("%w: %#x > %#x", ErrProgramSize, st.End, ADDR_LIMIT)
		return
	}
	for _, name := range st.Names() {
		if addr := st.Label[name]; uint32(addr) >= ADDR_LIMIT {
			err = fmt.Errorf("%w: label %v at %#x", ErrProgramSize, name, addr)
			return
		}
	}

	var lineno int
	var text string

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: err}
		}
	}()

	prog = &Program{
		Symbols: st,
	}
	addr := BASE_ADDR

	for lineno, text = range internal.Lines(source) {
		line := classify(text)

		switch line.Kind {
		case LINE_BLANK, LINE_LABEL:
			continue
		case LINE_RESERVED:
			err = ErrLabelReserved(line.Label)
			return
		case LINE_UNKNOWN:
			err = chip8.ErrMnemonicUnknown(line.Word)
			return
		}

		var args string
		args, err = asm.expand(strings.ToUpper(line.Args), st)
		if err != nil {
			return
		}

		var inst chip8.Instruction
		inst, err = chip8.Parse(line.Mnemonic, args)
		if err != nil {
			return
		}

		inst, err = inst.Resolve(st)
		if err != nil {
			return
		}

		code := inst.Encode()

		log.WithFields(logrus.Fields{
			"line": lineno,
			"addr": fmt.Sprintf("%#03x", addr),
			"code": code.String(),
		}).Debug(inst.String())

		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo:      lineno,
			Addr:        addr,
			Line:        line.Text,
			Instruction: inst,
			Code:        code,
		})
		addr += OPCODE_SIZE
	}

	return
}
