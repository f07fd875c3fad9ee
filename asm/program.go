package asm

import (
	"bytes"
	"fmt"
	"io"
	"iter"

	"github.com/ezrec/c8asm/chip8"
)

// Opcode is one assembled source line.
type Opcode struct {
	LineNo      int               // Source line number, 1-based.
	Addr        uint16            // Load address.
	Line        string            // Source text without comment.
	Instruction chip8.Instruction // Resolved instruction.
	Code        chip8.Opcode      // Encoded word.
}

// Program is the result of assembling a source text.
type Program struct {
	Symbols *SymbolTable
	Opcodes []Opcode
}

// Debug returns the source line assembled at addr, or nil.
func (prog *Program) Debug(addr uint16) (op *Opcode) {
	if addr < BASE_ADDR || (addr-BASE_ADDR)%OPCODE_SIZE != 0 {
		return
	}

	index := int((addr - BASE_ADDR) / OPCODE_SIZE)
	if index < len(prog.Opcodes) {
		op = &prog.Opcodes[index]
	}

	return
}

// Codes iterates over the load address and opcode of every instruction.
func (prog *Program) Codes() iter.Seq2[uint16, chip8.Opcode] {
	return func(yield func(addr uint16, code chip8.Opcode) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Addr, op.Code) {
				return
			}
		}
	}
}

// Binary returns the program image, to be loaded at BASE_ADDR.
func (prog *Program) Binary() (bin []byte) {
	bin = make([]byte, 0, len(prog.Opcodes)*int(OPCODE_SIZE))
	for _, code := range prog.Codes() {
		data := code.Bytes()
		bin = append(bin, data[:]...)
	}

	return
}

// WriteTo writes the program image to w.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	return bytes.NewReader(prog.Binary()).WriteTo(w)
}

// Listing writes a human readable listing of the program to w: one line
// per instruction with its address, opcode and source, preceded by any
// labels bound to that address.
func (prog *Program) Listing(w io.Writer) (err error) {
	labels := map[uint16][]string{}
	if prog.Symbols != nil {
		for _, name := range prog.Symbols.Names() {
			addr := prog.Symbols.Label[name]
			labels[addr] = append(labels[addr], name)
		}
	}

	printLabels := func(addr uint16) (err error) {
		for _, name := range labels[addr] {
			_, err = fmt.Fprintf(w, "%s:\n", name)
			if err != nil {
				return
			}
		}
		return
	}

	end := BASE_ADDR
	for _, op := range prog.Opcodes {
		err = printLabels(op.Addr)
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, "%03X  %v  %4d  %v\n", op.Addr, op.Code, op.LineNo, op.Line)
		if err != nil {
			return
		}
		end = op.Addr + OPCODE_SIZE
	}

	err = printLabels(end)
	return
}
