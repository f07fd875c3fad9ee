package chip8

import (
	"github.com/ezrec/c8asm/translate"
)

var f = translate.From

// ErrOperandShape is returned when a mnemonic is given an operand
// combination it does not accept.
type ErrOperandShape struct {
	Mnemonic Mnemonic
	Args     string
}

func (err *ErrOperandShape) Error() string {
	return f("%v: unsupported operands '%v'", err.Mnemonic, err.Args)
}

// ErrMnemonicUnknown is the first word of a line that names no instruction.
type ErrMnemonicUnknown string

func (em ErrMnemonicUnknown) Error() string {
	return f("mnemonic %v unknown", string(em))
}

// ErrLabelMissing is a label reference with no matching label definition.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrLabelRange is a label whose address does not fit the field it fills.
type ErrLabelRange struct {
	Label string
	Addr  uint16
	Limit uint16
}

func (err *ErrLabelRange) Error() string {
	return f("label %v at %#03x exceeds %#x", err.Label, err.Addr, err.Limit)
}

// ErrEncode is the panic value of Encode when it is handed an instruction
// that Parse and Resolve would never have produced.
type ErrEncode struct {
	Instruction Instruction
	Reason      string
}

func (err *ErrEncode) Error() string {
	return f("cannot encode '%v': %v", err.Instruction, err.Reason)
}
