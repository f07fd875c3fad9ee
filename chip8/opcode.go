package chip8

import (
	"encoding/binary"
	"fmt"
)

// Opcode is a single encoded 16-bit instruction word.
type Opcode uint16

// MakeCodeNNN creates an instruction with a 12-bit address field.
func MakeCodeNNN(family uint16, nnn uint16) Opcode {
	return Opcode(((family & 0xf) << 12) | (nnn & 0xfff))
}

// MakeCodeXNN creates an instruction with a register and an 8-bit field.
func MakeCodeXNN(family uint16, x uint16, nn uint16) Opcode {
	return Opcode(((family & 0xf) << 12) | ((x & 0xf) << 8) | (nn & 0xff))
}

// MakeCodeXYN creates an instruction with two registers and a 4-bit field.
func MakeCodeXYN(family uint16, x, y uint16, n uint16) Opcode {
	return Opcode(((family & 0xf) << 12) | ((x & 0xf) << 8) | ((y & 0xf) << 4) | (n & 0xf))
}

// Family returns the instruction family nibble, bits 12-15.
func (code Opcode) Family() uint16 {
	return (uint16(code) >> 12) & 0xf
}

// X returns the first register nibble, bits 8-11.
func (code Opcode) X() uint16 {
	return (uint16(code) >> 8) & 0xf
}

// Y returns the second register nibble, bits 4-7.
func (code Opcode) Y() uint16 {
	return (uint16(code) >> 4) & 0xf
}

// N returns the low nibble.
func (code Opcode) N() uint16 {
	return uint16(code) & 0xf
}

// NN returns the low byte.
func (code Opcode) NN() uint16 {
	return uint16(code) & 0xff
}

// NNN returns the 12-bit address field.
func (code Opcode) NNN() uint16 {
	return uint16(code) & 0xfff
}

// Bytes returns the opcode as it is stored in memory, most significant byte first.
func (code Opcode) Bytes() (data [2]byte) {
	binary.BigEndian.PutUint16(data[:], uint16(code))
	return
}

func (code Opcode) String() string {
	return fmt.Sprintf("%04X", uint16(code))
}
