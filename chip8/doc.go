// Package chip8 implements the operand model and instruction catalog of the
// CHIP-8 virtual machine.
//
// The machine has sixteen 8-bit general registers (V0-VF), a 12-bit index
// register (I), a delay timer (DT), a sound timer (ST), a hexadecimal keypad
// and a monochrome bitmap display. Every instruction is a single big-endian
// 16-bit word, with a 4-bit family nibble in bits 12-15.
//
// Each mnemonic accepts a fixed set of operand shapes. Parse validates an
// argument list against those shapes, Resolve replaces label references with
// addresses, and Encode packs the resolved operands into an Opcode.
package chip8
