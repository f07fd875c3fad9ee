// Package asm is a two pass assembler for CHIP-8 source text.
//
// The first pass scans the source for label lines and builds a SymbolTable
// of label addresses, starting at BASE_ADDR and advancing two bytes per
// instruction line. The second pass parses, resolves and encodes every
// instruction line into a Program, whose Binary() is the loadable image.
//
// Source syntax is one instruction or label per line. Comments start with
// "//" outside of expressions. Mnemonics, registers and labels are case
// insensitive; a label may not be spelled like a register, operand keyword
// or hex value. Arguments may contain $(...) constant expressions, evaluated
// as Starlark integer expressions over the labels and predefined constants.
//
// A label fills whichever field it is given, and must fit it: an address
// used as a byte or nibble operand is an error rather than truncated.
package asm
