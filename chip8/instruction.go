package chip8

import (
	"strings"
)

// MAX_OPERANDS is the largest operand count of any instruction.
const MAX_OPERANDS = 3

// Instruction is a single parsed instruction. It is a value type: Resolve
// returns a copy, and the operands are never modified in place.
type Instruction struct {
	Mnemonic Mnemonic
	Args     [MAX_OPERANDS]Operand
}

// slot is the operand class accepted at one position of a shape.
type slot int

const (
	slotNone  = slot(iota) // absent
	slotV                  // Vx
	slotV0                 // V0 only
	slotAddr               // 12-bit address or label
	slotByte               // 8-bit immediate or label
	slotNibble             // 4-bit immediate or label
	slotI
	slotIMem
	slotDT
	slotST
	slotK
	slotF
	slotB
)

// accepts returns true if op can occupy the slot.
func (s slot) accepts(op Operand) bool {
	switch s {
	case slotNone:
		return op.Kind == OPERAND_NONE
	case slotV:
		return op.Kind == OPERAND_REGISTER
	case slotV0:
		return op.Kind == OPERAND_REGISTER && op.Value == 0
	case slotAddr, slotByte, slotNibble:
		return op.Kind == OPERAND_VALUE || op.Kind == OPERAND_LABEL
	case slotI:
		return op.Kind == OPERAND_I
	case slotIMem:
		return op.Kind == OPERAND_I_MEMORY
	case slotDT:
		return op.Kind == OPERAND_DT
	case slotST:
		return op.Kind == OPERAND_ST
	case slotK:
		return op.Kind == OPERAND_K
	case slotF:
		return op.Kind == OPERAND_F
	case slotB:
		return op.Kind == OPERAND_B
	}
	return false
}

// limit returns the largest value the slot's field holds.
func (s slot) limit() uint16 {
	switch s {
	case slotAddr:
		return 0xfff
	case slotByte:
		return 0xff
	case slotNibble:
		return 0xf
	}
	return 0xffff
}

// shape is one accepted operand combination and its encoder.
type shape struct {
	slots  [MAX_OPERANDS]slot
	encode func(a [MAX_OPERANDS]Operand) Opcode
}

func (sh *shape) matches(args [MAX_OPERANDS]Operand) bool {
	for n, s := range sh.slots {
		if !s.accepts(args[n]) {
			return false
		}
	}
	return true
}

// fixed encodes an instruction without operands.
func fixed(word uint16) shape {
	return shape{encode: func([MAX_OPERANDS]Operand) Opcode { return Opcode(word) }}
}

// nnn encodes a 12-bit value taken from the operand at index.
func nnn(family uint16, index int, slots ...slot) shape {
	sh := shape{encode: func(a [MAX_OPERANDS]Operand) Opcode {
		return MakeCodeNNN(family, a[index].Value)
	}}
	copy(sh.slots[:], slots)
	return sh
}

// xnn encodes Vx followed by an 8-bit value.
func xnn(family uint16) shape {
	return shape{
		slots: [MAX_OPERANDS]slot{slotV, slotByte},
		encode: func(a [MAX_OPERANDS]Operand) Opcode {
			return MakeCodeXNN(family, a[0].Value, a[1].Value)
		},
	}
}

// xy encodes Vx, Vy with a fixed low nibble.
func xy(family uint16, n uint16) shape {
	return shape{
		slots: [MAX_OPERANDS]slot{slotV, slotV},
		encode: func(a [MAX_OPERANDS]Operand) Opcode {
			return MakeCodeXYN(family, a[0].Value, a[1].Value, n)
		},
	}
}

// fx encodes the register at index with a fixed low byte.
func fx(family uint16, low uint16, index int, slots ...slot) shape {
	sh := shape{encode: func(a [MAX_OPERANDS]Operand) Opcode {
		return MakeCodeXNN(family, a[index].Value, low)
	}}
	copy(sh.slots[:], slots)
	return sh
}

// catalog lists the accepted shapes of every mnemonic.
var catalog = map[Mnemonic][]shape{
	MNEMONIC_CLS: {fixed(0x00E0)},
	MNEMONIC_RET: {fixed(0x00EE)},
	MNEMONIC_JP: {
		nnn(0x1, 0, slotAddr),
		nnn(0xB, 1, slotV0, slotAddr),
	},
	MNEMONIC_CALL: {nnn(0x2, 0, slotAddr)},
	MNEMONIC_SE:   {xnn(0x3), xy(0x5, 0x0)},
	MNEMONIC_SNE:  {xnn(0x4), xy(0x9, 0x0)},
	MNEMONIC_LD: {
		xnn(0x6),
		xy(0x8, 0x0),
		nnn(0xA, 1, slotI, slotAddr),
		fx(0xF, 0x07, 0, slotV, slotDT),
		fx(0xF, 0x0A, 0, slotV, slotK),
		fx(0xF, 0x15, 1, slotDT, slotV),
		fx(0xF, 0x18, 1, slotST, slotV),
		fx(0xF, 0x29, 1, slotF, slotV),
		fx(0xF, 0x33, 1, slotB, slotV),
		fx(0xF, 0x55, 1, slotIMem, slotV),
		fx(0xF, 0x65, 0, slotV, slotIMem),
	},
	MNEMONIC_OR:  {xy(0x8, 0x1)},
	MNEMONIC_AND: {xy(0x8, 0x2)},
	MNEMONIC_XOR: {xy(0x8, 0x3)},
	MNEMONIC_ADD: {
		xnn(0x7),
		xy(0x8, 0x4),
		fx(0xF, 0x1E, 1, slotI, slotV),
	},
	MNEMONIC_SUB:  {xy(0x8, 0x5)},
	MNEMONIC_SUBN: {xy(0x8, 0x7)},
	MNEMONIC_SHR:  {xy(0x8, 0x6)},
	MNEMONIC_SHL:  {xy(0x8, 0xE)},
	MNEMONIC_RND:  {xnn(0xC)},
	MNEMONIC_DRW: {{
		slots: [MAX_OPERANDS]slot{slotV, slotV, slotNibble},
		encode: func(a [MAX_OPERANDS]Operand) Opcode {
			return MakeCodeXYN(0xD, a[0].Value, a[1].Value, a[2].Value)
		},
	}},
	MNEMONIC_SKP:  {fx(0xE, 0x9E, 0, slotV)},
	MNEMONIC_SKNP: {fx(0xE, 0xA1, 0, slotV)},
}

// match finds the catalog entry matching the instruction operands.
func (inst Instruction) match() (sh *shape, ok bool) {
	shapes := catalog[inst.Mnemonic]
	for n := range shapes {
		if shapes[n].matches(inst.Args) {
			return &shapes[n], true
		}
	}
	return
}

// Parse parses the argument text of mnemonic m into an Instruction.
//
// A single-operand SHR or SHL shifts the register in place, and a
// single-operand RND uses the full 0xFF mask.
func Parse(m Mnemonic, args string) (inst Instruction, err error) {
	inst.Mnemonic = m

	ops := ParseOperands(args)
	if len(ops) > MAX_OPERANDS {
		err = &ErrOperandShape{Mnemonic: m, Args: strings.TrimSpace(args)}
		return
	}
	copy(inst.Args[:], ops)

	if inst.Args[1].Kind == OPERAND_NONE {
		switch m {
		case MNEMONIC_SHR, MNEMONIC_SHL:
			if inst.Args[0].Kind == OPERAND_REGISTER {
				inst.Args[1] = inst.Args[0]
			}
		case MNEMONIC_RND:
			if inst.Args[0].Kind == OPERAND_REGISTER {
				inst.Args[1] = Value(0xff)
			}
		}
	}

	if _, ok := inst.match(); !ok {
		err = &ErrOperandShape{Mnemonic: m, Args: strings.TrimSpace(args)}
		inst = Instruction{}
		return
	}

	return
}

// Symbols looks up label addresses.
type Symbols interface {
	Lookup(name string) (addr uint16, ok bool)
}

// Resolve returns a copy of the instruction with every label reference
// replaced by its address in symbols. An address too wide for the field
// the label fills is an *ErrLabelRange.
func (inst Instruction) Resolve(symbols Symbols) (out Instruction, err error) {
	sh, matched := inst.match()

	out = inst
	for n, arg := range out.Args {
		if arg.Kind != OPERAND_LABEL {
			continue
		}
		addr, ok := symbols.Lookup(arg.Label)
		if !ok {
			err = ErrLabelMissing(arg.Label)
			out = Instruction{}
			return
		}
		if matched && addr > sh.slots[n].limit() {
			err = &ErrLabelRange{Label: arg.Label, Addr: addr, Limit: sh.slots[n].limit()}
			out = Instruction{}
			return
		}
		out.Args[n] = Value(addr)
	}
	return
}

// Resolved returns true if no operand is a label reference.
func (inst Instruction) Resolved() bool {
	for _, arg := range inst.Args {
		if arg.Kind == OPERAND_LABEL {
			return false
		}
	}
	return true
}

// Encode packs a parsed and resolved instruction into its opcode. Literal
// values wider than their field are truncated to it.
//
// Encode panics with an *ErrEncode if the instruction still holds a label,
// or has an operand shape that Parse rejects.
func (inst Instruction) Encode() Opcode {
	if !inst.Resolved() {
		panic(&ErrEncode{Instruction: inst, Reason: f("unresolved label")})
	}

	sh, ok := inst.match()
	if !ok {
		panic(&ErrEncode{Instruction: inst, Reason: f("invalid operands")})
	}

	return sh.encode(inst.Args)
}

func (inst Instruction) String() string {
	var args []string
	for _, arg := range inst.Args {
		if arg.Kind == OPERAND_NONE {
			break
		}
		args = append(args, arg.String())
	}

	if len(args) == 0 {
		return inst.Mnemonic.String()
	}

	return inst.Mnemonic.String() + " " + strings.Join(args, ", ")
}
