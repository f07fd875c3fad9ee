package chip8

import (
	"fmt"
	"strconv"
	"strings"
)

// OperandKind is the type tag of an Operand.
type OperandKind int

const (
	OPERAND_NONE     = OperandKind(iota) // Operand slot not supplied.
	OPERAND_REGISTER                     // General register V0-VF.
	OPERAND_VALUE                        // Immediate value or resolved address.
	OPERAND_I                            // Index register.
	OPERAND_I_MEMORY                     // Memory cell addressed by I, [I].
	OPERAND_DT                           // Delay timer.
	OPERAND_ST                           // Sound timer.
	OPERAND_K                            // Keypad wait.
	OPERAND_F                            // Font sprite table.
	OPERAND_B                            // BCD digits.
	OPERAND_LABEL                        // Unresolved label reference.
)

var operandKindNames = [...]string{
	OPERAND_NONE:     "none",
	OPERAND_REGISTER: "register",
	OPERAND_VALUE:    "value",
	OPERAND_I:        "I",
	OPERAND_I_MEMORY: "[I]",
	OPERAND_DT:       "DT",
	OPERAND_ST:       "ST",
	OPERAND_K:        "K",
	OPERAND_F:        "F",
	OPERAND_B:        "B",
	OPERAND_LABEL:    "label",
}

func (kind OperandKind) String() string {
	if kind < 0 || int(kind) >= len(operandKindNames) {
		return fmt.Sprintf("OperandKind(%d)", int(kind))
	}
	return operandKindNames[kind]
}

// Operand is a single typed instruction argument.
type Operand struct {
	Kind  OperandKind
	Value uint16 // Register index for OPERAND_REGISTER, value for OPERAND_VALUE.
	Label string // Name for OPERAND_LABEL.
}

// Register returns a general register operand.
func Register(index uint8) Operand {
	return Operand{Kind: OPERAND_REGISTER, Value: uint16(index & 0xf)}
}

// Value returns an immediate value operand.
func Value(value uint16) Operand {
	return Operand{Kind: OPERAND_VALUE, Value: value}
}

// Label returns a label reference operand.
func Label(name string) Operand {
	return Operand{Kind: OPERAND_LABEL, Label: name}
}

// keywordMap maps the upper-case special operand names.
var keywordMap = map[string]OperandKind{
	"K":   OPERAND_K,
	"DT":  OPERAND_DT,
	"ST":  OPERAND_ST,
	"I":   OPERAND_I,
	"[I]": OPERAND_I_MEMORY,
	"B":   OPERAND_B,
	"F":   OPERAND_F,
}

// isHex returns true if every byte of text is a hexadecimal digit.
func isHex(text string) bool {
	for n := range len(text) {
		c := text[n]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// ParseOperand converts one token into an Operand. It never fails: anything
// that is not a keyword, register or hex value is a label reference.
func ParseOperand(token string) (op Operand) {
	token = strings.TrimSpace(token)
	word := strings.ToUpper(token)

	if kind, ok := keywordMap[word]; ok {
		op.Kind = kind
		return
	}

	switch {
	case len(word) == 0:
		op.Kind = OPERAND_NONE
		return
	case len(word) == 2 && word[0] == 'V' && isHex(word[1:]):
		index, _ := strconv.ParseUint(word[1:], 16, 8)
		op = Register(uint8(index))
		return
	case len(word) > 2 && len(word) <= 6 && word[:2] == "0X" && isHex(word[2:]):
		value, _ := strconv.ParseUint(word[2:], 16, 16)
		op = Value(uint16(value))
		return
	}

	op = Label(token)
	return
}

// ParseOperands strips a trailing // comment from text and parses each
// comma separated token. Missing operands are not reported here; callers
// index past the end as OPERAND_NONE.
func ParseOperands(text string) (ops []Operand) {
	text, _, _ = strings.Cut(text, "//")
	for _, token := range strings.Split(text, ",") {
		ops = append(ops, ParseOperand(token))
	}
	return
}

func (op Operand) String() string {
	switch op.Kind {
	case OPERAND_NONE:
		return ""
	case OPERAND_REGISTER:
		return fmt.Sprintf("V%X", op.Value&0xf)
	case OPERAND_VALUE:
		return fmt.Sprintf("0x%03X", op.Value)
	case OPERAND_LABEL:
		return op.Label
	default:
		return op.Kind.String()
	}
}
