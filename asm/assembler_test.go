package asm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/c8asm/chip8"
)

func assemble(t *testing.T, program []string) (prog *Program) {
	asm := &Assembler{}

	prog, err := asm.Assemble(strings.Join(program, "\n"))
	assert.NoError(t, err)
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestAssemble_Empty(t *testing.T) {
	assert := assert.New(t)

	code, err := Assemble("")
	assert.NoError(err)
	assert.Empty(code)

	code, err = Assemble("// nothing here\n\n   \n")
	assert.NoError(err)
	assert.Empty(code)
}

func TestAssemble_Cls(t *testing.T) {
	assert := assert.New(t)

	code, err := Assemble("CLS")
	assert.NoError(err)
	assert.Equal([]byte{0x00, 0xE0}, code)
}

func TestAssemble_Load(t *testing.T) {
	assert := assert.New(t)

	code, err := Assemble("LD V0, 0x12")
	assert.NoError(err)
	assert.Equal([]byte{0x60, 0x12}, code)
}

func TestAssemble_Program(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"// Bounce a sprite across the screen",
		"START",
		"    CLS",
		"    LD V0, 0x00      // x",
		"    LD V1, 0x10      // y",
		"    LD I, SPRITE",
		"LOOP",
		"    DRW V0, V1, 0x5",
		"    ADD V0, 0x01",
		"    SE V0, 0x3B",
		"    JP LOOP",
		"    CALL DONE",
		"DONE",
		"    RET",
		"SPRITE",
	}

	prog := assemble(t, program)

	expected := []Opcode{
		{3, 0x200, "CLS", chip8.Instruction{Mnemonic: chip8.MNEMONIC_CLS}, 0x00E0},
		{4, 0x202, "LD V0, 0x00", chip8.Instruction{Mnemonic: chip8.MNEMONIC_LD,
			Args: [chip8.MAX_OPERANDS]chip8.Operand{chip8.Register(0), chip8.Value(0)}}, 0x6000},
		{5, 0x204, "LD V1, 0x10", chip8.Instruction{Mnemonic: chip8.MNEMONIC_LD,
			Args: [chip8.MAX_OPERANDS]chip8.Operand{chip8.Register(1), chip8.Value(0x10)}}, 0x6110},
		{6, 0x206, "LD I, SPRITE", chip8.Instruction{Mnemonic: chip8.MNEMONIC_LD,
			Args: [chip8.MAX_OPERANDS]chip8.Operand{{Kind: chip8.OPERAND_I}, chip8.Value(0x214)}}, 0xA214},
		{8, 0x208, "DRW V0, V1, 0x5", chip8.Instruction{Mnemonic: chip8.MNEMONIC_DRW,
			Args: [chip8.MAX_OPERANDS]chip8.Operand{chip8.Register(0), chip8.Register(1), chip8.Value(5)}}, 0xD015},
		{9, 0x20A, "ADD V0, 0x01", chip8.Instruction{Mnemonic: chip8.MNEMONIC_ADD,
			Args: [chip8.MAX_OPERANDS]chip8.Operand{chip8.Register(0), chip8.Value(1)}}, 0x7001},
		{10, 0x20C, "SE V0, 0x3B", chip8.Instruction{Mnemonic: chip8.MNEMONIC_SE,
			Args: [chip8.MAX_OPERANDS]chip8.Operand{chip8.Register(0), chip8.Value(0x3b)}}, 0x303B},
		{11, 0x20E, "JP LOOP", chip8.Instruction{Mnemonic: chip8.MNEMONIC_JP,
			Args: [chip8.MAX_OPERANDS]chip8.Operand{chip8.Value(0x208)}}, 0x1208},
		{12, 0x210, "CALL DONE", chip8.Instruction{Mnemonic: chip8.MNEMONIC_CALL,
			Args: [chip8.MAX_OPERANDS]chip8.Operand{chip8.Value(0x212)}}, 0x2212},
		{14, 0x212, "RET", chip8.Instruction{Mnemonic: chip8.MNEMONIC_RET}, 0x00EE},
	}

	assert.Equal(expected, prog.Opcodes)
	assert.Equal(uint16(0x212), prog.Symbols.Label["DONE"])
	assert.Equal(uint16(0x214), prog.Symbols.Label["SPRITE"])
}

func TestAssemble_Forward(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"JP TARGET", // 0x200
		"CLS",       // 0x202
		"TARGET",
		"RET", // 0x204
	}

	code, err := Assemble(strings.Join(program, "\n"))
	assert.NoError(err)
	assert.Equal([]byte{0x12, 0x04, 0x00, 0xE0, 0x00, 0xEE}, code)
}

func TestAssemble_FirstLabel(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, []string{"FIRST", "SECOND", "JP FIRST", "JP second"})
	assert.Equal(uint16(0x200), prog.Symbols.Label["FIRST"])
	assert.Equal(uint16(0x200), prog.Symbols.Label["SECOND"])
	assert.Equal(chip8.Opcode(0x1200), prog.Opcodes[0].Code)
	assert.Equal(chip8.Opcode(0x1200), prog.Opcodes[1].Code)
}

func TestAssemble_ShiftDefault(t *testing.T) {
	assert := assert.New(t)

	one, err := Assemble("SHR V3")
	assert.NoError(err)
	two, err := Assemble("SHR V3, V3")
	assert.NoError(err)
	assert.Equal(two, one)
	assert.Equal([]byte{0x83, 0x36}, one)
}

func TestAssemble_CaseAndLineEndings(t *testing.T) {
	assert := assert.New(t)

	code, err := Assemble("loop\r\n  ld va, 0xff\r\n  jp LOOP\r\n")
	assert.NoError(err)
	assert.Equal([]byte{0x6A, 0xFF, 0x12, 0x00}, code)
}

func TestAssemble_Length(t *testing.T) {
	assert := assert.New(t)

	program := []string{"A", "CLS", "// x", "", "B:", "RET", "SKP V1", "C"}
	code, err := Assemble(strings.Join(program, "\n"))
	assert.NoError(err)
	assert.Len(code, 2*3)
}

func TestAssemble_UnknownMnemonic(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"CLS",
		"LDX V0, 0x01",
		"RET",
	}

	asm := &Assembler{}
	prog, err := asm.Assemble(strings.Join(program, "\n"))
	assert.Nil(prog)

	var syntax *ErrSyntax
	if assert.ErrorAs(err, &syntax) {
		assert.Equal(2, syntax.LineNo)
		assert.Equal("LDX V0, 0x01", syntax.Line)
	}

	var unknown chip8.ErrMnemonicUnknown
	assert.ErrorAs(err, &unknown)
	assert.Equal(chip8.ErrMnemonicUnknown("LDX"), unknown)

	var missing chip8.ErrLabelMissing
	assert.False(errors.As(err, &missing))

	code, err := Assemble(strings.Join(program, "\n"))
	assert.Error(err)
	assert.Nil(code)
}

func TestAssemble_UnresolvedLabel(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"CLS",
		"JP NOWHERE",
	}

	code, err := Assemble(strings.Join(program, "\n"))
	assert.Nil(code)
	assert.ErrorIs(err, chip8.ErrLabelMissing("NOWHERE"))

	var syntax *ErrSyntax
	if assert.ErrorAs(err, &syntax) {
		assert.Equal(2, syntax.LineNo)
	}

	var unknown chip8.ErrMnemonicUnknown
	assert.False(errors.As(err, &unknown))

	// Malformed literals fall back to label references.
	_, err = Assemble("LD V0, 0xQQ")
	assert.ErrorIs(err, chip8.ErrLabelMissing("0XQQ"))

	// ... and a label may look like a malformed register.
	code, err = Assemble("VZ\nJP VZ")
	assert.NoError(err)
	assert.Equal([]byte{0x12, 0x00}, code)
}

func TestAssemble_OperandShape(t *testing.T) {
	assert := assert.New(t)

	_, err := Assemble("CLS\nADD V0, DT // bad")

	var shape *chip8.ErrOperandShape
	if assert.ErrorAs(err, &shape) {
		assert.Equal(chip8.MNEMONIC_ADD, shape.Mnemonic)
		assert.Equal("V0, DT", shape.Args)
	}

	var syntax *ErrSyntax
	if assert.ErrorAs(err, &syntax) {
		assert.Equal(2, syntax.LineNo)
		assert.Equal("ADD V0, DT // bad", syntax.Line)
	}
}

func TestAssemble_ProgramSize(t *testing.T) {
	assert := assert.New(t)

	limit := (int(ADDR_LIMIT) - int(BASE_ADDR)) / int(OPCODE_SIZE)

	code, err := Assemble(strings.Repeat("CLS\n", limit))
	assert.NoError(err)
	assert.Len(code, limit*2)

	code, err = Assemble(strings.Repeat("CLS\n", limit+1))
	assert.ErrorIs(err, ErrProgramSize)
	assert.Nil(code)
}

func TestAssemble_LabelAtLimit(t *testing.T) {
	assert := assert.New(t)

	limit := (int(ADDR_LIMIT) - int(BASE_ADDR)) / int(OPCODE_SIZE)

	// Filling memory exactly is fine until a label is bound past the end.
	source := "JP HEAD\nHEAD\n" + strings.Repeat("CLS\n", limit-1)
	code, err := Assemble(source)
	assert.NoError(err)
	assert.Equal([]byte{0x12, 0x02}, code[:2])

	code, err = Assemble(source + "TAIL\n")
	assert.ErrorIs(err, ErrProgramSize)
	assert.ErrorContains(err, "TAIL")
	assert.Nil(code)
}

func TestAssemble_LabelRange(t *testing.T) {
	assert := assert.New(t)

	code, err := Assemble("SE V0, HERE\nHERE\nCLS")
	assert.Nil(code)

	var rangeErr *chip8.ErrLabelRange
	if assert.ErrorAs(err, &rangeErr) {
		assert.Equal("HERE", rangeErr.Label)
		assert.Equal(uint16(0x202), rangeErr.Addr)
		assert.Equal(uint16(0xff), rangeErr.Limit)
	}

	var syntax *ErrSyntax
	if assert.ErrorAs(err, &syntax) {
		assert.Equal(1, syntax.LineNo)
	}

	_, err = Assemble("START\nDRW V0, V1, START")
	assert.ErrorAs(err, &rangeErr)
}

func TestAssemble_ReservedLabel(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{"VA", "F", "B", "I", "K", "DT", "ST:", "[I]"} {
		code, err := Assemble(name + "\nCLS\nJP " + name)
		assert.Nil(code, name)

		var reserved ErrLabelReserved
		if assert.ErrorAs(err, &reserved, name) {
			assert.Equal(ErrLabelReserved(strings.TrimSuffix(name, ":")), reserved)
		}

		var syntax *ErrSyntax
		if assert.ErrorAs(err, &syntax, name) {
			assert.Equal(1, syntax.LineNo)
		}
	}
}

func TestAssemble_Logging(t *testing.T) {
	assert := assert.New(t)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	asm := &Assembler{Log: logger}
	_, err := asm.Assemble("START\nCLS\nJP START\n")
	assert.NoError(err)

	var lines []any
	for _, entry := range hook.AllEntries() {
		if entry.Data["code"] != nil {
			lines = append(lines, entry.Data["line"])
		}
	}
	assert.Equal([]any{2, 3}, lines)
	assert.Equal("JP 0x200", hook.LastEntry().Message)
	assert.Equal("1200", hook.LastEntry().Data["code"])
}

func TestProgram_WriteTo(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, []string{"CLS", "LD V0, 0x12", "DRW V0, V0, 0x1"})

	var buf bytes.Buffer
	n, err := prog.WriteTo(&buf)
	assert.NoError(err)
	assert.Equal(int64(6), n)
	assert.Equal([]byte{0x00, 0xE0, 0x60, 0x12, 0xD0, 0x01}, buf.Bytes())
}
