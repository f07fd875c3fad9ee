package asm

import (
	"strings"
	"unicode"

	"github.com/ezrec/c8asm/chip8"
)

// lineKind classifies a source line.
type lineKind int

const (
	LINE_BLANK       = lineKind(iota) // Blank or comment only.
	LINE_INSTRUCTION                  // Starts with a known mnemonic.
	LINE_LABEL                        // A single word naming the next address.
	LINE_RESERVED                     // A label spelled like a register, keyword or value.
	LINE_UNKNOWN                      // Anything else.
)

// sourceLine is a classified line of source text.
type sourceLine struct {
	Kind     lineKind
	Text     string         // Line without comment, trimmed.
	Word     string         // First word, upper case.
	Mnemonic chip8.Mnemonic // For LINE_INSTRUCTION.
	Args     string         // Text after the first word, trimmed.
	Label    string         // Symbol table key for LINE_LABEL.
}

// stripComment removes a trailing // comment. A // inside a $(...)
// expression is floor division, not a comment.
func stripComment(text string) string {
	depth := 0
	for n := 0; n < len(text); n++ {
		switch {
		case depth == 0 && strings.HasPrefix(text[n:], "$("):
			depth = 1
			n++
		case depth > 0 && text[n] == '(':
			depth++
		case depth > 0 && text[n] == ')':
			depth--
		case depth == 0 && strings.HasPrefix(text[n:], "//"):
			return strings.TrimSpace(text[:n])
		}
	}
	return strings.TrimSpace(text)
}

// labelKey normalizes label text for the symbol table.
func labelKey(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// classify splits and classifies one line of source. Both assembler passes
// classify lines the same way, so label addresses match the emitted code.
func classify(text string) (line sourceLine) {
	line.Text = stripComment(text)
	if len(line.Text) == 0 {
		line.Kind = LINE_BLANK
		return
	}

	word, args := line.Text, ""
	if n := strings.IndexFunc(line.Text, unicode.IsSpace); n >= 0 {
		word, args = line.Text[:n], strings.TrimSpace(line.Text[n:])
	}
	line.Word = strings.ToUpper(word)
	line.Args = args

	if m, ok := chip8.LookupMnemonic(line.Word); ok {
		line.Kind = LINE_INSTRUCTION
		line.Mnemonic = m
		return
	}

	if len(args) == 0 && !strings.Contains(word, ",") {
		label := strings.TrimSuffix(word, ":")
		if len(label) > 0 {
			line.Kind = LINE_LABEL
			line.Label = labelKey(label)
			if chip8.ParseOperand(label).Kind != chip8.OPERAND_LABEL {
				line.Kind = LINE_RESERVED
			}
			return
		}
	}

	line.Kind = LINE_UNKNOWN
	return
}
