package chip8

import (
	"strings"
)

// Mnemonic identifies an instruction family.
type Mnemonic int

const (
	MNEMONIC_CLS  = Mnemonic(iota) // Clear display.
	MNEMONIC_RET                   // Return from subroutine.
	MNEMONIC_JP                    // Jump.
	MNEMONIC_CALL                  // Call subroutine.
	MNEMONIC_SE                    // Skip if equal.
	MNEMONIC_SNE                   // Skip if not equal.
	MNEMONIC_LD                    // Load.
	MNEMONIC_OR                    // Bitwise or.
	MNEMONIC_AND                   // Bitwise and.
	MNEMONIC_XOR                   // Bitwise exclusive or.
	MNEMONIC_ADD                   // Add.
	MNEMONIC_SUB                   // Subtract, Vx = Vx - Vy.
	MNEMONIC_SUBN                  // Subtract, Vx = Vy - Vx.
	MNEMONIC_SHR                   // Shift right.
	MNEMONIC_SHL                   // Shift left.
	MNEMONIC_RND                   // Random byte under mask.
	MNEMONIC_DRW                   // Draw sprite.
	MNEMONIC_SKP                   // Skip if key pressed.
	MNEMONIC_SKNP                  // Skip if key not pressed.
)

var mnemonicNames = [...]string{
	MNEMONIC_CLS:  "CLS",
	MNEMONIC_RET:  "RET",
	MNEMONIC_JP:   "JP",
	MNEMONIC_CALL: "CALL",
	MNEMONIC_SE:   "SE",
	MNEMONIC_SNE:  "SNE",
	MNEMONIC_LD:   "LD",
	MNEMONIC_OR:   "OR",
	MNEMONIC_AND:  "AND",
	MNEMONIC_XOR:  "XOR",
	MNEMONIC_ADD:  "ADD",
	MNEMONIC_SUB:  "SUB",
	MNEMONIC_SUBN: "SUBN",
	MNEMONIC_SHR:  "SHR",
	MNEMONIC_SHL:  "SHL",
	MNEMONIC_RND:  "RND",
	MNEMONIC_DRW:  "DRW",
	MNEMONIC_SKP:  "SKP",
	MNEMONIC_SKNP: "SKNP",
}

// mnemonicMap maps upper-case mnemonic text to its Mnemonic.
var mnemonicMap = func() map[string]Mnemonic {
	m := make(map[string]Mnemonic, len(mnemonicNames))
	for n, name := range mnemonicNames {
		m[name] = Mnemonic(n)
	}
	return m
}()

// LookupMnemonic returns the Mnemonic named by word, ignoring case.
func LookupMnemonic(word string) (m Mnemonic, ok bool) {
	m, ok = mnemonicMap[strings.ToUpper(word)]
	return
}

// Mnemonics returns every known mnemonic, in catalog order.
func Mnemonics() (list []Mnemonic) {
	for n := range mnemonicNames {
		list = append(list, Mnemonic(n))
	}
	return
}

func (m Mnemonic) String() string {
	if m < 0 || int(m) >= len(mnemonicNames) {
		return f("Mnemonic(%d)", int(m))
	}
	return mnemonicNames[m]
}
