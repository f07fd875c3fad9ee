package asm

import (
	"fmt"
	"maps"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/c8asm/internal"
)

const (
	BASE_ADDR   = uint16(0x200)  // Load address of every program.
	ADDR_LIMIT  = uint32(0x1000) // End of the 12-bit address space.
	OPCODE_SIZE = uint16(2)      // Bytes per instruction.
)

// SymbolTable maps label names to the address of the instruction that
// follows them.
type SymbolTable struct {
	Label map[string]uint16 // Label addresses, keyed by upper case name.
	End   uint32            // Address after the last instruction.
}

// Lookup returns the address of a label, ignoring case.
func (st *SymbolTable) Lookup(name string) (addr uint16, ok bool) {
	addr, ok = st.Label[labelKey(name)]
	return
}

// Names returns the label names in address order, ties broken by name.
func (st *SymbolTable) Names() (names []string) {
	names = slices.Collect(maps.Keys(st.Label))
	slices.SortFunc(names, func(a, b string) int {
		if st.Label[a] != st.Label[b] {
			return int(st.Label[a]) - int(st.Label[b])
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
	return
}

// ResolveLabels scans source for label lines, using the standard logger.
func ResolveLabels(source string) *SymbolTable {
	return (&Assembler{}).ResolveLabels(source)
}

// ResolveLabels scans source once, assigning each label line the address of
// the next instruction line. A label after the last instruction gets the
// end address. Redefined labels keep their last address.
func (asm *Assembler) ResolveLabels(source string) (st *SymbolTable) {
	log := asm.logger()

	st = &SymbolTable{
		Label: make(map[string]uint16),
	}
	offset := uint32(BASE_ADDR)

	for lineno, text := range internal.Lines(source) {
		line := classify(text)
		switch line.Kind {
		case LINE_INSTRUCTION:
			offset += uint32(OPCODE_SIZE)
		case LINE_LABEL:
			if prior, ok := st.Label[line.Label]; ok {
				log.WithFields(logrus.Fields{
					"line":  lineno,
					"label": line.Label,
					"prior": fmt.Sprintf("%#03x", prior),
				}).Warn(f("label redefined"))
			}
			st.Label[line.Label] = uint16(offset)
			log.WithFields(logrus.Fields{
				"line":  lineno,
				"label": line.Label,
				"addr":  fmt.Sprintf("%#03x", uint16(offset)),
			}).Debug(f("label"))
		}
	}

	st.End = offset

	return
}
