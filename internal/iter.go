package internal

import (
	"iter"
	"strings"
)

// Lines iterates over the lines of a source text, yielding 1-based line
// numbers. Line terminators ("\n" or "\r\n") are not included.
func Lines(text string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		lineno := 0
		for line := range strings.Lines(text) {
			lineno++
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if !yield(lineno, line) {
				return // Stop if the consumer stops
			}
		}
	}
}
