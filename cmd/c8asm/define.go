package main

import (
	"strconv"
	"strings"

	"github.com/ezrec/c8asm/translate"
)

// parseDefine splits a NAME=VALUE definition. VALUE is decimal, or hex
// with a 0x prefix.
func parseDefine(item string) (name string, value uint16, err error) {
	name, text, ok := strings.Cut(item, "=")
	name = strings.TrimSpace(name)
	if !ok || len(name) == 0 {
		err = ErrDefine(item)
		return
	}

	v64, err := strconv.ParseUint(strings.TrimSpace(text), 0, 16)
	if err != nil {
		err = ErrDefine(item)
		return
	}

	value = uint16(v64)
	return
}

// ErrDefine is a malformed --define argument.
type ErrDefine string

func (err ErrDefine) Error() string {
	return translate.From("malformed definition \"%v\"", string(err))
}
