// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package translate formats user-facing messages for the current locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats messages for the selected language.
var printer *message.Printer

// init selects the best match among the user's system locales.
func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("c8asm: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// SetLanguage overrides the system locale with a BCP 47 language tag.
func SetLanguage(tag string) (err error) {
	lang, err := language.Parse(tag)
	if err != nil {
		return
	}

	printer = message.NewPrinter(lang)
	return
}

// From formats args with key, an en-US fmt-style format string, using the
// message catalog of the selected language. Keys without a translation
// format as written.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
