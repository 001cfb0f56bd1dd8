// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package l10n routes user-facing message text through a locale matched
// printer, so errors and reports follow the host language when a
// catalog entry exists.
package l10n

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer *message.Printer
	tag     language.Tag
)

func init() {
	register()

	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("lumen: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	tag = message.MatchLanguage(locales...)
	printer = message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Language returns the language tag selected at startup.
func Language() language.Tag {
	return tag
}

// printerFor returns a printer for a specific language.
func printerFor(lang language.Tag) *message.Printer {
	return message.NewPrinter(lang)
}
