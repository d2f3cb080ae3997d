// Package translate formats user visible text through a locale aware printer.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/message"
)

// Fallback is the language used when the host reports no locale.
const Fallback = "en-US"

var printer *message.Printer

func init() {
	SetLocales(hostLocales()...)
}

func hostLocales() (locales []string) {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("intcode: locale: %v", err)
	}

	return
}

// SetLocales selects the printer for the first matching locale.
// An empty list selects the Fallback language.
func SetLocales(locales ...string) {
	if len(locales) == 0 {
		locales = []string{Fallback}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
