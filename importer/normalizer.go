package importer

import (
	"fmt"
	"strings"

	"github.com/araddon/dateparse"
)

// NormalizeDate coerces whatever the spreadsheet cell held into
// YYYY-MM-DD. Empty input stays empty; an unparseable value is returned
// verbatim so the validator can report it against the original text.
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	// Source files carry day-first dates (31.12.2024).
	t, err := dateparse.ParseAny(raw, dateparse.PreferMonthFirst(false))
	if err != nil {
		return raw
	}
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), t.Month(), t.Day())
}
