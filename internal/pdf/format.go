package pdf

import (
	"fmt"
	"time"
)

// parseDate accepts the two encodings the forms produce: bare ISO dates from
// the date pickers and RFC 3339 timestamps from the store.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatLongDate renders a date as "February 25, 2025". Empty or unparseable
// input renders as an empty string so absent fields are omitted from the
// document instead of failing the render.
func FormatLongDate(s string) string {
	t, ok := parseDate(s)
	if !ok {
		return ""
	}
	return t.Format("January 2, 2006")
}

// DaySentence renders the issue date as the certificate's day sentence, e.g.
// "25th day        February        2025". The wide gaps span the blanks in
// the template's preprinted ruling.
func DaySentence(s string) string {
	t, ok := parseDate(s)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s day        %s        %d", ordinal(t.Day()), t.Month(), t.Year())
}

// ordinal appends the English ordinal suffix. Values ending in 11-13 take
// "th" regardless of the final digit.
func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
