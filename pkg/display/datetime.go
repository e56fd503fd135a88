package display

import (
	"fmt"
	"strconv"
	"time"

	"niti/internal/ports/output"
)

// Formatter renders event dates with one fixed timezone and locale so that
// every endpoint shows the same strings for the same instant.
type Formatter struct {
	loc    *time.Location
	months [12]string
}

// NewFormatter resolves the short month names for locale through tr
// (keys month.short.1 to month.short.12). A month the bundle does not know
// falls back to its English abbreviation.
func NewFormatter(loc *time.Location, tr output.Translator, locale string) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	f := &Formatter{loc: loc}
	for i := range f.months {
		m := time.Month(i + 1)
		fallback := m.String()[:3]
		if tr == nil {
			f.months[i] = fallback
			continue
		}
		key := "month.short." + strconv.Itoa(i+1)
		name := tr.T(locale, key, nil)
		if name == "" || name == key {
			name = fallback
		}
		f.months[i] = name
	}
	return f
}

// Location is the timezone every formatted value is expressed in.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// Date formats t as "2 нояб." (day, short month).
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.In(f.loc)
	return fmt.Sprintf("%d %s", t.Day(), f.months[t.Month()-1])
}

// Time formats t on a 24h clock, e.g. "21:00".
func (f *Formatter) Time(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.loc).Format("15:04")
}

// Slot formats a lineup set as "21:00 - 23:00", or "21:00" with no end.
func (f *Formatter) Slot(start, end time.Time) string {
	if end.IsZero() {
		return f.Time(start)
	}
	return f.Time(start) + " - " + f.Time(end)
}
