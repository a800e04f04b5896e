// Package format turns raw content values into presentation-ready text.
// Every function here is pure and total: bad input is passed through, never rejected.
package format

import (
	"strconv"

	"github.com/Amorizz/portfolio/internal/content"
)

// RangeSeparator joins the two ends of a date range.
const RangeSeparator = " – "

var monthNames = map[content.Lang][12]string{
	content.English: {"Jan.", "Feb.", "Mar.", "Apr.", "May", "June", "July", "Aug.", "Sept.", "Oct.", "Nov.", "Dec."},
	content.French:  {"Janv.", "Fév.", "Mars", "Avr.", "Mai", "Juin", "Juil.", "Août", "Sept.", "Oct.", "Nov.", "Déc."},
}

var presentWords = map[content.Lang]string{
	content.English: "Present",
	content.French:  "Présent",
}

// Present returns the localized word for an ongoing end date.
func Present(lang content.Lang) string {
	if w, ok := presentWords[lang]; ok {
		return w
	}
	return presentWords[content.DefaultLang]
}

// FormatDate renders an ISO calendar date as "<abbreviated month> <year>".
// An empty date means "ongoing" and yields the localized Present word.
// Input that is not a recognizable date is returned unchanged.
func FormatDate(date string, lang content.Lang) string {
	if date == "" {
		return Present(lang)
	}

	t, ok := content.ParseDate(date)
	if !ok {
		return date
	}

	months, ok := monthNames[lang]
	if !ok {
		months = monthNames[content.DefaultLang]
	}
	return months[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// FormatRange renders "<start> – <end>", where the end is Present when current is set or end is empty.
// An entry with no start date renders only its end.
func FormatRange(start, end string, current bool, lang content.Lang) string {
	last := Present(lang)
	if !current && end != "" {
		last = FormatDate(end, lang)
	}
	if start == "" {
		return last
	}
	return FormatDate(start, lang) + RangeSeparator + last
}
