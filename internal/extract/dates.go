package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Printed date forms accepted across document layouts: all-numeric
// DD/MM/YYYY and the month-abbreviation DD/MMM/YYYY used by several identity
// layouts.
var (
	numericDateRegex = regexp.MustCompile(`\b(\d{2})[/.\-](\d{2})[/.\-](\d{4})\b`)
	abbrevDateRegex  = regexp.MustCompile(`\b(\d{2})[/.\-]([A-Z]{3})[/.\-](\d{4})\b`)
)

// monthAbbrev maps Portuguese month abbreviations to month numbers.
var monthAbbrev = map[string]int{
	"JAN": 1, "FEV": 2, "MAR": 3, "ABR": 4,
	"MAI": 5, "JUN": 6, "JUL": 7, "AGO": 8,
	"SET": 9, "OUT": 10, "NOV": 11, "DEZ": 12,
}

// normalizeDate converts a printed date token to YYYY-MM-DD. Returns "" when
// the token is not a recognizable date.
func normalizeDate(token string) string {
	token = strings.TrimSpace(token)

	if m := numericDateRegex.FindStringSubmatch(token); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if !plausibleDate(day, month, year) {
			return ""
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	}

	if m := abbrevDateRegex.FindStringSubmatch(token); m != nil {
		month, ok := monthAbbrev[m[2]]
		if !ok {
			return ""
		}
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		if !plausibleDate(day, month, year) {
			return ""
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	}

	return ""
}

func plausibleDate(day, month, year int) bool {
	return day >= 1 && day <= 31 && month >= 1 && month <= 12 && year >= 1900 && year <= 2100
}

// findDateAfterLabel returns the first date token following any of the given
// labels, normalized to YYYY-MM-DD.
func findDateAfterLabel(text string, labels ...string) string {
	for _, label := range labels {
		idx := strings.Index(text, label)
		if idx < 0 {
			continue
		}
		window := text[idx:]
		if len(window) > len(label)+40 {
			window = window[:len(label)+40]
		}
		if m := numericDateRegex.FindString(window); m != "" {
			return normalizeDate(m)
		}
		if m := abbrevDateRegex.FindString(window); m != "" {
			return normalizeDate(m)
		}
	}
	return ""
}
