package extract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	spaceRun = regexp.MustCompile(`[ \t]+`)

	// NFD decomposition followed by removal of combining marks turns
	// "FILIAÇÃO" into "FILIACAO" so every downstream pattern can match
	// plain ASCII.
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	ptTitle = cases.Title(language.BrazilianPortuguese)
)

// NormalizeText regularizes OCR output for the pipeline: uppercase, diacritics
// stripped, runs of spaces collapsed. Line structure is preserved because the
// identity extractor relies on line positions.
func NormalizeText(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = stripDiacritics(s)
	s = strings.ToUpper(s)

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func stripDiacritics(s string) string {
	clean, _, err := transform.String(deaccent, s)
	if err != nil {
		return s
	}
	return clean
}

// splitLines returns the non-empty trimmed lines of normalized text.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// titleCase renders an all-caps OCR name the way it is returned to callers,
// e.g. "DANIEL COELHO DA COSTA" -> "Daniel Coelho Da Costa".
func titleCase(s string) string {
	return ptTitle.String(strings.ToLower(strings.TrimSpace(s)))
}

// onlyDigits strips everything that is not an ASCII digit.
func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
