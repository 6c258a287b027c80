package extract

import (
	"regexp"
	"strings"

	"github.com/carteiraIA/card-ocr-service/internal/models"
)

// IdentityExtractor is the single structural extractor for every regional
// variant of the government identity document. Regional differences are
// absorbed by layout-position heuristics instead of per-state code.
type IdentityExtractor struct{}

// NewIdentityExtractor creates the identity document extractor
func NewIdentityExtractor() *IdentityExtractor {
	return &IdentityExtractor{}
}

// Mandatory structural markers. The gate requires at least three of these
// plus one regional marker before the extractor accepts a text.
var identityMandatoryMarkers = []string{
	"REPUBLICA FEDERATIVA DO BRASIL",
	"CARTEIRA DE IDENTIDADE",
	"REGISTRO GERAL",
	"SECRETARIA",
	"FILIACAO",
	"NATURALIDADE",
}

var identityRegionalMarkers = []string{
	"SAO PAULO", "RIO DE JANEIRO", "MINAS GERAIS", "BAHIA", "PARANA",
	"RIO GRANDE DO SUL", "PERNAMBUCO", "CEARA", "SANTA CATARINA", "GOIAS",
	"ESPIRITO SANTO", "DISTRITO FEDERAL", "SSP", "PC-", "IIRGD", "DETRAN",
}

const identityGateMinMarkers = 3

// documentKeywords is the blocklist of header/label words: a line containing
// any of these is never a person name.
var documentKeywords = []string{
	"REPUBLICA", "FEDERATIVA", "BRASIL", "CARTEIRA", "IDENTIDADE",
	"REGISTRO", "GERAL", "SECRETARIA", "SEGURANCA", "PUBLICA", "FILIACAO",
	"NATURALIDADE", "NASCIMENTO", "EXPEDICAO", "ASSINATURA", "DIRETOR",
	"INSTITUTO", "IDENTIFICACAO", "VALIDA", "TERRITORIO", "NACIONAL",
	"DATA", "DOC", "ORIGEM", "COMARCA", "POLEGAR", "OBSERVACAO", "LEI",
	"CPF", "CNH", "TITULO", "ELEITOR", "VIA",
}

var (
	nameLabelRegex    = regexp.MustCompile(`(?m)^NOME[:\s]+([A-Z][A-Z ]{3,58}[A-Z])$`)
	personNameRegex   = regexp.MustCompile(`^[A-Z]+(?: [A-Z]+)+$`)
	rgTokenRegex      = regexp.MustCompile(`^\d{1,2}\.?\d{3}\.?\d{3}-?[\dX]{1,2}$`)
	rgInlineRegex     = regexp.MustCompile(`\b\d{1,2}\.?\d{3}\.?\d{3}-?[\dX]{1,2}\b`)
	cpfTokenRegex     = regexp.MustCompile(`\b\d{3}\.?\d{3}\.?\d{3}-?\d{2}\b`)
	authorityRegex    = regexp.MustCompile(`\b(SSP|PC|IIRGD|DETRAN|IGP|ITEP|PTC)[ /\-]?([A-Z]{2})?\b`)
	naturalnessRegex  = regexp.MustCompile(`(?m)NATURALIDADE[:\s]+([A-Z][A-Z \-]{2,40})$`)
	originLabelRegex  = regexp.MustCompile(`(?m)(?:DOC\.? ORIGEM|ORIGEM|COMARCA)[:\s]+([A-Z0-9][A-Z0-9 \-/.]{2,50})$`)
	nameBetweenRegex  = regexp.MustCompile(`\d\n([A-Z]+(?: [A-Z]+)+)\n(?:FILIACAO|NATURALIDADE|DATA)`)
	nameAfterTitleRgx = regexp.MustCompile(`CARTEIRA DE IDENTIDADE\n([A-Z]+(?: [A-Z]+)+)\n`)
)

// CanHandle gates the identity path: the text must carry enough of the
// document's fixed structure plus at least one regional marker.
func (e *IdentityExtractor) CanHandle(text string) bool {
	if countMarkers(text, identityMandatoryMarkers) < identityGateMinMarkers {
		return false
	}
	for _, m := range identityRegionalMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// Extract applies the line-based structural heuristics in priority order and
// assembles the identity field set. Absent fields stay empty.
func (e *IdentityExtractor) Extract(text string, subtype string) *models.IdentityFields {
	lines := splitLines(text)

	fields := &models.IdentityFields{
		DocumentType: string(models.DocumentTypeIdentity),
		Subtype:      subtype,
	}

	fields.FullName = e.extractName(lines, text)
	fields.CPF = e.extractCPF(text)
	fields.DocumentNumber = e.extractDocumentNumber(lines, text, fields.CPF)
	fields.BirthDate = findDateAfterLabel(text, "DATA DE NASCIMENTO", "NASCIMENTO")
	fields.IssuedDate = findDateAfterLabel(text, "DATA DE EXPEDICAO", "EXPEDICAO")
	fields.Filiation = e.extractFiliation(lines)
	fields.BirthPlace = e.extractBirthPlace(text)
	fields.IssuingAuthority = e.extractAuthority(text)
	fields.DocumentOrigin = e.extractOrigin(text)

	return fields
}

// nameStrategy is one ordered heuristic; the first one returning a validated
// candidate wins.
type nameStrategy struct {
	name string
	fn   func(lines []string, text string) string
}

func (e *IdentityExtractor) nameStrategies() []nameStrategy {
	return []nameStrategy{
		{"labeled", nameFromLabel},
		{"before-filiation", nameBeforeFiliation},
		{"after-filiation", nameAfterFiliation},
		{"after-document-number", nameAfterDocumentNumber},
		{"free-line", nameFreeLine},
		{"regex-fallback", nameRegexFallback},
	}
}

func (e *IdentityExtractor) extractName(lines []string, text string) string {
	for _, s := range e.nameStrategies() {
		if candidate := s.fn(lines, text); candidate != "" {
			return titleCase(candidate)
		}
	}
	return ""
}

// isValidPersonName requires at least two words, letters and spaces only,
// and no document keyword.
func isValidPersonName(s string) bool {
	s = strings.TrimSpace(s)
	if !personNameRegex.MatchString(s) {
		return false
	}
	for _, w := range strings.Fields(s) {
		for _, kw := range documentKeywords {
			if w == kw {
				return false
			}
		}
	}
	return true
}

func nameFromLabel(lines []string, text string) string {
	m := nameLabelRegex.FindStringSubmatch(text)
	if m != nil && isValidPersonName(m[1]) {
		return m[1]
	}
	return ""
}

// nameBeforeFiliation looks up to three lines above the FILIACAO marker.
func nameBeforeFiliation(lines []string, text string) string {
	for i, line := range lines {
		if !strings.HasPrefix(line, "FILIACAO") {
			continue
		}
		for back := 1; back <= 3 && i-back >= 0; back++ {
			if candidate := lines[i-back]; isValidPersonName(candidate) {
				return candidate
			}
		}
	}
	return ""
}

// nameAfterFiliation covers layouts that print the holder name right after
// the marker and the parents further down.
func nameAfterFiliation(lines []string, text string) string {
	for i, line := range lines {
		if line == "FILIACAO" && i+1 < len(lines) {
			if candidate := lines[i+1]; isValidPersonName(candidate) {
				return candidate
			}
		}
	}
	return ""
}

// nameAfterDocumentNumber takes the line following a formatted registry
// number token.
func nameAfterDocumentNumber(lines []string, text string) string {
	for i, line := range lines {
		if rgTokenRegex.MatchString(line) && i+1 < len(lines) {
			if candidate := lines[i+1]; isValidPersonName(candidate) {
				return candidate
			}
		}
	}
	return ""
}

// nameFreeLine accepts any remaining line of 2-6 uppercase words, 10-60
// characters, with no document keyword.
func nameFreeLine(lines []string, text string) string {
	for _, line := range lines {
		if len(line) < 10 || len(line) > 60 {
			continue
		}
		words := len(strings.Fields(line))
		if words < 2 || words > 6 {
			continue
		}
		if isValidPersonName(line) {
			return line
		}
	}
	return ""
}

// nameRegexFallback scans the whole text: a name wedged between a number and
// a labeled field, or following the document title.
func nameRegexFallback(lines []string, text string) string {
	if m := nameBetweenRegex.FindStringSubmatch(text); m != nil && isValidPersonName(m[1]) {
		return m[1]
	}
	if m := nameAfterTitleRgx.FindStringSubmatch(text); m != nil && isValidPersonName(m[1]) {
		return m[1]
	}
	return ""
}

// extractDocumentNumber applies the ordered registry-number strategies:
// a line right after the REGISTRO GERAL label, any line that is itself a
// formatted token, then an inline scan. Candidates that look like dates,
// equal the taxpayer number, or validate as a CNS are excluded.
func (e *IdentityExtractor) extractDocumentNumber(lines []string, text string, cpf string) string {
	cpfDigits := onlyDigits(cpf)

	accept := func(candidate string) bool {
		candidate = strings.TrimSpace(candidate)
		if looksLikeDate(candidate) {
			return false
		}
		digits := onlyDigits(candidate)
		if len(digits) < 5 || IsValidCNS(digits) {
			return false
		}
		return cpfDigits == "" || digits != cpfDigits
	}

	for i, line := range lines {
		if strings.HasPrefix(line, "REGISTRO GERAL") {
			if m := rgInlineRegex.FindString(line); m != "" && accept(m) {
				return m
			}
			if i+1 < len(lines) {
				if next := lines[i+1]; rgTokenRegex.MatchString(next) && accept(next) {
					return next
				}
			}
		}
	}
	for _, line := range lines {
		if rgTokenRegex.MatchString(line) && accept(line) {
			return line
		}
	}
	if m := rgInlineRegex.FindString(text); m != "" && accept(m) {
		return m
	}
	return ""
}

// extractCPF returns the first checksum-valid taxpayer number token.
func (e *IdentityExtractor) extractCPF(text string) string {
	for _, m := range cpfTokenRegex.FindAllString(text, -1) {
		if looksLikeDate(m) {
			continue
		}
		if IsValidCPF(m) {
			return m
		}
	}
	return ""
}

// extractFiliation reads the name lines directly under the FILIACAO marker.
// Two lines are read as father then mother; a single line is the mother.
func (e *IdentityExtractor) extractFiliation(lines []string) *models.Filiation {
	for i, line := range lines {
		if !strings.HasPrefix(line, "FILIACAO") {
			continue
		}
		var parents []string
		for j := i + 1; j < len(lines) && len(parents) < 2; j++ {
			if isValidPersonName(lines[j]) {
				parents = append(parents, titleCase(lines[j]))
				continue
			}
			if len(parents) > 0 {
				break
			}
		}
		switch len(parents) {
		case 2:
			return &models.Filiation{Father: parents[0], Mother: parents[1]}
		case 1:
			return &models.Filiation{Mother: parents[0]}
		}
		return nil
	}
	return nil
}

func (e *IdentityExtractor) extractBirthPlace(text string) string {
	m := naturalnessRegex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return titleCase(m[1])
}

func (e *IdentityExtractor) extractAuthority(text string) string {
	m := authorityRegex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	if m[2] != "" {
		return m[1] + "-" + m[2]
	}
	return m[1]
}

func (e *IdentityExtractor) extractOrigin(text string) string {
	m := originLabelRegex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
