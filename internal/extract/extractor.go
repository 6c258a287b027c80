package extract

import (
	"regexp"

	"github.com/carteiraIA/card-ocr-service/internal/models"
)

// CardExtractor is the contract every operator extractor implements. Each
// method returns the extracted value or "" when the field is absent; absence
// is a normal state, never an error.
type CardExtractor interface {
	Issuer() Issuer
	ExtractCardNumber(text string) string
	ExtractPlan(text string) string
	ExtractHolderName(text string) string
	ExtractCNS(text string) string
	ExtractBirthDate(text string) string
	Confidence(data *models.InsuranceFields) float64
}

// Registry maps a detected issuer to its extractor. Issuers without a
// specialized implementation fall through to the generic extractor.
type Registry struct {
	extractors map[Issuer]CardExtractor
	generic    CardExtractor
}

// NewRegistry creates the dispatcher with every specialized extractor
// registered.
func NewRegistry() *Registry {
	r := &Registry{
		extractors: make(map[Issuer]CardExtractor),
		generic:    NewGenericExtractor(),
	}
	for _, e := range []CardExtractor{
		NewAmilExtractor(),
		NewBradescoExtractor(),
		NewSulAmericaExtractor(),
		NewUnimedExtractor(),
		NewHapvidaExtractor(),
		NewNotreDameExtractor(),
		NewPortoSeguroExtractor(),
		NewGoldenCrossExtractor(),
	} {
		r.register(e)
	}
	return r
}

func (r *Registry) register(e CardExtractor) {
	r.extractors[e.Issuer()] = e
}

// ExtractorFor returns the specialized extractor for an issuer, or the
// generic fallback, plus whether the path was specialized.
func (r *Registry) ExtractorFor(issuer Issuer) (CardExtractor, bool) {
	if e, ok := r.extractors[issuer]; ok {
		return e, true
	}
	return r.generic, false
}

// numberPattern is one candidate strategy in an ordered extraction chain.
// Chains are evaluated top to bottom; the first candidate that passes the
// length check and the CNS exclusion wins.
type numberPattern struct {
	name   string
	re     *regexp.Regexp
	minLen int
	maxLen int
}

// firstCardNumber runs an ordered pattern chain over the text and returns
// the digits of the first candidate that fits the expected length and does
// not independently validate as a national health card number.
func firstCardNumber(text string, patterns []numberPattern) string {
	for _, p := range patterns {
		for _, m := range p.re.FindAllString(text, -1) {
			digits := onlyDigits(m)
			if len(digits) < p.minLen || len(digits) > p.maxLen {
				continue
			}
			if IsValidCNS(digits) {
				continue
			}
			return digits
		}
	}
	return ""
}

// patternExtractor carries the behavior shared by the specialized operator
// extractors: an ordered card-number chain plus the common labeled-field
// helpers. Operators embed it and override only what their layout prints
// differently.
type patternExtractor struct {
	issuer       Issuer
	cardPatterns []numberPattern
}

func (e *patternExtractor) Issuer() Issuer { return e.issuer }

func (e *patternExtractor) ExtractCardNumber(text string) string {
	return firstCardNumber(text, e.cardPatterns)
}

func (e *patternExtractor) ExtractPlan(text string) string {
	return extractPlanRaw(text)
}

func (e *patternExtractor) ExtractHolderName(text string) string {
	return extractHolderName(text)
}

func (e *patternExtractor) ExtractCNS(text string) string {
	return extractCNS(text)
}

func (e *patternExtractor) ExtractBirthDate(text string) string {
	return extractBirthDate(text)
}

func (e *patternExtractor) Confidence(data *models.InsuranceFields) float64 {
	return ScoreInsurance(data).Overall
}

// Shared labeled-field patterns. Individual extractors reuse these because
// most operators print the same base labels and differ only in number
// formats and plan catalogs.
var (
	holderLabelRegex = regexp.MustCompile(`(?m)(?:NOME DO BENEFICIARIO|BENEFICIARIO|USUARIO|NOME)[:\s]+([A-Z][A-Z ]{3,58}[A-Z])$`)
	planLabelRegex   = regexp.MustCompile(`(?m)(?:PLANO|PRODUTO|ACOMODACAO)[:\s]+([A-Z0-9][A-Z0-9 ]{1,38})$`)
	cnsLabelRegex    = regexp.MustCompile(`(?:CNS|CARTAO NACIONAL DE SAUDE)[:\s]*((?:\d[ .]?){15})`)
	cnsLooseRegex    = regexp.MustCompile(`\b\d{15}\b`)
	birthLabelRegex  = regexp.MustCompile(`(?:DATA DE NASCIMENTO|NASCIMENTO|NASC)[.:\s]*(\d{2}/\d{2}/\d{4})`)
)

// extractHolderName pulls the beneficiary name from its label and returns it
// title-cased.
func extractHolderName(text string) string {
	m := holderLabelRegex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return titleCase(m[1])
}

// extractPlanRaw pulls the free-text plan name; mapping to the operator
// catalog happens afterwards in MapPlanName.
func extractPlanRaw(text string) string {
	m := planLabelRegex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// extractCNS returns a validated 15-digit CNS: labeled occurrence first,
// then any validating 15-digit run.
func extractCNS(text string) string {
	if m := cnsLabelRegex.FindStringSubmatch(text); m != nil {
		if d := onlyDigits(m[1]); IsValidCNS(d) {
			return d
		}
	}
	for _, m := range cnsLooseRegex.FindAllString(text, -1) {
		if IsValidCNS(m) {
			return m
		}
	}
	return ""
}

// extractBirthDate returns the labeled birth date normalized to YYYY-MM-DD.
func extractBirthDate(text string) string {
	m := birthLabelRegex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return normalizeDate(m[1])
}
