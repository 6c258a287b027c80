package extract

import (
	"regexp"

	"github.com/carteiraIA/card-ocr-service/internal/models"
)

// GenericExtractor is the fallback path for operators without a specialized
// implementation. It relies on the longest printed digit run for the card
// number and plain labeled fields for everything else.
type GenericExtractor struct{}

// NewGenericExtractor creates the fallback card extractor
func NewGenericExtractor() *GenericExtractor {
	return &GenericExtractor{}
}

func (e *GenericExtractor) Issuer() Issuer { return "" }

var digitRunRegex = regexp.MustCompile(`(?:\d[ .\-]?){7,}\d`)

// ExtractCardNumber returns the longest digit run of at least 8 digits that
// does not validate as a CNS number.
func (e *GenericExtractor) ExtractCardNumber(text string) string {
	best := ""
	for _, m := range digitRunRegex.FindAllString(text, -1) {
		digits := onlyDigits(m)
		if len(digits) < 8 || IsValidCNS(digits) {
			continue
		}
		if len(digits) > len(best) {
			best = digits
		}
	}
	return best
}

func (e *GenericExtractor) ExtractPlan(text string) string {
	return extractPlanRaw(text)
}

func (e *GenericExtractor) ExtractHolderName(text string) string {
	return extractHolderName(text)
}

func (e *GenericExtractor) ExtractCNS(text string) string {
	return extractCNS(text)
}

func (e *GenericExtractor) ExtractBirthDate(text string) string {
	return extractBirthDate(text)
}

func (e *GenericExtractor) Confidence(data *models.InsuranceFields) float64 {
	return ScoreInsurance(data).Overall
}
