package extract

import (
	"regexp"
	"strings"

	"github.com/carteiraIA/card-ocr-service/internal/models"
)

// Classifier scores normalized text against the two supported document
// families. It is total and deterministic: identical input always yields an
// identical result, and it never fails.
type Classifier struct{}

// NewClassifier creates a document type classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Required structural markers per family. A marker counts once no matter how
// often it appears.
var insuranceMarkers = []string{
	"ANS",
	"PLANO",
	"OPERADORA",
	"BENEFICIARIO",
	"VIGENCIA",
	"CARTAO NACIONAL DE SAUDE",
	"SAUDE",
}

var identityMarkers = []string{
	"REPUBLICA FEDERATIVA DO BRASIL",
	"CARTEIRA DE IDENTIDADE",
	"REGISTRO GERAL",
	"SECRETARIA",
	"FILIACAO",
	"NATURALIDADE",
}

// Minimum matched markers for a family to be eligible at all.
const (
	insuranceMinMarkers = 2
	identityMinMarkers  = 3
)

// Classify scores text against both marker sets and returns the winning
// family, a subtype and a confidence in [0,1].
func (c *Classifier) Classify(text string) models.DocumentTypeResult {
	insScore := countMarkers(text, insuranceMarkers)
	idScore := countMarkers(text, identityMarkers)

	insOK := insScore >= insuranceMinMarkers
	idOK := idScore >= identityMinMarkers

	switch {
	case idOK && (idScore >= insScore || !insOK):
		return models.DocumentTypeResult{
			Type:       models.DocumentTypeIdentity,
			Subtype:    identitySubtype(text),
			Confidence: float64(idScore) / float64(len(identityMarkers)),
		}
	case insOK:
		return models.DocumentTypeResult{
			Type:       models.DocumentTypeInsuranceCard,
			Subtype:    insuranceSubtype(text),
			Confidence: float64(insScore) / float64(len(insuranceMarkers)),
		}
	default:
		return models.DocumentTypeResult{
			Type:       models.DocumentTypeUnknown,
			Subtype:    "",
			Confidence: 0,
		}
	}
}

func countMarkers(text string, markers []string) int {
	n := 0
	for _, m := range markers {
		if strings.Contains(text, m) {
			n++
		}
	}
	return n
}

var cinMarker = regexp.MustCompile(`\bCIN\b`)

// identitySubtype distinguishes the new unified identity card from the
// legacy RG booklet.
func identitySubtype(text string) string {
	if strings.Contains(text, "CARTEIRA DE IDENTIDADE NACIONAL") || cinMarker.MatchString(text) {
		return models.IdentitySubtypeCIN
	}
	return models.IdentitySubtypeRG
}

func insuranceSubtype(text string) string {
	if strings.Contains(text, "ODONTO") {
		return models.InsuranceSubtypeDental
	}
	return models.InsuranceSubtypeMedical
}
