package extract

import "github.com/carteiraIA/card-ocr-service/internal/models"

// Weighted completeness scoring. Each present field adds its weight to the
// numerator; the denominator is the unconditional weight sum, so the overall
// score always lands in [0,1]. Weights are fixed design constants, not
// calibrated values.

var insuranceWeights = map[string]float64{
	"operator":   0.25,
	"cardNumber": 0.25,
	"holderName": 0.20,
	"plan":       0.15,
	"cns":        0.10,
	"birthDate":  0.05,
}

var identityWeights = map[string]float64{
	"name":           0.25,
	"documentNumber": 0.25,
	"taxpayerNumber": 0.15,
	"birthDate":      0.15,
	"filiation":      0.10,
	"birthPlace":     0.10,
}

// ScoreInsurance computes the completeness score for an insurance field set.
// Recomputed on every call, never cached.
func ScoreInsurance(data *models.InsuranceFields) models.ConfidenceScore {
	present := map[string]bool{}
	if data != nil {
		present["operator"] = data.Operator != ""
		present["cardNumber"] = data.CardNumber != ""
		present["holderName"] = data.HolderName != ""
		present["plan"] = data.Plan != ""
		present["cns"] = data.CNS != ""
		present["birthDate"] = data.BirthDate != ""
	}
	return weigh(insuranceWeights, present)
}

// ScoreIdentity computes the completeness score for an identity field set.
func ScoreIdentity(data *models.IdentityFields) models.ConfidenceScore {
	present := map[string]bool{}
	if data != nil {
		present["name"] = data.FullName != ""
		present["documentNumber"] = data.DocumentNumber != ""
		present["taxpayerNumber"] = data.CPF != ""
		present["birthDate"] = data.BirthDate != ""
		present["filiation"] = data.Filiation != nil && (data.Filiation.Mother != "" || data.Filiation.Father != "")
		present["birthPlace"] = data.BirthPlace != ""
	}
	return weigh(identityWeights, present)
}

func weigh(weights map[string]float64, present map[string]bool) models.ConfidenceScore {
	var num, den float64
	fields := make(map[string]float64, len(weights))
	for field, w := range weights {
		den += w
		if present[field] {
			num += w
			fields[field] = 1
		} else {
			fields[field] = 0
		}
	}
	overall := 0.0
	if den > 0 {
		overall = num / den
	}
	if overall > 1 {
		overall = 1
	}
	return models.ConfidenceScore{Overall: overall, Fields: fields}
}
