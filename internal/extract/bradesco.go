package extract

import "regexp"

// BradescoExtractor handles Bradesco Saúde cards. The 15-digit card number
// shares its length with the CNS, so the exclusion filter matters most here.
type BradescoExtractor struct {
	patternExtractor
}

// NewBradescoExtractor creates the Bradesco Saúde card extractor
func NewBradescoExtractor() *BradescoExtractor {
	return &BradescoExtractor{patternExtractor{
		issuer: IssuerBradesco,
		cardPatterns: []numberPattern{
			{
				name:   "labeled",
				re:     regexp.MustCompile(`(?:CARTEIRINHA|IDENTIFICACAO|CARTAO)[:\s]*((?:\d[ .]?){14}\d)`),
				minLen: 15, maxLen: 15,
			},
			{
				name:   "grouped-3x5",
				re:     regexp.MustCompile(`\b\d{3}[ .]\d{3}[ .]\d{3}[ .]\d{3}[ .]\d{3}\b`),
				minLen: 15, maxLen: 15,
			},
			{
				name:   "bare-15",
				re:     regexp.MustCompile(`\b\d{15}\b`),
				minLen: 15, maxLen: 15,
			},
		},
	}}
}
