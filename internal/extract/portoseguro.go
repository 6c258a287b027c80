package extract

import "regexp"

// PortoSeguroExtractor handles Porto Seguro Saúde cards: 16 digits printed
// in four groups of four, like a payment card.
type PortoSeguroExtractor struct {
	patternExtractor
}

// NewPortoSeguroExtractor creates the Porto Seguro card extractor
func NewPortoSeguroExtractor() *PortoSeguroExtractor {
	return &PortoSeguroExtractor{patternExtractor{
		issuer: IssuerPortoSeguro,
		cardPatterns: []numberPattern{
			{
				name:   "grouped-4x4",
				re:     regexp.MustCompile(`\b\d{4}[ .]\d{4}[ .]\d{4}[ .]\d{4}\b`),
				minLen: 16, maxLen: 16,
			},
			{
				name:   "bare-16",
				re:     regexp.MustCompile(`\b\d{16}\b`),
				minLen: 16, maxLen: 16,
			},
		},
	}}
}
