package extract

import "regexp"

// SulAmericaExtractor handles Sul América cards. Card numbers have 17 digits
// and start with 888; OCR frequently breaks them into spaced groups.
type SulAmericaExtractor struct {
	patternExtractor
}

// NewSulAmericaExtractor creates the Sul América card extractor
func NewSulAmericaExtractor() *SulAmericaExtractor {
	return &SulAmericaExtractor{patternExtractor{
		issuer: IssuerSulAmerica,
		cardPatterns: []numberPattern{
			{
				name:   "888-prefixed",
				re:     regexp.MustCompile(`\b888(?:[ .\-]?\d){14}\b`),
				minLen: 17, maxLen: 17,
			},
			{
				name:   "labeled",
				re:     regexp.MustCompile(`(?:CODIGO DE IDENTIFICACAO|CARTAO|CARTEIRA)[:\s]*((?:\d[ .\-]?){16}\d)`),
				minLen: 17, maxLen: 17,
			},
			{
				name:   "bare-17",
				re:     regexp.MustCompile(`\b(?:\d[ .]?){16}\d\b`),
				minLen: 17, maxLen: 17,
			},
		},
	}}
}

var sulamericaHolderRegex = regexp.MustCompile(`(?m)(?:SEGURADO|NOME DO SEGURADO)[:\s]+([A-Z][A-Z ]{3,58}[A-Z])$`)

// ExtractHolderName prefers the "SEGURADO" label Sul América prints instead
// of the usual beneficiary labels.
func (e *SulAmericaExtractor) ExtractHolderName(text string) string {
	if m := sulamericaHolderRegex.FindStringSubmatch(text); m != nil {
		return titleCase(m[1])
	}
	return extractHolderName(text)
}
