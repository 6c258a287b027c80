package extract

import "regexp"

// AmilExtractor handles Amil cards: 9-digit member numbers, usually printed
// next to a matrícula label.
type AmilExtractor struct {
	patternExtractor
}

// NewAmilExtractor creates the Amil card extractor
func NewAmilExtractor() *AmilExtractor {
	return &AmilExtractor{patternExtractor{
		issuer: IssuerAmil,
		cardPatterns: []numberPattern{
			{
				name:   "labeled",
				re:     regexp.MustCompile(`(?:MATRICULA|CODIGO DE IDENTIFICACAO)[:\s]*((?:\d[ .]?){8}\d)`),
				minLen: 9, maxLen: 9,
			},
			{
				name:   "bare-9",
				re:     regexp.MustCompile(`\b\d{9}\b`),
				minLen: 9, maxLen: 9,
			},
		},
	}}
}
