package extract

import "regexp"

// GoldenCrossExtractor handles Golden Cross cards: 10-digit member numbers.
type GoldenCrossExtractor struct {
	patternExtractor
}

// NewGoldenCrossExtractor creates the Golden Cross card extractor
func NewGoldenCrossExtractor() *GoldenCrossExtractor {
	return &GoldenCrossExtractor{patternExtractor{
		issuer: IssuerGoldenCross,
		cardPatterns: []numberPattern{
			{
				name:   "labeled",
				re:     regexp.MustCompile(`(?:MATRICULA|CARTEIRA)[:\s]*((?:\d[ .]?){9}\d)`),
				minLen: 10, maxLen: 10,
			},
			{
				name:   "bare-10",
				re:     regexp.MustCompile(`\b\d{10}\b`),
				minLen: 10, maxLen: 10,
			},
		},
	}}
}
