package extract

import "regexp"

// HapvidaExtractor handles Hapvida cards: 11-digit member numbers.
type HapvidaExtractor struct {
	patternExtractor
}

// NewHapvidaExtractor creates the Hapvida card extractor
func NewHapvidaExtractor() *HapvidaExtractor {
	return &HapvidaExtractor{patternExtractor{
		issuer: IssuerHapvida,
		cardPatterns: []numberPattern{
			{
				name:   "labeled",
				re:     regexp.MustCompile(`(?:MATRICULA|CARTEIRA)[:\s]*((?:\d[ .]?){10}\d)`),
				minLen: 11, maxLen: 11,
			},
			{
				name:   "bare-11",
				re:     regexp.MustCompile(`\b\d{11}\b`),
				minLen: 11, maxLen: 11,
			},
		},
	}}
}
