package extract

import "regexp"

// NotreDameExtractor handles NotreDame Intermédica cards: 11 to 13 digit
// member numbers, labeled occurrence first.
type NotreDameExtractor struct {
	patternExtractor
}

// NewNotreDameExtractor creates the NotreDame Intermédica card extractor
func NewNotreDameExtractor() *NotreDameExtractor {
	return &NotreDameExtractor{patternExtractor{
		issuer: IssuerNotreDame,
		cardPatterns: []numberPattern{
			{
				name:   "labeled",
				re:     regexp.MustCompile(`(?:CARTEIRINHA|MATRICULA)[:\s]*((?:\d[ .]?){10,12}\d)`),
				minLen: 11, maxLen: 13,
			},
			{
				name:   "bare",
				re:     regexp.MustCompile(`\b\d{11,13}\b`),
				minLen: 11, maxLen: 13,
			},
		},
	}}
}
