package extract

import "regexp"

// UnimedExtractor handles Unimed cards: 16 or 17 digits with a leading zero,
// printed in spaced groups that vary by cooperative.
type UnimedExtractor struct {
	patternExtractor
}

// NewUnimedExtractor creates the Unimed card extractor
func NewUnimedExtractor() *UnimedExtractor {
	return &UnimedExtractor{patternExtractor{
		issuer: IssuerUnimed,
		cardPatterns: []numberPattern{
			{
				name:   "labeled",
				re:     regexp.MustCompile(`(?:CODIGO DO BENEFICIARIO|CARTAO)[:\s]*((?:\d[ .]?){15,16}\d)`),
				minLen: 16, maxLen: 17,
			},
			{
				name:   "zero-prefixed",
				re:     regexp.MustCompile(`\b0(?:[ .]?\d){15,16}\b`),
				minLen: 16, maxLen: 17,
			},
		},
	}}
}
