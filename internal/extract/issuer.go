package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/carteiraIA/card-ocr-service/internal/models"
)

// Issuer is the canonical symbol for a supported insurance operator.
type Issuer string

const (
	IssuerAmil        Issuer = "AMIL"
	IssuerBradesco    Issuer = "BRADESCO_SAUDE"
	IssuerSulAmerica  Issuer = "SULAMERICA"
	IssuerUnimed      Issuer = "UNIMED"
	IssuerHapvida     Issuer = "HAPVIDA"
	IssuerNotreDame   Issuer = "NOTREDAME_INTERMEDICA"
	IssuerPortoSeguro Issuer = "PORTO_SEGURO"
	IssuerGoldenCross Issuer = "GOLDEN_CROSS"
)

// issuerDisplayNames provides the locally derived display name used when the
// operator registry has no entry (or is unavailable).
var issuerDisplayNames = map[Issuer]string{
	IssuerAmil:        "Amil Assistência Médica Internacional",
	IssuerBradesco:    "Bradesco Saúde",
	IssuerSulAmerica:  "Sul América Seguro Saúde",
	IssuerUnimed:      "Unimed",
	IssuerHapvida:     "Hapvida Assistência Médica",
	IssuerNotreDame:   "NotreDame Intermédica Saúde",
	IssuerPortoSeguro: "Porto Seguro Saúde",
	IssuerGoldenCross: "Golden Cross Assistência Internacional de Saúde",
}

// DisplayName returns the human-readable operator name for an issuer.
func DisplayName(issuer Issuer) string {
	if name, ok := issuerDisplayNames[issuer]; ok {
		return name
	}
	return string(issuer)
}

// DetectedIssuer is the outcome of issuer detection: the canonical symbol
// plus the method that resolved it.
type DetectedIssuer struct {
	Issuer  Issuer
	Method  models.DetectionMethod
	Details string
}

// ansCodeTable maps normalized ANS registry codes to operators. Keys are
// stored without separators or leading zeros (see NormalizeANSCode).
// Bootstrap subset — the full registry lives behind the IssuerRegistry
// collaborator.
var ansCodeTable = map[string]Issuer{
	"326305": IssuerAmil,
	"5711":   IssuerBradesco, // printed 005711
	"6246":   IssuerSulAmerica,
	"368253": IssuerHapvida,
	"359017": IssuerNotreDame,
	"582":    IssuerPortoSeguro, // printed 000582
	"403911": IssuerGoldenCross,
}

// NormalizeANSCode strips separators and leading zeros so codes printed as
// "005711", "00.571-1" or "5711" all hit the same table entry.
func NormalizeANSCode(code string) string {
	return strings.TrimLeft(onlyDigits(code), "0")
}

// ansCodeRegex finds the ANS registry code next to its label. This is the
// fixed-context extraction run by the orchestrator before detection; it is
// intentionally narrower than the per-issuer number patterns.
var ansCodeRegex = regexp.MustCompile(`ANS[\s:.\-]*(?:N[O.\s]*)?(\d{4,6})`)

// ExtractANSCode returns the issuer code printed near an "ANS" label, or ""
// when no labeled code is present.
func ExtractANSCode(text string) string {
	m := ansCodeRegex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// issuerPattern pairs an issuer with its text patterns. Lower priority wins;
// within one issuer any single matching pattern is sufficient.
type issuerPattern struct {
	issuer   Issuer
	priority int
	patterns []string
}

var issuerPatterns = []issuerPattern{
	{IssuerSulAmerica, 1, []string{"SUL AMERICA", "SULAMERICA", "SAUDE SUL AMERICA"}},
	{IssuerBradesco, 2, []string{"BRADESCO SAUDE", "BRADESCO"}},
	{IssuerAmil, 3, []string{"AMIL ", "AMIL\n", "AMIL ASSISTENCIA"}},
	{IssuerNotreDame, 4, []string{"NOTRE DAME", "NOTREDAME", "INTERMEDICA"}},
	{IssuerHapvida, 5, []string{"HAPVIDA"}},
	{IssuerUnimed, 6, []string{"UNIMED"}},
	{IssuerPortoSeguro, 7, []string{"PORTO SEGURO"}},
	{IssuerGoldenCross, 8, []string{"GOLDEN CROSS"}},
}

func init() {
	sort.SliceStable(issuerPatterns, func(i, j int) bool {
		return issuerPatterns[i].priority < issuerPatterns[j].priority
	})
}

// fuzzyThreshold is the minimum word-overlap score for the fuzzy tier.
const fuzzyThreshold = 0.7

// Detector identifies the issuing operator from normalized text.
type Detector struct {
	fuzzy bool
}

// NewDetector creates an issuer detector with the fuzzy fallback enabled.
func NewDetector() *Detector {
	return &Detector{fuzzy: true}
}

// Detect resolves the issuing operator. Tier order is fixed: authoritative
// ANS-code lookup, then priority-ordered text patterns, then optional fuzzy
// word-overlap matching. Returns nil when no tier succeeds; the caller
// decides whether that is fatal.
func (d *Detector) Detect(text, ansCode string) *DetectedIssuer {
	if ansCode != "" {
		if issuer, ok := ansCodeTable[NormalizeANSCode(ansCode)]; ok {
			return &DetectedIssuer{Issuer: issuer, Method: models.MethodANSCode, Details: ansCode}
		}
	}

	// First issuer in priority order with any matching pattern wins. Ties
	// are broken by list order, never by match count.
	for _, ip := range issuerPatterns {
		for _, p := range ip.patterns {
			if containsPattern(text, p) {
				return &DetectedIssuer{Issuer: ip.issuer, Method: models.MethodTextPattern, Details: strings.TrimSpace(p)}
			}
		}
	}

	if d.fuzzy {
		if det := d.detectFuzzy(text); det != nil {
			return det
		}
	}
	return nil
}

// containsPattern matches a pattern against text; trailing-space patterns
// also match at end of text or end of line.
func containsPattern(text, p string) bool {
	if strings.Contains(text, p) {
		return true
	}
	trimmed := strings.TrimRight(p, " \n")
	if trimmed != p {
		return strings.HasSuffix(text, trimmed) || strings.Contains(text, trimmed+"\n")
	}
	return false
}

// detectFuzzy scores every (issuer, pattern) pair by the fraction of pattern
// words present in the text and accepts the best score above the threshold.
func (d *Detector) detectFuzzy(text string) *DetectedIssuer {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ReplaceAll(text, "\n", " ")) {
		words[w] = true
	}

	var best *DetectedIssuer
	bestScore := fuzzyThreshold
	for _, ip := range issuerPatterns {
		for _, p := range ip.patterns {
			score := wordOverlap(strings.TrimSpace(p), words)
			if score > bestScore {
				bestScore = score
				best = &DetectedIssuer{Issuer: ip.issuer, Method: models.MethodFuzzy, Details: strings.TrimSpace(p)}
			}
		}
	}
	return best
}

func wordOverlap(pattern string, textWords map[string]bool) float64 {
	fields := strings.Fields(pattern)
	if len(fields) == 0 {
		return 0
	}
	hits := 0
	for _, f := range fields {
		if textWords[f] {
			hits++
		}
	}
	return float64(hits) / float64(len(fields))
}
