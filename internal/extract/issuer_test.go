package extract

import (
	"testing"

	"github.com/carteiraIA/card-ocr-service/internal/models"
)

func TestNormalizeANSCode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"005711", "5711"},
		{"00.571-1", "5711"},
		{"326305", "326305"},
		{"000582", "582"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeANSCode(tt.input); got != tt.want {
			t.Errorf("NormalizeANSCode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExtractANSCode(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"with NO prefix", "REGISTRO ANS NO 326305", "326305"},
		{"with colon", "ANS: 005711", "005711"},
		{"plain label", "ANS 6246 CARTAO", "6246"},
		{"no label", "CODIGO 326305", ""},
		{"label without code", "REGISTRO NA ANS OBRIGATORIO", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractANSCode(tt.text); got != tt.want {
				t.Errorf("ExtractANSCode(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	d := NewDetector()

	tests := []struct {
		name       string
		text       string
		ansCode    string
		wantIssuer Issuer
		wantMethod models.DetectionMethod
	}{
		{
			name:       "ans code beats text pattern",
			text:       "UNIMED SAUDE COOPERATIVA",
			ansCode:    "326305",
			wantIssuer: IssuerAmil,
			wantMethod: models.MethodANSCode,
		},
		{
			name:       "ans code with leading zeros",
			text:       "CARTAO DE SAUDE",
			ansCode:    "005711",
			wantIssuer: IssuerBradesco,
			wantMethod: models.MethodANSCode,
		},
		{
			name:       "unknown code falls through to patterns",
			text:       "UNIMED COOPERATIVA DE TRABALHO MEDICO",
			ansCode:    "999999",
			wantIssuer: IssuerUnimed,
			wantMethod: models.MethodTextPattern,
		},
		{
			name:       "text pattern",
			text:       "CARTAO SUL AMERICA SAUDE",
			wantIssuer: IssuerSulAmerica,
			wantMethod: models.MethodTextPattern,
		},
		{
			name:       "priority order breaks multi-match",
			text:       "BRADESCO SAUDE\nREDE UNIMED CREDENCIADA",
			wantIssuer: IssuerBradesco,
			wantMethod: models.MethodTextPattern,
		},
		{
			name:       "fuzzy word overlap",
			text:       "SAUDE SUL DO BRASIL AMERICA COMPANHIA",
			wantIssuer: IssuerSulAmerica,
			wantMethod: models.MethodFuzzy,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.text, tt.ansCode)
			if got == nil {
				t.Fatalf("Detect(%q, %q) = nil", tt.text, tt.ansCode)
			}
			if got.Issuer != tt.wantIssuer {
				t.Errorf("issuer = %v, want %v", got.Issuer, tt.wantIssuer)
			}
			if got.Method != tt.wantMethod {
				t.Errorf("method = %v, want %v", got.Method, tt.wantMethod)
			}
		})
	}
}

func TestDetectNoMatch(t *testing.T) {
	d := NewDetector()
	if got := d.Detect("DOCUMENTO QUALQUER SEM OPERADORA", ""); got != nil {
		t.Errorf("expected nil for unmatched text, got %+v", got)
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(IssuerBradesco); got != "Bradesco Saúde" {
		t.Errorf("DisplayName(bradesco) = %q", got)
	}
	if got := DisplayName(Issuer("OUTRA")); got != "OUTRA" {
		t.Errorf("unknown issuer should fall back to its symbol, got %q", got)
	}
}
