package extract

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips diacritics and uppercases",
			input: "Filiação\nSul América Saúde",
			want:  "FILIACAO\nSUL AMERICA SAUDE",
		},
		{
			name:  "collapses space runs and drops empty lines",
			input: "PLANO   DE  SAUDE\n\n\n  ANS   326305  \n",
			want:  "PLANO DE SAUDE\nANS 326305",
		},
		{
			name:  "windows line endings",
			input: "REGISTRO GERAL\r\n48.151.623-42",
			want:  "REGISTRO GERAL\n48.151.623-42",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"DANIEL COELHO DA COSTA", "Daniel Coelho Da Costa"},
		{"  MARIA DAS DORES LIMA ", "Maria Das Dores Lima"},
		{"JOSE", "Jose"},
	}
	for _, tt := range tests {
		if got := titleCase(tt.input); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestOnlyDigits(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"88888 4872 8768 0017", "88888487287680017"},
		{"48.151.623-42", "4815162342"},
		{"ANS 326305", "326305"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := onlyDigits(tt.input); got != tt.want {
			t.Errorf("onlyDigits(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
