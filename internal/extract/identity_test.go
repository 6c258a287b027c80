package extract

import (
	"testing"

	"github.com/carteiraIA/card-ocr-service/internal/models"
)

const rgSampleText = "REPUBLICA FEDERATIVA DO BRASIL\n" +
	"SECRETARIA DE SEGURANCA PUBLICA\n" +
	"CARTEIRA DE IDENTIDADE\n" +
	"REGISTRO GERAL\n" +
	"48.151.623-42\n" +
	"DANIEL COELHO DA COSTA\n" +
	"FILIACAO\n" +
	"JOSE AUGUSTO DA COSTA\n" +
	"MARIA COELHO DA COSTA\n" +
	"NATURALIDADE: SAO PAULO - SP\n" +
	"DATA DE NASCIMENTO\n" +
	"15/MAR/1985\n" +
	"SSP-SP"

func TestIdentityCanHandle(t *testing.T) {
	e := NewIdentityExtractor()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"full booklet", rgSampleText, true},
		{
			name: "missing regional marker",
			text: "REPUBLICA FEDERATIVA DO BRASIL\nCARTEIRA DE IDENTIDADE\nREGISTRO GERAL\nFILIACAO",
			want: false,
		},
		{
			name: "too few structural markers",
			text: "REGISTRO GERAL\nSAO PAULO",
			want: false,
		},
		{
			name: "insurance card",
			text: "PLANO DE SAUDE\nANS NO 326305\nBENEFICIARIO: JOAO DA SILVA",
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.CanHandle(tt.text); got != tt.want {
				t.Errorf("CanHandle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIdentityExtract(t *testing.T) {
	e := NewIdentityExtractor()

	got := e.Extract(rgSampleText, models.IdentitySubtypeRG)

	if got.DocumentType != string(models.DocumentTypeIdentity) {
		t.Errorf("document type = %q", got.DocumentType)
	}
	if got.Subtype != models.IdentitySubtypeRG {
		t.Errorf("subtype = %q", got.Subtype)
	}
	if got.FullName != "Daniel Coelho Da Costa" {
		t.Errorf("full name = %q, want %q", got.FullName, "Daniel Coelho Da Costa")
	}
	if got.DocumentNumber != "48.151.623-42" {
		t.Errorf("document number = %q, want %q", got.DocumentNumber, "48.151.623-42")
	}
	if got.CPF != "" {
		t.Errorf("the registry number must not leak into the taxpayer field, got %q", got.CPF)
	}
	if got.BirthDate != "1985-03-15" {
		t.Errorf("birth date = %q, want 1985-03-15", got.BirthDate)
	}
	if got.Filiation == nil {
		t.Fatal("filiation missing")
	}
	if got.Filiation.Father != "Jose Augusto Da Costa" {
		t.Errorf("father = %q", got.Filiation.Father)
	}
	if got.Filiation.Mother != "Maria Coelho Da Costa" {
		t.Errorf("mother = %q", got.Filiation.Mother)
	}
	if got.BirthPlace != "Sao Paulo - Sp" {
		t.Errorf("birth place = %q", got.BirthPlace)
	}
	if got.IssuingAuthority != "SSP-SP" {
		t.Errorf("issuing authority = %q", got.IssuingAuthority)
	}
}

func TestIdentityExtractWithCPF(t *testing.T) {
	e := NewIdentityExtractor()

	text := "REPUBLICA FEDERATIVA DO BRASIL\n" +
		"CARTEIRA DE IDENTIDADE\n" +
		"REGISTRO GERAL: 12.345.678-9\n" +
		"ANA BEATRIZ SILVA\n" +
		"FILIACAO\n" +
		"TERESA CRISTINA SILVA\n" +
		"CPF 529.982.247-25\n" +
		"NATURALIDADE: RECIFE\n" +
		"SSP-PE"

	got := e.Extract(text, models.IdentitySubtypeRG)

	if got.CPF != "529.982.247-25" {
		t.Errorf("cpf = %q, want 529.982.247-25", got.CPF)
	}
	if got.DocumentNumber != "12.345.678-9" {
		t.Errorf("document number = %q, want 12.345.678-9", got.DocumentNumber)
	}
	if got.Filiation == nil || got.Filiation.Mother != "Teresa Cristina Silva" {
		t.Errorf("single filiation line should be the mother, got %+v", got.Filiation)
	}
	if got.Filiation != nil && got.Filiation.Father != "" {
		t.Errorf("father should be empty, got %q", got.Filiation.Father)
	}
}

func TestIdentityNameStrategies(t *testing.T) {
	e := NewIdentityExtractor()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "labeled name",
			text: "NOME: CARLOS EDUARDO MOREIRA\nFILIACAO",
			want: "Carlos Eduardo Moreira",
		},
		{
			name: "line before filiation",
			text: "DANIEL COELHO DA COSTA\nFILIACAO\nJOSE AUGUSTO DA COSTA",
			want: "Daniel Coelho Da Costa",
		},
		{
			name: "line after document number",
			text: "REGISTRO GERAL\n48.151.623-42\nANA BEATRIZ SILVA",
			want: "Ana Beatriz Silva",
		},
		{
			name: "free line",
			text: "REPUBLICA FEDERATIVA DO BRASIL\nCARTEIRA DE IDENTIDADE NACIONAL\nANA BEATRIZ SILVA\nNATURALIDADE: RECIFE",
			want: "Ana Beatriz Silva",
		},
		{
			name: "header lines never win",
			text: "REPUBLICA FEDERATIVA DO BRASIL\nSECRETARIA DE SEGURANCA PUBLICA",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.extractName(splitLines(tt.text), tt.text)
			if got != tt.want {
				t.Errorf("extractName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIdentityDocumentNumberExclusions(t *testing.T) {
	e := NewIdentityExtractor()

	// The line after the label is a date, not a registry number.
	text := "REGISTRO GERAL\n15/03/1985\nSSP-SP"
	if got := e.extractDocumentNumber(splitLines(text), text, ""); got != "" {
		t.Errorf("date must not become a document number, got %q", got)
	}

	// A taxpayer-formatted token is not a registry number.
	text = "REGISTRO GERAL\n529.982.247-25"
	if got := e.extractDocumentNumber(splitLines(text), text, "529.982.247-25"); got != "" {
		t.Errorf("taxpayer digits must not become a document number, got %q", got)
	}
}
