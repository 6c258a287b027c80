package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/carteiraIA/card-ocr-service/internal/models"
)

const sulamericaCardText = "SUL AMÉRICA SAÚDE\n" +
	"ANS NO 006246\n" +
	"SEGURADO: MARIA DAS DORES LIMA\n" +
	"88888 4872 8768 0017\n" +
	"PLANO: ESPECIAL 100\n" +
	"NASCIMENTO: 05/03/1987\n" +
	"CNS: 700000000000005"

type fakeRegistry struct {
	entry *RegistryEntry
	err   error
}

func (f *fakeRegistry) LookupByCode(ctx context.Context, code string) (*RegistryEntry, error) {
	return f.entry, f.err
}

type panicRegistry struct{}

func (panicRegistry) LookupByCode(ctx context.Context, code string) (*RegistryEntry, error) {
	panic("registry down")
}

func hasError(errors []string, code string) bool {
	for _, e := range errors {
		if e == code {
			return true
		}
	}
	return false
}

func TestProcessInsuranceCard(t *testing.T) {
	p := NewPipeline(nil)
	got := p.ProcessInsuranceCard(context.Background(), sulamericaCardText)

	if !got.Success {
		t.Fatalf("expected success, errors: %v", got.Errors)
	}
	if got.Data.Operator != string(IssuerSulAmerica) {
		t.Errorf("operator = %q", got.Data.Operator)
	}
	if got.Data.CardNumber != "88888487287680017" {
		t.Errorf("card number = %q", got.Data.CardNumber)
	}
	if got.Data.Plan != "Especial 100" {
		t.Errorf("plan = %q", got.Data.Plan)
	}
	if got.Data.HolderName != "Maria Das Dores Lima" {
		t.Errorf("holder = %q", got.Data.HolderName)
	}
	if got.Data.CNS != "700000000000005" {
		t.Errorf("cns = %q", got.Data.CNS)
	}
	if got.Data.BirthDate != "1987-03-05" {
		t.Errorf("birth date = %q", got.Data.BirthDate)
	}
	if got.Data.ANSCode != "006246" {
		t.Errorf("ans code = %q", got.Data.ANSCode)
	}
	if got.Method.Type != models.MethodANSCode {
		t.Errorf("method = %v", got.Method.Type)
	}
	if got.Confidence.Overall != 1 {
		t.Errorf("confidence = %v, want 1", got.Confidence.Overall)
	}
	if len(got.Trace) == 0 || got.Trace[len(got.Trace)-1].Stage != "DONE" {
		t.Errorf("trace should end at DONE, got %+v", got.Trace)
	}
}

func TestProcessInsuranceCardEmptyText(t *testing.T) {
	p := NewPipeline(nil)

	for _, input := range []string{"", "   ", "\n\t"} {
		got := p.ProcessInsuranceCard(context.Background(), input)
		if got.Success {
			t.Errorf("input %q should fail", input)
		}
		if !hasError(got.Errors, models.ErrNoTextDetected) {
			t.Errorf("input %q errors = %v", input, got.Errors)
		}
		if got.Confidence.Overall != 0 {
			t.Errorf("confidence = %v, want 0", got.Confidence.Overall)
		}
		if got.Data != nil {
			t.Errorf("data should be nil, got %+v", got.Data)
		}
	}
}

func TestProcessInsuranceCardIssuerNotIdentified(t *testing.T) {
	p := NewPipeline(nil)
	text := "PLANO DE SAUDE\nBENEFICIARIO: JOAO DA SILVA\nVIGENCIA 01/01/2024"

	got := p.ProcessInsuranceCard(context.Background(), text)
	if got.Success {
		t.Fatal("expected failure")
	}
	if !hasError(got.Errors, models.ErrIssuerNotIdentified) {
		t.Errorf("errors = %v", got.Errors)
	}
}

func TestProcessInsuranceCardRejectsIdentityDocument(t *testing.T) {
	p := NewPipeline(nil)

	got := p.ProcessInsuranceCard(context.Background(), rgSampleText)
	if got.Success {
		t.Fatal("expected failure")
	}
	if !hasError(got.Errors, models.ErrTypeUnsupported) {
		t.Errorf("errors = %v", got.Errors)
	}
}

func TestProcessInsuranceCardUnknownTypeStillAttempted(t *testing.T) {
	p := NewPipeline(nil)

	// Too few markers to classify, but the operator name is printed.
	got := p.ProcessInsuranceCard(context.Background(), "SULAMERICA")
	if !got.Success {
		t.Fatalf("expected success, errors: %v", got.Errors)
	}
	if got.Data.Operator != string(IssuerSulAmerica) {
		t.Errorf("operator = %q", got.Data.Operator)
	}
}

func TestProcessInsuranceCardRegistryEnrichment(t *testing.T) {
	reg := &fakeRegistry{entry: &RegistryEntry{
		ID:            "op-123",
		CanonicalName: "SUL AMERICA COMPANHIA DE SEGURO SAUDE",
		MatchedCode:   "6246",
	}}
	p := NewPipeline(reg)

	got := p.ProcessInsuranceCard(context.Background(), sulamericaCardText)
	if !got.Success {
		t.Fatalf("expected success, errors: %v", got.Errors)
	}
	if got.Data.NormalizedOperatorName != "SUL AMERICA COMPANHIA DE SEGURO SAUDE" {
		t.Errorf("normalized name = %q", got.Data.NormalizedOperatorName)
	}
	if got.Data.RegistryID != "op-123" {
		t.Errorf("registry id = %q", got.Data.RegistryID)
	}
}

func TestProcessInsuranceCardRegistryFailureIsNotFatal(t *testing.T) {
	reg := &fakeRegistry{err: context.DeadlineExceeded}
	p := NewPipeline(reg)

	got := p.ProcessInsuranceCard(context.Background(), sulamericaCardText)
	if !got.Success {
		t.Fatalf("registry failure must not fail the call, errors: %v", got.Errors)
	}
	if got.Data.NormalizedOperatorName != "Sul América Seguro Saúde" {
		t.Errorf("should fall back to the local display name, got %q", got.Data.NormalizedOperatorName)
	}
	if got.Data.RegistryID != "" {
		t.Errorf("registry id should stay empty, got %q", got.Data.RegistryID)
	}
}

func TestProcessInsuranceCardPanicCapture(t *testing.T) {
	p := NewPipeline(panicRegistry{})

	got := p.ProcessInsuranceCard(context.Background(), sulamericaCardText)
	if got.Success {
		t.Fatal("expected failure")
	}
	if !hasError(got.Errors, models.ErrProcessingException) {
		t.Errorf("errors = %v", got.Errors)
	}
	if !hasError(got.Errors, "registry down") {
		t.Errorf("panic value should be reported, errors = %v", got.Errors)
	}
}

func TestProcessInsuranceCardIdempotent(t *testing.T) {
	p := NewPipeline(nil)

	first, err := json.Marshal(p.ProcessInsuranceCard(context.Background(), sulamericaCardText))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(p.ProcessInsuranceCard(context.Background(), sulamericaCardText))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("repeated runs differ:\n%s\n%s", first, second)
	}
}

func TestProcessIdentityDocument(t *testing.T) {
	p := NewPipeline(nil)

	got := p.ProcessIdentityDocument(context.Background(), rgSampleText)
	if !got.Success {
		t.Fatalf("expected success, errors: %v", got.Errors)
	}
	if got.Data.FullName != "Daniel Coelho Da Costa" {
		t.Errorf("full name = %q", got.Data.FullName)
	}
	if got.Data.DocumentNumber != "48.151.623-42" {
		t.Errorf("document number = %q", got.Data.DocumentNumber)
	}
	if got.Data.Subtype != models.IdentitySubtypeRG {
		t.Errorf("subtype = %q", got.Data.Subtype)
	}
	if got.Method.Type != models.MethodStructural {
		t.Errorf("method = %v", got.Method.Type)
	}
	if got.Confidence.Overall <= 0 {
		t.Errorf("confidence = %v", got.Confidence.Overall)
	}
}

func TestProcessIdentityDocumentEmptyText(t *testing.T) {
	p := NewPipeline(nil)

	got := p.ProcessIdentityDocument(context.Background(), "  ")
	if got.Success {
		t.Fatal("expected failure")
	}
	if !hasError(got.Errors, models.ErrNoTextDetected) {
		t.Errorf("errors = %v", got.Errors)
	}
}

func TestProcessIdentityDocumentRejectsInsuranceCard(t *testing.T) {
	p := NewPipeline(nil)

	got := p.ProcessIdentityDocument(context.Background(), sulamericaCardText)
	if got.Success {
		t.Fatal("expected failure")
	}
	if !hasError(got.Errors, models.ErrTypeUnsupported) {
		t.Errorf("errors = %v", got.Errors)
	}
}

func TestProcessIdentityDocumentIdempotent(t *testing.T) {
	p := NewPipeline(nil)

	first, err := json.Marshal(p.ProcessIdentityDocument(context.Background(), rgSampleText))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(p.ProcessIdentityDocument(context.Background(), rgSampleText))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("repeated runs differ:\n%s\n%s", first, second)
	}
}
