package extract

import (
	"reflect"
	"testing"

	"github.com/carteiraIA/card-ocr-service/internal/models"
)

func TestClassify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name        string
		text        string
		wantType    models.DocumentType
		wantSubtype string
	}{
		{
			name:        "insurance card",
			text:        "PLANO DE SAUDE\nANS NO 326305\nBENEFICIARIO: JOAO DA SILVA",
			wantType:    models.DocumentTypeInsuranceCard,
			wantSubtype: models.InsuranceSubtypeMedical,
		},
		{
			name:        "dental insurance card",
			text:        "PLANO ODONTO\nANS 582\nOPERADORA",
			wantType:    models.DocumentTypeInsuranceCard,
			wantSubtype: models.InsuranceSubtypeDental,
		},
		{
			name:        "legacy identity booklet",
			text:        "REPUBLICA FEDERATIVA DO BRASIL\nSECRETARIA DE SEGURANCA PUBLICA\nCARTEIRA DE IDENTIDADE\nREGISTRO GERAL\nFILIACAO\nNATURALIDADE",
			wantType:    models.DocumentTypeIdentity,
			wantSubtype: models.IdentitySubtypeRG,
		},
		{
			name:        "unified identity card",
			text:        "REPUBLICA FEDERATIVA DO BRASIL\nCARTEIRA DE IDENTIDADE NACIONAL\nREGISTRO GERAL\nFILIACAO",
			wantType:    models.DocumentTypeIdentity,
			wantSubtype: models.IdentitySubtypeCIN,
		},
		{
			name:        "unrelated document",
			text:        "NOTA FISCAL ELETRONICA\nVALOR TOTAL 150,00",
			wantType:    models.DocumentTypeUnknown,
			wantSubtype: "",
		},
		{
			name:        "single marker is not enough",
			text:        "PLANO DE VOO",
			wantType:    models.DocumentTypeUnknown,
			wantSubtype: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text)
			if got.Type != tt.wantType {
				t.Errorf("Classify type = %v, want %v", got.Type, tt.wantType)
			}
			if got.Subtype != tt.wantSubtype {
				t.Errorf("Classify subtype = %q, want %q", got.Subtype, tt.wantSubtype)
			}
		})
	}
}

func TestClassifyConfidence(t *testing.T) {
	c := NewClassifier()

	full := "REPUBLICA FEDERATIVA DO BRASIL\nSECRETARIA DE SEGURANCA PUBLICA\nCARTEIRA DE IDENTIDADE\nREGISTRO GERAL\nFILIACAO\nNATURALIDADE"
	got := c.Classify(full)
	if got.Confidence != 1 {
		t.Errorf("all six identity markers should score 1.0, got %v", got.Confidence)
	}

	unknown := c.Classify("TEXTO QUALQUER")
	if unknown.Confidence != 0 {
		t.Errorf("unknown document should score 0, got %v", unknown.Confidence)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier()
	text := "PLANO DE SAUDE\nANS NO 326305\nBENEFICIARIO: JOAO DA SILVA"

	first := c.Classify(text)
	for i := 0; i < 5; i++ {
		if got := c.Classify(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differed: %+v vs %+v", i, got, first)
		}
	}
}
