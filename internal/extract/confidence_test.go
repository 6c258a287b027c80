package extract

import (
	"math"
	"testing"

	"github.com/carteiraIA/card-ocr-service/internal/models"
)

func TestScoreInsurance(t *testing.T) {
	tests := []struct {
		name string
		data *models.InsuranceFields
		want float64
	}{
		{"nil data", nil, 0},
		{"empty fields", &models.InsuranceFields{}, 0},
		{
			name: "all fields present",
			data: &models.InsuranceFields{
				Operator:   "SULAMERICA",
				CardNumber: "88888487287680017",
				HolderName: "Maria Das Dores Lima",
				Plan:       "Especial 100",
				CNS:        "700000000000005",
				BirthDate:  "1987-03-05",
			},
			want: 1,
		},
		{
			name: "operator and card number only",
			data: &models.InsuranceFields{
				Operator:   "SULAMERICA",
				CardNumber: "88888487287680017",
			},
			want: 0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreInsurance(tt.data)
			if math.Abs(got.Overall-tt.want) > 1e-9 {
				t.Errorf("overall = %v, want %v", got.Overall, tt.want)
			}
			if got.Overall < 0 || got.Overall > 1 {
				t.Errorf("overall out of range: %v", got.Overall)
			}
		})
	}
}

func TestScoreIdentity(t *testing.T) {
	tests := []struct {
		name string
		data *models.IdentityFields
		want float64
	}{
		{"nil data", nil, 0},
		{"empty fields", &models.IdentityFields{}, 0},
		{
			name: "name and document number",
			data: &models.IdentityFields{
				FullName:       "Daniel Coelho Da Costa",
				DocumentNumber: "48.151.623-42",
			},
			want: 0.5,
		},
		{
			name: "all fields present",
			data: &models.IdentityFields{
				FullName:       "Daniel Coelho Da Costa",
				DocumentNumber: "48.151.623-42",
				CPF:            "529.982.247-25",
				BirthDate:      "1985-03-15",
				Filiation:      &models.Filiation{Mother: "Maria Coelho Da Costa"},
				BirthPlace:     "Sao Paulo - Sp",
			},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreIdentity(tt.data)
			if math.Abs(got.Overall-tt.want) > 1e-9 {
				t.Errorf("overall = %v, want %v", got.Overall, tt.want)
			}
		})
	}
}

func TestScoreFieldBreakdown(t *testing.T) {
	got := ScoreInsurance(&models.InsuranceFields{Operator: "AMIL"})
	if got.Fields["operator"] != 1 {
		t.Errorf("operator sub-score = %v, want 1", got.Fields["operator"])
	}
	if got.Fields["cardNumber"] != 0 {
		t.Errorf("cardNumber sub-score = %v, want 0", got.Fields["cardNumber"])
	}
	if len(got.Fields) != len(insuranceWeights) {
		t.Errorf("breakdown has %d entries, want %d", len(got.Fields), len(insuranceWeights))
	}
}
