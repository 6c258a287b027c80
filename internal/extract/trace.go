package extract

import (
	"github.com/carteiraIA/card-ocr-service/internal/models"
)

// Trace accumulates stage transitions for a single pipeline call. Every
// invocation creates its own Trace and returns it with the result, so
// concurrent documents never interleave histories.
type Trace struct {
	steps []models.TraceStep
}

// NewTrace creates an empty per-call trace
func NewTrace() *Trace {
	return &Trace{}
}

// Record appends one stage transition.
func (t *Trace) Record(stage, detail string) {
	t.steps = append(t.steps, models.TraceStep{
		Stage:  stage,
		Detail: detail,
	})
}

// Steps returns the recorded history for inclusion in the result.
func (t *Trace) Steps() []models.TraceStep {
	return t.steps
}
