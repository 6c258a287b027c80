package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/carteiraIA/card-ocr-service/internal/models"
)

// RegistryEntry is what the operator registry collaborator returns for an
// ANS code lookup.
type RegistryEntry struct {
	ID            string
	CanonicalName string
	MatchedCode   string
}

// IssuerRegistry is the external operator registry collaborator. A not-found
// or failed lookup is never fatal; the pipeline falls back to the locally
// derived display name.
type IssuerRegistry interface {
	LookupByCode(ctx context.Context, code string) (*RegistryEntry, error)
}

// Pipeline sequences the extraction stages for both document families and
// assembles the final result. It is stateless across calls: every invocation
// owns its input, its trace and its result, so independent documents can be
// processed concurrently.
type Pipeline struct {
	classifier *Classifier
	detector   *Detector
	extractors *Registry
	identity   *IdentityExtractor
	registry   IssuerRegistry
}

// NewPipeline creates the extraction pipeline. The registry collaborator may
// be nil, in which case operator names come from the local table only.
func NewPipeline(registry IssuerRegistry) *Pipeline {
	return &Pipeline{
		classifier: NewClassifier(),
		detector:   NewDetector(),
		extractors: NewRegistry(),
		identity:   NewIdentityExtractor(),
		registry:   registry,
	}
}

// ProcessInsuranceCard runs the insurance extraction path over raw OCR text.
// It never returns an error or panics: every failure is captured in the
// result.
func (p *Pipeline) ProcessInsuranceCard(ctx context.Context, rawText string) (result *models.InsuranceResult) {
	trace := NewTrace()

	defer func() {
		if r := recover(); r != nil {
			result = &models.InsuranceResult{
				Success: false,
				Errors:  []string{models.ErrProcessingException, fmt.Sprintf("%v", r)},
				Trace:   trace.Steps(),
			}
		}
	}()

	if strings.TrimSpace(rawText) == "" {
		trace.Record("INIT", "empty input")
		return &models.InsuranceResult{
			Success: false,
			Errors:  []string{models.ErrNoTextDetected},
			Trace:   trace.Steps(),
		}
	}

	text := NormalizeText(rawText)
	trace.Record("TEXT_READY", fmt.Sprintf("%d chars", len(text)))

	docType := p.classifier.Classify(text)
	trace.Record("TYPE_DETECTED", string(docType.Type))

	// A positive identity classification means the caller picked the wrong
	// entry point. UNKNOWN is not fatal: the insurance path is still
	// attempted, matching historical behavior.
	if docType.Type == models.DocumentTypeIdentity {
		return &models.InsuranceResult{
			Success: false,
			Errors:  []string{models.ErrTypeUnsupported},
			Trace:   trace.Steps(),
		}
	}

	ansCode := ExtractANSCode(text)
	if ansCode != "" {
		trace.Record("ANS_CODE", ansCode)
	}

	detected := p.detector.Detect(text, ansCode)
	if detected == nil {
		trace.Record("ISSUER_DETECTION", "no operator matched")
		return &models.InsuranceResult{
			Success: false,
			Errors:  []string{models.ErrIssuerNotIdentified},
			Trace:   trace.Steps(),
		}
	}
	trace.Record("ISSUER_DETECTED", string(detected.Issuer))

	extractor, specialized := p.extractors.ExtractorFor(detected.Issuer)

	data := &models.InsuranceFields{
		Operator:               string(detected.Issuer),
		NormalizedOperatorName: DisplayName(detected.Issuer),
		ANSCode:                ansCode,
	}
	data.CardNumber = extractor.ExtractCardNumber(text)
	data.Plan = MapPlanName(detected.Issuer, extractor.ExtractPlan(text))
	data.HolderName = extractor.ExtractHolderName(text)
	data.CNS = extractor.ExtractCNS(text)
	data.BirthDate = extractor.ExtractBirthDate(text)
	trace.Record("FIELDS_EXTRACTED", "")

	// Registry enrichment: authoritative name and id when available.
	if p.registry != nil && ansCode != "" {
		if entry, err := p.registry.LookupByCode(ctx, ansCode); err == nil && entry != nil {
			data.NormalizedOperatorName = entry.CanonicalName
			data.RegistryID = entry.ID
			trace.Record("REGISTRY_LOOKUP", entry.MatchedCode)
		}
	}

	confidence := ScoreInsurance(data)
	trace.Record("SCORED", fmt.Sprintf("%.2f", confidence.Overall))

	method := models.Method{Type: detected.Method, Details: detected.Details}
	if !specialized {
		method = models.Method{Type: models.MethodFallback, Details: string(detected.Method)}
	}

	trace.Record("DONE", "")
	return &models.InsuranceResult{
		Success:    true,
		Data:       data,
		Confidence: confidence,
		Method:     method,
		Trace:      trace.Steps(),
	}
}

// ProcessIdentityDocument runs the identity extraction path over raw OCR
// text. Same guarantees as the insurance path.
func (p *Pipeline) ProcessIdentityDocument(ctx context.Context, rawText string) (result *models.IdentityResult) {
	trace := NewTrace()

	defer func() {
		if r := recover(); r != nil {
			result = &models.IdentityResult{
				Success: false,
				Errors:  []string{models.ErrProcessingException, fmt.Sprintf("%v", r)},
				Trace:   trace.Steps(),
			}
		}
	}()

	if strings.TrimSpace(rawText) == "" {
		trace.Record("INIT", "empty input")
		return &models.IdentityResult{
			Success: false,
			Errors:  []string{models.ErrNoTextDetected},
			Trace:   trace.Steps(),
		}
	}

	text := NormalizeText(rawText)
	trace.Record("TEXT_READY", fmt.Sprintf("%d chars", len(text)))

	docType := p.classifier.Classify(text)
	trace.Record("TYPE_DETECTED", string(docType.Type))

	// The structural gate is the real arbiter here: even texts the
	// classifier could not place are accepted when they carry the
	// document's fixed structure.
	if !p.identity.CanHandle(text) {
		return &models.IdentityResult{
			Success: false,
			Errors:  []string{models.ErrTypeUnsupported},
			Trace:   trace.Steps(),
		}
	}

	data := p.identity.Extract(text, identitySubtype(text))
	trace.Record("FIELDS_EXTRACTED", "")

	confidence := ScoreIdentity(data)
	trace.Record("SCORED", fmt.Sprintf("%.2f", confidence.Overall))

	trace.Record("DONE", "")
	return &models.IdentityResult{
		Success:    true,
		Data:       data,
		Confidence: confidence,
		Method:     models.Method{Type: models.MethodStructural},
		Trace:      trace.Steps(),
	}
}
