package models

// DocumentType identifies the document family a text was classified into.
type DocumentType string

const (
	DocumentTypeInsuranceCard DocumentType = "INSURANCE_CARD"
	DocumentTypeIdentity      DocumentType = "IDENTITY_DOCUMENT"
	DocumentTypeUnknown       DocumentType = "UNKNOWN"
)

// Identity subtypes: legacy RG booklet vs the new unified CIN card.
const (
	IdentitySubtypeRG  = "RG"
	IdentitySubtypeCIN = "CIN"
)

// Insurance subtypes resolved by the classifier's secondary marker set.
const (
	InsuranceSubtypeMedical = "MEDICAL"
	InsuranceSubtypeDental  = "DENTAL"
)

// DocumentTypeResult is the classifier output. Produced once per call,
// never mutated.
type DocumentTypeResult struct {
	Type       DocumentType `json:"type"`
	Subtype    string       `json:"subtype"`
	Confidence float64      `json:"confidence"` // 0-1, fraction of family markers matched
}

// DetectionMethod records how the operator (or document shape) was resolved.
type DetectionMethod string

const (
	MethodANSCode     DetectionMethod = "ANS_CODE"     // authoritative code lookup
	MethodTextPattern DetectionMethod = "TEXT_PATTERN" // priority-ordered keyword match
	MethodFuzzy       DetectionMethod = "FUZZY"        // word-overlap similarity
	MethodFallback    DetectionMethod = "FALLBACK"     // generic extractor path
	MethodStructural  DetectionMethod = "STRUCTURAL"   // identity layout heuristics
)

// Method describes the winning strategy for a result.
type Method struct {
	Type    DetectionMethod `json:"type"`
	Details string          `json:"details,omitempty"`
}

// Error codes reported in ExtractionResult.Errors. Fatal conditions only;
// missing optional fields are reflected through confidence, never here.
const (
	ErrNoTextDetected      = "NO_TEXT_DETECTED"
	ErrIssuerNotIdentified = "ISSUER_NOT_IDENTIFIED"
	ErrTypeUnsupported     = "DOCUMENT_TYPE_UNSUPPORTED"
	ErrProcessingException = "PROCESSING_EXCEPTION"
)

// InsuranceFields is the extracted data for a health-insurance card.
// Every field is optional; the empty string means "not found".
type InsuranceFields struct {
	Operator               string `json:"operator"`
	NormalizedOperatorName string `json:"normalizedOperatorName"`
	Plan                   string `json:"plan,omitempty"`
	CardNumber             string `json:"cardNumber,omitempty"`
	HolderName             string `json:"holderName,omitempty"`
	BirthDate              string `json:"birthDate,omitempty"` // YYYY-MM-DD
	CNS                    string `json:"nationalHealthCardNumber,omitempty"`
	ANSCode                string `json:"issuerCode,omitempty"`
	RegistryID             string `json:"issuerRegistryId,omitempty"`
}

// Filiation holds the parents' names as printed on an identity document.
type Filiation struct {
	Mother string `json:"mother,omitempty"`
	Father string `json:"father,omitempty"`
}

// IdentityFields is the extracted data for a government identity document.
type IdentityFields struct {
	DocumentType     string     `json:"documentType"`
	Subtype          string     `json:"subtype"`
	FullName         string     `json:"fullName,omitempty"`
	DocumentNumber   string     `json:"documentNumber,omitempty"` // RG, as printed
	CPF              string     `json:"taxpayerNumber,omitempty"`
	BirthDate        string     `json:"birthDate,omitempty"`  // YYYY-MM-DD
	Filiation        *Filiation `json:"filiation,omitempty"`
	BirthPlace       string     `json:"birthPlace,omitempty"`
	IssuedDate       string     `json:"issuedDate,omitempty"` // YYYY-MM-DD
	IssuingAuthority string     `json:"issuingAuthority,omitempty"`
	DocumentOrigin   string     `json:"documentOrigin,omitempty"`
}

// ConfidenceScore is a weighted completeness score, recomputed from the
// final field set on every call.
type ConfidenceScore struct {
	Overall float64            `json:"overall"`
	Fields  map[string]float64 `json:"fields,omitempty"`
}

// TraceStep is one recorded pipeline stage transition. The trace is owned by
// a single call; concurrent documents never share one. Steps carry no
// timestamps so identical input produces byte-identical results.
type TraceStep struct {
	Stage  string `json:"stage"`
	Detail string `json:"detail,omitempty"`
}

// InsuranceResult is the terminal output of the insurance pipeline.
type InsuranceResult struct {
	Success    bool             `json:"success"`
	Data       *InsuranceFields `json:"data,omitempty"`
	Confidence ConfidenceScore  `json:"confidence"`
	Method     Method           `json:"method"`
	Errors     []string         `json:"errors,omitempty"`
	Trace      []TraceStep      `json:"trace,omitempty"`
}

// IdentityResult is the terminal output of the identity pipeline.
type IdentityResult struct {
	Success    bool            `json:"success"`
	Data       *IdentityFields `json:"data,omitempty"`
	Confidence ConfidenceScore `json:"confidence"`
	Method     Method          `json:"method"`
	Errors     []string        `json:"errors,omitempty"`
	Trace      []TraceStep     `json:"trace,omitempty"`
}
