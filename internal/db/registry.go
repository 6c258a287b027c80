package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/carteiraIA/card-ocr-service/internal/extract"
)

// OperatorRegistry resolves ANS registry codes against the operadoras table.
// It backs the pipeline's registry collaborator; the hardcoded bootstrap
// table inside the pipeline covers the case where no database is configured.
type OperatorRegistry struct{}

// NewOperatorRegistry creates the database-backed operator registry
func NewOperatorRegistry() *OperatorRegistry {
	return &OperatorRegistry{}
}

// LookupByCode returns the canonical operator record for a normalized ANS
// code. A missing row returns (nil, nil) so the caller can fall back to the
// local display name without treating it as a failure.
func (r *OperatorRegistry) LookupByCode(ctx context.Context, code string) (*extract.RegistryEntry, error) {
	if Pool == nil {
		return nil, fmt.Errorf("database not available")
	}

	normalized := extract.NormalizeANSCode(code)
	if normalized == "" {
		return nil, nil
	}

	query := `
		SELECT id, razao_social, codigo_ans
		FROM public.operadoras
		WHERE TRIM(LEADING '0' FROM codigo_ans) = $1
	`

	var id, name, matched string
	err := Pool.QueryRow(ctx, query, normalized).Scan(&id, &name, &matched)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("operator lookup failed: %w", err)
	}

	return &extract.RegistryEntry{
		ID:            id,
		CanonicalName: name,
		MatchedCode:   matched,
	}, nil
}
