package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Scan is one persisted document-processing run.
type Scan struct {
	ID             uuid.UUID  `json:"id"`
	DocumentType   string     `json:"document_type"`
	Subtype        string     `json:"subtype"`
	HolderName     string     `json:"holder_name"`
	Operator       string     `json:"operator"`
	CardNumber     string     `json:"card_number"`
	DocumentNumber string     `json:"document_number"`
	Confidence     float64    `json:"confidence"`
	Success        bool       `json:"success"`
	ImagenURL      string     `json:"imagen_url"`
	OCRRaw         string     `json:"ocr_raw"`
	ResultJSON     string     `json:"result_json"`
	UsuarioID      uuid.UUID  `json:"usuario_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// SaveScan inserts a processed scan into the tenant's schema.
func SaveScan(ctx context.Context, empresaAlias string, scan *Scan) error {
	schema := GetSchemaForEmpresa(empresaAlias)

	query := fmt.Sprintf(`
		INSERT INTO %s.documentos_escaneados (
			document_type, subtype, holder_name, operator, card_number,
			document_number, confidence, success, imagen_url,
			ocr_raw, result_json, usuario_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`, schema)

	err := Pool.QueryRow(ctx, query,
		scan.DocumentType, scan.Subtype, scan.HolderName, scan.Operator, scan.CardNumber,
		scan.DocumentNumber, scan.Confidence, scan.Success, scan.ImagenURL,
		scan.OCRRaw, scan.ResultJSON, scan.UsuarioID,
	).Scan(&scan.ID, &scan.CreatedAt)

	return err
}

// GetScans lists the most recent scans for a tenant.
func GetScans(ctx context.Context, empresaAlias string, limit int) ([]Scan, error) {
	schema := GetSchemaForEmpresa(empresaAlias)

	query := fmt.Sprintf(`
		SELECT id, COALESCE(document_type, ''), COALESCE(subtype, ''), COALESCE(holder_name, ''),
		       COALESCE(operator, ''), COALESCE(card_number, ''), COALESCE(document_number, ''),
		       COALESCE(confidence, 0), COALESCE(success, false), COALESCE(imagen_url, ''), created_at
		FROM %s.documentos_escaneados
		ORDER BY created_at DESC
		LIMIT $1
	`, schema)

	rows, err := Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []Scan
	for rows.Next() {
		var s Scan
		err := rows.Scan(
			&s.ID, &s.DocumentType, &s.Subtype, &s.HolderName,
			&s.Operator, &s.CardNumber, &s.DocumentNumber,
			&s.Confidence, &s.Success, &s.ImagenURL, &s.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		scans = append(scans, s)
	}

	return scans, nil
}

// GetScanByID retrieves a single scan by ID
func GetScanByID(ctx context.Context, empresaAlias string, scanID string) (*Scan, error) {
	schema := GetSchemaForEmpresa(empresaAlias)

	query := fmt.Sprintf(`
		SELECT id, COALESCE(document_type, ''), COALESCE(subtype, ''), COALESCE(holder_name, ''),
		       COALESCE(operator, ''), COALESCE(card_number, ''), COALESCE(document_number, ''),
		       COALESCE(confidence, 0), COALESCE(success, false), COALESCE(imagen_url, ''),
		       COALESCE(ocr_raw, ''), COALESCE(result_json::text, ''),
		       COALESCE(usuario_id, '00000000-0000-0000-0000-000000000000'::uuid), created_at, updated_at
		FROM %s.documentos_escaneados
		WHERE id = $1
	`, schema)

	var s Scan
	err := Pool.QueryRow(ctx, query, scanID).Scan(
		&s.ID, &s.DocumentType, &s.Subtype, &s.HolderName,
		&s.Operator, &s.CardNumber, &s.DocumentNumber,
		&s.Confidence, &s.Success, &s.ImagenURL,
		&s.OCRRaw, &s.ResultJSON,
		&s.UsuarioID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteScan removes a scan
func DeleteScan(ctx context.Context, empresaAlias string, scanID string) error {
	schema := GetSchemaForEmpresa(empresaAlias)
	query := fmt.Sprintf("DELETE FROM %s.documentos_escaneados WHERE id = $1", schema)
	_, err := Pool.Exec(ctx, query, scanID)
	return err
}

// MonthlyStats represents monthly scan statistics
type MonthlyStats struct {
	Month         string  `json:"month"`
	TotalScans    int     `json:"total_scans"`
	TotalSuccess  int     `json:"total_success"`
	InsuranceScan int     `json:"insurance_scans"`
	IdentityScan  int     `json:"identity_scans"`
	AvgConfidence float64 `json:"avg_confidence"`
}

// GetMonthlyStats returns statistics for the current month
func GetMonthlyStats(ctx context.Context, empresaAlias string) (*MonthlyStats, error) {
	schema := GetSchemaForEmpresa(empresaAlias)

	query := fmt.Sprintf(`
		SELECT
			COUNT(*) as total_scans,
			COUNT(*) FILTER (WHERE success) as total_success,
			COUNT(*) FILTER (WHERE document_type = 'INSURANCE_CARD') as insurance_scans,
			COUNT(*) FILTER (WHERE document_type = 'IDENTITY_DOCUMENT') as identity_scans,
			COALESCE(AVG(confidence), 0) as avg_confidence
		FROM %s.documentos_escaneados
		WHERE DATE_TRUNC('month', created_at) = DATE_TRUNC('month', CURRENT_DATE)
	`, schema)

	stats := &MonthlyStats{
		Month: time.Now().Format("2006-01"),
	}

	err := Pool.QueryRow(ctx, query).Scan(
		&stats.TotalScans,
		&stats.TotalSuccess,
		&stats.InsuranceScan,
		&stats.IdentityScan,
		&stats.AvgConfidence,
	)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
