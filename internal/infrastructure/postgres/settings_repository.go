package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo configuración de cotizaciones por empresa sobre PostgreSQL.
type SettingsRepo struct {
	q Querier
}

func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve (nil, nil) si la empresa no tiene fila en quotation_settings.
func (r *SettingsRepo) Get(ctx context.Context, companyID string) (*entity.Settings, error) {
	query := `
		SELECT company_id, prefix, catering_prefix, validity_days, updated_at
		FROM quotation_settings WHERE company_id = $1`
	var s entity.Settings
	err := r.q.QueryRow(ctx, query, companyID).Scan(&s.CompanyID, &s.Prefix, &s.CateringPrefix, &s.ValidityDays, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

func (r *SettingsRepo) Upsert(ctx context.Context, s *entity.Settings) error {
	query := `
		INSERT INTO quotation_settings (company_id, prefix, catering_prefix, validity_days, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id) DO UPDATE
		SET prefix = EXCLUDED.prefix,
		    catering_prefix = EXCLUDED.catering_prefix,
		    validity_days = EXCLUDED.validity_days,
		    updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, s.CompanyID, s.Prefix, s.CateringPrefix, s.ValidityDays, s.UpdatedAt); err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
