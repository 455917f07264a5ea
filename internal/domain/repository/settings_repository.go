package repository

import (
	"context"

	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
)

// SettingsRepository configuración de cotizaciones por empresa.
type SettingsRepository interface {
	// Get devuelve (nil, nil) si la empresa no ha guardado configuración.
	Get(ctx context.Context, companyID string) (*entity.Settings, error)
	Upsert(ctx context.Context, settings *entity.Settings) error
}
