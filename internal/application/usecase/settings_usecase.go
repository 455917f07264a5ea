package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Cotizaciones-api/internal/application/dto"
	"github.com/jhoicas/Cotizaciones-api/internal/domain"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/repository"
)

// SettingsDefaults valores que aplican a empresas sin configuración guardada (QUOTATION_* en config).
type SettingsDefaults struct {
	Prefix         string
	CateringPrefix string
	ValidityDays   int
}

// SettingsUseCase configuración de cotizaciones por empresa.
type SettingsUseCase struct {
	repo     repository.SettingsRepository
	defaults SettingsDefaults
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository, defaults SettingsDefaults) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, defaults: defaults}
}

// Effective devuelve la configuración guardada o, si no existe, la configuración por defecto.
func (uc *SettingsUseCase) Effective(ctx context.Context, companyID string) (*entity.Settings, error) {
	s, err := uc.repo.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}
	s = entity.DefaultSettings(companyID)
	if uc.defaults.Prefix != "" {
		s.Prefix = uc.defaults.Prefix
	}
	if uc.defaults.CateringPrefix != "" {
		s.CateringPrefix = uc.defaults.CateringPrefix
	}
	if uc.defaults.ValidityDays > 0 {
		s.ValidityDays = uc.defaults.ValidityDays
	}
	return s, nil
}

// Get configuración efectiva de la empresa.
func (uc *SettingsUseCase) Get(ctx context.Context, companyID string) (*dto.SettingsResponse, error) {
	s, err := uc.Effective(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(s), nil
}

// Update guarda los campos enviados sobre la configuración efectiva.
// Cambiar el prefijo no altera los números ya asignados.
func (uc *SettingsUseCase) Update(ctx context.Context, companyID string, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	s, err := uc.Effective(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if in.Prefix != nil {
		s.Prefix = strings.ToUpper(strings.TrimSpace(*in.Prefix))
	}
	if in.CateringPrefix != nil {
		s.CateringPrefix = strings.ToUpper(strings.TrimSpace(*in.CateringPrefix))
	}
	if in.ValidityDays != nil {
		s.ValidityDays = *in.ValidityDays
	}
	// las series estándar y catering no pueden compartir prefijo
	if strings.EqualFold(s.Prefix, s.CateringPrefix) {
		return nil, fmt.Errorf("%w: el prefijo de catering debe ser distinto al prefijo estándar (%s)", domain.ErrInvalidInput, s.Prefix)
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, err
	}
	return toSettingsResponse(s), nil
}

func toSettingsResponse(s *entity.Settings) *dto.SettingsResponse {
	resp := &dto.SettingsResponse{
		CompanyID:      s.CompanyID,
		Prefix:         s.Prefix,
		CateringPrefix: s.CateringPrefix,
		ValidityDays:   s.ValidityDays,
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}
