package quotation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizaciones-api/internal/application/dto"
	"github.com/jhoicas/Cotizaciones-api/internal/domain"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
	domquotation "github.com/jhoicas/Cotizaciones-api/internal/domain/quotation"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/repository"
)

// Ámbitos de numeración.
const (
	ScopeCompany = "company"
	ScopeUser    = "user"
)

const dateLayout = "2006-01-02"

// Config parámetros del motor de cotizaciones (ver pkg/config).
type Config struct {
	// NumberingScope company (por defecto) o user.
	NumberingScope             string
	StrictStatus               bool
	RejectDiscountOverSubtotal bool
}

// UseCase casos de uso de cotizaciones: creación con numeración atómica, edición sujeta al estado,
// cambio de estado, duplicado y vencimiento.
type UseCase struct {
	txRunner    TxRunner
	repo        repository.QuotationRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	settings    SettingsProvider
	engine      domquotation.Engine
	policy      domquotation.TransitionPolicy
	scope       string
	log         zerolog.Logger
	now         func() time.Time
}

// NewUseCase construye el caso de uso inyectando sus dependencias.
func NewUseCase(
	txRunner TxRunner,
	repo repository.QuotationRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	settings SettingsProvider,
	cfg Config,
	log zerolog.Logger,
) *UseCase {
	var policy domquotation.TransitionPolicy = domquotation.PermissivePolicy{}
	if cfg.StrictStatus {
		policy = domquotation.ForwardPolicy{}
	}
	scope := cfg.NumberingScope
	if scope != ScopeUser {
		scope = ScopeCompany
	}
	return &UseCase{
		txRunner:    txRunner,
		repo:        repo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		settings:    settings,
		engine:      domquotation.Engine{RejectDiscountOverSubtotal: cfg.RejectDiscountOverSubtotal},
		policy:      policy,
		scope:       scope,
		log:         log.With().Str("component", "quotation").Logger(),
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Create valida, resuelve líneas contra el catálogo, calcula totales y asigna el número dentro de una
// transacción. Si el consecutivo falla no se persiste nada (ErrNumberingFailure).
func (uc *UseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	kind := entity.QuotationKind(in.Kind)
	if kind == "" {
		kind = entity.QuotationKindStandard
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: tipo de cotización desconocido %q", domain.ErrInvalidInput, in.Kind)
	}
	if err := uc.checkClient(ctx, companyID, in.ClientID); err != nil {
		return nil, err
	}
	items, err := uc.resolveItems(ctx, companyID, in.Items)
	if err != nil {
		return nil, err
	}
	event, err := toEvent(in.Event)
	if err != nil {
		return nil, err
	}
	if kind != entity.QuotationKindCatering {
		event = nil
	}

	now := uc.now()
	issue := now
	if in.IssueDate != "" {
		issue, err = time.Parse(dateLayout, in.IssueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: issue_date inválida", domain.ErrInvalidInput)
		}
	}

	q := &entity.Quotation{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		CreatedBy: userID,
		ClientID:  in.ClientID,
		Kind:      kind,
		Title:     strings.TrimSpace(in.Title),
		Status:    entity.QuotationStatusDraft,
		Items:     items,
		Discount:  entity.Discount{Kind: entity.DiscountKind(in.Discount.Kind), Value: in.Discount.Value},
		Tax:       entity.Tax{RatePercent: in.TaxRate},
		Notes:     in.Notes,
		Event:     event,
		IssueDate: issue,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.create(ctx, q); err != nil {
		return nil, err
	}
	return ToResponse(q), nil
}

// create completa dueño, totales, vigencia y número, y persiste en una sola transacción.
func (uc *UseCase) create(ctx context.Context, q *entity.Quotation) error {
	if err := domquotation.ValidateEvent(q.Kind, q.Event); err != nil {
		return err
	}
	if err := uc.recompute(q); err != nil {
		return err
	}
	settings, err := uc.settings.Effective(ctx, q.CompanyID)
	if err != nil {
		return err
	}
	q.OwnerScope = q.CompanyID
	if uc.scope == ScopeUser && q.CreatedBy != "" {
		q.OwnerScope = q.CreatedBy
	}
	q.ExpiresAt = domquotation.ExpiryDate(q.IssueDate, settings.ValidityDays)
	prefix := settings.PrefixFor(q.Kind)
	scope := domquotation.SequenceScope(q.OwnerScope, q.Kind)

	err = uc.txRunner.RunQuotation(ctx, func(repo repository.QuotationRepository, seq Sequencer) error {
		n, err := seq.Next(ctx, scope)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrNumberingFailure, err)
		}
		q.Number = domquotation.FormatNumber(prefix, q.CreatedAt, n)
		return repo.Create(ctx, q)
	})
	if err != nil {
		q.Number = ""
		if errors.Is(err, domain.ErrNumberingFailure) {
			uc.log.Error().Err(err).Str("company_id", q.CompanyID).Str("scope", scope).Msg("falló la asignación del consecutivo")
		}
		return err
	}
	uc.log.Info().
		Str("company_id", q.CompanyID).
		Str("quotation_id", q.ID).
		Str("number", q.Number).
		Str("kind", string(q.Kind)).
		Str("grand_total", q.Totals.GrandTotal.String()).
		Msg("cotización creada")
	return nil
}

// Get obtiene una cotización de la empresa con sus líneas.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*dto.QuotationResponse, error) {
	q, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToResponse(q), nil
}

// List lista cotizaciones de la empresa con filtros opcionales de estado, tipo y cliente.
func (uc *UseCase) List(ctx context.Context, companyID string, in dto.QuotationListRequest) (*dto.QuotationListResponse, error) {
	page := in.Page().Normalize()
	filter := repository.QuotationFilter{
		CompanyID: companyID,
		Status:    entity.QuotationStatus(in.Status),
		Kind:      entity.QuotationKind(in.Kind),
		ClientID:  in.ClientID,
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, in.Status)
	}
	if filter.Kind != "" && !filter.Kind.Valid() {
		return nil, fmt.Errorf("%w: tipo desconocido %q", domain.ErrInvalidInput, in.Kind)
	}
	list, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.QuotationResponse, 0, len(list))
	for _, q := range list {
		items = append(items, *ToResponse(q))
	}
	return &dto.QuotationListResponse{
		Items: items,
		Page:  page.Response(total),
	}, nil
}

// Update modifica el contenido y recalcula totales. El número nunca cambia.
// Cotizaciones aceptadas o vencidas devuelven ErrInvalidState sin modificar nada.
func (uc *UseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateQuotationRequest) (*dto.QuotationResponse, error) {
	q, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := domquotation.EnsureEditable(q); err != nil {
		return nil, err
	}

	if in.ClientID != nil && *in.ClientID != q.ClientID {
		if err := uc.checkClient(ctx, companyID, *in.ClientID); err != nil {
			return nil, err
		}
		q.ClientID = *in.ClientID
	}
	if in.Title != nil {
		q.Title = strings.TrimSpace(*in.Title)
	}
	if in.Notes != nil {
		q.Notes = *in.Notes
	}
	if in.Items != nil {
		items, err := uc.resolveItems(ctx, companyID, in.Items)
		if err != nil {
			return nil, err
		}
		q.Items = items
	}
	if in.Discount != nil {
		q.Discount = entity.Discount{Kind: entity.DiscountKind(in.Discount.Kind), Value: in.Discount.Value}
	}
	if in.TaxRate != nil {
		q.Tax = entity.Tax{RatePercent: *in.TaxRate}
	}
	if in.Event != nil && q.Kind == entity.QuotationKindCatering {
		event, err := toEvent(in.Event)
		if err != nil {
			return nil, err
		}
		q.Event = event
	}
	if err := domquotation.ValidateEvent(q.Kind, q.Event); err != nil {
		return nil, err
	}
	if err := uc.recompute(q); err != nil {
		return nil, err
	}
	q.UpdatedAt = uc.now()

	err = uc.txRunner.RunQuotation(ctx, func(repo repository.QuotationRepository, _ Sequencer) error {
		return repo.Update(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", companyID).Str("quotation_id", q.ID).Str("number", q.Number).Msg("cotización actualizada")
	return ToResponse(q), nil
}

// SetStatus cambia el estado según la política configurada (permisiva por defecto).
func (uc *UseCase) SetStatus(ctx context.Context, companyID, id string, in dto.UpdateQuotationStatusRequest) (*dto.QuotationResponse, error) {
	q, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	from := q.Status
	if err := domquotation.SetStatus(q, entity.QuotationStatus(in.Status), uc.policy, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, q); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("company_id", companyID).
		Str("quotation_id", q.ID).
		Str("number", q.Number).
		Str("from", string(from)).
		Str("to", string(q.Status)).
		Msg("estado de cotización actualizado")
	return ToResponse(q), nil
}

// Delete elimina la cotización. Las aceptadas no se pueden eliminar.
func (uc *UseCase) Delete(ctx context.Context, companyID, id string) error {
	q, err := uc.load(ctx, companyID, id)
	if err != nil {
		return err
	}
	if !domquotation.CanDelete(q) {
		return fmt.Errorf("%w: la cotización %s está aceptada", domain.ErrInvalidState, q.Number)
	}
	if err := uc.repo.Delete(ctx, q.ID); err != nil {
		return err
	}
	uc.log.Info().Str("company_id", companyID).Str("quotation_id", q.ID).Str("number", q.Number).Msg("cotización eliminada")
	return nil
}

// Duplicate crea una cotización nueva (borrador, número nuevo, vigencia desde hoy) con el contenido de otra.
// Se permite desde cualquier estado.
func (uc *UseCase) Duplicate(ctx context.Context, companyID, userID, id string) (*dto.QuotationResponse, error) {
	src, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	q := &entity.Quotation{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		CreatedBy: userID,
		ClientID:  src.ClientID,
		Kind:      src.Kind,
		Title:     src.Title,
		Status:    entity.QuotationStatusDraft,
		Items:     make([]entity.QuotationItem, len(src.Items)),
		Discount:  src.Discount,
		Tax:       src.Tax,
		Notes:     src.Notes,
		IssueDate: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, item := range src.Items {
		item.ID = uuid.New().String()
		item.QuotationID = q.ID
		q.Items[i] = item
	}
	if src.Event != nil {
		ev := *src.Event
		q.Event = &ev
	}
	if err := uc.create(ctx, q); err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", companyID).Str("source_id", src.ID).Str("quotation_id", q.ID).Msg("cotización duplicada")
	return ToResponse(q), nil
}

// ExpireOverdue marca como vencidas las cotizaciones abiertas cuya vigencia terminó.
func (uc *UseCase) ExpireOverdue(ctx context.Context, companyID string) (*dto.ExpireQuotationsResponse, error) {
	now := uc.now()
	list, err := uc.repo.ListOverdue(ctx, companyID, now)
	if err != nil {
		return nil, err
	}
	out := &dto.ExpireQuotationsResponse{IDs: make([]string, 0, len(list))}
	for _, q := range list {
		if !domquotation.IsOverdue(q, now) {
			continue
		}
		if err := domquotation.SetStatus(q, entity.QuotationStatusExpired, uc.policy, now); err != nil {
			uc.log.Warn().Err(err).Str("quotation_id", q.ID).Msg("no se pudo vencer la cotización")
			continue
		}
		if err := uc.repo.UpdateStatus(ctx, q); err != nil {
			return nil, err
		}
		out.IDs = append(out.IDs, q.ID)
	}
	out.Expired = len(out.IDs)
	uc.log.Info().Str("company_id", companyID).Int("expired", out.Expired).Msg("barrido de vencimiento")
	return out, nil
}

// load obtiene la cotización y verifica que pertenezca a la empresa.
func (uc *UseCase) load(ctx context.Context, companyID, id string) (*entity.Quotation, error) {
	q, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	if q.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return q, nil
}

func (uc *UseCase) checkClient(ctx context.Context, companyID, clientID string) error {
	if strings.TrimSpace(clientID) == "" {
		return fmt.Errorf("%w: client_id requerido", domain.ErrInvalidInput)
	}
	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client == nil || client.CompanyID != companyID {
		return fmt.Errorf("%w: cliente %s no existe", domain.ErrInvalidInput, clientID)
	}
	return nil
}

// resolveItems completa cada línea con precio y descripción del catálogo de la empresa.
func (uc *UseCase) resolveItems(ctx context.Context, companyID string, in []dto.QuotationItemRequest) ([]entity.QuotationItem, error) {
	products := make(map[string]*entity.Product)
	items := make([]entity.QuotationItem, 0, len(in))
	for i, line := range in {
		product, ok := products[line.ProductID]
		if !ok {
			p, err := uc.productRepo.GetByID(ctx, line.ProductID)
			if err != nil {
				return nil, err
			}
			if p != nil && p.CompanyID != companyID {
				p = nil
			}
			products[line.ProductID] = p
			product = p
		}
		item, err := domquotation.ResolveItem(domquotation.ItemInput{
			ProductID:   line.ProductID,
			SizeID:      line.SizeID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		}, product)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
		item.ID = uuid.New().String()
		items = append(items, item)
	}
	return items, nil
}

// recompute recalcula líneas y totales con el motor configurado.
func (uc *UseCase) recompute(q *entity.Quotation) error {
	items, err := domquotation.RecomputeLines(q.Items)
	if err != nil {
		return err
	}
	totals, err := uc.engine.ComputeTotals(items, q.Discount, q.Tax)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].QuotationID = q.ID
	}
	q.Items = items
	q.Totals = totals
	return nil
}

func toEvent(in *dto.CateringEventRequest) (*entity.CateringEvent, error) {
	if in == nil {
		return nil, nil
	}
	date, err := time.Parse(dateLayout, in.EventDate)
	if err != nil {
		return nil, fmt.Errorf("%w: event_date inválida", domain.ErrInvalidInput)
	}
	return &entity.CateringEvent{
		EventDate:  date,
		GuestCount: in.GuestCount,
		Venue:      strings.TrimSpace(in.Venue),
		MenuNotes:  in.MenuNotes,
	}, nil
}

// PricePerGuest total del evento dividido entre invitados (sin redondear).
func PricePerGuest(q *entity.Quotation) decimal.Decimal {
	if q.Event == nil || q.Event.GuestCount <= 0 {
		return decimal.Zero
	}
	return q.Totals.GrandTotal.Div(decimal.NewFromInt(int64(q.Event.GuestCount)))
}
