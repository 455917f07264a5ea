package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Cotizaciones-api/internal/domain"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
	domquotation "github.com/jhoicas/Cotizaciones-api/internal/domain/quotation"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo guarda copias: lo que devuelve no comparte memoria con lo almacenado.
type QuotationRepo struct {
	mu   sync.RWMutex
	byID map[string]*entity.Quotation
}

// NewQuotationRepo construye el repositorio vacío.
func NewQuotationRepo() *QuotationRepo {
	return &QuotationRepo{byID: make(map[string]*entity.Quotation)}
}

func (r *QuotationRepo) Create(_ context.Context, q *entity.Quotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createLocked(q)
}

func (r *QuotationRepo) createLocked(q *entity.Quotation) error {
	if _, ok := r.byID[q.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, other := range r.byID {
		if other.CompanyID == q.CompanyID && other.OwnerScope == q.OwnerScope && other.Number == q.Number {
			return domain.ErrDuplicate
		}
	}
	r.byID[q.ID] = cloneQuotation(q)
	return nil
}

func (r *QuotationRepo) Update(_ context.Context, q *entity.Quotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateLocked(q)
}

// updateLocked revalida el estado guardado al aplicar la escritura.
func (r *QuotationRepo) updateLocked(q *entity.Quotation) error {
	stored, ok := r.byID[q.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if err := domquotation.EnsureEditable(stored); err != nil {
		return err
	}
	next := cloneQuotation(q)
	next.Number = stored.Number
	next.Status = stored.Status
	next.OwnerScope = stored.OwnerScope
	next.CreatedAt = stored.CreatedAt
	r.byID[q.ID] = next
	return nil
}

func (r *QuotationRepo) UpdateStatus(_ context.Context, q *entity.Quotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateStatusLocked(q)
}

func (r *QuotationRepo) updateStatusLocked(q *entity.Quotation) error {
	stored, ok := r.byID[q.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = q.Status
	stored.UpdatedAt = q.UpdatedAt
	return nil
}

func (r *QuotationRepo) GetByID(_ context.Context, id string) (*entity.Quotation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneQuotation(q), nil
}

func (r *QuotationRepo) List(_ context.Context, f repository.QuotationFilter) ([]*entity.Quotation, int, error) {
	r.mu.RLock()
	var matched []*entity.Quotation
	for _, q := range r.byID {
		if q.CompanyID != f.CompanyID ||
			(f.Status != "" && q.Status != f.Status) ||
			(f.Kind != "" && q.Kind != f.Kind) ||
			(f.ClientID != "" && q.ClientID != f.ClientID) {
			continue
		}
		c := cloneQuotation(q)
		c.Items = nil
		matched = append(matched, c)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	total := len(matched)
	if f.Offset >= total {
		return []*entity.Quotation{}, total, nil
	}
	end := total
	if f.Limit > 0 && f.Offset+f.Limit < end {
		end = f.Offset + f.Limit
	}
	return matched[f.Offset:end], total, nil
}

func (r *QuotationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleteLocked(id)
}

func (r *QuotationRepo) deleteLocked(id string) error {
	stored, ok := r.byID[id]
	if !ok {
		return nil
	}
	if !domquotation.CanDelete(stored) {
		return fmt.Errorf("%w: la cotización %s está aceptada", domain.ErrInvalidState, stored.Number)
	}
	delete(r.byID, id)
	return nil
}

func (r *QuotationRepo) CountByScope(_ context.Context, ownerScope string, kind entity.QuotationKind) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, q := range r.byID {
		if q.OwnerScope == ownerScope && q.Kind == kind {
			n++
		}
	}
	return n, nil
}

func (r *QuotationRepo) ListOverdue(_ context.Context, companyID string, now time.Time) ([]*entity.Quotation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Quotation
	for _, q := range r.byID {
		if q.CompanyID != companyID || !now.After(q.ExpiresAt) {
			continue
		}
		switch q.Status {
		case entity.QuotationStatusDraft, entity.QuotationStatusSent, entity.QuotationStatusViewed:
			out = append(out, cloneQuotation(q))
		}
	}
	return out, nil
}

func cloneQuotation(q *entity.Quotation) *entity.Quotation {
	c := *q
	c.Items = append([]entity.QuotationItem(nil), q.Items...)
	if q.Event != nil {
		ev := *q.Event
		c.Event = &ev
	}
	return &c
}
