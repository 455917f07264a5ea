package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cotizaciones-api/internal/domain"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo implementación de QuotationRepository (usable con pool o tx).
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

const quotationColumns = `id, company_id, owner_scope, created_by, client_id, kind, number, title, status,
	discount_kind, discount_value, tax_rate,
	subtotal, discount_amount, taxable_base, tax_amount, grand_total,
	notes, event_date, guest_count, venue, menu_notes,
	issue_date, expires_at, created_at, updated_at`

// eventArgs convierte el evento opcional en columnas anulables.
func eventArgs(ev *entity.CateringEvent) (*time.Time, *int, *string, *string) {
	if ev == nil {
		return nil, nil, nil, nil
	}
	date := ev.EventDate
	guests := ev.GuestCount
	return &date, &guests, &ev.Venue, &ev.MenuNotes
}

func scanQuotation(row interface{ Scan(...any) error }) (*entity.Quotation, error) {
	var (
		q         entity.Quotation
		createdBy *string
		eventDate *time.Time
		guests    *int
		venue     *string
		menuNotes *string
	)
	err := row.Scan(
		&q.ID, &q.CompanyID, &q.OwnerScope, &createdBy, &q.ClientID, &q.Kind, &q.Number, &q.Title, &q.Status,
		&q.Discount.Kind, &q.Discount.Value, &q.Tax.RatePercent,
		&q.Totals.Subtotal, &q.Totals.DiscountAmount, &q.Totals.TaxableBase, &q.Totals.TaxAmount, &q.Totals.GrandTotal,
		&q.Notes, &eventDate, &guests, &venue, &menuNotes,
		&q.IssueDate, &q.ExpiresAt, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	q.CreatedBy = emptyIfNull(createdBy)
	if eventDate != nil {
		q.Event = &entity.CateringEvent{
			EventDate: *eventDate,
			Venue:     emptyIfNull(venue),
			MenuNotes: emptyIfNull(menuNotes),
		}
		if guests != nil {
			q.Event.GuestCount = *guests
		}
	}
	return &q, nil
}

// Create inserta la cabecera y sus líneas.
func (r *QuotationRepo) Create(ctx context.Context, q *entity.Quotation) error {
	eventDate, guests, venue, menuNotes := eventArgs(q.Event)
	query := `
		INSERT INTO quotations (` + quotationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		        $18, $19, $20, $21, $22, $23, $24, $25, $26)`
	_, err := r.q.Exec(ctx, query,
		q.ID, q.CompanyID, q.OwnerScope, nullIfEmpty(q.CreatedBy), q.ClientID, q.Kind, q.Number, q.Title, q.Status,
		q.Discount.Kind, q.Discount.Value, q.Tax.RatePercent,
		q.Totals.Subtotal, q.Totals.DiscountAmount, q.Totals.TaxableBase, q.Totals.TaxAmount, q.Totals.GrandTotal,
		q.Notes, eventDate, guests, venue, menuNotes,
		q.IssueDate, q.ExpiresAt, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número %s ya asignado", domain.ErrDuplicate, q.Number)
		}
		return fmt.Errorf("insert quotation: %w", err)
	}
	return r.insertItems(ctx, q)
}

func (r *QuotationRepo) insertItems(ctx context.Context, q *entity.Quotation) error {
	if len(q.Items) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(q.Items))
	for i := range q.Items {
		it := &q.Items[i]
		it.QuotationID = q.ID
		rows = append(rows, []any{
			it.ID, it.QuotationID, it.Position, it.ProductID, nullIfEmpty(it.SizeID), it.Description,
			it.Quantity, it.UnitPrice, it.LineTotal,
		})
	}
	if ci, ok := r.q.(copier); ok {
		_, err := ci.CopyFrom(ctx,
			pgx.Identifier{"quotation_items"},
			[]string{"id", "quotation_id", "position", "product_id", "size_id", "description", "quantity", "unit_price", "line_total"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("copy quotation items: %w", err)
		}
		return nil
	}
	query := `
		INSERT INTO quotation_items (id, quotation_id, position, product_id, size_id, description, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, args := range rows {
		if _, err := r.q.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert quotation item: %w", err)
		}
	}
	return nil
}

// Update guarda contenido, totales y reemplaza las líneas. number y owner_scope no se tocan.
// Solo escribe si el estado guardado sigue siendo editable; sin filas afectadas devuelve
// ErrNotFound o ErrInvalidState según el caso.
func (r *QuotationRepo) Update(ctx context.Context, q *entity.Quotation) error {
	eventDate, guests, venue, menuNotes := eventArgs(q.Event)
	query := `
		UPDATE quotations
		SET client_id = $2, title = $3, discount_kind = $4, discount_value = $5, tax_rate = $6,
		    subtotal = $7, discount_amount = $8, taxable_base = $9, tax_amount = $10, grand_total = $11,
		    notes = $12, event_date = $13, guest_count = $14, venue = $15, menu_notes = $16,
		    expires_at = $17, updated_at = $18
		WHERE id = $1 AND status NOT IN ('accepted', 'expired')`
	tag, err := r.q.Exec(ctx, query,
		q.ID, q.ClientID, q.Title, q.Discount.Kind, q.Discount.Value, q.Tax.RatePercent,
		q.Totals.Subtotal, q.Totals.DiscountAmount, q.Totals.TaxableBase, q.Totals.TaxAmount, q.Totals.GrandTotal,
		q.Notes, eventDate, guests, venue, menuNotes,
		q.ExpiresAt, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quotation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.rejectWrite(ctx, q.ID)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM quotation_items WHERE quotation_id = $1`, q.ID); err != nil {
		return fmt.Errorf("delete quotation items: %w", err)
	}
	return r.insertItems(ctx, q)
}

// UpdateStatus guarda solo el estado.
func (r *QuotationRepo) UpdateStatus(ctx context.Context, q *entity.Quotation) error {
	tag, err := r.q.Exec(ctx, `UPDATE quotations SET status = $2, updated_at = $3 WHERE id = $1`, q.ID, q.Status, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update quotation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene la cotización con sus líneas ordenadas por posición.
func (r *QuotationRepo) GetByID(ctx context.Context, id string) (*entity.Quotation, error) {
	q, err := scanQuotation(r.q.QueryRow(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	query := `
		SELECT id, quotation_id, position, product_id, size_id, description, quantity, unit_price, line_total
		FROM quotation_items WHERE quotation_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list quotation items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			it     entity.QuotationItem
			sizeID *string
		)
		if err := rows.Scan(&it.ID, &it.QuotationID, &it.Position, &it.ProductID, &sizeID, &it.Description, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan quotation item: %w", err)
		}
		it.SizeID = emptyIfNull(sizeID)
		q.Items = append(q.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return q, nil
}

// List devuelve cabeceras filtradas (más recientes primero) y el total sin paginar.
func (r *QuotationRepo) List(ctx context.Context, f repository.QuotationFilter) ([]*entity.Quotation, int, error) {
	where := []string{"company_id = $1"}
	args := []any{f.CompanyID}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Kind != "" {
		args = append(args, f.Kind)
		where = append(where, fmt.Sprintf("kind = $%d", len(args)))
	}
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		where = append(where, fmt.Sprintf("client_id = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM quotations WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count quotations: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM quotations WHERE %s ORDER BY created_at DESC, number DESC LIMIT $%d OFFSET $%d`,
		quotationColumns, cond, len(args)-1, len(args))
	list, err := r.queryHeaders(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Delete elimina la cotización; las líneas caen por cascada. Las aceptadas no se borran.
func (r *QuotationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM quotations WHERE id = $1 AND status <> 'accepted'`, id)
	if err != nil {
		return fmt.Errorf("delete quotation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.rejectWrite(ctx, id)
	}
	return nil
}

// rejectWrite explica por qué una escritura filtrada por estado no afectó filas.
func (r *QuotationRepo) rejectWrite(ctx context.Context, id string) error {
	var status entity.QuotationStatus
	err := r.q.QueryRow(ctx, `SELECT status FROM quotations WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get quotation status: %w", err)
	}
	return fmt.Errorf("%w: la cotización está en estado %s", domain.ErrInvalidState, status)
}

// CountByScope cuenta cotizaciones del dueño y variante.
func (r *QuotationRepo) CountByScope(ctx context.Context, ownerScope string, kind entity.QuotationKind) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM quotations WHERE owner_scope = $1 AND kind = $2`, ownerScope, kind).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count quotations by scope: %w", err)
	}
	return n, nil
}

// ListOverdue cotizaciones abiertas vencidas de la empresa.
func (r *QuotationRepo) ListOverdue(ctx context.Context, companyID string, now time.Time) ([]*entity.Quotation, error) {
	query := `
		SELECT ` + quotationColumns + `
		FROM quotations
		WHERE company_id = $1 AND status IN ('draft', 'sent', 'viewed') AND expires_at < $2
		ORDER BY expires_at`
	return r.queryHeaders(ctx, query, companyID, now)
}

func (r *QuotationRepo) queryHeaders(ctx context.Context, query string, args ...any) ([]*entity.Quotation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}
