package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appquotation "github.com/jhoicas/Cotizaciones-api/internal/application/quotation"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/repository"
)

var _ appquotation.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
	seq  appquotation.Sequencer
}

// NewTxRunner construye el runner con el pool. Con seq nil el consecutivo sale de quotation_sequences
// dentro de la misma transacción; si no, se usa el secuenciador externo (ej. Redis).
func NewTxRunner(pool *pgxpool.Pool, seq appquotation.Sequencer) *TxRunner {
	return &TxRunner{pool: pool, seq: seq}
}

// RunQuotation inicia una transacción, ejecuta fn con repo y secuenciador atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunQuotation(ctx context.Context, fn func(repo repository.QuotationRepository, seq appquotation.Sequencer) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	seq := r.seq
	if seq == nil {
		seq = NewSequenceRepo(tx)
	}
	if err := fn(NewQuotationRepository(tx), seq); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
