package memory

import (
	"context"

	appquotation "github.com/jhoicas/Cotizaciones-api/internal/application/quotation"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/repository"
)

var _ appquotation.TxRunner = (*TxRunner)(nil)

// TxRunner acumula las escrituras de fn y las aplica solo si fn termina sin error.
// El secuenciador no participa del rollback (igual que un contador externo).
type TxRunner struct {
	repo *QuotationRepo
	seq  appquotation.Sequencer
}

// NewTxRunner construye el runner sobre el repositorio y el secuenciador dados.
func NewTxRunner(repo *QuotationRepo, seq appquotation.Sequencer) *TxRunner {
	return &TxRunner{repo: repo, seq: seq}
}

func (t *TxRunner) RunQuotation(ctx context.Context, fn func(repo repository.QuotationRepository, seq appquotation.Sequencer) error) error {
	tx := &txQuotationRepo{QuotationRepo: t.repo}
	if err := fn(tx, t.seq); err != nil {
		return err
	}
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	for _, op := range tx.ops {
		if err := op(); err != nil {
			return err
		}
	}
	return nil
}

// txQuotationRepo lee del repositorio y difiere las escrituras hasta el commit.
type txQuotationRepo struct {
	*QuotationRepo
	ops []func() error
}

func (r *txQuotationRepo) Create(_ context.Context, q *entity.Quotation) error {
	c := cloneQuotation(q)
	r.ops = append(r.ops, func() error { return r.createLocked(c) })
	return nil
}

func (r *txQuotationRepo) Update(_ context.Context, q *entity.Quotation) error {
	c := cloneQuotation(q)
	r.ops = append(r.ops, func() error { return r.updateLocked(c) })
	return nil
}

func (r *txQuotationRepo) UpdateStatus(_ context.Context, q *entity.Quotation) error {
	c := cloneQuotation(q)
	r.ops = append(r.ops, func() error { return r.updateStatusLocked(c) })
	return nil
}

func (r *txQuotationRepo) Delete(_ context.Context, id string) error {
	r.ops = append(r.ops, func() error { return r.deleteLocked(id) })
	return nil
}
