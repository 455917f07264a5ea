package quotation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Cotizaciones-api/internal/domain"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una cotización.
type PDFUseCase struct {
	repo        repository.QuotationRepository
	companyRepo repository.CompanyRepository
	clientRepo  repository.ClientRepository
	generator   PDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	repo repository.QuotationRepository,
	companyRepo repository.CompanyRepository,
	clientRepo repository.ClientRepository,
	generator PDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		repo:        repo,
		companyRepo: companyRepo,
		clientRepo:  clientRepo,
		generator:   generator,
	}
}

// Download recupera la cotización, la empresa y el cliente y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la cotización no existe.
//   - domain.ErrForbidden        si la cotización no pertenece a la empresa del token.
func (uc *PDFUseCase) Download(ctx context.Context, companyID, quotationID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar cotización ──────────────────────────────────────────────────
	q, err := uc.repo.GetByID(ctx, quotationID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cotización: %w", err)
	}
	if q == nil {
		return nil, "", domain.ErrNotFound
	}
	if q.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}

	// ── 2. Empresa y cliente en paralelo ──────────────────────────────────────
	doc := &Document{Quotation: q}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		company, err := uc.companyRepo.GetByID(gctx, companyID)
		if err != nil {
			return fmt.Errorf("pdf: obtener empresa: %w", err)
		}
		if company == nil {
			return fmt.Errorf("pdf: empresa %s: %w", companyID, domain.ErrNotFound)
		}
		doc.Company = company
		return nil
	})
	g.Go(func() error {
		client, err := uc.clientRepo.GetByID(gctx, q.ClientID)
		if err != nil {
			return fmt.Errorf("pdf: obtener cliente: %w", err)
		}
		doc.Client = client // puede ser nil si fue eliminado
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	// ── 3. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateQuotationPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("cotizacion_%s.pdf", q.Number), nil
}
