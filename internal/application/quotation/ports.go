package quotation

import (
	"context"

	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/repository"
)

// Sequencer entrega el siguiente consecutivo de un ámbito de numeración.
// Dos llamadas concurrentes sobre el mismo ámbito nunca devuelven el mismo valor.
type Sequencer interface {
	Next(ctx context.Context, scope string) (int64, error)
}

// TxRunner ejecuta fn dentro de una transacción: el consecutivo y la cotización se confirman juntos
// o no queda nada persistido.
type TxRunner interface {
	RunQuotation(ctx context.Context, fn func(repo repository.QuotationRepository, seq Sequencer) error) error
}

// SettingsProvider resuelve la configuración efectiva de la empresa (guardada o por defecto).
type SettingsProvider interface {
	Effective(ctx context.Context, companyID string) (*entity.Settings, error)
}

// Document agrupa los datos que necesita el generador de PDF.
type Document struct {
	Quotation *entity.Quotation
	Company   *entity.Company
	Client    *entity.Client
}

// PDFGenerator puerto de salida para la representación gráfica de la cotización.
type PDFGenerator interface {
	GenerateQuotationPDF(ctx context.Context, doc *Document) ([]byte, error)
}
