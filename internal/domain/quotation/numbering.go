package quotation

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
)

// AssignDocumentNumber arma "{prefix}-{YYYY}{MM}-{seq}" con seq = existingCount + 1 (4 dígitos mínimo).
// El periodo sale de createdAt; ownerScope solo particiona el conteo y no aparece en el número.
func AssignDocumentNumber(ownerScope string, createdAt time.Time, existingCount int64, prefix string) string {
	return FormatNumber(prefix, createdAt, existingCount+1)
}

// FormatNumber arma el número con un consecutivo ya asignado (seq >= 1).
func FormatNumber(prefix string, createdAt time.Time, seq int64) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = entity.DefaultQuotationPrefix
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, createdAt.Format("200601"), seq)
}

// SequenceScope clave del contador: cada variante lleva su propia serie por dueño.
func SequenceScope(ownerScope string, kind entity.QuotationKind) string {
	if kind == "" {
		kind = entity.QuotationKindStandard
	}
	return ownerScope + ":" + string(kind)
}
