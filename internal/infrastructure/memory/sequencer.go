// Package memory implementa los puertos de persistencia en memoria. Sirve para tests y para
// ejecutar el motor en un solo proceso sin base de datos.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	appquotation "github.com/jhoicas/Cotizaciones-api/internal/application/quotation"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/repository"
)

var (
	_ appquotation.Sequencer = (*AtomicSequencer)(nil)
	_ appquotation.Sequencer = (*CountingSequencer)(nil)
)

// AtomicSequencer contador por ámbito protegido por mutex.
type AtomicSequencer struct {
	mu   sync.Mutex
	seqs map[string]int64
}

// NewAtomicSequencer construye el contador vacío.
func NewAtomicSequencer() *AtomicSequencer {
	return &AtomicSequencer{seqs: make(map[string]int64)}
}

// Next incrementa y devuelve el consecutivo del ámbito.
func (s *AtomicSequencer) Next(ctx context.Context, scope string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs[scope]++
	return s.seqs[scope], nil
}

// CountingSequencer cuenta las cotizaciones existentes del ámbito y devuelve count+1.
// Entre el conteo y la inserción no hay exclusión: dos creaciones concurrentes pueden obtener
// el mismo número. No se usa en producción.
type CountingSequencer struct {
	repo repository.QuotationRepository
}

// NewCountingSequencer construye el secuenciador sobre el repositorio dado.
func NewCountingSequencer(repo repository.QuotationRepository) *CountingSequencer {
	return &CountingSequencer{repo: repo}
}

// Next devuelve count+1 para el ámbito "{owner}:{kind}".
func (s *CountingSequencer) Next(ctx context.Context, scope string) (int64, error) {
	i := strings.LastIndex(scope, ":")
	if i < 0 {
		return 0, fmt.Errorf("ámbito inválido %q", scope)
	}
	count, err := s.repo.CountByScope(ctx, scope[:i], entity.QuotationKind(scope[i+1:]))
	if err != nil {
		return 0, err
	}
	return count + 1, nil
}
