// Package redis contiene adaptadores sobre Redis.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	appquotation "github.com/jhoicas/Cotizaciones-api/internal/application/quotation"
)

var _ appquotation.Sequencer = (*SequenceCounter)(nil)

// DefaultKeyPrefix prefijo de las llaves de consecutivo.
const DefaultKeyPrefix = "quotation:seq:"

// SequenceCounter consecutivo por ámbito con INCR: atómico entre instancias.
// Un INSERT fallido deja un hueco en la serie; el número nunca se repite.
type SequenceCounter struct {
	R      *goredis.Client
	Prefix string
}

// NewSequenceCounter construye el contador con el prefijo por defecto.
func NewSequenceCounter(client *goredis.Client) *SequenceCounter {
	return &SequenceCounter{R: client, Prefix: DefaultKeyPrefix}
}

// Next incrementa y devuelve el consecutivo del ámbito.
func (c *SequenceCounter) Next(ctx context.Context, scope string) (int64, error) {
	if c.R == nil {
		return 0, errors.New("sequence: redis client not configured")
	}
	if scope == "" {
		return 0, errors.New("sequence: empty scope")
	}
	n, err := c.R.Incr(ctx, c.key(scope)).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", c.key(scope), err)
	}
	return n, nil
}

// Seed fija el valor actual del ámbito si aún no existe (migración desde otro backend).
func (c *SequenceCounter) Seed(ctx context.Context, scope string, current int64) (bool, error) {
	ok, err := c.R.SetNX(ctx, c.key(scope), current, 0).Result()
	if err != nil {
		return false, fmt.Errorf("seed %s: %w", c.key(scope), err)
	}
	return ok, nil
}

// SeedFrom siembra cada ámbito con su valor actual y devuelve cuántas llaves creó.
// Las llaves ya presentes en Redis no se tocan.
func (c *SequenceCounter) SeedFrom(ctx context.Context, current map[string]int64) (int, error) {
	if c.R == nil {
		return 0, errors.New("sequence: redis client not configured")
	}
	seeded := 0
	for scope, n := range current {
		ok, err := c.Seed(ctx, scope, n)
		if err != nil {
			return seeded, err
		}
		if ok {
			seeded++
		}
	}
	return seeded, nil
}

func (c *SequenceCounter) key(scope string) string {
	prefix := c.Prefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return prefix + scope
}
