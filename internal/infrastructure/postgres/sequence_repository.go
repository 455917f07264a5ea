package postgres

import (
	"context"
	"fmt"

	appquotation "github.com/jhoicas/Cotizaciones-api/internal/application/quotation"
)

var _ appquotation.Sequencer = (*SequenceRepo)(nil)

// SequenceRepo consecutivo atómico por ámbito en la tabla quotation_sequences.
// Creado con una pgx.Tx, el incremento se confirma o revierte junto con la cotización.
type SequenceRepo struct {
	q Querier
}

func NewSequenceRepo(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el consecutivo del ámbito. La fila queda bloqueada hasta el fin de la tx.
func (r *SequenceRepo) Next(ctx context.Context, scope string) (int64, error) {
	query := `
		INSERT INTO quotation_sequences (scope, seq)
		VALUES ($1, 1)
		ON CONFLICT (scope) DO UPDATE
		SET seq = quotation_sequences.seq + 1, updated_at = NOW()
		RETURNING seq`
	var seq int64
	if err := r.q.QueryRow(ctx, query, scope).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", scope, err)
	}
	return seq, nil
}

// Current valor actual de cada ámbito registrado.
func (r *SequenceRepo) Current(ctx context.Context) (map[string]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT scope, seq FROM quotation_sequences`)
	if err != nil {
		return nil, fmt.Errorf("list sequences: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var (
			scope string
			seq   int64
		)
		if err := rows.Scan(&scope, &seq); err != nil {
			return nil, fmt.Errorf("scan sequence: %w", err)
		}
		out[scope] = seq
	}
	return out, rows.Err()
}
