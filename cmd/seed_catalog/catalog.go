package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalogSize struct {
	Label string
	Price decimal.Decimal
}

type catalogProduct struct {
	SKU   string
	Name  string
	Price decimal.Decimal
	Sizes []catalogSize
}

// parseCatalog decodifica el CSV Latin-1 y agrupa las filas por sku conservando el orden de aparición.
func parseCatalog(r io.Reader) ([]catalogProduct, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var products []catalogProduct
	index := make(map[string]int)
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer CSV: %w", err)
		}
		line++
		if len(rec) == 0 || strings.HasPrefix(strings.TrimSpace(rec[0]), "#") {
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "sku") {
			continue
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("línea %d: se esperaban al menos 3 columnas", line)
		}
		sku := strings.TrimSpace(rec[0])
		name := strings.TrimSpace(rec[1])
		if sku == "" || name == "" {
			return nil, fmt.Errorf("línea %d: sku y nombre son obligatorios", line)
		}
		price, err := parsePrice(rec[2])
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio: %w", line, err)
		}

		i, ok := index[sku]
		if !ok {
			products = append(products, catalogProduct{SKU: sku, Name: name, Price: price})
			i = len(products) - 1
			index[sku] = i
		}

		if len(rec) >= 4 && strings.TrimSpace(rec[3]) != "" {
			size := catalogSize{Label: strings.TrimSpace(rec[3]), Price: price}
			if len(rec) >= 5 && strings.TrimSpace(rec[4]) != "" {
				if size.Price, err = parsePrice(rec[4]); err != nil {
					return nil, fmt.Errorf("línea %d: precio del tamaño: %w", line, err)
				}
			}
			products[i].Sizes = append(products[i].Sizes, size)
		}
	}
	return products, nil
}

// parsePrice acepta coma decimal ("1234,50") además del punto.
func parsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("valor negativo %s", raw)
	}
	return d, nil
}

func writeSeed(w io.Writer, companyID uuid.UUID, products []catalogProduct, now time.Time) error {
	ts := now.Format(time.RFC3339)
	var b strings.Builder
	b.WriteString("-- Catálogo de productos y tamaños\n")
	fmt.Fprintf(&b, "-- Empresa %s\n\n", companyID)
	for _, p := range products {
		fmt.Fprintf(&b, "INSERT INTO products (id, company_id, sku, name, price, created_at, updated_at)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', %s, '%s', '%s')\n",
			uuid.New(), companyID, escapeSQL(p.SKU), escapeSQL(p.Name), p.Price.String(), ts, ts)
		b.WriteString("ON CONFLICT (company_id, sku) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price, updated_at = EXCLUDED.updated_at;\n")
		for _, s := range p.Sizes {
			fmt.Fprintf(&b, "INSERT INTO product_sizes (id, product_id, label, price, created_at)\n")
			fmt.Fprintf(&b, "SELECT '%s', id, '%s', %s, '%s' FROM products WHERE company_id = '%s' AND sku = '%s'\n",
				uuid.New(), escapeSQL(s.Label), s.Price.String(), ts, companyID, escapeSQL(p.SKU))
			b.WriteString("ON CONFLICT (product_id, label) DO UPDATE SET price = EXCLUDED.price;\n")
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
