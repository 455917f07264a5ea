package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func latin1(t *testing.T, s string) *bytes.Reader {
	t.Helper()
	b, err := charmap.ISO8859_1.NewEncoder().String(s)
	require.NoError(t, err)
	return bytes.NewReader([]byte(b))
}

func TestParseCatalog_GroupsSizesBySKU(t *testing.T) {
	in := "sku;nombre;precio;tamaño;precio_tamaño\n" +
		"TOR-01;Torta de maracuyá;45000;Pequeña;45000\n" +
		"TOR-01;Torta de maracuyá;45000;Grande;82000,50\n" +
		"# comentario\n" +
		"CAF-02;Café;3500\n"

	products, err := parseCatalog(latin1(t, in))
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "TOR-01", products[0].SKU)
	assert.Equal(t, "Torta de maracuyá", products[0].Name)
	require.Len(t, products[0].Sizes, 2)
	assert.Equal(t, "Pequeña", products[0].Sizes[0].Label)
	assert.Equal(t, "82000.5", products[0].Sizes[1].Price.String())

	assert.Equal(t, "CAF-02", products[1].SKU)
	assert.Empty(t, products[1].Sizes)
}

func TestParseCatalog_Errors(t *testing.T) {
	cases := map[string]string{
		"pocas columnas":  "A-1;Solo nombre\n",
		"precio inválido": "A-1;Algo;abc\n",
		"precio negativo": "A-1;Algo;-5\n",
		"sku vacío":       ";Algo;5\n",
		"tamaño inválido": "A-1;Algo;5;XL;x\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseCatalog(latin1(t, in))
			assert.Error(t, err)
		})
	}
}

func TestWriteSeed_EscapesAndUpserts(t *testing.T) {
	companyID := uuid.New()
	products := []catalogProduct{{
		SKU:   "PAN-1",
		Name:  "Pan d'agua",
		Sizes: []catalogSize{{Label: "Familiar"}},
	}}
	var out bytes.Buffer
	require.NoError(t, writeSeed(&out, companyID, products, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))

	sql := out.String()
	assert.Contains(t, sql, "'Pan d''agua'")
	assert.Contains(t, sql, "ON CONFLICT (company_id, sku)")
	assert.Contains(t, sql, "ON CONFLICT (product_id, label)")
	assert.Equal(t, 2, strings.Count(sql, "INSERT INTO"))
	assert.Contains(t, sql, companyID.String())
}

func TestRun_RequiresCompanyID(t *testing.T) {
	assert.Error(t, run(nil, &bytes.Buffer{}))
	assert.Error(t, run([]string{"no-es-uuid"}, &bytes.Buffer{}))
}
