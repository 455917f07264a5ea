// seed_catalog genera un script SQL para poblar productos y tamaños de una empresa
// a partir de una exportación CSV del catálogo en ISO-8859-1.
//
// Formato por línea: sku;nombre;precio;tamaño;precio_tamaño (las dos últimas columnas son opcionales).
// Varias líneas con el mismo sku agregan tamaños al mismo producto.
//
// Uso: go run ./cmd/seed_catalog <company_id> [ruta/catalogo.csv] [salida.sql]
// Por defecto lee catalogo.csv y escribe en la salida estándar.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "seed_catalog: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("uso: seed_catalog <company_id> [catalogo.csv] [salida.sql]")
	}
	companyID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("company_id inválido: %w", err)
	}
	csvPath := "catalogo.csv"
	if len(args) > 1 {
		csvPath = args[1]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	products, err := parseCatalog(f)
	if err != nil {
		return err
	}

	out := stdout
	if len(args) > 2 {
		file, err := os.Create(args[2])
		if err != nil {
			return fmt.Errorf("crear archivo: %w", err)
		}
		defer file.Close()
		out = file
	}

	if err := writeSeed(out, companyID, products, time.Now().UTC()); err != nil {
		return fmt.Errorf("escribir SQL: %w", err)
	}
	sizes := 0
	for _, p := range products {
		sizes += len(p.Sizes)
	}
	fmt.Fprintf(os.Stderr, "Generado: %d productos, %d tamaños\n", len(products), sizes)
	return nil
}
