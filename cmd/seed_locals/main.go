// seed_locals genera un script SQL idempotente para poblar el catálogo de locales
// a partir de un CSV "nombre;tipo;dirección" (UTF-8 o ISO-8859-1, exportado de planillas).
//
// Uso: go run ./cmd/seed_locals [-charset auto|utf-8|iso-8859-1] [ruta/locales.csv]
// Por defecto busca locales.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_locals.sql
package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/recepciones-api/internal/domain/entity"
)

type localRow struct {
	name, typ, address string
}

func main() {
	charset := flag.String("charset", "auto", "codificación del CSV: auto, utf-8 o iso-8859-1")
	flag.Parse()
	csvPath := "locales.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	rows, err := parseLocals(raw, *charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_locals.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, rows, filepath.Base(csvPath)); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d locales\n", outPath, len(rows))
}

// decode convierte la entrada a UTF-8. En modo auto, un archivo que no es UTF-8 válido
// se trata como ISO-8859-1.
func decode(raw []byte, charset string) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "utf-8", "utf8":
		return bytes.NewReader(raw), nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()), nil
	case "", "auto":
		if utf8.Valid(raw) {
			return bytes.NewReader(bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))), nil
		}
		return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}
}

// parseLocals lee filas "nombre;tipo;dirección". Una primera fila cuyo tipo no es válido
// y cuyo nombre es "nombre"/"name" se toma como encabezado. Los nombres repetidos se
// quedan con la última fila.
func parseLocals(raw []byte, charset string) ([]localRow, error) {
	in, err := decode(raw, charset)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(in)
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	byName := make(map[string]localRow)
	line := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(rec) < 2 {
			return nil, fmt.Errorf("línea %d: se esperaban al menos nombre y tipo", line)
		}
		name := strings.TrimSpace(rec[0])
		typ := strings.ToLower(strings.TrimSpace(rec[1]))
		if line == 1 && (strings.EqualFold(name, "nombre") || strings.EqualFold(name, "name")) {
			continue
		}
		if name == "" {
			return nil, fmt.Errorf("línea %d: nombre vacío", line)
		}
		if !entity.IsValidLocalType(typ) {
			return nil, fmt.Errorf("línea %d: tipo de local inválido %q", line, typ)
		}
		row := localRow{name: name, typ: typ}
		if len(rec) > 2 {
			row.address = strings.TrimSpace(rec[2])
		}
		byName[name] = row
	}

	rows := make([]localRow, 0, len(byName))
	for _, row := range byName {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })
	return rows, nil
}

func writeSQL(w io.Writer, rows []localRow, source string) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de locales (tiendas, bodegas y centros de distribución)\n")
	fmt.Fprintf(&b, "-- Generado desde %s\n\n", source)
	if len(rows) == 0 {
		b.WriteString("-- sin filas\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
	b.WriteString("INSERT INTO locals (name, type, address) VALUES\n")
	for i, row := range rows {
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s')%s\n", escapeSQL(row.name), row.typ, escapeSQL(row.address), sep)
	}
	b.WriteString("ON CONFLICT (name) DO UPDATE SET type = EXCLUDED.type, address = EXCLUDED.address, updated_at = now();\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
