package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/xm-reports-go/internal/domain/entity"
	"github.com/diillson/xm-reports-go/internal/domain/repository"
	"github.com/diillson/xm-reports-go/internal/shared/types"
	"github.com/shopspring/decimal"
)

// Nomes fixos dos arquivos de entrada dentro do diretório de dados.
const (
	ReadingsPart1File = "Lecturas_parte1.csv"
	ReadingsPart2File = "Lecturas_parte2.csv"
	MappingFile       = "Mapeo.csv"
)

const utf8BOM = "\ufeff"

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006/01/02",
}

// ReadingRepositoryImpl implementa o ReadingRepository lendo arquivos CSV.
type ReadingRepositoryImpl struct{}

// NewReadingRepository cria uma nova implementação do ReadingRepository.
func NewReadingRepository() repository.ReadingRepository {
	return &ReadingRepositoryImpl{}
}

// LoadReadings concatena as duas partes de leituras, sem ordenar nem deduplicar.
func (r *ReadingRepositoryImpl) LoadReadings(ctx context.Context, dir string) ([]entity.Reading, error) {
	readings := []entity.Reading{}

	for _, name := range []string{ReadingsPart1File, ReadingsPart2File} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t, err := readTable(filepath.Join(dir, name), "Fecha", "CodFronteraDDV", "Lectura")
		if err != nil {
			return nil, err
		}

		for i, row := range t.rows {
			fecha, err := t.date(row, i, "Fecha")
			if err != nil {
				return nil, err
			}
			lectura, err := t.number(row, i, "Lectura")
			if err != nil {
				return nil, err
			}
			code := t.border(row)
			if code == "" {
				continue
			}
			readings = append(readings, entity.Reading{
				Fecha:          fecha,
				CodFronteraDDV: code,
				Lectura:        lectura,
			})
		}
	}

	return readings, nil
}

// LoadMapping lê o mapeamento frontera/data -> ValorLBC, AGENTE.
func (r *ReadingRepositoryImpl) LoadMapping(ctx context.Context, dir string) ([]entity.MappingEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := readTable(filepath.Join(dir, MappingFile), "Fecha", "CodFronteraDDV", "ValorLBC", "AGENTE")
	if err != nil {
		return nil, err
	}

	mapping := make([]entity.MappingEntry, 0, len(t.rows))
	for i, row := range t.rows {
		fecha, err := t.date(row, i, "Fecha")
		if err != nil {
			return nil, err
		}
		lbc, err := t.number(row, i, "ValorLBC")
		if err != nil {
			return nil, err
		}
		code := t.border(row)
		if code == "" {
			continue
		}
		mapping = append(mapping, entity.MappingEntry{
			Fecha:          fecha,
			CodFronteraDDV: code,
			ValorLBC:       lbc,
			Agente:         t.cell(row, "AGENTE"),
		})
	}

	return mapping, nil
}

// table é um CSV já lido, com as colunas indexadas pelo nome do cabeçalho.
type table struct {
	path    string
	columns map[string]int
	rows    [][]string
}

func readTable(path string, required ...string) (*table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s has no header", types.ErrSchemaMismatch, path)
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		columns[strings.TrimSpace(name)] = i
	}
	for _, col := range required {
		if _, ok := columns[col]; !ok {
			return nil, fmt.Errorf("%w: column %q in %s", types.ErrSchemaMismatch, col, path)
		}
	}

	return &table{path: path, columns: columns, rows: records[1:]}, nil
}

func (t *table) cell(row []string, column string) string {
	idx := t.columns[column]
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// border retorna o código da fronteira; vazio ou "nan" vira "" e a linha é ignorada.
func (t *table) border(row []string) string {
	code := t.cell(row, "CodFronteraDDV")
	if trimmed := strings.TrimSpace(code); trimmed == "" || strings.EqualFold(trimmed, "nan") {
		return ""
	}
	return code
}

// date converte a célula no dia UTC (hora descartada); i é o índice da linha de dados (o cabeçalho é a linha 1).
func (t *table) date(row []string, i int, column string) (time.Time, error) {
	value := strings.TrimSpace(t.cell(row, column))
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, value); err == nil {
			return d.Truncate(24 * time.Hour), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s line %d column %s: invalid date %q", types.ErrParse, t.path, i+2, column, value)
}

// number converte a célula em decimal; vazio ou NaN vira null.
func (t *table) number(row []string, i int, column string) (decimal.NullDecimal, error) {
	value := strings.TrimSpace(t.cell(row, column))
	if value == "" || strings.EqualFold(value, "nan") {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: %s line %d column %s: invalid number %q", types.ErrParse, t.path, i+2, column, value)
	}
	return decimal.NewNullDecimal(d), nil
}
