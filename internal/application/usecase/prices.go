package usecase

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/diillson/xm-reports-go/internal/domain/entity"
	"github.com/diillson/xm-reports-go/internal/shared/types"
	"github.com/shopspring/decimal"
)

// Formatos aceitos para FechaHora, sem conversão de fuso.
var fechaHoraLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// FilterVersion keeps only the records of the given version, in input order.
func FilterVersion(records []entity.MarketRecord, version string) []entity.MarketRecord {
	filtered := make([]entity.MarketRecord, 0, len(records))
	for _, r := range records {
		if r.Version == version {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// DropNullValues separa os registros sem Valor e retorna quantos foram descartados.
func DropNullValues(records []entity.MarketRecord) ([]entity.MarketRecord, int) {
	kept := make([]entity.MarketRecord, 0, len(records))
	for _, r := range records {
		if r.Valor.Valid {
			kept = append(kept, r)
		}
	}
	return kept, len(records) - len(kept)
}

// DerivePeriod converte FechaHora e adiciona o Periodo (hora 0-23).
// Records with a null Valor never reach the statistics.
func DerivePeriod(records []entity.MarketRecord) ([]entity.PriceRecord, error) {
	prices := make([]entity.PriceRecord, 0, len(records))
	for i, r := range records {
		if !r.Valor.Valid {
			continue
		}
		ts, err := parseFechaHora(r.FechaHora)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d FechaHora %q", types.ErrParse, i, r.FechaHora)
		}
		prices = append(prices, entity.PriceRecord{
			FechaHora: ts,
			Version:   r.Version,
			Valor:     r.Valor.Decimal,
			Periodo:   ts.Hour(),
		})
	}
	return prices, nil
}

func parseFechaHora(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range fechaHoraLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ComputeStatistics retorna máximo, mínimo e média de Valor.
func ComputeStatistics(prices []entity.PriceRecord) (entity.PriceStatistics, error) {
	if len(prices) == 0 {
		return entity.PriceStatistics{}, fmt.Errorf("%w: no price records to summarize", types.ErrEmptyDataset)
	}

	maxValue := prices[0].Valor
	minValue := prices[0].Valor
	sum := decimal.Zero
	for _, p := range prices {
		if p.Valor.GreaterThan(maxValue) {
			maxValue = p.Valor
		}
		if p.Valor.LessThan(minValue) {
			minValue = p.Valor
		}
		sum = sum.Add(p.Valor)
	}

	return entity.PriceStatistics{
		Max:  maxValue,
		Min:  minValue,
		Mean: sum.Div(decimal.NewFromInt(int64(len(prices)))),
	}, nil
}

// ExtremePeriods returns the n highest and the n lowest priced records.
// Ties keep input order, and both lists may share records when n is at least
// half the set. A set smaller than n is returned whole.
func ExtremePeriods(prices []entity.PriceRecord, n int) (highest, lowest []entity.ExtremePeriod) {
	if n <= 0 {
		return []entity.ExtremePeriod{}, []entity.ExtremePeriod{}
	}

	byValue := make([]entity.PriceRecord, len(prices))
	copy(byValue, prices)

	sort.SliceStable(byValue, func(i, j int) bool { return byValue[i].Valor.GreaterThan(byValue[j].Valor) })
	highest = takeExtremes(byValue, n)

	copy(byValue, prices)
	sort.SliceStable(byValue, func(i, j int) bool { return byValue[i].Valor.LessThan(byValue[j].Valor) })
	lowest = takeExtremes(byValue, n)

	return highest, lowest
}

func takeExtremes(sorted []entity.PriceRecord, n int) []entity.ExtremePeriod {
	if n > len(sorted) {
		n = len(sorted)
	}
	out := make([]entity.ExtremePeriod, 0, n)
	for _, p := range sorted[:n] {
		out = append(out, entity.ExtremePeriod{FechaHora: p.FechaHora, Periodo: p.Periodo, Valor: p.Valor})
	}
	return out
}

// ReferenceLines monta as linhas horizontais do gráfico.
func ReferenceLines(stats entity.PriceStatistics) []entity.ReferenceLine {
	return []entity.ReferenceLine{
		{Label: "Máximo", Value: stats.Max},
		{Label: "Mínimo", Value: stats.Min},
		{Label: "Promedio", Value: stats.Mean},
	}
}

// Summarize calcula estatísticas e extremos da série filtrada.
func Summarize(prices []entity.PriceRecord, topN int) (entity.PriceReport, error) {
	stats, err := ComputeStatistics(prices)
	if err != nil {
		return entity.PriceReport{}, err
	}
	highest, lowest := ExtremePeriods(prices, topN)
	return entity.PriceReport{
		Records:    len(prices),
		Statistics: stats,
		Highest:    highest,
		Lowest:     lowest,
	}, nil
}
