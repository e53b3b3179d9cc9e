package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/diillson/xm-reports-go/internal/domain/entity"
	"github.com/diillson/xm-reports-go/internal/shared/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hourlyPrices(values ...string) []entity.PriceRecord {
	base := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	prices := make([]entity.PriceRecord, len(values))
	for i, v := range values {
		ts := base.Add(time.Duration(i) * time.Hour)
		prices[i] = entity.PriceRecord{FechaHora: ts, Version: "TX1", Valor: decimal.RequireFromString(v), Periodo: ts.Hour()}
	}
	return prices
}

func TestFilterVersion(t *testing.T) {
	records := []entity.MarketRecord{
		{FechaHora: "2025-12-01T00:00:00", Version: "TX1", Valor: num("1")},
		{FechaHora: "2025-12-01T00:00:00", Version: "TX2", Valor: num("2")},
		{FechaHora: "2025-12-01T01:00:00", Version: "TX1", Valor: num("3")},
		{FechaHora: "2025-12-01T01:00:00", Version: "tx1", Valor: num("4")},
	}

	filtered := FilterVersion(records, "TX1")

	require.Len(t, filtered, 2)
	for _, r := range filtered {
		assert.Equal(t, "TX1", r.Version)
	}
	assertDecimal(t, "1", filtered[0].Valor.Decimal)
	assertDecimal(t, "3", filtered[1].Valor.Decimal)
	assert.Empty(t, FilterVersion(records, "TXR"))
}

func TestDerivePeriod(t *testing.T) {
	records := []entity.MarketRecord{
		{FechaHora: "2025-12-01T00:00:00", Version: "TX1", Valor: num("1")},
		{FechaHora: "2025-12-01 13:00:00", Version: "TX1", Valor: num("2")},
		{FechaHora: "2025-12-01T23:00:00-05:00", Version: "TX1", Valor: num("3")},
	}

	prices, err := DerivePeriod(records)

	require.NoError(t, err)
	require.Len(t, prices, 3)
	assert.Equal(t, 0, prices[0].Periodo)
	assert.Equal(t, 13, prices[1].Periodo)
	// a hora local é mantida, sem conversão de fuso
	assert.Equal(t, 23, prices[2].Periodo)
	for _, p := range prices {
		assert.Equal(t, p.FechaHora.Hour(), p.Periodo)
		assert.True(t, p.Periodo >= 0 && p.Periodo <= 23)
	}
}

func TestDropNullValues(t *testing.T) {
	records := []entity.MarketRecord{
		{FechaHora: "2025-12-01T00:00:00", Version: "TX1", Valor: num("100")},
		{FechaHora: "2025-12-01T01:00:00", Version: "TX1"},
		{FechaHora: "2025-12-01T02:00:00", Version: "TX1", Valor: num("200")},
	}

	kept, dropped := DropNullValues(records)

	assert.Equal(t, 1, dropped)
	require.Len(t, kept, 2)
	assert.Equal(t, "2025-12-01T00:00:00", kept[0].FechaHora)
	assert.Equal(t, "2025-12-01T02:00:00", kept[1].FechaHora)
}

func TestDerivePeriod_NullValorIsNotZero(t *testing.T) {
	records := []entity.MarketRecord{
		{FechaHora: "2025-12-01T00:00:00", Version: "TX1", Valor: num("100")},
		{FechaHora: "2025-12-01T01:00:00", Version: "TX1", Valor: decimal.NullDecimal{}},
		{FechaHora: "2025-12-01T02:00:00", Version: "TX1", Valor: num("200")},
	}

	prices, err := DerivePeriod(FilterVersion(records, "TX1"))
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, []int{0, 2}, []int{prices[0].Periodo, prices[1].Periodo})

	report, err := Summarize(prices, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Records)
	assertDecimal(t, "100", report.Statistics.Min)
	assertDecimal(t, "150", report.Statistics.Mean)
	assertDecimal(t, "200", report.Statistics.Max)
	assert.Equal(t, []string{"100"}, valuesOf(report.Lowest))
}

func TestDerivePeriod_InvalidTimestamp(t *testing.T) {
	_, err := DerivePeriod([]entity.MarketRecord{{FechaHora: "not a date", Version: "TX1"}})
	assert.True(t, errors.Is(err, types.ErrParse))
}

func TestComputeStatistics(t *testing.T) {
	stats, err := ComputeStatistics(hourlyPrices("10", "50", "5", "80", "30"))

	require.NoError(t, err)
	assertDecimal(t, "80", stats.Max)
	assertDecimal(t, "5", stats.Min)
	assertDecimal(t, "35", stats.Mean)
	assert.True(t, stats.Min.LessThanOrEqual(stats.Mean))
	assert.True(t, stats.Mean.LessThanOrEqual(stats.Max))
}

func TestComputeStatistics_Empty(t *testing.T) {
	_, err := ComputeStatistics(nil)
	assert.ErrorIs(t, err, types.ErrEmptyDataset)
}

func TestExtremePeriods(t *testing.T) {
	prices := hourlyPrices("10", "50", "5", "80", "30")

	highest, lowest := ExtremePeriods(prices, 3)

	require.Len(t, highest, 3)
	require.Len(t, lowest, 3)
	assert.Equal(t, []string{"80", "50", "30"}, valuesOf(highest))
	assert.Equal(t, []string{"5", "10", "30"}, valuesOf(lowest))
	assert.Equal(t, 3, highest[0].Periodo)
	assert.Equal(t, 2, lowest[0].Periodo)
}

func TestExtremePeriods_Ties(t *testing.T) {
	prices := hourlyPrices("7", "9", "7", "9")

	highest, lowest := ExtremePeriods(prices, 1)

	require.Len(t, highest, 1)
	require.Len(t, lowest, 1)
	assert.Equal(t, 1, highest[0].Periodo)
	assert.Equal(t, 0, lowest[0].Periodo)
}

func TestExtremePeriods_SmallSets(t *testing.T) {
	highest, lowest := ExtremePeriods(hourlyPrices("1", "2"), 3)
	assert.Len(t, highest, 2)
	assert.Len(t, lowest, 2)

	highest, lowest = ExtremePeriods(hourlyPrices("1", "2"), 0)
	assert.Empty(t, highest)
	assert.Empty(t, lowest)

	highest, lowest = ExtremePeriods(nil, 3)
	assert.Empty(t, highest)
	assert.Empty(t, lowest)
}

func TestExtremePeriods_DoesNotReorderInput(t *testing.T) {
	prices := hourlyPrices("10", "50", "5")
	ExtremePeriods(prices, 2)
	assert.Equal(t, []int{0, 1, 2}, []int{prices[0].Periodo, prices[1].Periodo, prices[2].Periodo})
}

func TestReferenceLines(t *testing.T) {
	lines := ReferenceLines(entity.PriceStatistics{
		Max:  decimal.RequireFromString("80"),
		Min:  decimal.RequireFromString("5"),
		Mean: decimal.RequireFromString("35.125"),
	})

	require.Len(t, lines, 3)
	assert.Equal(t, "Máximo: 80.00", lines[0].Format())
	assert.Equal(t, "Mínimo: 5.00", lines[1].Format())
	assert.Equal(t, "Promedio: 35.12", lines[2].Format())
}

func TestSummarize(t *testing.T) {
	report, err := Summarize(hourlyPrices("10", "50", "5", "80", "30"), 2)

	require.NoError(t, err)
	assert.Equal(t, 5, report.Records)
	assertDecimal(t, "35", report.Statistics.Mean)
	assert.Len(t, report.Highest, 2)
	assert.Len(t, report.Lowest, 2)

	_, err = Summarize(nil, 2)
	assert.ErrorIs(t, err, types.ErrEmptyDataset)
}

func valuesOf(periods []entity.ExtremePeriod) []string {
	out := make([]string, len(periods))
	for i, p := range periods {
		out[i] = fmt.Sprint(p.Valor)
	}
	return out
}
