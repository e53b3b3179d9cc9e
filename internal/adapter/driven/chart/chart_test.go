package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diillson/xm-reports-go/internal/domain/entity"
	"github.com/diillson/xm-reports-go/internal/shared/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(values ...int64) []entity.PriceRecord {
	base := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	out := make([]entity.PriceRecord, len(values))
	for i, v := range values {
		ts := base.Add(time.Duration(i) * time.Hour)
		out[i] = entity.PriceRecord{FechaHora: ts, Version: "TX1", Valor: decimal.NewFromInt(v), Periodo: ts.Hour()}
	}
	return out
}

func referenceLines() []entity.ReferenceLine {
	return []entity.ReferenceLine{
		{Label: "Máximo", Value: decimal.NewFromInt(80)},
		{Label: "Mínimo", Value: decimal.NewFromInt(5)},
		{Label: "Promedio", Value: decimal.NewFromInt(35)},
	}
}

func TestTerminalChartRenderer(t *testing.T) {
	var out bytes.Buffer
	renderer := NewTerminalChartRenderer(&out, "Precio de Bolsa Nacional Horario (TX1)")

	// fora de ordem de propósito
	s := series(10, 50, 5, 80, 30)
	s[0], s[4] = s[4], s[0]

	require.NoError(t, renderer.Render(s, referenceLines()))

	text := out.String()
	assert.Contains(t, text, "Precio de Bolsa Nacional Horario (TX1)")
	assert.Contains(t, text, "Máximo: 80.00")
	assert.Contains(t, text, "Mínimo: 5.00")
	assert.Contains(t, text, "Promedio: 35.00")
	assert.Contains(t, text, "2025-12-01 00:00")
	assert.Contains(t, text, "2025-12-01 04:00")
	// a série do chamador não é reordenada
	assert.Equal(t, 4, s[0].Periodo)
}

func TestRenderers_EmptySeries(t *testing.T) {
	renderers := map[string]interface {
		Render([]entity.PriceRecord, []entity.ReferenceLine) error
	}{
		"terminal": NewTerminalChartRenderer(&bytes.Buffer{}, "t"),
		"pdf":      NewPDFChartRenderer(filepath.Join(t.TempDir(), "chart.pdf"), "t"),
	}
	for name, r := range renderers {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, r.Render(nil, referenceLines()), types.ErrEmptyDataset)
		})
	}
}

func TestPDFChartRenderer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "precio_bolsa.pdf")
	renderer := NewPDFChartRenderer(path, "Precio de Bolsa Nacional Horario (TX1)")

	require.NoError(t, renderer.Render(series(10, 50, 5, 80, 30), referenceLines()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
}

func TestPDFChartRenderer_SinglePoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.pdf")

	require.NoError(t, NewPDFChartRenderer(path, "x").Render(series(42), nil))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestPlotGrid(t *testing.T) {
	grid := plotGrid(series(1, 2, 3), nil, 10, 5)

	require.Len(t, grid, 5)
	for _, row := range grid {
		assert.Len(t, row, 3)
	}
	assert.Contains(t, grid[0][2], "•")
	assert.Contains(t, grid[4][0], "•")
}

func TestPlotGrid_ReferenceLine(t *testing.T) {
	lines := []entity.ReferenceLine{{Label: "Máximo", Value: decimal.NewFromInt(10)}}

	grid := plotGrid(series(0, 0, 0, 0), lines, 10, 5)

	assert.Contains(t, grid[0][0], "-")
	assert.Equal(t, " ", grid[0][1])
	assert.Contains(t, grid[0][2], "-")
}

func TestBounds(t *testing.T) {
	lo, hi := bounds(series(10, 50), referenceLines())
	assert.Equal(t, 5.0, lo)
	assert.Equal(t, 80.0, hi)

	lo, hi = bounds(series(7, 7), nil)
	assert.Equal(t, 7.0, lo)
	assert.Equal(t, 8.0, hi)
}

func TestResample(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3}, resample(series(1, 2, 3), 10))
	assert.Equal(t, []float64{1.5, 3.5}, resample(series(1, 2, 3, 4), 2))
}
