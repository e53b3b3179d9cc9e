package chart

import (
	"github.com/diillson/xm-reports-go/internal/domain/entity"
)

// bounds retorna o menor e o maior valor entre a série e as linhas de referência.
func bounds(series []entity.PriceRecord, lines []entity.ReferenceLine) (lo, hi float64) {
	lo = series[0].Valor.InexactFloat64()
	hi = lo
	update := func(v float64) {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	for _, p := range series {
		update(p.Valor.InexactFloat64())
	}
	for _, l := range lines {
		update(l.Value.InexactFloat64())
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

// resample reduz a série a width colunas pela média de cada faixa.
func resample(series []entity.PriceRecord, width int) []float64 {
	if len(series) <= width {
		out := make([]float64, len(series))
		for i, p := range series {
			out[i] = p.Valor.InexactFloat64()
		}
		return out
	}
	out := make([]float64, width)
	for col := 0; col < width; col++ {
		from := col * len(series) / width
		to := (col + 1) * len(series) / width
		sum := 0.0
		for _, p := range series[from:to] {
			sum += p.Valor.InexactFloat64()
		}
		out[col] = sum / float64(to-from)
	}
	return out
}
