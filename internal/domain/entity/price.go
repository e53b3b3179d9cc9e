package entity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DateRange é um intervalo inclusivo de datas (sem hora).
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days retorna o número de dias do intervalo, incluindo as duas pontas.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// String formata o intervalo como "YYYY-MM-DD to YYYY-MM-DD".
func (r DateRange) String() string {
	return r.Start.Format("2006-01-02") + " to " + r.End.Format("2006-01-02")
}

// MarketRecord is a raw record returned by the market-data service.
// Valor is null when the service has no price for the hour.
type MarketRecord struct {
	FechaHora      string              `json:"FechaHora"`
	Version        string              `json:"Version"`
	Valor          decimal.NullDecimal `json:"Valor"`
	CodigoVariable string              `json:"CodigoVariable,omitempty"`
}

// PriceRecord é um registro de preço com FechaHora já convertida e o período horário derivado.
type PriceRecord struct {
	FechaHora time.Time       `json:"fecha_hora"`
	Version   string          `json:"version"`
	Valor     decimal.Decimal `json:"valor"`
	Periodo   int             `json:"periodo"` // 0-23
}

// PriceStatistics holds max, min and mean of Valor.
type PriceStatistics struct {
	Max  decimal.Decimal `json:"max"`
	Min  decimal.Decimal `json:"min"`
	Mean decimal.Decimal `json:"mean"`
}

// ExtremePeriod é um dos períodos de maior ou menor preço.
type ExtremePeriod struct {
	FechaHora time.Time       `json:"fecha_hora"`
	Periodo   int             `json:"periodo"`
	Valor     decimal.Decimal `json:"valor"`
}

// ReferenceLine é uma linha horizontal do gráfico (máximo, mínimo, promedio).
type ReferenceLine struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// PriceReport agrega o resultado do pipeline de preços para impressão e exportação.
type PriceReport struct {
	DatasetID  string          `json:"dataset_id"`
	Version    string          `json:"version"`
	Period     DateRange       `json:"period"`
	Records    int             `json:"records"`
	Statistics PriceStatistics `json:"statistics"`
	Highest    []ExtremePeriod `json:"highest"`
	Lowest     []ExtremePeriod `json:"lowest"`
}

// SortedByFechaHora retorna uma cópia da série em ordem cronológica crescente.
func SortedByFechaHora(series []PriceRecord) []PriceRecord {
	sorted := make([]PriceRecord, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].FechaHora.Before(sorted[j].FechaHora) })
	return sorted
}

// Format formata a linha de referência como "Máximo: 123.45".
func (l ReferenceLine) Format() string {
	return l.Label + ": " + l.Value.StringFixedBank(2)
}
