package usecase

import (
	"sort"

	"github.com/diillson/xm-reports-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AggregateDailyConsumption soma Lectura por (Fecha, CodFronteraDDV) no CE_kWh.
// Leituras nulas são ignoradas na soma; o resultado sai ordenado por data e frontera.
func AggregateDailyConsumption(readings []entity.Reading) []entity.DailyConsumption {
	totals := make(map[entity.BorderDay]decimal.Decimal, len(readings))
	for _, r := range readings {
		key := r.Key()
		sum, ok := totals[key]
		if !ok {
			sum = decimal.Zero
		}
		if r.Lectura.Valid {
			sum = sum.Add(r.Lectura.Decimal)
		}
		totals[key] = sum
	}

	daily := make([]entity.DailyConsumption, 0, len(totals))
	for key, sum := range totals {
		daily = append(daily, entity.DailyConsumption{
			Fecha:          key.Fecha,
			CodFronteraDDV: key.CodFronteraDDV,
			CEkWh:          sum,
		})
	}

	sort.Slice(daily, func(i, j int) bool {
		if !daily[i].Fecha.Equal(daily[j].Fecha) {
			return daily[i].Fecha.Before(daily[j].Fecha)
		}
		return daily[i].CodFronteraDDV < daily[j].CodFronteraDDV
	})

	return daily
}
