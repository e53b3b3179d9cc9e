package usecase

import (
	"sort"

	"github.com/diillson/xm-reports-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

type monthAgent struct {
	month  string
	agente string
}

type monthlyBucket struct {
	total   decimal.Decimal
	borders map[string]struct{}
}

// AggregateMonthly agrupa por mês (YYYY-MM) e agente, soma a desconexão
// (arredondamento bancário em 2 casas) e conta fronteras distintas.
//
// Rows without an agent are left out of the report, and null disconnection
// values are skipped by the sum. The output is ordered by AGENTE with a stable
// sort over the month-ordered groups.
func AggregateMonthly(records []entity.DisconnectionRecord) []entity.MonthlyReportRow {
	buckets := make(map[monthAgent]*monthlyBucket)
	for _, r := range records {
		if r.Agente == "" {
			continue
		}
		key := monthAgent{month: r.Fecha.Format("2006-01"), agente: r.Agente}
		b, ok := buckets[key]
		if !ok {
			b = &monthlyBucket{total: decimal.Zero, borders: make(map[string]struct{})}
			buckets[key] = b
		}
		if r.DesconexionKWh.Valid {
			b.total = b.total.Add(r.DesconexionKWh.Decimal)
		}
		b.borders[r.CodFronteraDDV] = struct{}{}
	}

	keys := make([]monthAgent, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].month != keys[j].month {
			return keys[i].month < keys[j].month
		}
		return keys[i].agente < keys[j].agente
	})

	rows := make([]entity.MonthlyReportRow, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		rows = append(rows, entity.MonthlyReportRow{
			Fecha:                    k.month,
			Agente:                   k.agente,
			DesconexionVerificadaKWh: b.total.RoundBank(2),
			TotalFronteras:           len(b.borders),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Agente < rows[j].Agente
	})
	return rows
}

// MonthlyTotals soma o relatório por mês, em ordem cronológica.
func MonthlyTotals(rows []entity.MonthlyReportRow) []entity.MonthlyTotal {
	sums := make(map[string]decimal.Decimal)
	for _, r := range rows {
		sums[r.Fecha] = sums[r.Fecha].Add(r.DesconexionVerificadaKWh)
	}

	totals := make([]entity.MonthlyTotal, 0, len(sums))
	for month, total := range sums {
		totals = append(totals, entity.MonthlyTotal{Month: month, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Month < totals[j].Month })
	return totals
}
