package usecase

import (
	"github.com/diillson/xm-reports-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CalculateDisconnection faz o left join do consumo diário com o mapeamento em
// (Fecha, CodFronteraDDV) e calcula Desconexion_kWh = max(0, ValorLBC - CE_kWh).
//
// Every daily row appears at least once, in input order. Duplicate mapping keys
// multiply the row. Without a match (or with a null ValorLBC) the disconnection
// stays null instead of defaulting to zero.
func CalculateDisconnection(daily []entity.DailyConsumption, mapping []entity.MappingEntry) []entity.DisconnectionRecord {
	index := make(map[entity.BorderDay][]entity.MappingEntry, len(mapping))
	for _, m := range mapping {
		index[m.Key()] = append(index[m.Key()], m)
	}

	records := make([]entity.DisconnectionRecord, 0, len(daily))
	for _, d := range daily {
		matches := index[d.Key()]
		if len(matches) == 0 {
			records = append(records, entity.DisconnectionRecord{
				Fecha:          d.Fecha,
				CodFronteraDDV: d.CodFronteraDDV,
				CEkWh:          d.CEkWh,
			})
			continue
		}
		for _, m := range matches {
			records = append(records, entity.DisconnectionRecord{
				Fecha:          d.Fecha,
				CodFronteraDDV: d.CodFronteraDDV,
				CEkWh:          d.CEkWh,
				ValorLBC:       m.ValorLBC,
				Agente:         m.Agente,
				Matched:        true,
				DesconexionKWh: clippedShortfall(m.ValorLBC, d.CEkWh),
			})
		}
	}
	return records
}

func clippedShortfall(lbc decimal.NullDecimal, ce decimal.Decimal) decimal.NullDecimal {
	if !lbc.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.Max(decimal.Zero, lbc.Decimal.Sub(ce)))
}

// CountUnmatched returns how many records found no mapping entry.
func CountUnmatched(records []entity.DisconnectionRecord) int {
	n := 0
	for _, r := range records {
		if !r.Matched {
			n++
		}
	}
	return n
}
