package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reading é uma leitura de medidor de uma frontera em uma data.
type Reading struct {
	Fecha          time.Time           `json:"fecha"`
	CodFronteraDDV string              `json:"cod_frontera_ddv"`
	Lectura        decimal.NullDecimal `json:"lectura"` // célula vazia => null
}

// MappingEntry associa uma frontera/data ao valor LBC contratual e ao agente.
type MappingEntry struct {
	Fecha          time.Time           `json:"fecha"`
	CodFronteraDDV string              `json:"cod_frontera_ddv"`
	ValorLBC       decimal.NullDecimal `json:"valor_lbc"`
	Agente         string              `json:"agente"` // "" => sem agente
}

// BorderDay identifica uma frontera em um dia; é a chave de agrupamento e de join.
type BorderDay struct {
	Fecha          time.Time
	CodFronteraDDV string
}

// Key retorna a chave de agrupamento da leitura.
func (r Reading) Key() BorderDay {
	return BorderDay{Fecha: r.Fecha, CodFronteraDDV: r.CodFronteraDDV}
}

// Key retorna a chave de join do mapeamento.
func (m MappingEntry) Key() BorderDay {
	return BorderDay{Fecha: m.Fecha, CodFronteraDDV: m.CodFronteraDDV}
}

// DailyConsumption is the daily energy consumption (CE) per border code.
type DailyConsumption struct {
	Fecha          time.Time       `json:"fecha"`
	CodFronteraDDV string          `json:"cod_frontera_ddv"`
	CEkWh          decimal.Decimal `json:"ce_kwh"`
}

// Key retorna a chave de join do consumo diário.
func (d DailyConsumption) Key() BorderDay {
	return BorderDay{Fecha: d.Fecha, CodFronteraDDV: d.CodFronteraDDV}
}

// DisconnectionRecord is a daily consumption row left-joined with its mapping entry.
// ValorLBC and DesconexionKWh are null when no mapping matched.
type DisconnectionRecord struct {
	Fecha          time.Time           `json:"fecha"`
	CodFronteraDDV string              `json:"cod_frontera_ddv"`
	CEkWh          decimal.Decimal     `json:"ce_kwh"`
	ValorLBC       decimal.NullDecimal `json:"valor_lbc"`
	Agente         string              `json:"agente,omitempty"`
	Matched        bool                `json:"matched"`
	DesconexionKWh decimal.NullDecimal `json:"desconexion_kwh"`
}

// MonthlyReportRow é uma linha do relatório final de desconexão por mês e agente.
type MonthlyReportRow struct {
	Fecha                    string          `json:"fecha"` // YYYY-MM
	Agente                   string          `json:"agente"`
	DesconexionVerificadaKWh decimal.Decimal `json:"desconexion_verificada_kwh"`
	TotalFronteras           int             `json:"total_fronteras"`
}

// MonthlyReportHeader é o cabeçalho exportado do relatório mensal.
var MonthlyReportHeader = []string{"Fecha", "AGENTE", "Desconexión Verificada kWh", "Total de Fronteras"}

// MonthlyTotal is the disconnection total of one month across all agents, used for trend bars.
type MonthlyTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}
