package repository

import "github.com/diillson/xm-reports-go/internal/domain/entity"

// ChartRenderer desenha a série de preços com as linhas de referência.
type ChartRenderer interface {
	Render(series []entity.PriceRecord, lines []entity.ReferenceLine) error
}
