package repository

import (
	"context"

	"github.com/diillson/xm-reports-go/internal/domain/entity"
)

// MarketDataRepository defines the interface for the external market-data service.
type MarketDataRepository interface {
	Fetch(ctx context.Context, datasetID string, period entity.DateRange) ([]entity.MarketRecord, error)
}
