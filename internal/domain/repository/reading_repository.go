package repository

import (
	"context"

	"github.com/diillson/xm-reports-go/internal/domain/entity"
)

// ReadingRepository loads the meter readings and the LBC mapping of a data directory.
type ReadingRepository interface {
	// LoadReadings concatena Lecturas_parte1.csv e Lecturas_parte2.csv, nessa ordem.
	LoadReadings(ctx context.Context, dir string) ([]entity.Reading, error)
	// LoadMapping lê Mapeo.csv.
	LoadMapping(ctx context.Context, dir string) ([]entity.MappingEntry, error)
}
