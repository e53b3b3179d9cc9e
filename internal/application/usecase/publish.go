package usecase

import (
	"context"
	"path/filepath"

	"github.com/diillson/xm-reports-go/internal/domain/repository"
	"github.com/diillson/xm-reports-go/internal/shared/types"
)

// publishReports envia os arquivos exportados ao armazenamento remoto, quando configurado.
// Falhas são apenas registradas: os arquivos locais já foram gravados.
func publishReports(ctx context.Context, storage repository.StorageRepository, console types.ConsoleInterface, paths []string) {
	if storage == nil {
		return
	}
	for _, p := range paths {
		uri, err := storage.Upload(ctx, p, filepath.Base(p))
		if err != nil {
			console.LogError("Failed to publish %s: %s", p, err)
			continue
		}
		console.LogSuccess("Published report to %s", uri)
	}
}
