package repository

import "context"

// StorageRepository publica um arquivo exportado em um armazenamento remoto.
type StorageRepository interface {
	// Upload envia localPath com a chave key e retorna a URI do objeto.
	Upload(ctx context.Context, localPath, key string) (string, error)
}
