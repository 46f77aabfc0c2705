// Package storage guarda los documentos generados en S3 (o compatible) o en disco local.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/jhoicas/notaria-api/pkg/config"
	"github.com/jhoicas/notaria-api/pkg/logger"
)

// ObjectStorage operaciones de almacenamiento usadas por la generación de documentos.
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	// DownloadURL URL firmada de descarga; "" si el backend no la soporta y el servicio responde con la ruta de la API.
	DownloadURL(ctx context.Context, key string) (string, error)
}

// New construye el backend configurado en STORAGE_DRIVER.
func New(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (ObjectStorage, error) {
	switch cfg.Driver {
	case config.StorageDriverS3:
		s, err := NewS3Storage(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	case config.StorageDriverLocal, "":
		return NewLocalStorage(cfg.LocalDir)
	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Driver)
	}
}

// ValidateKey rechaza claves vacías, absolutas o con "..".
func ValidateKey(key string) error {
	if key == "" {
		return errors.New("storage: clave vacía")
	}
	if strings.HasPrefix(key, "/") || path.Clean(key) != key || strings.Contains(key, "..") {
		return fmt.Errorf("storage: clave inválida %q", key)
	}
	return nil
}
