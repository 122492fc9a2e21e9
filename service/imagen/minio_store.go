package imagen

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"

	"administracion.GO/config"
)

// MinioStore is the MinIO-backed BlobStore used in production.
type MinioStore struct{}

func NewMinioStore() *MinioStore {
	return &MinioStore{}
}

func (m *MinioStore) Put(ctx context.Context, ruta string, r io.Reader, size int64, contentType, nombreOriginal string) error {
	_, err := config.MinioClient.PutObject(ctx, config.MinioBucket, ruta, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"original-name": nombreOriginal},
	})
	return err
}

func (m *MinioStore) Remove(ctx context.Context, ruta string) error {
	return config.MinioClient.RemoveObject(ctx, config.MinioBucket, ruta, minio.RemoveObjectOptions{})
}

// RemoveAll streams the paths through RemoveObjects and returns the first
// failed removal, if any.
func (m *MinioStore) RemoveAll(ctx context.Context, rutas []string) error {
	objetos := make(chan minio.ObjectInfo, len(rutas))
	for _, ruta := range rutas {
		objetos <- minio.ObjectInfo{Key: ruta}
	}
	close(objetos)

	for res := range config.MinioClient.RemoveObjects(ctx, config.MinioBucket, objetos, minio.RemoveObjectsOptions{}) {
		if res.Err != nil {
			return res.Err
		}
	}
	return nil
}
