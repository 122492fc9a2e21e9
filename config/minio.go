package config

import (
	"context"
	"fmt"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioClient is the global object-storage client for image blobs.
// Accessed as config.MinioClient in other files
var MinioClient *minio.Client

// MinioBucket is the bucket every image object lives in.
var MinioBucket string

// InitMinio builds the client from MINIO_* env vars. Endpoint, access key,
// secret key and bucket are required, no defaults.
func InitMinio() error {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	port := os.Getenv("MINIO_PORT")
	access := os.Getenv("MINIO_ACCESS_KEY")
	secret := os.Getenv("MINIO_SECRET_KEY")
	MinioBucket = os.Getenv("MINIO_BUCKET")

	if endpoint == "" || access == "" || secret == "" || MinioBucket == "" {
		return fmt.Errorf("config/minio: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY y MINIO_BUCKET son requeridos")
	}

	addr := endpoint
	if port != "" {
		addr = endpoint + ":" + port
	}

	client, err := minio.New(addr, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: os.Getenv("MINIO_USE_SSL") == "true",
	})
	if err != nil {
		return err
	}
	MinioClient = client
	return nil
}

// CheckMinioBucket pings the bucket so a bad endpoint fails at startup.
func CheckMinioBucket(ctx context.Context) error {
	exists, err := MinioClient.BucketExists(ctx, MinioBucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("config/minio: el bucket %q no existe", MinioBucket)
	}
	return nil
}

// MinioPublicURL builds the public retrieval URL for a stored object.
// The URL is computed at read time, never persisted.
func MinioPublicURL(ruta string) string {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	port := os.Getenv("MINIO_PORT")
	return fmt.Sprintf("http://%s:%s/%s/%s", endpoint, port, MinioBucket, ruta)
}
