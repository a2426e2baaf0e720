// Package storage sube las imágenes de producto a Google Cloud Storage
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/gabriel-vasile/mimetype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"google.golang.org/api/option"
)

// MaxImageSize es el tamaño máximo aceptado para una imagen de producto
const MaxImageSize = 5 << 20

var ErrUnsupportedImage = errors.New("unsupported image type")

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

type ImageStore interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error)
}

type GCSStore struct {
	client        *gcs.Client
	bucket        string
	publicBaseURL string
}

// NewGCSStore crea el cliente de GCS. Sin archivo de credenciales se usan las
// credenciales por defecto del entorno.
func NewGCSStore(ctx context.Context, bucket, credentialsFile, publicBaseURL string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		if _, err := os.Stat(credentialsFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("service account key not found at path: %s", credentialsFile)
		}
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS storage client: %w", err)
	}

	return &GCSStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Upload escribe el objeto y devuelve su URL pública
func (s *GCSStore) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	writer := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "public, max-age=86400"

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("failed to write GCS object %s: %w", objectPath, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer for %s: %w", objectPath, err)
	}
	return s.PublicURL(objectPath), nil
}

func (s *GCSStore) PublicURL(objectPath string) string {
	return publicURL(s.publicBaseURL, s.bucket, objectPath)
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}

func publicURL(baseURL, bucket, objectPath string) string {
	return fmt.Sprintf("%s/%s/%s", baseURL, bucket, strings.TrimLeft(objectPath, "/"))
}

// DetectImage identifica el tipo de la imagen por su contenido y no por el
// nombre del archivo. Devuelve el content type y la extensión.
func DetectImage(data []byte) (string, string, error) {
	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowedImageTypes...) {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mt.String())
	}
	return mt.String(), mt.Extension(), nil
}

// ImagePath arma la ruta del objeto para la imagen de un producto
func ImagePath(productID primitive.ObjectID, version int64, ext string) string {
	return path.Join("products", productID.Hex(), fmt.Sprintf("%d%s", version, ext))
}
