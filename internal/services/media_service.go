package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"shopcore/internal/common"
)

var allowedImageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// MediaService stores uploaded product images in object storage and hands
// back the public URL to persist on the image row.
type MediaService interface {
	EnsureBucketExists(ctx context.Context) error
	UploadImage(ctx context.Context, productID uuid.UUID, filename string, reader io.Reader, size int64) (string, error)
}

type minioMediaService struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinioMediaService(endpoint, accessKey, secretKey string, useSSL bool, bucket, baseURL string) (MediaService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioMediaService{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (m *minioMediaService) EnsureBucketExists(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (m *minioMediaService) UploadImage(ctx context.Context, productID uuid.UUID, filename string, reader io.Reader, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedImageExtensions[ext]
	if !ok {
		return "", common.ValidationError("unsupported image type %q", ext)
	}

	objectName := fmt.Sprintf("products/%s/%s%s", productID, uuid.NewString(), ext)
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return m.baseURL + "/" + objectName, nil
}
