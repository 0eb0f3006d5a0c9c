package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"people-directory/domain/models"
	"people-directory/pkg/config"
)

// MinioSource reads the dataset object from S3-compatible storage.
type MinioSource struct {
	client *minio.Client
	bucket string
	object string
}

// NewMinioSource builds a source for bucket/object on the configured endpoint.
func NewMinioSource(cfg config.MinioConfig, bucket, object string) (*MinioSource, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("minio endpoint is required for s3:// datasets")
	}
	if bucket == "" || object == "" {
		return nil, fmt.Errorf("invalid dataset object %q/%q", bucket, object)
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &MinioSource{client: client, bucket: bucket, object: object}, nil
}

func (s *MinioSource) Fetch(ctx context.Context) ([]models.Person, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset object: %w", err)
	}
	defer obj.Close()
	return Decode(obj)
}

func (s *MinioSource) Location() string {
	return "s3://" + s.bucket + "/" + s.object
}
