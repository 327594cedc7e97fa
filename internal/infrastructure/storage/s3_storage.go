// Package storage provides object storage implementations for product images.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	catalogapp "github.com/stylehub/backend/internal/application/catalog"
	infraconfig "github.com/stylehub/backend/internal/infrastructure/config"
)

// Ensure S3ImageStorage implements ImageStorage
var _ catalogapp.ImageStorage = (*S3ImageStorage)(nil)

// S3ImageStorage implements ImageStorage using AWS S3 SDK v2.
// It is compatible with any S3-compatible storage (AWS S3, MinIO, etc.)
type S3ImageStorage struct {
	client    *s3.Client
	bucket    string
	publicURL string
	logger    *zap.Logger
}

// NewS3ImageStorage creates a new S3ImageStorage from configuration.
func NewS3ImageStorage(cfg *infraconfig.StorageConfig, logger *zap.Logger) (*S3ImageStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "http://localhost:9000" // MinIO default
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid storage endpoint: %w", err)
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String(endpoint)
	})

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = strings.TrimRight(endpoint, "/") + "/" + cfg.Bucket
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &S3ImageStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
		logger:    logger,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
// Call this during application startup.
func (s *S3ImageStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

// Upload stores an image and returns its public URL
func (s *S3ImageStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) (string, error) {
	if storageKey == "" {
		return "", errors.New("storage key is required")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(storageKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return s.publicURL + "/" + storageKey, nil
}

// Delete removes an image from storage
func (s *S3ImageStorage) Delete(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Exists checks if an image exists in storage
func (s *S3ImageStorage) Exists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	})
	if err != nil {
		var notFound *types.NotFound
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
			return false, nil
		}
		// Some S3-compatible services report not-found differently
		if strings.Contains(err.Error(), "NotFound") || strings.Contains(err.Error(), "NoSuchKey") {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}

	return true, nil
}

// GetBucket returns the bucket name
func (s *S3ImageStorage) GetBucket() string {
	return s.bucket
}
