package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"reservaplus/internal/config"
)

// AvatarService stores user avatar images in object storage.
type AvatarService interface {
	Upload(ctx context.Context, userID uuid.UUID, contentType string, reader io.Reader, size int64) (string, error)
	GetPresignedURL(ctx context.Context, userID uuid.UUID, expiry time.Duration) (string, error)
	EnsureBucketExists(ctx context.Context) error
	Ping(ctx context.Context) error
}

type minioAvatarService struct {
	client *minio.Client
	bucket string
}

func NewAvatarService(cfg config.MinioConfig) (AvatarService, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioAvatarService{client: client, bucket: cfg.Bucket}, nil
}

func avatarObjectName(userID uuid.UUID) string {
	return fmt.Sprintf("avatars/%s", userID)
}

// Upload overwrites the user's avatar object and returns its object name.
func (m *minioAvatarService) Upload(ctx context.Context, userID uuid.UUID, contentType string, reader io.Reader, size int64) (string, error) {
	objectName := avatarObjectName(userID)
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store avatar for %s: %w", userID, err)
	}
	return objectName, nil
}

func (m *minioAvatarService) GetPresignedURL(ctx context.Context, userID uuid.UUID, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucket, avatarObjectName(userID), expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (m *minioAvatarService) EnsureBucketExists(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (m *minioAvatarService) Ping(ctx context.Context) error {
	_, err := m.client.BucketExists(ctx, m.bucket)
	return err
}
