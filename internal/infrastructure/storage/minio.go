package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// ErrObjectNotFound is returned when an archived object does not exist
var ErrObjectNotFound = errors.New("object not found")

// maxTranscriptBytes bounds how much of an archived transcript is read back
const maxTranscriptBytes = 8 << 20

// MinIOClient archives raw transcripts in a private bucket
type MinIOClient struct {
	client *minio.Client
	bucket string
}

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists
func NewMinIOClient(ctx context.Context, cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client: minioClient,
		bucket: cfg.BucketName,
	}
	if err := client.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}
	return client, nil
}

// EnsureBucket creates the bucket when missing
func (m *MinIOClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// TranscriptKey is the object name for a minute's raw transcript
func TranscriptKey(minuteID uuid.UUID) string {
	return "transcripts/" + minuteID.String() + ".txt"
}

// PutTranscript uploads the raw text and returns its object key
func (m *MinIOClient) PutTranscript(ctx context.Context, minuteID uuid.UUID, text string) (string, error) {
	key := TranscriptKey(minuteID)
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader([]byte(text)), int64(len(text)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload transcript: %w", err)
	}
	return key, nil
}

// GetTranscript downloads an archived transcript
func (m *MinIOClient) GetTranscript(ctx context.Context, key string) (string, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return "", translate(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, maxTranscriptBytes))
	if err != nil {
		return "", translate(err)
	}
	return string(data), nil
}

// DeleteTranscript removes an archived transcript; a missing object is not an error
func (m *MinIOClient) DeleteTranscript(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		if errors.Is(translate(err), ErrObjectNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete transcript: %w", err)
	}
	return nil
}

// Ping checks the bucket is reachable
func (m *MinIOClient) Ping(ctx context.Context) error {
	_, err := m.client.BucketExists(ctx, m.bucket)
	return err
}

func translate(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrObjectNotFound
	}
	return err
}
