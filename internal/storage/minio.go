package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOMirror uploads backup snapshots to an object-storage bucket so an
// off-host copy survives loss of the data volume. Strictly best-effort:
// the file store logs upload failures and carries on.
type MinIOMirror struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinIOMirror creates the mirror client and ensures the bucket exists.
func NewMinIOMirror(cfg *MinIOConfig) (*MinIOMirror, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	m := &MinIOMirror{client: mc, bucket: cfg.Bucket, prefix: cfg.Prefix}
	// ensure bucket exists (idempotent)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		// ignore "already exists" style errors
		exist, xerr := mc.BucketExists(ctx, m.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return m, nil
}

// UploadBackup stores one backup snapshot under the configured prefix.
func (m *MinIOMirror) UploadBackup(ctx context.Context, key string, data []byte) error {
	_, err := m.client.PutObject(ctx, m.bucket, m.prefix+key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}
