package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore holds uploaded profile photos and resumes.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// URL returns the address stored on profiles for key.
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// BaseURL, when set, is used as a public prefix instead of presigned links.
	BaseURL string
}

// MinioStore implements ObjectStore for MinIO/S3 compatible storage.
type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioStore connects to MinIO and ensures the bucket exists.
func NewMinioStore(ctx context.Context, opts MinioOptions) (*MinioStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	return &MinioStore{
		client:  client,
		bucket:  opts.Bucket,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
	}, nil
}

func (m *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

func (m *MinioStore) URL(ctx context.Context, key string) (string, error) {
	if m.baseURL != "" {
		return PublicURL(m.baseURL, m.bucket, key), nil
	}
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, 7*24*time.Hour, nil)
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return u.String(), nil
}

func (m *MinioStore) Delete(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// PublicURL joins base, bucket and key, escaping each key segment.
func PublicURL(base, bucket, key string) string {
	segments := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + path.Join(url.PathEscape(bucket), strings.Join(segments, "/"))
}

// ObjectKey builds "<kind>/<owner>/<unix-millis><ext>" keys for uploads.
func ObjectKey(kind, owner, filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(filename))
	owner = strings.NewReplacer("/", "_", "\\", "_").Replace(strings.ToLower(strings.TrimSpace(owner)))
	return fmt.Sprintf("%s/%s/%d%s", kind, owner, now.UnixMilli(), ext)
}
