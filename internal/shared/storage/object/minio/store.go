package minio

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/storage/object"
)

// Options configure the MinIO connection.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// objectAPI is the subset of the MinIO client the store needs.
type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	openObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error)
}

type minioClient struct {
	*minio.Client
}

func (c minioClient) openObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error) {
	obj, err := c.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject is lazy; Stat surfaces a missing key before the caller reads.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, err
	}
	return obj, nil
}

// Store implements ObjectStore on a MinIO (or any S3 compatible) bucket.
type Store struct {
	client objectAPI
	bucket string
}

// New connects to MinIO and creates the bucket when it does not exist.
func New(ctx context.Context, opts Options) (object.ObjectStore, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}
	return newStore(ctx, minioClient{client}, opts.Bucket)
}

func (o Options) validate() error {
	if strings.TrimSpace(o.Endpoint) == "" {
		return fmt.Errorf("minio endpoint is required")
	}
	if strings.TrimSpace(o.Bucket) == "" {
		return fmt.Errorf("minio bucket is required")
	}
	return nil
}

func newStore(ctx context.Context, client objectAPI, bucket string) (*Store, error) {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(checkCtx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(checkCtx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket %q: %w", bucket, err)
		}
	}
	return &Store{client: client, bucket: bucket}, nil
}

// Save uploads the reader under the user's namespace.
func (s *Store) Save(ctx context.Context, userId string, fileName string, r io.Reader) (string, int64, string, error) {
	key, err := object.NewKey(userId, fileName)
	if err != nil {
		return "", 0, "", err
	}
	body, mimeType, err := object.Sniff(r)
	if err != nil {
		return "", 0, "", err
	}
	size, err := s.SaveWithKey(ctx, key, mimeType, body)
	if err != nil {
		return "", 0, "", err
	}
	return key, size, mimeType, nil
}

// Open streams an object from the bucket.
func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	obj, err := s.client.openObject(ctx, s.bucket, storageKey)
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", storageKey, err)
	}
	return obj, nil
}

// SaveWithKey uploads r with unknown length at storageKey.
func (s *Store) SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	info, err := s.client.PutObject(ctx, s.bucket, storageKey, r, -1, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return 0, fmt.Errorf("put object %q: %w", storageKey, err)
	}
	return info.Size, nil
}

var _ object.ObjectStore = (*Store)(nil)
