package sharecraft

import (
	"bytes"
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Object is a stored blob together with its content type and entity tag.
type Object struct {
	Data        []byte
	ContentType string
	ETag        string
}

// BlobStore is the put/get byte store holding uploaded preview images.
// Objects are immutable once stored and are never deleted by this system.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (Object, error)
}

// FSBlobStore keeps blobs as flat files under a base directory.
type FSBlobStore struct {
	baseDir string
}

// NewFSBlobStore creates the base directory if needed.
func NewFSBlobStore(baseDir string) (*FSBlobStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	return &FSBlobStore{baseDir: baseDir}, nil
}

// Put writes data under key. The content type is not persisted; Get derives
// it from the key's extension.
func (f *FSBlobStore) Put(_ context.Context, key string, data []byte, _ string) error {
	if err := os.WriteFile(filepath.Join(f.baseDir, filepath.Base(key)), data, 0o644); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	return nil
}

// Get reads the blob stored under key. Missing keys yield ErrNotFound.
func (f *FSBlobStore) Get(_ context.Context, key string) (Object, error) {
	data, err := os.ReadFile(filepath.Join(f.baseDir, filepath.Base(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return Object{}, ErrNotFound
		}
		return Object{}, fmt.Errorf("read blob: %w", err)
	}
	return Object{
		Data:        data,
		ContentType: mime.TypeByExtension(filepath.Ext(key)),
		ETag:        fmt.Sprintf("%q", fmt.Sprintf("%x", md5.Sum(data))),
	}, nil
}

// S3Config contains S3 blob store configuration. A custom endpoint and
// path-style addressing support MinIO and S3-compatible providers.
type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// S3BlobStore stores blobs in an S3-compatible bucket.
type S3BlobStore struct {
	client *s3.Client
	bucket string
}

// NewS3BlobStore creates an S3BlobStore for the configured bucket.
func NewS3BlobStore(ctx context.Context, cfg S3Config) (*S3BlobStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket name is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("s3 region is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("s3 credentials are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return &S3BlobStore{client: client, bucket: cfg.Bucket}, nil
}

// Put uploads data under key with the given content type.
func (s *S3BlobStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload blob to s3: %w", err)
	}
	return nil
}

// Get downloads the blob stored under key. Missing keys yield ErrNotFound.
func (s *S3BlobStore) Get(ctx context.Context, key string) (Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return Object{}, ErrNotFound
		}
		return Object{}, fmt.Errorf("get blob from s3: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return Object{}, fmt.Errorf("read blob body: %w", err)
	}
	obj := Object{Data: data}
	if out.ContentType != nil {
		obj.ContentType = *out.ContentType
	}
	if out.ETag != nil {
		obj.ETag = *out.ETag
	}
	return obj, nil
}
