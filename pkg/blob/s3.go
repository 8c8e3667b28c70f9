package blob

import (
	"context"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config holds the object-storage connection settings.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// S3 stores blobs in an S3-compatible bucket via minio. Deployments using
// this driver serve avatars from the bucket's own endpoint or a CDN; the
// recorded web paths stay identical to the filesystem driver's.
type S3 struct {
	cfg    S3Config
	client *minio.Client
}

func NewS3(cfg S3Config) (*S3, error) {
	cl, err := minio.New(strings.TrimPrefix(cfg.Endpoint, "http://"), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &S3{cfg: cfg, client: cl}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *S3) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		return s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (s *S3) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	name := NewName(originalName)

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, name, r, -1,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}

	return WebPrefix + name, nil
}

func (s *S3) Remove(ctx context.Context, webPath string) error {
	if webPath == "" {
		return nil
	}
	// RemoveObject succeeds for absent keys, matching the driver contract.
	return s.client.RemoveObject(ctx, s.cfg.Bucket, path.Base(webPath), minio.RemoveObjectOptions{})
}
