package s3

import (
	"context"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/mwantia/backup/data"
)

// S3Backend stores backup objects in an S3-compatible bucket under a
// configurable prefix, one object per scheme/key pair.
type S3Backend struct {
	client *minio.Client
	bucket string
	prefix string
}

func NewS3Backend(endpoint, bucket, prefix, accessKey, secretKey string, useSsl bool) (*S3Backend, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSsl,
	})
	if err != nil {
		return nil, err
	}

	return &S3Backend{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// Name returns the identifier name defined for this backend.
func (*S3Backend) Name() string {
	return "s3"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (sb *S3Backend) Open(ctx context.Context) error {
	exists, err := sb.client.BucketExists(ctx, sb.bucket)
	if err != nil {
		return err
	}

	if !exists {
		return data.ErrOpenFailed
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (sb *S3Backend) Close(ctx context.Context) error {
	return nil
}

// objectName composes the bucket object name for a scheme/key pair.
func (sb *S3Backend) objectName(scheme, key string) string {
	return path.Join(sb.prefix, scheme, key)
}
