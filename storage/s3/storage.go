package s3

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/mwantia/backup/data"
)

func (sb *S3Backend) WriteObject(ctx context.Context, scheme, key string, payload []byte) error {
	_, err := sb.client.PutObject(ctx, sb.bucket, sb.objectName(scheme, key),
		bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
			ContentType: "application/octet-stream",
		})

	return err
}

func (sb *S3Backend) ReadObject(ctx context.Context, scheme, key string) ([]byte, error) {
	object, err := sb.client.GetObject(ctx, sb.bucket, sb.objectName(scheme, key), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()

	payload, err := io.ReadAll(object)
	if err != nil {
		return nil, mapObjectError(err)
	}

	return payload, nil
}

func (sb *S3Backend) ReadObjectPrefix(ctx context.Context, scheme, key string, delim byte, chunkSize, maxBytes int) ([]byte, error) {
	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(0, int64(maxBytes-1)); err != nil {
		return nil, err
	}

	object, err := sb.client.GetObject(ctx, sb.bucket, sb.objectName(scheme, key), opts)
	if err != nil {
		return nil, err
	}
	defer object.Close()

	prefix, err := io.ReadAll(object)
	if err != nil {
		return nil, mapObjectError(err)
	}

	if i := bytes.IndexByte(prefix, delim); i >= 0 {
		prefix = prefix[:i+1]
	}

	return prefix, nil
}

func (sb *S3Backend) DeleteObject(ctx context.Context, scheme, key string) error {
	return sb.client.RemoveObject(ctx, sb.bucket, sb.objectName(scheme, key), minio.RemoveObjectOptions{})
}

func (sb *S3Backend) ListObjects(ctx context.Context) ([]data.ObjectRef, error) {
	listPrefix := sb.prefix
	if listPrefix != "" && !strings.HasSuffix(listPrefix, "/") {
		listPrefix += "/"
	}

	var refs []data.ObjectRef
	for object := range sb.client.ListObjects(ctx, sb.bucket, minio.ListObjectsOptions{
		Prefix:    listPrefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, object.Err
		}

		relative := strings.TrimPrefix(object.Key, listPrefix)
		if scheme, key, found := strings.Cut(relative, "/"); found {
			refs = append(refs, data.ObjectRef{Scheme: scheme, Key: path.Base(key)})
		}
	}

	return refs, nil
}

func (sb *S3Backend) Purge(ctx context.Context) error {
	refs, err := sb.ListObjects(ctx)
	if err != nil {
		return err
	}

	errs := data.Errors{}
	for _, ref := range refs {
		errs.Add(sb.DeleteObject(ctx, ref.Scheme, ref.Key))
	}

	return errs.Errors()
}

// mapObjectError translates S3 error responses into shared sentinels.
func mapObjectError(err error) error {
	response := minio.ToErrorResponse(err)
	switch response.Code {
	case "NoSuchKey":
		return data.ErrNotExist
	case "AccessDenied":
		return data.ErrPermission
	}

	return err
}
