package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
)

// Vault stores pitch documents in MinIO. The references it returns are
// opaque object keys within the configured bucket; later stages never
// interpret them.
type Vault struct {
	client     *minio.Client
	bucketName string
	region     string
}

// New connects to MinIO and ensures the bucket exists.
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Vault, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &Vault{client: cli, bucketName: bucket, region: region}, nil
}

// Put uploads content under the given key and returns the key as the
// storage reference.
func (v *Vault) Put(ctx context.Context, key string, content []byte) (string, error) {
	_, err := v.client.PutObject(ctx, v.bucketName, key,
		bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: contentTypeFor(key)},
	)
	if err != nil {
		return "", fmt.Errorf("failed to store pitch object %s: %w", key, err)
	}
	return key, nil
}

// Fetch downloads a stored object by reference.
func (v *Vault) Fetch(ctx context.Context, ref string) ([]byte, error) {
	obj, err := v.client.GetObject(ctx, v.bucketName, ref, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapFetchErr(ref, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, mapFetchErr(ref, err)
	}
	return data, nil
}

// Ping checks connectivity for health reporting.
func (v *Vault) Ping(ctx context.Context) error {
	_, err := v.client.BucketExists(ctx, v.bucketName)
	return err
}

func contentTypeFor(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".json":
		return "application/json"
	case ".md":
		return "text/markdown"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

func mapFetchErr(ref string, err error) error {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) && (resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket") {
		return fmt.Errorf("object %s: %w", ref, domain.ErrNotFound)
	}
	return fmt.Errorf("failed to fetch object %s: %w", ref, err)
}
