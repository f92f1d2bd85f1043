// Package storage uploads user avatars to object storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/liqma/backend/config"
)

// DefaultAvatarURL is used when a user signs up without an image.
func DefaultAvatarURL(seed string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(seed)
}

// AvatarStore persists an avatar and returns the URL clients load it from.
type AvatarStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// ObjectPutter is the slice of the S3 client the store needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3AvatarStore writes avatars under avatars/ in a bucket.
type S3AvatarStore struct {
	client  ObjectPutter
	bucket  string
	baseURL string
}

// NewS3AvatarStore returns nil when S3 is not configured.
func NewS3AvatarStore(cfg *config.S3Config) *S3AvatarStore {
	if cfg == nil {
		return nil
	}
	return &S3AvatarStore{
		client:  cfg.Client,
		bucket:  cfg.BucketName,
		baseURL: strings.TrimSuffix(cfg.PublicURL(""), "/"),
	}
}

// NewS3AvatarStoreWithClient builds a store around any ObjectPutter.
func NewS3AvatarStoreWithClient(client ObjectPutter, bucket, baseURL string) *S3AvatarStore {
	return &S3AvatarStore{client: client, bucket: bucket, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (s *S3AvatarStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	objectKey := path.Join("avatars", key)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar %s: %w", objectKey, err)
	}
	return s.baseURL + "/" + objectKey, nil
}
