package repository

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var (
	// ErrTemplateNotFound is returned when the store has no object at the
	// requested key. Operational issue: the record fails and should alert.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrTemplateUnreadable is returned when the object exists but its body
	// cannot be read as text.
	ErrTemplateUnreadable = errors.New("template unreadable")
)

// TemplateStore loads raw email templates from the blob store.
type TemplateStore interface {
	Get(ctx context.Context, key string) (string, error)
}

// S3API is the subset of the S3 client the template store uses.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type s3TemplateStore struct {
	client S3API
	bucket string
}

// NewS3TemplateStore creates a template store reading from the given bucket.
func NewS3TemplateStore(client S3API, bucket string) TemplateStore {
	return &s3TemplateStore{client: client, bucket: bucket}
}

func (s *s3TemplateStore) Get(ctx context.Context, key string) (string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return "", fmt.Errorf("%w: s3://%s/%s", ErrTemplateNotFound, s.bucket, key)
		}
		return "", fmt.Errorf("get template s3://%s/%s: %w", s.bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("%w: s3://%s/%s: %v", ErrTemplateUnreadable, s.bucket, key, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: s3://%s/%s: empty object", ErrTemplateUnreadable, s.bucket, key)
	}
	return string(data), nil
}
