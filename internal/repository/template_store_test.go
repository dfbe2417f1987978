package repository

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	body         io.ReadCloser
	err          error
	requestedKey string
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.requestedKey = aws.ToString(params.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: f.body}, nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, assert.AnError }
func (failingReader) Close() error             { return nil }

func TestTemplateStoreGet(t *testing.T) {
	client := &fakeS3{body: io.NopCloser(strings.NewReader("<html>template</html>"))}
	store := NewS3TemplateStore(client, "templates-bucket")

	body, err := store.Get(context.Background(), "order-created.html")
	require.NoError(t, err)

	assert.Equal(t, "<html>template</html>", body)
	assert.Equal(t, "order-created.html", client.requestedKey)
}

func TestTemplateStoreGet_NotFound(t *testing.T) {
	store := NewS3TemplateStore(&fakeS3{err: &types.NoSuchKey{}}, "templates-bucket")

	_, err := store.Get(context.Background(), "missing.html")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestTemplateStoreGet_Unreadable(t *testing.T) {
	tests := []struct {
		name string
		body io.ReadCloser
	}{
		{name: "body read fails", body: failingReader{}},
		{name: "empty object", body: io.NopCloser(strings.NewReader(""))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewS3TemplateStore(&fakeS3{body: tt.body}, "templates-bucket")

			_, err := store.Get(context.Background(), "order-created.html")
			assert.ErrorIs(t, err, ErrTemplateUnreadable)
		})
	}
}

func TestTemplateStoreGet_OtherErrorsAreNotNotFound(t *testing.T) {
	store := NewS3TemplateStore(&fakeS3{err: assert.AnError}, "templates-bucket")

	_, err := store.Get(context.Background(), "order-created.html")
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, ErrTemplateNotFound)
}
