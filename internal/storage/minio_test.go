package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"perfumism/internal/config"
)

func TestNewMinIO_RequiresSettings(t *testing.T) {
	ctx := context.Background()

	_, err := NewMinIO(ctx, config.MinIOConfig{})
	assert.ErrorContains(t, err, "endpoint")

	_, err = NewMinIO(ctx, config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "b"})
	assert.ErrorContains(t, err, "credentials")

	_, err = NewMinIO(ctx, config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"})
	assert.ErrorContains(t, err, "bucket")
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "http://minio:9000/perfumism",
		PublicBaseURL(config.MinIOConfig{Endpoint: "minio:9000", Bucket: "perfumism"}))
	assert.Equal(t, "https://s3.example/perfumism",
		PublicBaseURL(config.MinIOConfig{Endpoint: "s3.example", Bucket: "perfumism", UseSSL: true}))
	assert.Equal(t, "https://cdn.example",
		PublicBaseURL(config.MinIOConfig{Endpoint: "s3.example", Bucket: "perfumism", PublicURL: "https://cdn.example/"}))
}
