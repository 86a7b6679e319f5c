package storage

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"

	"docportal/internal/config"
)

func TestNewMinIO_RequiresSettings(t *testing.T) {
	full := config.MinIOConfig{Endpoint: "minio:9000", AccessKey: "key", SecretKey: "secret", Bucket: "docs"}

	tests := []struct {
		name    string
		mutate  func(*config.MinIOConfig)
		wantErr string
	}{
		{"endpoint", func(c *config.MinIOConfig) { c.Endpoint = "" }, "endpoint is required"},
		{"credentials", func(c *config.MinIOConfig) { c.SecretKey = "" }, "credentials are required"},
		{"bucket", func(c *config.MinIOConfig) { c.Bucket = "" }, "bucket is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := full
			tt.mutate(&cfg)

			s, err := NewMinIO(context.Background(), cfg)

			assert.ErrorContains(t, err, tt.wantErr)
			assert.Nil(t, s)
		})
	}
}

func TestTranslateMinIOError(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no such key", minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}, ErrObjectNotFound},
		{"plain 404", minio.ErrorResponse{StatusCode: http.StatusNotFound}, ErrObjectNotFound},
		{"access denied", minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}, nil},
		{"transport", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateMinIOError(tt.in)
			switch {
			case tt.in == nil:
				assert.NoError(t, got)
			case tt.want == nil:
				assert.Equal(t, tt.in, got)
			default:
				assert.ErrorIs(t, got, tt.want)
			}
		})
	}
}
