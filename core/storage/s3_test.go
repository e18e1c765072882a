package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"agenda-api/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3Store_RequiresConfig(t *testing.T) {
	_, err := NewS3Store(config.StorageConfig{Region: "us-east-1"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestS3Store_PresignGet(t *testing.T) {
	store, err := NewS3Store(config.StorageConfig{
		Bucket:    "exports",
		Region:    "us-east-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)

	url, err := store.PresignGet(context.Background(), "calendars/ana.ics", 5*time.Minute)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/exports/calendars/ana.ics?"), url)
	assert.Contains(t, url, "X-Amz-Expires=300")
	assert.Contains(t, url, "X-Amz-Signature=")
}
