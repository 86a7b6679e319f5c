package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"docportal/internal/model"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{2048, "2.00 KB"},
		{1536000, "1.46 MB"},
		{2048576, "1.95 MB"},
		{1 << 30, "1.00 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.in), "size %d", tt.in)
	}
}

func TestNewDocumentView(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	now := time.Date(2025, 3, 10, 22, 0, 0, 0, loc)
	extID := "ext-002"
	d := model.Document{
		ID:             11,
		OriginalName:   "report.xlsx",
		Description:    "Q4",
		Extension:      "xlsx",
		SizeBytes:      1536000,
		ExpirationDate: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		Status:         model.StatusVigente,
		UploadedAt:     time.Date(2025, 3, 11, 0, 30, 0, 0, time.UTC),
		ExternalID:     &extID,
	}

	v := NewDocumentView(d, now)

	assert.Equal(t, model.StatusPorVencer, v.Status)
	assert.Equal(t, "warning", v.StatusClass)
	assert.Equal(t, "Por vencer", v.StatusText)
	assert.Equal(t, "Expires tomorrow", v.RemainingLabel)
	assert.Equal(t, "text-warning", v.RemainingClass)
	assert.Equal(t, 1, v.DaysRemaining)
	assert.Equal(t, "2025-03-11", v.ExpirationDate)
	assert.Equal(t, "11/03/2025", v.ExpirationDateFormatted)
	assert.Equal(t, "10/03/2025 21:30", v.UploadedAtFormatted)
	assert.Equal(t, "file-excel", v.Icon)
	assert.False(t, v.IsImage)
	assert.True(t, v.External)
}

func TestNewDocumentViews_NeverNil(t *testing.T) {
	assert.NotNil(t, NewDocumentViews(nil, time.Now()))
}
