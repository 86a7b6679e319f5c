package scheduler

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docportal/internal/logger"
)

type countingRefresher struct {
	calls atomic.Int32
	n     int64
	err   error
}

func (c *countingRefresher) RefreshStatuses(ctx context.Context) (int64, error) {
	c.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("refresh without deadline")
	}
	return c.n, c.err
}

func TestNewStatusRefresher_InvalidSchedule(t *testing.T) {
	_, err := NewStatusRefresher(&countingRefresher{}, "every now and then", time.UTC, nil)
	assert.ErrorContains(t, err, "invalid status refresh schedule")
}

func TestStatusRefresher_RunOnce(t *testing.T) {
	tests := []struct {
		name    string
		target  *countingRefresher
		wantLog string
	}{
		{"success", &countingRefresher{n: 3}, `"updated":3`},
		{"failure is logged", &countingRefresher{err: errors.New("db down")}, "db down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r, err := NewStatusRefresher(tt.target, "@hourly", time.UTC, logger.New(&buf, "info", time.UTC))
			require.NoError(t, err)

			r.RunOnce(context.Background())

			assert.Equal(t, int32(1), tt.target.calls.Load())
			assert.Contains(t, buf.String(), tt.wantLog)
		})
	}
}

func TestStatusRefresher_StartRunsImmediately(t *testing.T) {
	target := &countingRefresher{}
	r, err := NewStatusRefresher(target, "@daily", time.UTC, nil)
	require.NoError(t, err)

	r.Start(context.Background())
	<-r.Stop().Done()

	assert.Equal(t, int32(1), target.calls.Load())
}
