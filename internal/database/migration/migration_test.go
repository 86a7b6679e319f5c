package migration

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docportal/internal/logger"
)

func TestSource_UpAndDownPairs(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	var seen int
	for {
		up, _, err := src.ReadUp(version)
		require.NoError(t, err, "up %d", version)
		up.Close()
		down, _, err := src.ReadDown(version)
		require.NoError(t, err, "down %d", version)
		down.Close()
		seen++

		next, err := src.Next(version)
		if err != nil {
			break
		}
		version = next
	}
	assert.Equal(t, 2, seen)
}

func TestSource_CreatesRepositoryTables(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	var all strings.Builder
	for _, v := range []uint{1, 2} {
		r, _, err := src.ReadUp(v)
		require.NoError(t, err)
		b, err := io.ReadAll(r)
		r.Close()
		require.NoError(t, err)
		all.Write(b)
	}

	for _, table := range []string{"users", "documents", "activity_log", "portal_sync_state"} {
		assert.Contains(t, all.String(), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}

func TestMigrateLogger(t *testing.T) {
	var buf bytes.Buffer
	ml := migrateLogger{logger.New(&buf, "info", time.UTC)}

	ml.Printf("Start buffering %d/u %s\n", 1, "init")

	assert.False(t, ml.Verbose())
	assert.Contains(t, buf.String(), "Start buffering 1/u init")
}
