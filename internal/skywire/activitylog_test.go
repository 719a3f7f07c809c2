package skywire

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityLogWritesDailyFile(t *testing.T) {
	dir := t.TempDir()
	log, err := NewActivityLog(dir, "%Y%m%d.csv")
	require.NoError(t, err)
	defer log.Close()

	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	require.NoError(t, log.Record(now, 1, "decoded", "frame ok"))
	require.NoError(t, log.Record(now, 2, "dropped", "crc mismatch"))
	require.NoError(t, log.Close())

	data, err := os.ReadFile(filepath.Join(dir, "20260731.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "decoded")
	assert.Contains(t, string(data), "crc mismatch")
}
