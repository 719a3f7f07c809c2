package skywire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipelineErrorMessageIncludesKind(t *testing.T) {
	err := newErr(ErrCrcMismatch, "got %d want %d", 1, 2)
	assert.Contains(t, err.Error(), "CrcMismatch")
	assert.Contains(t, err.Error(), "got 1 want 2")
}

func TestErrorCountersSnapshot(t *testing.T) {
	var c ErrorCounters
	c.record(ErrCrcMismatch)
	c.record(ErrCrcMismatch)
	c.record(ErrFrameSyncLost)

	snap := c.Snapshot()
	assert.Equal(t, uint64(2), snap[ErrCrcMismatch])
	assert.Equal(t, uint64(1), snap[ErrFrameSyncLost])
	assert.Equal(t, uint64(0), snap[ErrDecodeUncorrectable])
}

func TestErrorKindStringUnknown(t *testing.T) {
	assert.Equal(t, "None", ErrorKind(99).String())
}
