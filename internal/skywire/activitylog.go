package skywire

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lestrrat-go/strftime"
)

// ActivityLog writes one CSV row per recorded event (a transmitted,
// delivered or dropped frame) to a
// daily-rotated file, the pure-Go equivalent of the teacher's
// "daily names" log feature: rather than one growing file, a new one
// is opened each day named by a strftime pattern.
type ActivityLog struct {
	mu       sync.Mutex
	dir      string
	pattern  *strftime.Strftime
	openName string
	fp       *os.File
	w        *csv.Writer
}

// NewActivityLog builds an ActivityLog that writes daily files under
// dir, named by the given strftime pattern (e.g. "skywire-%Y%m%d.csv").
// dir is created if it does not already exist.
func NewActivityLog(dir, pattern string) (*ActivityLog, error) {
	f, err := strftime.New(pattern)
	if err != nil {
		return nil, newErr(ErrConfig, "invalid activity log pattern %q: %s", pattern, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, newErr(ErrConfig, "cannot create activity log directory %q: %s", dir, err)
	}
	return &ActivityLog{dir: dir, pattern: f}, nil
}

// rollIfNeeded opens today's file, rotating from whatever was
// previously open if the name has changed since.
func (a *ActivityLog) rollIfNeeded(now time.Time) error {
	name := a.pattern.FormatString(now)
	if name == a.openName && a.fp != nil {
		return nil
	}
	if a.w != nil {
		a.w.Flush()
	}
	if a.fp != nil {
		a.fp.Close()
	}

	path := filepath.Join(a.dir, name)
	fresh := true
	if _, statErr := os.Stat(path); statErr == nil {
		fresh = false
	}
	fp, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return newErr(ErrConfig, "cannot open activity log %q: %s", path, err)
	}
	a.fp = fp
	a.w = csv.NewWriter(fp)
	a.openName = name
	if fresh {
		_ = a.w.Write([]string{"timestamp", "frame_counter", "event", "detail"})
	}
	return nil
}

// Record appends one event row for frameCounter, rotating the
// underlying file if the day has changed since the last call.
func (a *ActivityLog) Record(now time.Time, frameCounter uint32, event, detail string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.rollIfNeeded(now); err != nil {
		return err
	}
	row := []string{
		now.UTC().Format(time.RFC3339Nano),
		fmt.Sprintf("%d", frameCounter),
		event,
		detail,
	}
	if err := a.w.Write(row); err != nil {
		return newErr(ErrConfig, "activity log write failed: %s", err)
	}
	a.w.Flush()
	return a.w.Error()
}

// Close flushes and closes the currently open file, if any.
func (a *ActivityLog) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.w != nil {
		a.w.Flush()
	}
	if a.fp != nil {
		return a.fp.Close()
	}
	return nil
}
