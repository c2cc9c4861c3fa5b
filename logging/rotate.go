package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// dailyFile is a zapcore.WriteSyncer that writes to FileName(now()) under
// dir, switching files when the date changes. After each switch all but
// the maxFiles newest log files are removed; maxFiles <= 0 keeps everything.
type dailyFile struct {
	dir      string
	maxFiles int
	now      func() time.Time

	mu   sync.Mutex
	name string
	f    *os.File
}

func newDailyFile(dir string, maxFiles int, now func() time.Time) (*dailyFile, error) {
	if now == nil {
		now = time.Now
	}
	d := &dailyFile{dir: dir, maxFiles: maxFiles, now: now}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.rotate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *dailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.rotate(); err != nil {
		return 0, err
	}
	return d.f.Write(p)
}

func (d *dailyFile) Sync() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil {
		return nil
	}
	return d.f.Sync()
}

func (d *dailyFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return err
}

// rotate opens today's file unless it is already open. Caller holds mu.
func (d *dailyFile) rotate() error {
	name := FileName(d.now())
	if d.f != nil && name == d.name {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(d.dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if d.f != nil {
		_ = d.f.Close()
	}
	d.f, d.name = f, name

	if d.maxFiles > 0 {
		// A failed prune must not lose the log line being written.
		_, _ = NewViewer(d.dir).Prune(d.maxFiles)
	}
	return nil
}
