package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var (
	ErrNoLogDir   = errors.New("logs directory not found")
	ErrNoLogFiles = errors.New("no log files found")
)

// Levels are the values accepted by the level filter besides "all".
var Levels = []string{"error", "warn", "info", "debug"}

type FileInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

type Page struct {
	Entries         []map[string]any `json:"entries"`
	TotalFiles      int              `json:"totalFiles"`
	CurrentFile     string           `json:"currentFile"`
	AvailableLevels []string         `json:"availableLevels"`
}

// Viewer reads the *.log files under Dir.
type Viewer struct {
	Dir string
	now func() time.Time
}

func NewViewer(dir string) *Viewer {
	return &Viewer{Dir: dir, now: time.Now}
}

// Files lists log files, newest first.
func (v *Viewer) Files() ([]FileInfo, error) {
	entries, err := os.ReadDir(v.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoLogDir
		}
		return nil, err
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		files = append(files, FileInfo{Name: e.Name(), Size: info.Size(), Modified: info.ModTime()})
	}
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Modified.Equal(files[j].Modified) {
			return files[i].Name > files[j].Name
		}
		return files[i].Modified.After(files[j].Modified)
	})
	return files, nil
}

// Recent returns up to limit trailing lines of the newest file, filtered by
// level. Lines that are not JSON are reported as info entries.
func (v *Viewer) Recent(level string, limit int) (*Page, error) {
	files, err := v.Files()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoLogFiles
	}
	if limit <= 0 {
		limit = 100
	}

	lines, err := tailLines(filepath.Join(v.Dir, files[0].Name), limit)
	if err != nil {
		return nil, err
	}

	page := &Page{
		Entries:         []map[string]any{},
		TotalFiles:      len(files),
		CurrentFile:     files[0].Name,
		AvailableLevels: Levels,
	}
	for _, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			page.Entries = append(page.Entries, map[string]any{
				"level":     "info",
				"message":   line,
				"timestamp": v.now().UTC().Format(time.RFC3339),
			})
			continue
		}
		if level == "" || level == "all" || entry["level"] == level {
			page.Entries = append(page.Entries, entry)
		}
	}
	return page, nil
}

// Prune removes all but the keep newest files and returns the removed names.
func (v *Viewer) Prune(keep int) ([]string, error) {
	if keep < 0 {
		keep = 0
	}
	files, err := v.Files()
	if err != nil {
		return nil, err
	}
	removed := []string{}
	for i := keep; i < len(files); i++ {
		if err := os.Remove(filepath.Join(v.Dir, files[i].Name)); err != nil {
			return removed, err
		}
		removed = append(removed, files[i].Name)
	}
	return removed, nil
}

func tailLines(path string, limit int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) > limit {
			lines = lines[1:]
		}
	}
	return lines, sc.Err()
}
