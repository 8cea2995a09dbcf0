package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"asciiforge/internal/model"
)

// DefaultTXTName is the output file used when no name is given.
const DefaultTXTName = "ascii_image.txt"

var (
	idMu      sync.Mutex
	lastIDTs  string
	idCounter int
)

// NextConversionID returns a unique ID of the form "YYYYMMDD-HHMMSS-NN" for
// the given timestamp. The counter resets to 01 each new second.
func NextConversionID(ts time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()
	tsStr := ts.Format("20060102-150405")
	if tsStr == lastIDTs {
		idCounter++
	} else {
		lastIDTs = tsStr
		idCounter = 1
	}
	return fmt.Sprintf("%s-%02d", tsStr, idCounter)
}

// DateSuffix returns the date portion in "02.01.2006" format.
func DateSuffix(t time.Time) string {
	return t.Format("02.01.2006")
}

// BuildPath returns base + suffix + "_" + date + ext.
func BuildPath(base, suffix, ext string, t time.Time) string {
	return fmt.Sprintf("%s%s_%s%s", base, suffix, DateSuffix(t), ext)
}

// BuildLogPath returns base + suffix + ext with no date component, for
// append-only logs that accumulate across days (history_log.csv).
func BuildLogPath(base, suffix, ext string) string {
	return fmt.Sprintf("%s%s%s", base, suffix, ext)
}

// ArtPath returns the text file an art converted from source is saved to
// inside dir: "<dir>/<name>_ascii.txt", or "<dir>/canvas_ascii_<id>.txt" for
// drawings, which have no file name of their own.
func ArtPath(dir, source, id string) string {
	name := "canvas"
	if source != "" && source != model.SourceCanvas {
		name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	if source == model.SourceCanvas && id != "" {
		return filepath.Join(dir, fmt.Sprintf("%s_ascii_%s.txt", name, id))
	}
	return filepath.Join(dir, name+"_ascii.txt")
}

// WithExt swaps the extension of path for ext.
func WithExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// EnsureDir creates the directory component of path (mkdir -p) with mode
// 0755. It is a no-op if the directory already exists.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
