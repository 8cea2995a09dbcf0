package ui

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"

	"asciiforge/internal/format"
)

// savedExtensions are the outputs the list shows.
var savedExtensions = map[string]bool{".txt": true, ".png": true, ".csv": true}

// SavedFilesList displays the art, renderings and history logs in the
// output directory.
type SavedFilesList struct {
	mu        sync.Mutex
	dir       string
	files     []FileInfo
	list      *widget.List
	container *fyne.Container

	// open is swapped out in tests.
	open func(path string) error
}

// FileInfo holds metadata about a saved file
type FileInfo struct {
	Name     string
	Path     string
	Size     int64
	Modified time.Time
}

// NewSavedFilesList creates a list of the files saved under dir.
func NewSavedFilesList(dir string) *SavedFilesList {
	sfl := &SavedFilesList{dir: dir, open: openWithSystem}

	sfl.list = widget.NewList(
		func() int {
			sfl.mu.Lock()
			defer sfl.mu.Unlock()
			return len(sfl.files)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			sfl.mu.Lock()
			defer sfl.mu.Unlock()
			if id >= len(sfl.files) {
				return
			}
			obj.(*widget.Label).SetText(formatFileItem(sfl.files[id]))
		},
	)

	sfl.list.OnSelected = func(id widget.ListItemID) {
		sfl.mu.Lock()
		if id >= len(sfl.files) {
			sfl.mu.Unlock()
			return
		}
		path := sfl.files[id].Path
		sfl.mu.Unlock()

		if err := sfl.open(path); err != nil {
			log.WithField("path", path).WithError(err).Warn("could not open file")
		}
		sfl.list.UnselectAll()
	}

	header := widget.NewLabel("Saved Files")
	header.TextStyle = fyne.TextStyle{Bold: true}
	refresh := widget.NewButton("Refresh", sfl.Refresh)

	sfl.container = container.NewBorder(
		container.NewVBox(container.NewBorder(nil, nil, nil, refresh, header), widget.NewSeparator()),
		nil, nil, nil,
		sfl.list,
	)

	sfl.Refresh()

	return sfl
}

// Container returns the container widget
func (sfl *SavedFilesList) Container() *fyne.Container {
	return sfl.container
}

// SetDir updates the directory to scan and refreshes the list.
func (sfl *SavedFilesList) SetDir(dir string) {
	sfl.mu.Lock()
	sfl.dir = dir
	sfl.mu.Unlock()
	sfl.Refresh()
}

// Files returns a copy of the listed files, newest first.
func (sfl *SavedFilesList) Files() []FileInfo {
	sfl.mu.Lock()
	defer sfl.mu.Unlock()
	out := make([]FileInfo, len(sfl.files))
	copy(out, sfl.files)
	return out
}

// Refresh rescans the directory and updates the file list
func (sfl *SavedFilesList) Refresh() {
	sfl.mu.Lock()
	dir := sfl.dir
	sfl.mu.Unlock()

	files, err := scanFiles(dir)
	if err != nil && !os.IsNotExist(err) {
		log.WithField("dir", dir).WithError(err).Warn("could not scan saved files")
		return
	}

	sfl.mu.Lock()
	sfl.files = files
	sfl.mu.Unlock()

	sfl.list.Refresh()
}

// scanFiles lists the saved outputs directly inside dir, newest first.
// Subdirectories are not descended into; the output directory may well be
// the user's home or working directory.
func scanFiles(dir string) ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !savedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, FileInfo{
			Name:     d.Name(),
			Path:     path,
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Modified.After(files[j].Modified)
	})
	return files, nil
}

// formatFileItem formats a file entry for display, e.g.
// "cat_ascii.txt  (5.1 kB, 3 minutes ago)".
func formatFileItem(fi FileInfo) string {
	return fmt.Sprintf("%s  (%s, %s)", fi.Name, format.FormatSize(fi.Size), format.FormatAge(fi.Modified))
}

// openWithSystem hands path to the desktop's default application.
func openWithSystem(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return fyne.CurrentApp().OpenURL(&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)})
}
