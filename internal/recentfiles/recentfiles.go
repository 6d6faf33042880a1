// ABOUTME: Keeps the list of recently exported résumé files
// ABOUTME: Stored as JSON in the config directory, newest first, missing files dropped

package recentfiles

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/markalston/resume-builder/internal/export"
	"github.com/markalston/resume-builder/internal/resume"
)

// MaxRecentFiles is the maximum number of recent files to keep
const MaxRecentFiles = 10

// RecentFiles manages the list of recently written export files
type RecentFiles struct {
	mu        sync.Mutex
	configDir string
	files     []string
}

type recentData struct {
	Files []string `json:"files"`
}

// New creates a new RecentFiles manager with the given config directory
func New(configDir string) *RecentFiles {
	return &RecentFiles{configDir: configDir}
}

// configFile returns the path to the recent files JSON
func (rf *RecentFiles) configFile() string {
	return filepath.Join(rf.configDir, "recent-exports.json")
}

// Load reads the recent files list from disk.
// Filters out files that no longer exist.
func (rf *RecentFiles) Load() ([]string, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	return rf.load()
}

func (rf *RecentFiles) load() ([]string, error) {
	data, err := os.ReadFile(rf.configFile())
	if os.IsNotExist(err) {
		rf.files = []string{}
		return rf.files, nil
	}
	if err != nil {
		return nil, err
	}

	var recent recentData
	if err := json.Unmarshal(data, &recent); err != nil {
		// Invalid JSON, start fresh
		rf.files = []string{}
		return rf.files, nil
	}

	rf.files = make([]string, 0, len(recent.Files))
	for _, path := range recent.Files {
		if _, err := os.Stat(path); err == nil {
			rf.files = append(rf.files, path)
		}
	}

	return rf.files, nil
}

// Save writes the recent files list to disk
func (rf *RecentFiles) Save(files []string) error {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	return rf.save(files)
}

func (rf *RecentFiles) save(files []string) error {
	if err := os.MkdirAll(rf.configDir, 0700); err != nil {
		return err
	}

	if len(files) > MaxRecentFiles {
		files = files[:MaxRecentFiles]
	}

	rf.files = files

	data, err := json.MarshalIndent(recentData{Files: files}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(rf.configFile(), data, 0600)
}

// Add puts path at the front of the list, removing any earlier entry
func (rf *RecentFiles) Add(path string) error {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.files == nil {
		if _, err := rf.load(); err != nil {
			rf.files = []string{}
		}
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	newFiles := make([]string, 0, len(rf.files)+1)
	newFiles = append(newFiles, path)
	for _, f := range rf.files {
		if f != path {
			newFiles = append(newFiles, f)
		}
	}

	return rf.save(newFiles)
}

// List returns the current list of recent files
func (rf *RecentFiles) List() []string {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	if rf.files == nil {
		rf.load()
	}
	return rf.files
}

// FileWriter renders a résumé to a file, like export.Exporter
type FileWriter interface {
	WriteFile(ctx context.Context, r *resume.Resume, kind export.Kind, dir string) (string, error)
}

// Recorder wraps a FileWriter and remembers every file it writes
type Recorder struct {
	next   FileWriter
	recent *RecentFiles
}

// NewRecorder records successful writes from next into recent
func NewRecorder(next FileWriter, recent *RecentFiles) *Recorder {
	return &Recorder{next: next, recent: recent}
}

// WriteFile delegates to the wrapped writer. A failure to record is not an export failure.
func (r *Recorder) WriteFile(ctx context.Context, res *resume.Resume, kind export.Kind, dir string) (string, error) {
	path, err := r.next.WriteFile(ctx, res, kind, dir)
	if err != nil {
		return "", err
	}
	if err := r.recent.Add(path); err != nil {
		slog.Warn("Could not record export", "path", path, "error", err)
	}
	return path, nil
}
