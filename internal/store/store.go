package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dutymanager/dutymanager/backend/go-services/pkg/logger"
	"github.com/dutymanager/dutymanager/backend/go-services/pkg/metrics"
)

var (
	ErrEmptyDocument = errors.New("no data provided")
)

// timeNow is overridable in tests so backup filenames are deterministic.
var timeNow = time.Now

// Store is the persistence abstraction handed to the HTTP handlers.
// There is exactly one live document; Save replaces it wholesale. The
// document is any JSON value — the service never interprets its shape.
type Store interface {
	Exists() bool
	Save(doc any) error
	Load() (any, error)
	Backups() ([]BackupInfo, error)
}

// emptyDocument reports whether doc is one of the empty shapes Save
// rejects: null, empty object, empty array, empty string, zero, false.
func emptyDocument(doc any) bool {
	switch v := doc.(type) {
	case nil:
		return true
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case string:
		return v == ""
	case float64:
		return v == 0
	case bool:
		return !v
	}
	return false
}

// BackupInfo describes one backup snapshot on disk.
type BackupInfo struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// BackupMirror receives a copy of each backup snapshot (off-site mirror).
// Upload failures are logged and never block a save.
type BackupMirror interface {
	UploadBackup(ctx context.Context, key string, data []byte) error
}

// FileStore persists the application-state document at a fixed path and
// snapshots the prior contents into backupDir before every overwrite.
//
// Deliberately no mutex: concurrent saves race and the last write wins,
// matching the documented behavior of the service. There is also no
// atomic-replace — a failed write leaves whatever partial state the I/O
// produced.
type FileStore struct {
	dataFile  string
	backupDir string
	mirror    BackupMirror
}

// NewFileStore creates the data and backup directories if needed.
func NewFileStore(dataFile, backupDir string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(dataFile), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	return &FileStore{dataFile: dataFile, backupDir: backupDir}, nil
}

// SetMirror attaches an optional off-site backup mirror.
func (s *FileStore) SetMirror(m BackupMirror) { s.mirror = m }

// DataFile returns the canonical document path.
func (s *FileStore) DataFile() string { return s.dataFile }

// Exists reports whether a document has ever been saved.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.dataFile)
	return err == nil
}

// Save backs up the current document (best-effort) and then replaces it
// with doc. An empty document is rejected before anything touches disk.
func (s *FileStore) Save(doc any) error {
	if emptyDocument(doc) {
		return ErrEmptyDocument
	}

	s.createBackup()

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := os.WriteFile(s.dataFile, b, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

// Load returns the current document, or an empty object when none has
// been saved yet (fresh install). Every call re-reads the file.
func (s *FileStore) Load() (any, error) {
	b, err := os.ReadFile(s.dataFile)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Infof("no data file exists, returning empty state")
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read data file: %w", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse data file: %w", err)
	}
	return doc, nil
}

// Backups lists the snapshots in the backup directory, newest first.
func (s *FileStore) Backups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, BackupInfo{Name: e.Name(), Size: info.Size(), CreatedAt: info.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

// createBackup snapshots the current document into the backup directory
// before an overwrite. Failures are logged and swallowed: a broken
// backup never blocks the save. Timestamp resolution is one second, so
// two saves within the same second share a backup filename.
func (s *FileStore) createBackup() {
	cur, err := os.ReadFile(s.dataFile)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warnf("backup failed: read %s: %v", s.dataFile, err)
			metrics.BackupsTotal.WithLabelValues("error").Inc()
		}
		return
	}

	name := fmt.Sprintf("schedule_backup_%s.json", timeNow().Format("20060102_150405"))
	backupFile := filepath.Join(s.backupDir, name)
	if err := os.WriteFile(backupFile, cur, 0o644); err != nil {
		logger.Warnf("backup failed: %v", err)
		metrics.BackupsTotal.WithLabelValues("error").Inc()
		return
	}
	logger.Infof("backup created: %s", backupFile)
	metrics.BackupsTotal.WithLabelValues("ok").Inc()

	// mirror upload runs detached so a slow object store never delays a save
	if mirror := s.mirror; mirror != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := mirror.UploadBackup(ctx, name, cur); err != nil {
				logger.Warnf("backup mirror upload failed: %v", err)
			}
		}()
	}
}
