package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Backup errors.
var (
	ErrBackupNotFound    = errors.New("backup not found")
	ErrBackupExists      = errors.New("backup already exists")
	ErrInvalidBackupName = errors.New("invalid backup name: cannot contain path separators")
)

const (
	backupPrefix = "expense-tracker-backup-"
	metaSuffix   = ".meta.json"
)

// BackupName returns the default backup name for now.
func BackupName(now time.Time) string {
	return backupPrefix + now.UTC().Format("2006-01-02")
}

// BackupMetadata is stored next to each backup file.
type BackupMetadata struct {
	CreatedAt  time.Time `json:"created_at"`
	ID         string    `json:"id"`
	ExportDate string    `json:"export_date"`
	FileSize   int64     `json:"file_size"`
	Expenses   int       `json:"expenses"`
	Goals      int       `json:"goals"`
}

// BackupManager writes and restores export documents in a directory.
type BackupManager struct {
	now func() time.Time
	dir string
}

// NewBackupManager creates the backup directory if needed.
func NewBackupManager(dir string) (*BackupManager, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("backup directory is required")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create backups directory: %w", err)
	}
	return &BackupManager{dir: dir, now: time.Now}, nil
}

// Dir returns the backup directory.
func (bm *BackupManager) Dir() string {
	return bm.dir
}

// Create exports src into a new backup. An empty name uses today's default.
func (bm *BackupManager) Create(_ context.Context, src Source, name string) (*BackupMetadata, error) {
	now := bm.now()
	if name == "" {
		name = BackupName(now)
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	path := bm.path(name)
	if _, err := os.Stat(path); err == nil {
		return nil, ErrBackupExists
	}

	doc := Export(src, now)
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return nil, fmt.Errorf("failed to write backup: %w", err)
	}

	meta := BackupMetadata{
		ID:         name,
		CreatedAt:  now,
		ExportDate: doc.ExportDate,
		FileSize:   int64(buf.Len()),
		Expenses:   len(doc.Expenses),
		Goals:      len(doc.Goals),
	}
	if err := bm.saveMetadata(name, meta); err != nil {
		// Clean up backup file on metadata save failure
		if rmErr := os.Remove(path); rmErr != nil {
			slog.Error("failed to remove backup file after metadata save failure", "error", rmErr)
		}
		return nil, fmt.Errorf("failed to save metadata: %w", err)
	}

	slog.Info("Created backup", "id", name, "expenses", meta.Expenses)
	return &meta, nil
}

// List returns every backup, newest first. Unreadable metadata is skipped.
func (bm *BackupManager) List(_ context.Context) ([]BackupMetadata, error) {
	entries, err := os.ReadDir(bm.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backups directory: %w", err)
	}

	backups := make([]BackupMetadata, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), metaSuffix) {
			continue
		}
		meta, err := bm.loadMetadata(filepath.Join(bm.dir, entry.Name()))
		if err != nil {
			slog.Warn("Skipping unreadable backup metadata", "file", entry.Name(), "error", err)
			continue
		}
		backups = append(backups, meta)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// Restore imports the named backup into dst.
func (bm *BackupManager) Restore(ctx context.Context, dst Target, name string) (Result, error) {
	if err := validateName(name); err != nil {
		return Result{}, err
	}

	f, err := os.Open(bm.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, ErrBackupNotFound
		}
		return Result{}, fmt.Errorf("failed to open backup: %w", err)
	}
	defer func() { _ = f.Close() }()

	res, err := Import(ctx, dst, f)
	if err != nil {
		return Result{}, fmt.Errorf("failed to restore backup %s: %w", name, err)
	}
	slog.Info("Restored backup", "id", name)
	return res, nil
}

// Delete removes a backup and its metadata.
func (bm *BackupManager) Delete(_ context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	if err := os.Remove(bm.path(name)); err != nil {
		if os.IsNotExist(err) {
			return ErrBackupNotFound
		}
		return fmt.Errorf("failed to delete backup: %w", err)
	}
	if err := os.Remove(bm.metaPath(name)); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove backup metadata", "id", name, "error", err)
	}
	return nil
}

// Path returns the file path of the named backup.
func (bm *BackupManager) Path(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	return bm.path(name), nil
}

func (bm *BackupManager) path(name string) string {
	return filepath.Join(bm.dir, name+".json")
}

func (bm *BackupManager) metaPath(name string) string {
	return filepath.Join(bm.dir, name+metaSuffix)
}

func (bm *BackupManager) saveMetadata(name string, meta BackupMetadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(bm.metaPath(name), data, 0600)
}

func (bm *BackupManager) loadMetadata(path string) (BackupMetadata, error) {
	var meta BackupMetadata
	data, err := os.ReadFile(path) //nolint:gosec // path is built from the backup directory listing
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, err
	}
	return meta, nil
}

func validateName(name string) error {
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "\\") || strings.Contains(name, "..") {
		return ErrInvalidBackupName
	}
	return nil
}
