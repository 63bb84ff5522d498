package backup

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dohsimpson/habittrove/internal/constants"
	"github.com/dohsimpson/habittrove/internal/logger"
	"github.com/dohsimpson/habittrove/internal/utils"
)

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64

	// seq orders backups taken within the same second: minute name, seconds name, then counters.
	seq int
}

// Manager handles backup operations
type Manager struct {
	dataDir   string
	backupDir string
	clock     utils.Clock
}

// NewManager creates a backup manager for the resource files in dataDir
func NewManager(dataDir string, clock utils.Clock) *Manager {
	return &Manager{
		dataDir:   dataDir,
		backupDir: filepath.Join(dataDir, constants.BackupDirName),
		clock:     utils.OrSystem(clock),
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup zips the current data files and rotates old backups
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// createBackup zips the data files.
// skipRotation keeps the pre-restore safety copy from pushing out the backup being restored.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	files := m.existingDataFiles()
	if len(files) == 0 {
		return "", fmt.Errorf("no data files found in %s", m.dataDir)
	}

	backupPath, err := m.uniqueBackupPath()
	if err != nil {
		return "", err
	}

	if err := m.writeArchive(backupPath, files); err != nil {
		os.Remove(backupPath)
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Info("Created backup", "path", backupPath, "files", len(files))

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			// Log error but don't fail the backup operation
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

func (m *Manager) existingDataFiles() []string {
	var files []string
	for _, name := range constants.DataFiles {
		if _, err := os.Stat(filepath.Join(m.dataDir, name)); err == nil {
			files = append(files, name)
		}
	}
	return files
}

// uniqueBackupPath names the backup after the current minute, falling back to seconds and then
// a counter when that name is taken.
func (m *Manager) uniqueBackupPath() (string, error) {
	now := m.clock.Now()
	path := m.backupPath(now.Format(minuteLayout))
	if !exists(path) {
		return path, nil
	}

	stamp := now.Format(secondLayout)
	path = m.backupPath(stamp)
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = m.backupPath(fmt.Sprintf("%s-%d", stamp, counter))
	}
	return path, nil
}

func (m *Manager) backupPath(stamp string) string {
	return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
}

func (m *Manager) writeArchive(dest string, files []string) error {
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, name := range files {
		if err := addFile(zw, filepath.Join(m.dataDir, name), name); err != nil {
			zw.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return out.Sync()
}

func addFile(zw *zip.Writer, src, name string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}

// ListBackups returns a list of all available backups, sorted by timestamp (newest first)
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		timestamp, seq, ok := parseBackupName(entry.Name())
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: timestamp,
			Size:      info.Size(),
			seq:       seq,
		})
	}

	// Sort by timestamp, newest first
	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Timestamp.After(backups[j].Timestamp)
		}
		return backups[i].seq > backups[j].seq
	})

	return backups, nil
}

// parseBackupName reads the timestamp out of habittrove-YYYYMMDD-HHMM[SS][-N].zip
func parseBackupName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	seq := 0
	parts := strings.Split(stamp, "-")
	switch len(parts) {
	case 2:
	case 3:
		counter, err := strconv.Atoi(parts[2])
		if err != nil || counter < 1 {
			return time.Time{}, 0, false
		}
		stamp = parts[0] + "-" + parts[1]
		seq = counter
	default:
		return time.Time{}, 0, false
	}

	if len(stamp) == len(minuteLayout) {
		t, err := time.Parse(minuteLayout, stamp)
		return t, 0, err == nil
	}
	t, err := time.Parse(secondLayout, stamp)
	return t, seq + 1, err == nil
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
		logger.Debug("Removed old backup", "path", backups[i].Path)
	}
	return nil
}

// RestoreBackup replaces the data files with the contents of a backup. The current files are
// backed up first.
func (m *Manager) RestoreBackup(backupPath string) error {
	if !exists(backupPath) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	zr, err := zip.OpenReader(backupPath)
	if err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	defer zr.Close()

	contents, err := verifyArchive(&zr.Reader)
	if err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if len(m.existingDataFiles()) > 0 {
		currentBackup, err := m.createBackup(true)
		if err != nil {
			return fmt.Errorf("failed to backup current data before restore: %w", err)
		}
		logger.Info("Backed up current data before restore", "path", currentBackup)
	}

	if err := os.MkdirAll(m.dataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	for _, name := range constants.DataFiles {
		data, ok := contents[name]
		if !ok {
			continue
		}
		if err := replaceFile(filepath.Join(m.dataDir, name), data); err != nil {
			return fmt.Errorf("failed to restore %s: %w", name, err)
		}
	}
	return nil
}

// verifyArchive reads every entry, rejecting unknown names and invalid JSON.
func verifyArchive(zr *zip.Reader) (map[string][]byte, error) {
	contents := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		if !slices.Contains(constants.DataFiles, f.Name) {
			return nil, fmt.Errorf("unexpected entry %q", f.Name)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		if !json.Valid(data) {
			return nil, fmt.Errorf("%s is not valid JSON", f.Name)
		}
		contents[f.Name] = data
	}
	if len(contents) == 0 {
		return nil, fmt.Errorf("archive is empty")
	}
	return contents, nil
}

// replaceFile writes through a temporary file and an atomic rename.
func replaceFile(path string, data []byte) error {
	tempPath := path + ".restore.tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tempPath, path); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return err
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
