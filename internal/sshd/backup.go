package sshd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"grimm.is/bastion/internal/clock"
)

// BackupManager keeps timestamped copies of the managed file before each
// replacement, pruned to a retention limit.
type BackupManager struct {
	targetPath string
	backupDir  string
	maxBackups int
}

// BackupInfo describes one retained backup.
type BackupInfo struct {
	Path      string
	Timestamp string
	Size      int64
}

// NewBackupManager creates a backup manager for the given target file.
func NewBackupManager(targetPath string, maxBackups int) *BackupManager {
	if maxBackups <= 0 {
		maxBackups = 20
	}
	return &BackupManager{
		targetPath: targetPath,
		backupDir:  filepath.Join(filepath.Dir(targetPath), "backups"),
		maxBackups: maxBackups,
	}
}

// Dir returns the backup directory path.
func (b *BackupManager) Dir() string {
	return b.backupDir
}

// Create copies the current target file into the backup directory. Returns
// the backup path, or "" if the target does not exist yet.
func (b *BackupManager) Create() (string, error) {
	data, err := os.ReadFile(b.targetPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", b.targetPath, err)
	}

	if err := os.MkdirAll(b.backupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	stamp := clock.Now().Format("20060102-150405")
	name := fmt.Sprintf("%s.%s", filepath.Base(b.targetPath), stamp)
	backupPath := filepath.Join(b.backupDir, name)

	// Preserve the restrictive mode of the original where possible.
	mode := os.FileMode(0600)
	if info, err := os.Stat(b.targetPath); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(backupPath, data, mode); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	b.prune()
	return backupPath, nil
}

// List returns all backups, newest first.
func (b *BackupManager) List() ([]BackupInfo, error) {
	entries, err := os.ReadDir(b.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	prefix := filepath.Base(b.targetPath) + "."
	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		info := BackupInfo{
			Path:      filepath.Join(b.backupDir, entry.Name()),
			Timestamp: strings.TrimPrefix(entry.Name(), prefix),
		}
		if fi, err := entry.Info(); err == nil {
			info.Size = fi.Size()
		}
		backups = append(backups, info)
	}

	// Timestamps are lexicographically sortable (20060102-150405).
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp > backups[j].Timestamp
	})

	return backups, nil
}

// prune removes backups beyond the retention limit, oldest first.
func (b *BackupManager) prune() {
	backups, err := b.List()
	if err != nil || len(backups) <= b.maxBackups {
		return
	}
	for _, old := range backups[b.maxBackups:] {
		os.Remove(old.Path)
	}
}
