package adapters

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"composer-reconcile/internal/ports"
	"composer-reconcile/internal/shared"
	"composer-reconcile/internal/types"
)

// backupTimeLayout stamps backup names as backup-20060102-150405-composer.json.
const backupTimeLayout = "20060102-150405"

type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func (a ManifestFileAdapter) Load(path string) (types.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Manifest{}, shared.ReadError(fmt.Sprintf("failed to read manifest %s", path), err)
	}
	doc, err := types.DecodeValue(data)
	if err != nil {
		return types.Manifest{}, shared.ParseError(fmt.Sprintf("manifest %s is not valid JSON", path), err)
	}
	return types.Manifest{
		Path:     path,
		Content:  data,
		Document: doc,
		Indent:   types.DetectIndent(data),
	}, nil
}

// BackupPath returns the sibling path a backup of path taken at at is
// written to.
func BackupPath(path string, at time.Time) string {
	name := fmt.Sprintf("backup-%s-%s", at.Format(backupTimeLayout), filepath.Base(path))
	return filepath.Join(filepath.Dir(path), name)
}

// Backup copies path to its timestamped sibling. An existing backup with
// the same name is never overwritten.
func (a ManifestFileAdapter) Backup(path string, at time.Time) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", shared.ReadError(fmt.Sprintf("failed to read manifest %s for backup", path), err)
	}
	backup := BackupPath(path, at)
	file, err := os.OpenFile(backup, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm(path))
	if err != nil {
		return "", shared.WriteError(fmt.Sprintf("failed to create backup %s", backup), err)
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(backup)
		return "", shared.WriteError(fmt.Sprintf("failed to write backup %s", backup), err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(backup)
		return "", shared.WriteError(fmt.Sprintf("failed to close backup %s", backup), err)
	}
	return backup, nil
}

// Write replaces path through a temp file in the same directory and a
// rename, so a failed write leaves the previous content in place.
func (a ManifestFileAdapter) Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	perm := filePerm(path)

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return shared.WriteError(fmt.Sprintf("failed to create temp file for %s", path), err)
	}
	tmpName := tmpFile.Name()
	defer func() {
		if _, err := os.Stat(tmpName); err == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return shared.WriteError(fmt.Sprintf("failed to write %s", path), err)
	}
	if err := tmpFile.Close(); err != nil {
		return shared.WriteError(fmt.Sprintf("failed to close temp file for %s", path), err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return shared.WriteError(fmt.Sprintf("failed to set permissions for %s", path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return shared.WriteError(fmt.Sprintf("failed to replace %s", path), err)
	}
	return nil
}

func filePerm(path string) fs.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return 0644
	}
	return info.Mode().Perm()
}

var _ ports.ManifestStorePort = ManifestFileAdapter{}
