// Package backup copies the raw sqlite database file for manual export and
// import, mirroring the app's share/restore flow.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Export copies the database file to destPath.
func Export(dbPath, destPath string) error {
	src, err := os.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database file: %w", err)
	}
	defer src.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, src); err != nil {
		return fmt.Errorf("copy database file: %w", err)
	}
	return dest.Sync()
}

// Import replaces the database file with the uploaded content. The write
// goes to a temp file in the same directory and is renamed into place so a
// failed upload never truncates the live file. The service must be restarted
// to reopen the imported database.
func Import(src io.Reader, dbPath string) error {
	dir := filepath.Dir(dbPath)
	tmp, err := os.CreateTemp(dir, "import-*.db")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, dbPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace database file: %w", err)
	}
	return nil
}
