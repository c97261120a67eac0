// Package store persists the categorization policy: the rule store and the
// category store, both flat CSV files edited by the management commands and
// read as an immutable snapshot at the start of every report run.
//
// Every mutation backs up the previous file under a timestamped name and then
// replaces the target atomically (temp file + rename), so a categorization
// run that starts mid-edit sees either the old or the new file, never a
// partial write.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

const backupTimeLayout = "20060102-150405"

// backupThenReplace writes data to path. If the file already exists its
// current content is first copied to a timestamped backup next to it.
func backupThenReplace(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	if old, err := os.ReadFile(path); err == nil { // #nosec G304 -- path comes from user configuration
		backup := fmt.Sprintf("%s.backup-%s", path, time.Now().Format(backupTimeLayout))
		if err := os.WriteFile(backup, old, 0600); err != nil {
			return fmt.Errorf("writing backup %s: %w", backup, err)
		}
		log.WithField("backup", backup).Debug("Created store backup")
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading existing store file: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".store-*")
	if err != nil {
		return fmt.Errorf("creating temp store file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing temp store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp store file: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("setting store file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing store file: %w", err)
	}
	return nil
}
