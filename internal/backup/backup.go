// Package backup creates timestamped sibling copies of files before they are
// overwritten.
//
// A backup of /a/b/file.md taken at epoch millisecond 1700000000000 is
// /a/b/file.md.backup.1700000000000. Backups are never pruned or rotated.
package backup

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// Marker separates the original file name from the timestamp suffix.
const Marker = ".backup."

// PathFor returns the backup path for path at the given instant.
//
// Two backups requested within the same millisecond share a name; the later
// copy wins.
func PathFor(path string, now time.Time) string {
	return path + Marker + strconv.FormatInt(now.UnixMilli(), 10)
}

// Create copies path to its timestamped backup location.
//
// Parameters:
//   - path: The file to back up
//   - now: The instant used for the timestamp suffix
//
// Returns:
//   - string: The backup path, or empty if path does not exist
//   - error: Any error other than path not existing
func Create(path string, now time.Time) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to open %s for backup: %w", path, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}

	dest := PathFor(path, now)
	dst, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("failed to copy backup: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	log.Debug("Created backup", "source", path, "backup", dest)
	return dest, nil
}
