package export

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

// WriteCSV writes t to path with a header row and returns the SHA-256 of the
// written bytes. The data goes to a temporary file in the same directory
// first and is renamed over path only after it has been flushed, synced and
// closed.
func WriteCSV(path string, t *Table) (digest string, err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file in %s: %w: %w", dir, wp2csv.ErrWriteFailed, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	hash := sha256.New()
	w := csv.NewWriter(io.MultiWriter(tmp, hash))
	if err := w.Write(t.Columns()); err != nil {
		return "", fmt.Errorf("write header: %w: %w", wp2csv.ErrWriteFailed, err)
	}
	for i := 0; i < t.Len(); i++ {
		if err := w.Write(t.Record(i)); err != nil {
			return "", fmt.Errorf("write row %d: %w: %w", i+1, wp2csv.ErrWriteFailed, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush %s: %w: %w", tmpName, wp2csv.ErrWriteFailed, err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("sync %s: %w: %w", tmpName, wp2csv.ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w: %w", tmpName, wp2csv.ErrWriteFailed, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return "", fmt.Errorf("chmod %s: %w: %w", tmpName, wp2csv.ErrWriteFailed, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("replace %s: %w: %w", path, wp2csv.ErrWriteFailed, err)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
