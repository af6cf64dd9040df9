package util

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
)

// SHA1Hex calculates the SHA1 hash of a byte slice and returns it as a hex string.
func SHA1Hex(data []byte) string {
	h := sha1.New()
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// WriteFileAtomic writes data to a file atomically: it writes to a
// temporary file in the same directory, then renames it into place, so a
// reader never observes a partially-written result.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmpFile.Name(), path)
}
