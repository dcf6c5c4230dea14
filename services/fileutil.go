package services

import (
	"bytes"
	"os"

	"github.com/natefinch/atomic"
)

// writeFileAtomic replaces path with data so that readers see either the old
// content or all of data, then applies perm.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return err
	}
	return os.Chmod(path, perm)
}
