package document

import (
	"io/fs"
	"os"
)

// FileSystem is the file access used by a Document.
// This allows for easy testing with failing or in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// WriteFile truncates or creates path and writes data to it.
	WriteFile(path string, data []byte, perm fs.FileMode) error
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path, truncating it first.
func (OSFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}
