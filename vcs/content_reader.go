package vcs

import (
	"os"
)

// ContentReader is a function that reads file content given a file path.
// This allows the caller to control how files are read (filesystem, git, etc.)
type ContentReader func(filePath string) ([]byte, error)

// FileChecker reports whether filePath names a regular file in the source tree.
type FileChecker func(filePath string) bool

// FilesystemContentReader returns a ContentReader backed by the working tree.
// Every call opens and closes the file before returning.
func FilesystemContentReader() ContentReader {
	return os.ReadFile
}

// FilesystemFileChecker returns a FileChecker backed by the working tree.
// Directories and missing paths are not files.
func FilesystemFileChecker() FileChecker {
	return func(filePath string) bool {
		info, err := os.Stat(filePath)
		if err != nil {
			return false
		}
		return info.Mode().IsRegular()
	}
}
