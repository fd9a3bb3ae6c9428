// Package fs validates and reads local files handed to the vault.
package fs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File is a validated regular file with cached metadata.
type File struct {
	absPath string
	info    fs.FileInfo
}

// Resolve validates a raw path and returns a File. It resolves the path to
// an absolute path, stats it, and rejects anything that is not a regular
// file (directories, symlinks, devices, pipes, sockets).
func Resolve(rawPath string) (*File, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	info, err := os.Lstat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory: %s", absPath)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", absPath)
	}

	return &File{absPath: absPath, info: info}, nil
}

// String returns the absolute path as a string.
func (f *File) String() string {
	return f.absPath
}

// Name returns the base name of the file.
func (f *File) Name() string {
	return filepath.Base(f.absPath)
}

// Size returns the cached size in bytes from when the file was resolved.
func (f *File) Size() int64 {
	return f.info.Size()
}

// Read returns the entire file content.
func (f *File) Read() ([]byte, error) {
	data, err := os.ReadFile(f.absPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}
