package utils

import (
	"os"
	"path/filepath"
)

// FileExists checks if the file exists and is not a directory.
func FileExists(filename string) bool {
	fileInfo, err := os.Stat(filename)
	if os.IsNotExist(err) || err != nil {
		return false
	}
	return !fileInfo.IsDir()
}

// IsDirectory checks if the path is a directory.
func IsDirectory(path string) (bool, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return fileInfo.IsDir(), nil
}

// IsRegularFileReadable reports whether the path names a regular file
// that the current process can open for reading.
func IsRegularFileReadable(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil || !fileInfo.Mode().IsRegular() {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	return true
}

// IsYaml checks if the file has a YAML extension.
func IsYaml(file string) bool {
	ext := filepath.Ext(file)
	return ext == ".yaml" || ext == ".yml"
}
