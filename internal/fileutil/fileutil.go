// Package fileutil holds the filesystem helpers behind cover downloads.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var filenameReplacer = strings.NewReplacer(
	":", " -",
	"/", "-",
	"\\", "-",
	"|", "-",
	"\"", "'",
	"?", "",
	"*", "",
	"<", "",
	">", "",
)

// SanitizeFilename turns a book title into a portable file name.
func SanitizeFilename(name string) string {
	name = strings.Join(strings.Fields(filenameReplacer.Replace(name)), " ")
	if name == "" {
		return "untitled"
	}
	return name
}

// FileExists reports whether path is an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// DirExists reports whether path is an existing directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// WriteFileAtomic writes data through a temp file in the target directory
// and renames it into place, so readers never see a partial file. An
// existing file is left alone unless overwrite is set; the returned bool
// reports whether anything was written.
func WriteFileAtomic(path string, data []byte, overwrite bool) (bool, error) {
	if FileExists(path) && !overwrite {
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return false, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return false, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, err
	}
	return true, nil
}
