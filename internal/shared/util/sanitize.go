package util

import (
	"errors"
	"path/filepath"
	"strings"
)

// SanitizeFileName strips any directory part from a client-supplied name and
// rejects names that are empty afterwards.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	s = filepath.Base(s)
	if s == "" || s == "." || s == "/" || s == ".." {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// HasExtension reports whether name ends with ext, ignoring case.
func HasExtension(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}
