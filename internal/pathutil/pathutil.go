package pathutil

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows-style separators to the current platform's separator
// and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// Relative returns the path to target relative to root, always using forward
// slashes. The root itself is reported as ".".
func Relative(root, target string) (string, error) {
	rel, err := filepath.Rel(NormalizePath(root), NormalizePath(target))
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(rel), nil
}

// Within reports whether target lies strictly beneath root.
func Within(root, target string) bool {
	rel, err := Relative(root, target)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, "../")
}
