package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fjglira/tutorialcheck/internal/domain"
)

// Scanner resolves command-line path arguments into the list of tutorial
// files to verify.
type Scanner struct {
	Extensions []string
}

// NewScanner creates a Scanner recognizing the standard markdown
// extensions.
func NewScanner() *Scanner {
	return &Scanner{Extensions: []string{".md", ".markdown"}}
}

// Resolve expands each argument: plain files pass through untouched,
// directories are walked recursively for markdown files. Files found by
// a directory walk are sorted so runs are deterministic; explicit file
// arguments keep their given order.
func (s *Scanner) Resolve(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, domain.NewError("scan", arg, 0, "cannot access path", err)
		}

		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		found, err := s.scanDir(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	return files, nil
}

func (s *Scanner) scanDir(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if s.matches(path) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, domain.NewError("scan", dir, 0, "failed to scan directory", err)
	}

	sort.Strings(files)
	return files, nil
}

func (s *Scanner) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range s.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
