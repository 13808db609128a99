package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/rodrigotabsan/RAGIoT/internal/domain"
)

// Discoverer finds dataset files under a root directory using glob patterns.
type Discoverer struct {
	includes []string
	excludes []string
}

// NewDiscoverer creates a discoverer with the given include/exclude patterns.
func NewDiscoverer(includes, excludes []string) *Discoverer {
	if len(includes) == 0 {
		includes = []string{"**/*.json"}
	}
	return &Discoverer{
		includes: includes,
		excludes: excludes,
	}
}

// Discover walks root and returns matching files in lexical order.
func (d *Discoverer) Discover(root string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if info.IsDir() {
			if d.shouldExclude(relPath + "/") {
				return filepath.SkipDir
			}
			return nil
		}

		if d.shouldInclude(relPath) && !d.shouldExclude(relPath) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

func (d *Discoverer) shouldInclude(path string) bool {
	for _, pattern := range d.includes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (d *Discoverer) shouldExclude(path string) bool {
	for _, pattern := range d.excludes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// Resolve returns the dataset files for path: the file itself, or the
// discovered files when path is a directory. An empty result reports
// domain.ErrDataNotFound.
func Resolve(path string, includes, excludes []string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDataNotFound, path)
		}
		return nil, err
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := NewDiscoverer(includes, excludes).Discover(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no dataset files under %s", domain.ErrDataNotFound, path)
	}
	return files, nil
}
