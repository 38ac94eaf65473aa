package jpgpdf

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultSuffix is the filename suffix of the images we pick up.
// Matching is exact and case-sensitive, so "scan.JPG" is ignored.
const DefaultSuffix = ".jpg"

// CollectImages returns the files in dir whose name ends with suffix, sorted by filename.
// Directories and links to directories are skipped, and subdirectories are not entered.
func CollectImages(dir, suffix string) ([]string, error) {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputNotFound, err)
	}

	names := []string{}
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		// Follow symlinks, so that a link to a directory is skipped, and a link to a file is kept.
		// A broken link is kept, and fails to decode with its name attached.
		info, err := os.Stat(filepath.Join(dir, e.Name()))
		if err == nil && !info.Mode().IsRegular() {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no files matching *%v in %v", ErrEmptyInput, suffix, dir)
	}

	// os.ReadDir already sorts, but the page order is our contract, so don't rely on it
	slices.Sort(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}
