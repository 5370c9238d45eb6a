package pages

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vincent-petithory/dataurl"

	"pagefit/pkg/imgutil"
)

// Source is one page image found on disk.
type Source struct {
	Path    string
	RelPath string
	Kind    imgutil.Kind
}

// Collect returns the images under root in natural path order. root may be a
// single file. Files that are not recognised images are skipped, as is the
// exclude directory when it lies inside root.
func Collect(root, exclude string) ([]Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		kind, err := imgutil.SniffFile(absRoot)
		if err != nil {
			return nil, err
		}
		if kind == imgutil.KindUnknown {
			return nil, fmt.Errorf("%s is not a supported image", root)
		}
		return []Source{{Path: absRoot, RelPath: filepath.Base(absRoot), Kind: kind}}, nil
	}

	var excludeAbs string
	if exclude != "" {
		if abs, absErr := filepath.Abs(exclude); absErr == nil && filepath.Clean(abs) != filepath.Clean(absRoot) {
			excludeAbs = abs
		}
	}

	var sources []Source
	fsys := os.DirFS(absRoot)
	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if excludeAbs != "" && path != "." && isWithin(filepath.Join(absRoot, path), excludeAbs) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		fullPath := filepath.Join(absRoot, path)
		kind, err := imgutil.SniffFile(fullPath)
		if err != nil || kind == imgutil.KindUnknown {
			return nil
		}
		sources = append(sources, Source{Path: fullPath, RelPath: path, Kind: kind})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return naturalLess(sources[i].RelPath, sources[j].RelPath)
	})
	return sources, nil
}

// Encode reads every source into a data URL in batch order.
func Encode(sources []Source) ([]string, error) {
	payloads := make([]string, 0, len(sources))
	for _, src := range sources {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, dataurl.New(data, src.Kind.MIMEType()).String())
	}
	return payloads, nil
}

// naturalLess orders digit runs by numeric value so page2 sorts before page10.
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		ra, rb := leadingRun(a), leadingRun(b)
		if isDigit(ra[0]) && isDigit(rb[0]) {
			na, nb := strings.TrimLeft(ra, "0"), strings.TrimLeft(rb, "0")
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
		} else if ra != rb {
			return ra < rb
		}
		a, b = a[len(ra):], b[len(rb):]
	}
	return len(a) < len(b)
}

func leadingRun(s string) string {
	digit := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digit {
		i++
	}
	return s[:i]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWithin(path string, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if strings.HasPrefix(rel, "..") {
		return false
	}
	return true
}
