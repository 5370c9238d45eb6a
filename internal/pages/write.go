package pages

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vincent-petithory/dataurl"

	"pagefit/internal/processor"
)

// PageName returns the file name used for the page at index.
func PageName(index int) string {
	return fmt.Sprintf("page-%04d.jpg", index+1)
}

// WriteAll stores each resized page under outputDir, named after its input
// position, and returns the paths written in page order. Page files left by
// an earlier run are removed first.
func WriteAll(outputDir string, pages []processor.ResizedPage) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, err
	}
	if err := removeStale(outputDir); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(pages))
	for _, page := range pages {
		du, err := dataurl.DecodeString(page.Data)
		if err != nil {
			return paths, fmt.Errorf("page %d: %w", page.Index+1, err)
		}

		dest := filepath.Join(outputDir, PageName(page.Index))
		if err := writeFile(dest, du.Data); err != nil {
			return paths, fmt.Errorf("page %d: %w", page.Index+1, err)
		}
		paths = append(paths, dest)
	}
	return paths, nil
}

func removeStale(outputDir string) error {
	matches, err := filepath.Glob(filepath.Join(outputDir, "page-*.jpg"))
	if err != nil {
		return err
	}
	for _, match := range matches {
		if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func writeFile(destPath string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), "pagefit-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return replaceFile(tmpFile.Name(), destPath)
}

func replaceFile(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}
