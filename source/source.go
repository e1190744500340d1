package source

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Source is a resolved, locally readable input plus the cleanup action
// that releases anything acquired during resolution. Cleanup is always
// safe to call and must run on every exit path, success or failure.
type Source struct {
	Path    string
	Size    int64
	Cleanup func()
}

// Picker chooses one of the .txt files found in a directory. Index is
// zero-based into the names slice.
type Picker interface {
	PickTxtFile(names []string) (int, error)
}

// Resolve turns a path, directory or URL into a readable local file.
// Directories are narrowed to a single .txt file through the picker;
// URLs are downloaded to a temporary file whose Cleanup deletes it;
// .xlsx workbooks are exported to a temporary tab-separated text file.
func Resolve(input string, picker Picker) (*Source, error) {
	if info, err := os.Stat(input); err == nil {
		if info.IsDir() {
			return resolveDir(input, picker)
		}
		return resolveFile(input)
	}
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return download(input)
	}
	return nil, fmt.Errorf("input is neither a readable file nor a URL: %s", input)
}

func resolveFile(path string) (*Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(abs), ".xlsx") {
		return exportXLSX(abs)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}
	return &Source{Path: abs, Size: info.Size(), Cleanup: func() {}}, nil
}

func resolveDir(dir string, picker Picker) (*Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no .txt files in directory %s", dir)
	}

	idx, err := picker.PickTxtFile(names)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(names) {
		return nil, fmt.Errorf("file number out of range")
	}
	return resolveFile(filepath.Join(dir, names[idx]))
}

func download(url string) (*Source, error) {
	tmp, err := os.CreateTemp("", "txt2pg-*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	logrus.Infof("downloading %s", url)

	resp, err := http.Get(url)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to fetch %s: %s", url, resp.Status)
	}

	size, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to save %s: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to save %s: %w", url, err)
	}

	name := tmp.Name()
	return &Source{
		Path:    name,
		Size:    size,
		Cleanup: func() { os.Remove(name) },
	}, nil
}
