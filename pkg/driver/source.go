package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Source is a program text together with the name it was loaded under.
type Source struct {
	Name string
	Text string
}

// LoadFile reads a program from disk.
func LoadFile(path string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("source: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("source: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", absPath, err)
	}
	return &Source{Name: absPath, Text: string(data)}, nil
}

// LoadReader reads a whole program from r.
func LoadReader(name string, r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", name, err)
	}
	return &Source{Name: name, Text: string(data)}, nil
}

// Load reads path, or stdin when path is "-".
func Load(path string, stdin io.Reader) (*Source, error) {
	if path == "-" {
		return LoadReader("<stdin>", stdin)
	}
	return LoadFile(path)
}
