package assets

import (
	"fmt"
	"os"

	"golang.org/x/image/font/opentype"
)

// LoadFont reads a TrueType/OpenType file and checks that it parses.
func LoadFont(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load font %q: %w", path, err)
	}
	if _, err := opentype.Parse(b); err != nil {
		return nil, fmt.Errorf("parse font %q: %w", path, err)
	}
	return b, nil
}
