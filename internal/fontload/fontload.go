/*
Package fontload reads font binaries from the file system.

Fonts are given either as a file path or as the name of a font installed on the
system, which is located with package go-findfont.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontload

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontsieve.load'
func tracer() tracing.Trace {
	return tracing.Select("fontsieve.load")
}

// MaxFileSize is the size limit for font files.
const MaxFileSize = 64 << 20

// FontFile is a font binary together with its origin.
type FontFile struct {
	Name   string // file name without directories
	Path   string
	Binary []byte
}

// Size returns the size of the font binary in bytes.
func (f *FontFile) Size() int64 {
	return int64(len(f.Binary))
}

// Load reads a font file.
func Load(path string) (*FontFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("font path %s is a directory", path)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("font file %s too large: %d bytes", path, info.Size())
	}
	bytez, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("loaded font file %s, %d bytes", path, len(bytez))
	return &FontFile{Name: filepath.Base(path), Path: path, Binary: bytez}, nil
}

// Locate resolves a font reference. If ref names an existing file, it is returned
// unchanged. Otherwise ref is looked up as a system font, e.g. "Arial.ttf".
func Locate(ref string) (string, error) {
	if _, err := os.Stat(ref); err == nil {
		return ref, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	path, err := findfont.Find(ref)
	if err != nil {
		return "", fmt.Errorf("font %s not found: %w", ref, err)
	}
	tracer().Debugf("%s is a system font at %s", ref, path)
	return path, nil
}

// LoadNamed locates a font with Locate and loads it.
func LoadNamed(ref string) (*FontFile, error) {
	path, err := Locate(ref)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Extension guesses the file extension of a font binary from its signature,
// e.g. "woff2". It returns an empty string for unknown formats.
func Extension(data []byte) string {
	if len(data) < 4 {
		return ""
	}
	switch sig := data[:4]; {
	case bytes.Equal(sig, []byte("wOF2")):
		return "woff2"
	case bytes.Equal(sig, []byte("wOFF")):
		return "woff"
	case bytes.Equal(sig, []byte("OTTO")):
		return "otf"
	case bytes.Equal(sig, []byte("ttcf")):
		return "ttc"
	case bytes.Equal(sig, []byte{0, 1, 0, 0}), bytes.Equal(sig, []byte("true")):
		return "ttf"
	}
	return ""
}
