package sched

import "github.com/npillmayer/fontsieve/internal/fontload"

// Source provides the bytes of a font. Sources are read on the worker goroutine.
type Source interface {
	ReadAll() ([]byte, error)
}

// Bytes is a font binary already in memory.
type Bytes []byte

// ReadAll returns b. The caller must not modify b after enqueueing it.
func (b Bytes) ReadAll() ([]byte, error) {
	return b, nil
}

// File is the path of a font file.
type File string

// ReadAll loads the font file.
func (f File) ReadAll() ([]byte, error) {
	ff, err := fontload.Load(string(f))
	if err != nil {
		return nil, err
	}
	return ff.Binary, nil
}
