// Package document holds the in-memory copy of the viewed file.
//
// The content is opaque: it is read whole, kept as bytes and written back
// verbatim. There is no partial loading and no incremental patching; every
// Load replaces the previous content wholesale.
package document

import (
	"path/filepath"
)

// filePerm is used when Save has to create the target file.
const filePerm = 0o666

// Document is the full content of a single file.
type Document struct {
	path    string
	name    string
	content []byte
	loaded  bool

	// version increments on every successful Load.
	version uint64

	fs FileSystem
}

// Option configures a Document.
type Option func(*Document)

// WithFileSystem sets the file system used for Load and Save.
func WithFileSystem(fs FileSystem) Option {
	return func(d *Document) {
		d.fs = fs
	}
}

// New creates an empty, unloaded document for path.
func New(path string, opts ...Option) *Document {
	d := &Document{
		path: path,
		name: filepath.Base(path),
		fs:   OSFS{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Path returns the target file path.
func (d *Document) Path() string {
	return d.path
}

// Name returns the base name of the target file.
func (d *Document) Name() string {
	return d.name
}

// Bytes returns the current content. The slice must not be modified.
func (d *Document) Bytes() []byte {
	return d.content
}

// Len returns the content length in bytes.
func (d *Document) Len() int {
	return len(d.content)
}

// Loaded reports whether a Load has succeeded at least once.
func (d *Document) Loaded() bool {
	return d.loaded
}

// Version returns a counter that changes whenever the content is replaced.
func (d *Document) Version() uint64 {
	return d.version
}

// Load reads the whole target file and replaces the content.
// On failure the previous content is kept and a *FileOpenError is returned.
func (d *Document) Load() error {
	data, err := d.fs.ReadFile(d.path)
	if err != nil {
		return &FileOpenError{Op: OpLoad, Path: d.path, Err: err}
	}
	if data == nil {
		data = []byte{}
	}
	d.content = data
	d.loaded = true
	d.version++
	return nil
}

// Save overwrites the target file with the current content.
// The write is not atomic: a crash mid-write can leave the file truncated.
func (d *Document) Save() error {
	if !d.loaded {
		return &FileOpenError{Op: OpSave, Path: d.path, Err: ErrNotLoaded}
	}
	if err := d.fs.WriteFile(d.path, d.content, filePerm); err != nil {
		return &FileOpenError{Op: OpSave, Path: d.path, Err: err}
	}
	return nil
}
