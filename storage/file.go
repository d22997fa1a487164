package storage

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thdiaman/OntologyAPI/errors"
	"github.com/thdiaman/OntologyAPI/metric"
	"github.com/thdiaman/OntologyAPI/ontology"
	"github.com/thdiaman/OntologyAPI/vocabulary"
)

// File is an open ontology file: a loaded in-memory store plus the path it
// will be written back to on Close.
type File struct {
	path   string
	store  *ontology.Store
	logger *slog.Logger
	closed bool
}

// Open loads the ontology at path into memory. A missing file is created
// empty; any other access or parse failure fails with ErrIO. metrics and
// logger may be nil.
//
// The returned handle owns the file: one open handle per path at a time is
// the caller's responsibility.
func Open(
	path string, ns vocabulary.Namespace, metrics *metric.Metrics, logger *slog.Logger,
) (*File, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return nil, errors.WrapIO(err, "File", "Open", "create")
		}
		data = nil
		logger.Debug("ontology file created", "path", path)
	case err != nil:
		return nil, errors.WrapIO(err, "File", "Open", "read")
	}

	store, err := decode(bytes.NewReader(data), ns, metrics, logger)
	if err != nil {
		return nil, errors.WrapIO(err, "File", "Open", "decode")
	}

	stats := store.Stats()
	logger.Debug("ontology loaded",
		"path", path,
		"classes", stats.Classes,
		"individuals", stats.Individuals,
		"facts", stats.Facts)

	return &File{path: path, store: store, logger: logger}, nil
}

// Store returns the in-memory store backed by this file.
func (f *File) Store() *ontology.Store {
	return f.store
}

// Close serializes the full current store state back to the file,
// overwriting its previous content. The write goes through a temp file in
// the same directory followed by a rename. Closing an already-closed
// handle is a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return errors.WrapIO(err, "File", "Close", "create temp file")
	}
	tmpName := tmp.Name()

	if err := encode(tmp, f.store); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapIO(err, "File", "Close", "encode")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO(err, "File", "Close", "flush")
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO(err, "File", "Close", "rename")
	}

	f.closed = true
	stats := f.store.Stats()
	f.logger.Debug("ontology saved",
		"path", f.path,
		"individuals", stats.Individuals,
		"facts", stats.Facts)
	return nil
}
