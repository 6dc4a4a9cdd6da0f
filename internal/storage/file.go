package storage

import (
	"bytes"

	"fintrack/internal/fileutils"
	"fintrack/internal/ledgererror"
	"fintrack/internal/logging"
	"fintrack/internal/models"
)

// File is a single store file on disk.
type File struct {
	path   string
	codec  Codec
	logger logging.Logger
}

// NewFile creates a File whose codec is chosen from the path's extension.
func NewFile(path string, logger logging.Logger) *File {
	return NewFileWithCodec(path, CodecFor(path), logger)
}

// NewFileWithCodec creates a File with an explicit codec.
func NewFileWithCodec(path string, codec Codec, logger logging.Logger) *File {
	return &File{
		path:   path,
		codec:  codec,
		logger: logging.OrNop(logger).WithField(logging.FieldFile, path),
	}
}

// Path returns the file location
func (f *File) Path() string {
	return f.path
}

// Codec returns the codec used by Load and Save
func (f *File) Codec() Codec {
	return f.codec
}

// ReadBytes returns the raw file contents. A missing file yields nil.
func (f *File) ReadBytes() ([]byte, error) {
	data, err := fileutils.ReadFileIfExists(f.path)
	if err != nil {
		return nil, &ledgererror.PersistenceError{Op: "read", Path: f.path, Err: err}
	}
	return data, nil
}

// Load decodes the file into v. It reports false, leaving v untouched, when
// the file is missing or blank.
func (f *File) Load(v interface{}) (bool, error) {
	data, err := f.ReadBytes()
	if err != nil {
		return false, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		f.logger.Debug("Store file missing or empty")
		return false, nil
	}
	if err := f.codec.Unmarshal(data, v); err != nil {
		return false, &ledgererror.PersistenceError{Op: "decode", Path: f.path, Err: err}
	}
	return true, nil
}

// Save encodes v and rewrites the whole file.
func (f *File) Save(v interface{}) error {
	data, err := f.codec.Marshal(v)
	if err != nil {
		return &ledgererror.PersistenceError{Op: "encode", Path: f.path, Err: err}
	}
	return f.WriteBytes(data)
}

// WriteBytes atomically replaces the file contents with data.
func (f *File) WriteBytes(data []byte) error {
	if err := fileutils.WriteFileAtomic(f.path, data, models.PermissionDataFile); err != nil {
		f.logger.WithError(err).Error("Failed to write store file")
		return &ledgererror.PersistenceError{Op: "write", Path: f.path, Err: err}
	}
	f.logger.Debug("Saved store file", logging.F(logging.FieldFormat, f.codec.Name()))
	return nil
}
