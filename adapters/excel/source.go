package excel

import (
	"context"
	"os"

	"gohappy/domain/core"
	"gohappy/domain/happiness"
	"gohappy/internal/errors"
)

// FileSource loads the dataset from a cleaned (or raw) CSV or XLSX report
type FileSource struct {
	path string
}

// NewFileSource creates a source for the given file
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the file the source reads
func (s *FileSource) Path() string {
	return s.path
}

// Load reads, decodes and indexes the file
func (s *FileSource) Load(ctx context.Context) (*happiness.Dataset, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}

	ds, err := happiness.NewDataset(records)
	if err != nil {
		return nil, errors.DatasetError("invalid dataset in "+s.path, err)
	}
	logger.Info("loaded %d records for %d countries from %s", ds.Len(), len(ds.CountryNames()), s.path)
	return ds, nil
}

// Records reads and decodes the file without indexing it
func (s *FileSource) Records(ctx context.Context) ([]happiness.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := NewDataReader(s.path).ReadData()
	if err != nil {
		return nil, errors.DatasetError("failed to read "+s.path, err)
	}

	records, err := DecodeRecords(table)
	if err != nil {
		return nil, errors.DatasetError("failed to decode "+s.path, err)
	}
	return records, nil
}

// Checksum hashes the file contents, used to identify imported snapshots
func (s *FileSource) Checksum() (core.Checksum, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", errors.DatasetError("failed to read "+s.path, err)
	}
	return core.NewChecksum(data), nil
}
