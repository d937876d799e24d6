package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"runlog/internal/config"
	"runlog/internal/ingest"
	"runlog/internal/model"
	"runlog/internal/store"
)

// ErrUnsupportedFile is returned for files that are neither a tabular export
// nor a track file.
var ErrUnsupportedFile = errors.New("unsupported file type")

// ImportService ingests export files and stores the resulting activities
type ImportService struct {
	db          *store.DB
	owner       string
	tabularOpts ingest.TabularOptions
}

// NewImportService creates a new import service from the user's config
func NewImportService(db *store.DB, cfg *config.Config) *ImportService {
	return &ImportService{
		db:    db,
		owner: cfg.Owner,
		tabularOpts: ingest.TabularOptions{
			Types: cfg.Import.ActivityTypes,
		},
	}
}

// ImportProgress reports progress during a batch import
type ImportProgress struct {
	File      string
	Completed int
	Total     int
	Err       error
}

// ImportResult contains the results of an import operation
type ImportResult struct {
	FilesProcessed int
	Imported       int
	Errors         []error
}

// ImportFile reads and parses one export file and upserts every resulting
// activity. It returns the number of activities stored.
func (s *ImportService) ImportFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	acts, err := s.parse(string(data), filepath.Base(path))
	if err != nil {
		return 0, err
	}

	imported := 0
	for i := range acts {
		if err := s.db.UpsertActivity(s.owner, &acts[i]); err != nil {
			return imported, fmt.Errorf("storing activity %s: %w", acts[i].ID, err)
		}
		imported++
	}
	return imported, nil
}

// ImportAll imports a batch of files. A file that fails to parse is recorded
// in the result's Errors and does not abort the rest of the batch.
func (s *ImportService) ImportAll(ctx context.Context, paths []string, progress chan<- ImportProgress) (*ImportResult, error) {
	if progress != nil {
		defer close(progress)
	}

	result := &ImportResult{}
	for i, path := range paths {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		n, err := s.ImportFile(path)
		result.FilesProcessed++
		result.Imported += n
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", filepath.Base(path), err))
		}

		if progress != nil {
			progress <- ImportProgress{
				File:      filepath.Base(path),
				Completed: i + 1,
				Total:     len(paths),
				Err:       err,
			}
		}
	}
	return result, nil
}

// parse dispatches on the file extension
func (s *ImportService) parse(text, fileName string) ([]model.Activity, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return ingest.ParseTabular(text, s.tabularOpts), nil
	case ".gpx":
		a, err := ingest.ParseTrackFile(text, fileName)
		if err != nil {
			return nil, err
		}
		return []model.Activity{*a}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, fileName)
	}
}
