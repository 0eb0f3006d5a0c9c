package dataset

import (
	"context"
	"fmt"
	"os"

	"people-directory/domain/models"
)

// FileSource reads the dataset from the local filesystem.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Fetch(ctx context.Context) ([]models.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func (s *FileSource) Location() string {
	return s.path
}
