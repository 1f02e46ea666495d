package export

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
)

// FileSource reads an export document from disk, for offline reporting and
// local development against a captured snapshot.
type FileSource struct {
	path string
}

// NewFileSource builds a source over the given snapshot path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch decodes the snapshot file.
func (s *FileSource) Fetch(_ context.Context) (domain.Export, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Export{}, errors.Wrapf(err, "read export snapshot %s", s.path)
	}
	var raw wireExport
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Export{}, errors.Wrapf(err, "decode export snapshot %s", s.path)
	}
	return fromWire(raw), nil
}

// Ping reports whether the snapshot file is readable.
func (s *FileSource) Ping(_ context.Context) error {
	_, err := os.Stat(s.path)
	return err
}
