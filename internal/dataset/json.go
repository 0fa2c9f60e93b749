package dataset

import (
	"context"
	"fmt"
	"os"

	"examfinder/internal/domain"
)

type jsonSource struct {
	path string
}

func newJSONSource(path string) *jsonSource {
	return &jsonSource{path: path}
}

func (s *jsonSource) Source() string { return s.path }

func (s *jsonSource) Load(ctx context.Context) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return decode(f)
}
