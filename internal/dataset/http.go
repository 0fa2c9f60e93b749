package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"examfinder/internal/domain"
)

// maxBody caps the dataset download
const maxBody = 32 << 20

type httpSource struct {
	url    string
	client *http.Client
}

func newHTTPSource(url string) *httpSource {
	return &httpSource{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *httpSource) Source() string { return s.url }

func (s *httpSource) Load(ctx context.Context) (domain.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Dataset{}, fmt.Errorf("failed to fetch dataset: %s", resp.Status)
	}

	ds, err := decode(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return domain.Dataset{}, err
	}
	if ds.SourceURL == "" {
		ds.SourceURL = s.url
	}
	return ds, nil
}
