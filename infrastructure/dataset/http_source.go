package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"people-directory/domain/models"
)

// HTTPSource fetches the dataset with a single GET.
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

// NewHTTPSource uses a client without timeout; callers bound the request through ctx.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPSource{url: url, httpClient: client}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]models.Person, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("dataset request failed (status %d): %s", resp.StatusCode, string(body))
	}

	return Decode(resp.Body)
}

func (s *HTTPSource) Location() string {
	return s.url
}
