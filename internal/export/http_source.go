package export

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
)

const (
	exportPath     = "/data-export"
	authHeader     = "x-data-key"
	defaultTimeout = 30 * time.Second
)

// HTTPSource fetches the export from the data reader service.
type HTTPSource struct {
	baseURL string
	secret  string
	client  *http.Client
}

// NewHTTPSource builds a source against the reader base URL. A zero timeout
// falls back to 30 seconds.
func NewHTTPSource(baseURL, secret string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves and decodes the full export document.
func (s *HTTPSource) Fetch(ctx context.Context) (domain.Export, error) {
	resp, err := s.request(ctx, http.MethodGet)
	if err != nil {
		return domain.Export{}, err
	}
	defer resp.Body.Close()

	var raw wireExport
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return domain.Export{}, errors.Wrap(ErrUnavailable, "decode data export: "+err.Error())
	}
	return fromWire(raw), nil
}

// Ping probes the reader without pulling the full document.
func (s *HTTPSource) Ping(ctx context.Context) error {
	resp, err := s.request(ctx, http.MethodHead)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (s *HTTPSource) request(ctx context.Context, method string) (*http.Response, error) {
	if s.baseURL == "" || s.secret == "" {
		return nil, errors.Wrap(ErrUnavailable, "reader URL and secret must be configured")
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+exportPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build data export request")
	}
	req.Header.Set(authHeader, s.secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(ErrUnavailable, "fetch data export: "+err.Error())
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Wrapf(ErrUnavailable, "data reader returned %d", resp.StatusCode)
	}
	return resp, nil
}
