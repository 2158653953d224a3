package sourceimpl

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/ka2n/postview/api/datasource"
	"github.com/ka2n/postview/api/record"
	"github.com/ka2n/postview/log"
	"github.com/morikuni/failure/v2"
)

// DefaultURL is the feed used when the caller does not give one
const DefaultURL = "https://jsonplaceholder.typicode.com/posts"

// RemoteDataSource fetches records with a single HTTP GET
type RemoteDataSource struct {
	url    *url.URL
	client *http.Client
}

var _ datasource.DataSource = (*RemoteDataSource)(nil)

type RemoteOption func(*RemoteDataSource)

// WithHTTPClient replaces the client used for the request
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(s *RemoteDataSource) {
		s.client = c
	}
}

// NewRemoteDataSource validates rawURL and returns a source that reads from it.
// Only absolute http and https URLs are accepted.
func NewRemoteDataSource(rawURL string, opts ...RemoteOption) (*RemoteDataSource, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, failure.New(ErrInvalidURL,
			failure.Message("Invalid data source URL"),
			failure.Context{"url": rawURL},
		)
	}

	s := &RemoteDataSource{
		url:    u,
		client: log.HTTPClient(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// URL returns the configured URL
func (s *RemoteDataSource) URL() *url.URL {
	u := *s.url
	return &u
}

// FetchAll issues the GET and decodes the body as a JSON array of records.
// The status code is not checked; a non-2xx response fails on decoding unless
// its body happens to be a valid record array.
func (s *RemoteDataSource) FetchAll(ctx context.Context) ([]record.Record, error) {
	logger := log.Logger.With("url", s.url.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url.String(), nil)
	if err != nil {
		return nil, failure.Translate(err, ErrNetwork,
			failure.Context{"url": s.url.String()},
		)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, failure.Translate(err, ErrNetwork,
			failure.Message("Failed to reach data source"),
			failure.Context{"url": s.url.String()},
		)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, failure.Translate(err, ErrNetwork,
			failure.Message("Failed to read response"),
			failure.Context{"url": s.url.String()},
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("Unexpected status from data source", "status_code", resp.StatusCode)
	}

	records, err := record.DecodeList(body)
	if err != nil {
		return nil, failure.Translate(err, ErrDecode,
			failure.Message("Response is not a list of records"),
			failure.Context{
				"url":    s.url.String(),
				"status": resp.Status,
			},
		)
	}

	logger.Debug("Fetched records", "count", len(records))
	return records, nil
}
