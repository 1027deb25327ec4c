package requests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// ExternalAPIService is a thin HTTP helper for outbound calls. Every
// request goes through the shared client so the per-request timeout is
// applied uniformly.
type ExternalAPIService struct {
	client *http.Client
}

func NewExternalAPIService(timeout time.Duration) *ExternalAPIService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ExternalAPIService{
		client: &http.Client{Timeout: timeout},
	}
}

func (s *ExternalAPIService) makeRequest(ctx context.Context, method, endpoint string, params url.Values, body interface{}) (*http.Response, error) {
	if params != nil {
		endpoint = endpoint + "?" + params.Encode()
	}

	var err error
	var jsonBody []byte
	if body != nil {
		jsonBody, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return s.client.Do(req)
}

// Get makes a GET request, accepting optional query parameters.
func (s *ExternalAPIService) Get(ctx context.Context, endpoint string, params url.Values) (*http.Response, error) {
	return s.makeRequest(ctx, http.MethodGet, endpoint, params, nil)
}
