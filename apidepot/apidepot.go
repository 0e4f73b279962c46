// Package apidepot queries the national address depot for the current
// publication record of a commune. It is a separate failure domain from the
// database: calls carry their own timeout and failures surface as upstream
// errors, never as validation errors.
package apidepot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/adresse-io/signalement-api/models"
)

// go generate: mockery --name Client

// ErrUnavailable marks revision-provider failures so callers can map them to a
// dedicated upstream status instead of a generic server error
var ErrUnavailable = errors.New("api-depot unavailable")

// Client fetches publication records
type Client interface {
	// GetCurrentRevision returns nil without error when the commune has no
	// published revision
	GetCurrentRevision(ctx context.Context, codeCommune string) (*models.Revision, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

// DefaultTimeout bounds a single revision lookup
const DefaultTimeout = 10 * time.Second

// New returns a Client talking to the api-depot at the given base URL
func New(baseURL string) Client {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
}

func (c *httpClient) GetCurrentRevision(ctx context.Context, codeCommune string) (*models.Revision, error) {
	url := fmt.Sprintf("%s/communes/%s/current-revision", c.baseURL, codeCommune)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	revision := &models.Revision{}
	if err := json.NewDecoder(resp.Body).Decode(revision); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return revision, nil
}
