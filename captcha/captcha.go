// Package captcha verifies FriendlyCaptcha puzzle solutions attached to public
// submissions.
package captcha

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// go generate: mockery --name Verifier

// DefaultEndpoint is the global FriendlyCaptcha verification endpoint
const DefaultEndpoint = "https://api.friendlycaptcha.com/api/v1/siteverify"

// Verifier checks a captcha proof against the verification provider
type Verifier interface {
	Verify(ctx context.Context, solution string) (bool, error)
}

type friendlyCaptcha struct {
	endpoint string
	secret   string
	siteKey  string
	client   *http.Client
}

// New returns a Verifier for the given account secret and site key
func New(secret, siteKey string) Verifier {
	return &friendlyCaptcha{
		endpoint: DefaultEndpoint,
		secret:   secret,
		siteKey:  siteKey,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type verifyRequest struct {
	Solution string `json:"solution"`
	Secret   string `json:"secret"`
	SiteKey  string `json:"siteKey"`
}

type verifyResponse struct {
	Success bool        `json:"success"`
	Errors  interface{} `json:"errors"`
}

func (f *friendlyCaptcha) Verify(ctx context.Context, solution string) (bool, error) {
	body, err := json.Marshal(verifyRequest{
		Solution: solution,
		Secret:   f.secret,
		SiteKey:  f.siteKey,
	})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	out := verifyResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, err
	}
	return out.Success, nil
}
