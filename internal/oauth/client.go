// Package oauth exchanges authorization codes with Google and Kakao and
// returns the resulting user profile.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	// outbound calls per second shared by every provider
	rateLimit = 10
	rateBurst = 20

	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20
)

var (
	// ErrProviderFailed wraps every transport, status or decoding failure.
	ErrProviderFailed = errors.New("oauth provider request failed")
	// ErrEmailNotProvided is returned when the profile carries no email.
	ErrEmailNotProvided = errors.New("oauth provider did not return an email")
)

// Profile is the identity returned by a provider.
type Profile struct {
	ProviderUserID string
	Email          string
	Name           string
	Picture        string
}

// Provider turns an authorization code into a verified profile.
type Provider interface {
	Name() string
	SocialType() string
	Exchange(ctx context.Context, code string) (*Profile, error)
}

// Client is the rate limited, traced HTTP client shared by the providers.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// NewClient creates the provider HTTP client
func NewClient() *Client {
	return &Client{
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: otelhttp.NewTransport(&http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			}),
		},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	IDToken     string `json:"id_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// exchangeCode posts the authorization code form to tokenURL.
func (c *Client) exchangeCode(ctx context.Context, tokenURL string, form url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	req.Header.Set("Accept", "application/json")

	var token tokenResponse
	if err := c.do(req, &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: missing access token", ErrProviderFailed)
	}
	return &token, nil
}

// getJSON fetches rawURL with the bearer token and decodes the body into dst.
func (c *Client) getJSON(ctx context.Context, rawURL, accessToken string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	return c.do(req, dst)
}

func (c *Client) do(req *http.Request, dst any) error {
	if err := c.rateLimiter.Wait(req.Context()); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", ErrProviderFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrProviderFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d: %s", ErrProviderFailed, req.URL.Host, resp.StatusCode, truncate(body, 200))
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrProviderFailed, err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
