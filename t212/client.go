// Package t212 is a minimal client for the Trading212 equity API.
//
// The API is rate limited per key, so the client spaces its requests and
// retries once after a pause when the server answers 429. All retry and
// backoff behavior lives here; the valuation core never touches the
// network.
package t212

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const baseURL = "https://live.trading212.com/api/v0"

// ErrUnauthorized means the API key was rejected. Not retryable.
var ErrUnauthorized = errors.New("authentication failed, check the API key")

// Client talks to the API on behalf of one account. Each account has its
// own key, so a multi-account setup uses one Client per account.
type Client struct {
	// Account is the display name positions fetched through this client
	// belong to ("Stocks & Shares ISA", "Invest Account", ...).
	Account string

	apiKey string
	base   string
	httpc  *http.Client

	interval time.Duration
	last     time.Time

	// retryWait is the pause before the single 429 retry.
	retryWait time.Duration
}

// New returns a client for the live API.
func New(apiKey, account string) *Client {
	return &Client{
		Account:   account,
		apiKey:    apiKey,
		base:      baseURL,
		httpc:     &http.Client{Timeout: 30 * time.Second},
		interval:  500 * time.Millisecond,
		retryWait: 5 * time.Second,
	}
}

// pace enforces the minimum interval between requests.
func (c *Client) pace() {
	if wait := c.interval - time.Since(c.last); wait > 0 {
		time.Sleep(wait)
	}
	c.last = time.Now()
}

// jwget performs an authorized GET and unmarshals the JSON response body
// into data. A 429 answer is retried once after a pause.
func (c *Client) jwget(endpoint string, data any) error {
	body, err := c.get(endpoint)
	if errors.Is(err, errTooManyRequests) {
		time.Sleep(c.retryWait)
		body, err = c.get(endpoint)
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}

var errTooManyRequests = errors.New("rate limit exceeded")

func (c *Client) get(endpoint string) ([]byte, error) {
	c.pace()

	req, err := http.NewRequest(http.MethodGet, c.base+endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot http GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, errTooManyRequests
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	default:
		var buf bytes.Buffer
		io.Copy(&buf, io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("cannot http GET %s: %s: %s", endpoint, resp.Status, buf.String())
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
