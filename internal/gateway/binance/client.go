// Package binance implements the signed REST gateway for Binance USDⓈ-M
// futures: account state reads and order execution. Public market data goes
// through internal/market instead.
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const apiKeyHeader = "X-MBX-APIKEY"

// APIError is a clean rejection from the exchange (HTTP status plus the
// {"code":..,"msg":..} body Binance returns).
type APIError struct {
	Status int
	Code   int64
	Msg    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("binance: http %d code=%d msg=%s", e.Status, e.Code, e.Msg)
}

// Client issues authenticated requests against the futures REST API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	creds      Credentials
	nowFn      func() time.Time
}

// Config for the gateway client.
type Config struct {
	RESTBaseURL string
	Timeout     time.Duration
	Credentials Credentials
}

func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.RESTBaseURL)
	if raw == "" {
		return nil, fmt.Errorf("binance rest_base_url cannot be empty")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing rest_base_url failed: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: timeout},
		creds:      cfg.Credentials,
		nowFn:      time.Now,
	}, nil
}

// HasCredentials reports whether signed endpoints are usable.
func (c *Client) HasCredentials() bool {
	return !c.creds.Empty()
}

// doSigned stamps the timestamp, signs the full parameter list and appends
// the signature as the final query parameter. The API key travels only in the
// header, never in the query.
func (c *Client) doSigned(ctx context.Context, method, path string, params Params, out any) error {
	if c.creds.Empty() {
		return ErrNoCredentials
	}
	stamped := params.With("timestamp", strconv.FormatInt(c.nowFn().UnixMilli(), 10))
	signed := stamped.With("signature", c.creds.Sign(stamped))

	endpoint := *c.baseURL
	endpoint.Path = strings.TrimSuffix(endpoint.Path, "/") + path
	endpoint.RawQuery = signed.Encode()

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("building request failed: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.creds.APIKey)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling binance failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading binance response failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding binance response failed: %w", err)
	}
	return nil
}

func parseAPIError(status int, body []byte) error {
	apiErr := &APIError{Status: status, Msg: http.StatusText(status)}
	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		if code := parsed.Get("code"); code.Exists() {
			apiErr.Code = code.Int()
		}
		if msg := parsed.Get("msg"); msg.Exists() {
			apiErr.Msg = msg.String()
		}
	} else if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		apiErr.Msg = trimmed
	}
	return apiErr
}
