package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cleanadmin/internal/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// Client issues JSON requests against the admin REST backend. It holds no
// resource state; every call is a single request/response.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      func(ctx context.Context) string
	log        zerolog.Logger

	redis       *redis.Client
	cacheTTL    time.Duration
	cachePrefix string
}

// NewClient constructs a client rooted at baseURL (e.g. http://localhost:3001/api).
func NewClient(baseURL string, timeout time.Duration, logger *zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	log := zerolog.Nop()
	if logger != nil {
		log = logger.With().Str("component", "admin-api").Logger()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// UseHTTPClient swaps the underlying transport, mainly for tests.
func (c *Client) UseHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// UseToken makes every request carry "Authorization: Bearer <token>" when the
// source returns a non-empty token.
func (c *Client) UseToken(source func(ctx context.Context) string) {
	c.token = source
}

// UseRedisCache enables a read-through cache for analytics reads. Mutating
// endpoints are never cached.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration, prefix string) {
	c.redis = redisClient
	c.cacheTTL = ttl
	c.cachePrefix = prefix
}

// BaseURL returns the configured root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, resource, path string, query url.Values, out any) error {
	return c.do(ctx, resource, http.MethodGet, path, query, nil, out)
}

func (c *Client) put(ctx context.Context, resource, path string, body, out any) error {
	return c.do(ctx, resource, http.MethodPut, path, nil, body, out)
}

func (c *Client) post(ctx context.Context, resource, path string, body, out any) error {
	return c.do(ctx, resource, http.MethodPost, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, resource, path string) error {
	return c.do(ctx, resource, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, resource, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", resource, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", resource, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	c.addHeaders(ctx, req)

	requestID := req.Header.Get(requestIDHeader)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	dur := time.Since(start)
	if err != nil {
		metrics.ObserveBackend(resource, method, 0, dur)
		c.log.Debug().Err(err).Str("request_id", requestID).Str("method", method).Str("path", path).
			Dur("duration", dur).Msg("backend request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	metrics.ObserveBackend(resource, method, resp.StatusCode, dur)
	c.log.Debug().Str("request_id", requestID).Str("method", method).Str("path", path).
		Int("status", resp.StatusCode).Dur("duration", dur).Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return newRequestError(method, path, resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}

type bearerKey struct{}

// withBearer pins the token for one call, taking precedence over the
// client's token source.
func withBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

func (c *Client) addHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set(requestIDHeader, uuid.NewString())

	token, _ := ctx.Value(bearerKey{}).(string)
	if token == "" && c.token != nil {
		token = c.token(ctx)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, c.cachePrefix+key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(val, out); err != nil {
		return false
	}
	return true
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, c.cachePrefix+key, data, c.cacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("analytics cache write failed")
	}
}
