package owlery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/containerq/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is where a local Owlery instance listens
	DefaultBaseURL = "http://localhost:8080"
	// DefaultKBName is the knowledgebase holding the container catalogs
	DefaultKBName = "sd2e-container-catalogs"

	defaultTimeout   = 30 * time.Second
	maxErrorBodySize = 4096
	userAgent        = "containerq/1.0"
)

// Client handles communication with an Owlery DL query server
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
	metrics     *Metrics
}

// NewClient creates a new Owlery client. The client is unthrottled until
// SetRateLimit is called.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: rate.NewLimiter(rate.Inf, 0),
		logger:      logger.Named("owlery"),
	}
}

// SetTimeout overrides the per-request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// SetRateLimit throttles outgoing requests to perSecond with the given burst.
// A non-positive perSecond removes the limit.
func (c *Client) SetRateLimit(perSecond float64, burst int) {
	if perSecond <= 0 {
		c.rateLimiter = rate.NewLimiter(rate.Inf, 0)
		return
	}
	if burst < 1 {
		burst = 1
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(perSecond), burst)
}

// SetMetrics attaches Prometheus metrics to the client
func (c *Client) SetMetrics(m *Metrics) {
	c.metrics = m
}

// BaseURL returns the server root this client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// instancesURL builds the request URL for the kbs/{kb}/instances endpoint
func (c *Client) instancesURL(query domain.InstancesQuery) (string, error) {
	prefixes, err := query.Prefixes.JSON()
	if err != nil {
		return "", fmt.Errorf("failed to encode prefixes: %w", err)
	}

	endpoint := fmt.Sprintf("%s/kbs/%s/instances", c.baseURL, url.PathEscape(query.KBName))
	params := url.Values{}
	params.Add("object", query.Expression)
	params.Add("prefixes", prefixes)
	params.Add("direct", strconv.FormatBool(query.Direct))
	params.Add("includeDeprecated", strconv.FormatBool(query.IncludeDeprecated))

	return fmt.Sprintf("%s?%s", endpoint, params.Encode()), nil
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrReasonerFailure, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReasonerFailure, err)
	}
	return resp, nil
}

// Instances asks the reasoner for all instances of the query's class expression.
// The instance list is returned in the order the server sent it.
func (c *Client) Instances(ctx context.Context, query domain.InstancesQuery) ([]domain.InstanceURI, error) {
	if query.KBName == "" || query.Expression == "" {
		return nil, fmt.Errorf("%w: knowledgebase and expression are required", domain.ErrInvalidRequest)
	}

	start := time.Now()
	log := c.logger.With(zap.String("kb", query.KBName))

	reqURL, err := c.instancesURL(query)
	if err != nil {
		c.metrics.recordRequest(statusInvalid, time.Since(start))
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.metrics.recordRequest(statusCancelled, time.Since(start))
			return nil, fmt.Errorf("%w: %w", domain.ErrReasonerFailure, ctxErr)
		}
		log.Warn("rate limiter rejected request", zap.Error(err))
		c.metrics.recordRequest(statusRateLimited, time.Since(start))
		return nil, fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}

	log.Debug("querying instances", zap.String("expression", query.Expression))

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		c.metrics.recordRequest(statusTransportError, time.Since(start))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := readLimitedBody(resp.Body, maxErrorBodySize)
		c.metrics.recordRequest(statusHTTPError, time.Since(start))
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrReasonerFailure, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.recordRequest(statusTransportError, time.Since(start))
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrReasonerFailure, err)
	}

	instances, err := MapInstances(body)
	if err != nil {
		c.metrics.recordRequest(statusDecodeError, time.Since(start))
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrReasonerFailure, err)
	}

	c.metrics.recordRequest(statusSuccess, time.Since(start))
	c.metrics.recordInstances(len(instances))
	log.Debug("instances returned", zap.Int("count", len(instances)), zap.Any("instances", instances))

	return instances, nil
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
