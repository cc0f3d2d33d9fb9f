package s2

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Semantic Scholar Academic Graph API base URL.
	BaseURL = "https://api.semanticscholar.org/graph/v1"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// RateLimit is 1 request per second, the unauthenticated S2 quota.
	// Authenticated clients may raise this via WithRateLimit.
	RateLimit = 1.0

	// DefaultPaperFields are the fields requested for paper lookups.
	DefaultPaperFields = "title,abstract,authors,year,venue,externalIds,openAccessPdf"

	// DefaultCitationsLimit is the page size for the citations endpoint.
	DefaultCitationsLimit = 100

	// maxRetries bounds 429 retry attempts before giving up.
	maxRetries = 3
)

// retryBaseDelay is the base duration for exponential backoff on HTTP 429.
// Tests override this to avoid real sleeps.
var retryBaseDelay = 2 * time.Second

// Client is a rate-limited HTTP client for the Semantic Scholar API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key for authenticated requests.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithRateLimit sets the request rate in requests per second.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// NewClient creates a new Semantic Scholar API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	if key := os.Getenv("S2_API_KEY"); key != "" {
		c.apiKey = key
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a rate-limited GET with exponential-backoff retry on 429.
// The returned body is fully read. A 404 yields an APIError with that
// status so callers can distinguish "not found" from transport failures.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		if c.apiKey != "" {
			req.Header.Set("x-api-key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAPIError, err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			if attempt >= maxRetries {
				return nil, ErrRateLimited
			}
			backoff := retryBaseDelay << attempt
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}

		if resp.StatusCode >= 400 {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
		}
		return body, nil
	}
}

// MatchTitle finds the closest-title paper via the title-match search
// endpoint. Returns nil when S2 has no plausible match.
func (c *Client) MatchTitle(ctx context.Context, title string) (*S2Paper, error) {
	q := url.Values{}
	q.Set("query", title)
	q.Set("fields", DefaultPaperFields)

	body, err := c.get(ctx, "/paper/search/match", q)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var resp MatchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing match response: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}
	return &resp.Data[0], nil
}

// Paper looks up a single paper by identifier (DOI:..., ARXIV:..., raw S2 ID).
// Returns nil when the paper does not exist.
func (c *Client) Paper(ctx context.Context, id string) (*S2Paper, error) {
	q := url.Values{}
	q.Set("fields", DefaultPaperFields)

	body, err := c.get(ctx, "/paper/"+url.PathEscape(ParsePaperID(id).String()), q)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var p S2Paper
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("parsing paper response: %w", err)
	}
	return &p, nil
}

// Citations returns papers citing the given paper, following pagination up
// to maxResults entries.
func (c *Client) Citations(ctx context.Context, id string, maxResults int) ([]S2Paper, error) {
	if maxResults <= 0 {
		maxResults = DefaultCitationsLimit
	}

	var papers []S2Paper
	offset := 0
	for {
		q := url.Values{}
		q.Set("fields", DefaultPaperFields)
		q.Set("limit", fmt.Sprint(DefaultCitationsLimit))
		q.Set("offset", fmt.Sprint(offset))

		body, err := c.get(ctx, "/paper/"+url.PathEscape(ParsePaperID(id).String())+"/citations", q)
		if err != nil {
			if IsNotFound(err) {
				return papers, nil
			}
			return nil, err
		}

		var resp CitationsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("parsing citations response: %w", err)
		}

		for _, r := range resp.Data {
			if r.CitingPaper == nil || r.CitingPaper.PaperID == "" {
				continue
			}
			papers = append(papers, *r.CitingPaper)
			if len(papers) >= maxResults {
				return papers, nil
			}
		}

		if resp.Next == 0 || len(resp.Data) == 0 {
			return papers, nil
		}
		offset = resp.Next
	}
}
