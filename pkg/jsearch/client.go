package jsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL         = "https://jsearch.p.rapidapi.com"
	defaultHost            = "jsearch.p.rapidapi.com"
	defaultDatePosted      = "all"
	DefaultEmploymentTypes = "FULLTIME,PARTTIME,CONTRACTOR,INTERN"
)

var (
	ErrMissingAPIKey = errors.New("jsearch: api key is required")
	ErrDecode        = errors.New("jsearch: decode response")
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("jsearch: API error (%d): %s", e.Code, e.Body)
}

// NewClient instantiates a JSearch API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	host := cfg.Host
	if host == "" {
		host = defaultHost
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var limiter *rate.Limiter
	if cfg.RatePerSec > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), burst)
	}

	return &Client{
		apiKey:     cfg.APIKey,
		host:       host,
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    limiter,
	}, nil
}

// Search issues one upstream query and returns its data array.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]Job, error) {
	if c == nil {
		return nil, fmt.Errorf("jsearch: client is nil")
	}

	u, err := c.buildSearchURL(params)
	if err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("jsearch: rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("jsearch: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jsearch: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if payload.Data == nil {
		return []Job{}, nil
	}
	return payload.Data, nil
}

func (c *Client) buildSearchURL(params SearchParams) (string, error) {
	if strings.TrimSpace(params.Query) == "" {
		return "", fmt.Errorf("jsearch: query is required")
	}

	u, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return "", fmt.Errorf("jsearch: parse base url: %w", err)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	numPages := params.NumPages
	if numPages < 1 {
		numPages = 1
	}
	datePosted := params.DatePosted
	if datePosted == "" {
		datePosted = defaultDatePosted
	}

	values := url.Values{}
	values.Set("query", params.Query)
	values.Set("page", strconv.Itoa(page))
	values.Set("num_pages", strconv.Itoa(numPages))
	values.Set("date_posted", datePosted)

	if params.RemoteOnly {
		values.Set("remote_jobs_only", "true")
	} else {
		types := params.EmploymentTypes
		if types == "" {
			types = DefaultEmploymentTypes
		}
		values.Set("employment_types", types)
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}
