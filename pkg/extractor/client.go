// Package extractor talks to the resume text-extraction and entity-extraction
// microservices.
package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

var (
	ErrNotConfigured = errors.New("extractor: service url not configured")
	ErrDecode        = errors.New("extractor: decode response")
)

// StatusError is returned when a service answers with a non-2xx status.
type StatusError struct {
	Service string
	Code    int
	Body    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("extractor: %s returned %d: %s", e.Service, e.Code, e.Body)
}

type Config struct {
	TextURL     string
	EntitiesURL string
	Timeout     time.Duration
}

// Entities is the entity service output. Raw keeps the full document so callers can
// echo it back unchanged.
type Entities struct {
	Skills []string
	Raw    json.RawMessage
}

type Client struct {
	http *resty.Client
	cfg  Config
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		http: resty.New().SetTimeout(cfg.Timeout),
		cfg:  cfg,
	}
}

// ExtractText uploads the file as multipart field "file" and returns the extracted text.
func (c *Client) ExtractText(ctx context.Context, filename string, r io.Reader) (string, error) {
	if c.cfg.TextURL == "" {
		return "", ErrNotConfigured
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, r).
		Post(c.cfg.TextURL)
	if err != nil {
		return "", fmt.Errorf("extractor: text: %w", err)
	}
	if resp.IsError() {
		return "", &StatusError{Service: "text", Code: resp.StatusCode(), Body: resp.String()}
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: text service sent invalid json", ErrDecode)
	}
	return gjson.GetBytes(body, "text").String(), nil
}

// ExtractEntities posts {"text": text} to the entity service.
func (c *Client) ExtractEntities(ctx context.Context, text string) (Entities, error) {
	if c.cfg.EntitiesURL == "" {
		return Entities{}, ErrNotConfigured
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"text": text}).
		Post(c.cfg.EntitiesURL)
	if err != nil {
		return Entities{}, fmt.Errorf("extractor: entities: %w", err)
	}
	if resp.IsError() {
		return Entities{}, &StatusError{Service: "entities", Code: resp.StatusCode(), Body: resp.String()}
	}

	body := resp.Body()
	doc := gjson.ParseBytes(body)
	if !gjson.ValidBytes(body) || !doc.IsObject() {
		return Entities{}, fmt.Errorf("%w: entity service sent %q", ErrDecode, truncate(resp.String(), 80))
	}

	out := Entities{Raw: json.RawMessage(body)}
	for _, s := range doc.Get("skills").Array() {
		if s.Type == gjson.String && s.Str != "" {
			out.Skills = append(out.Skills, s.Str)
		}
	}
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
