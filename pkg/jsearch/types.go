package jsearch

import (
	"encoding/json"
	"net/http"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// Config defines JSearch API client settings
type Config struct {
	APIKey     string
	Host       string
	BaseURL    string
	HTTPClient *http.Client
	// RatePerSec caps outbound requests; zero disables limiting.
	RatePerSec float64
	Burst      int
}

// Client queries the JSearch job search API on RapidAPI
type Client struct {
	apiKey     string
	host       string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// SearchParams describe one upstream search call
type SearchParams struct {
	Query           string
	Page            int
	NumPages        int
	DatePosted      string
	EmploymentTypes string
	RemoteOnly      bool
}

// Job is an upstream job record. Fields are kept raw so they pass through untouched;
// only job_id and job_apply_link are ever inspected.
type Job map[string]json.RawMessage

// ID returns job_id as text, or "" when absent or null.
func (j Job) ID() string {
	return j.field("job_id")
}

// ApplyLink returns job_apply_link, or "" when absent.
func (j Job) ApplyLink() string {
	return j.field("job_apply_link")
}

// With returns a shallow copy of j with key set to the JSON encoding of value.
func (j Job) With(key string, value any) Job {
	out := make(Job, len(j)+1)
	for k, v := range j {
		out[k] = v
	}
	raw, err := json.Marshal(value)
	if err == nil {
		out[key] = raw
	}
	return out
}

func (j Job) field(key string) string {
	raw, ok := j[key]
	if !ok {
		return ""
	}
	return gjson.ParseBytes(raw).String()
}

type searchResponse struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id"`
	Data      []Job  `json:"data"`
}
