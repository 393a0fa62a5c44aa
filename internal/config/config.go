package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the API server.
type Config struct {
	LogLevel  string
	Host      string
	Port      string
	ClientURL string

	DatabaseURL string

	JWT struct {
		Secret       string
		TTL          time.Duration
		SecureCookie bool
	}

	Gemini struct {
		APIKey string
		Model  string
	}

	JSearch struct {
		APIKey           string
		BaseURL          string
		Host             string
		Timeout          time.Duration
		PagesPerLocation int
		DefaultLocations []string
		DefaultQuery     string
		MaxConcurrency   int
		RatePerSec       float64
	}

	Extractor struct {
		TextURL     string
		EntitiesURL string
		Timeout     time.Duration
		MaxFileSize int64
	}
}

var defaultLocations = []string{
	"Bangalore, India",
	"Hyderabad, India",
	"Pune, India",
	"Remote",
}

// LoadEnvFile loads key=value pairs from path into the process environment.
// A missing file is reported but existing variables are never overwritten.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	return godotenv.Load(path)
}

// Load populates config from environment variables.
func Load() (Config, error) {
	cfg := Config{
		LogLevel:  envOr("LOG_LEVEL", "info"),
		Host:      envOr("HOST", "0.0.0.0"),
		Port:      envOr("PORT", "5001"),
		ClientURL: envOr("CLIENT_URL", "http://localhost:3000"),
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	var errs []string

	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = envDuration("JWT_EXPIRES_IN", 7*24*time.Hour, &errs)
	cfg.JWT.SecureCookie = envBool("COOKIE_SECURE")

	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Gemini.Model = envOr("GOOGLE_GEMINI_MODEL", "gemini-2.5-flash")

	cfg.JSearch.APIKey = os.Getenv("RAPID_API_KEY")
	cfg.JSearch.BaseURL = envOr("JSEARCH_BASE_URL", "https://jsearch.p.rapidapi.com")
	cfg.JSearch.Host = envOr("JSEARCH_HOST", "jsearch.p.rapidapi.com")
	cfg.JSearch.Timeout = envDuration("JSEARCH_TIMEOUT", 20*time.Second, &errs)
	cfg.JSearch.PagesPerLocation = envInt("JSEARCH_PAGES_PER_LOCATION", 2, &errs)
	cfg.JSearch.DefaultLocations = envList("JSEARCH_DEFAULT_LOCATIONS", defaultLocations)
	cfg.JSearch.DefaultQuery = envOr("JSEARCH_DEFAULT_QUERY", "software engineer")
	cfg.JSearch.MaxConcurrency = envInt("JSEARCH_MAX_CONCURRENCY", 0, &errs)
	cfg.JSearch.RatePerSec = envFloat("JSEARCH_RATE_PER_SEC", 0, &errs)

	cfg.Extractor.TextURL = os.Getenv("PY_EXTRACTOR_URL")
	cfg.Extractor.EntitiesURL = os.Getenv("PY_SPACY_URL")
	cfg.Extractor.Timeout = envDuration("EXTRACTOR_TIMEOUT", 60*time.Second, &errs)
	cfg.Extractor.MaxFileSize = int64(envInt("MAX_FILE_SIZE", 5*1024*1024, &errs))

	var missingVars []string
	if cfg.DatabaseURL == "" {
		missingVars = append(missingVars, "DATABASE_URL")
	}
	if cfg.JWT.Secret == "" {
		missingVars = append(missingVars, "JWT_SECRET")
	}
	if len(missingVars) > 0 {
		errs = append(errs, fmt.Sprintf("missing required environment variables: %s", strings.Join(missingVars, ", ")))
	}

	if len(errs) > 0 {
		return cfg, fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func envInt(key string, def int, errs *[]string) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		*errs = append(*errs, fmt.Sprintf("%s must be a non-negative integer, got %q", key, v))
		return def
	}
	return n
}

func envFloat(key string, def float64, errs *[]string) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		*errs = append(*errs, fmt.Sprintf("%s must be a non-negative number, got %q", key, v))
		return def
	}
	return f
}

// envDuration accepts Go durations ("20s") and the "7d" day shorthand.
func envDuration(key string, def time.Duration, errs *[]string) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if days, ok := strings.CutSuffix(v, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil && n > 0 {
			return time.Duration(n) * 24 * time.Hour
		}
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		*errs = append(*errs, fmt.Sprintf("%s must be a positive duration, got %q", key, v))
		return def
	}
	return d
}

func envList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return append([]string(nil), def...)
	}
	var out []string
	for _, part := range strings.Split(v, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), def...)
	}
	return out
}
