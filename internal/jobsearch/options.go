package jobsearch

import "time"

// Options configures the fan-out. It is passed explicitly so tests never depend on
// process-wide defaults.
type Options struct {
	// DefaultLocations are searched when the request names no location or "all".
	DefaultLocations []string
	// DefaultQuery replaces an empty query.
	DefaultQuery string
	// PagesPerLocation is the fan-out factor per location.
	PagesPerLocation int
	// PageSize is the number of records in one outbound page.
	PageSize int
	// CallTimeout bounds each upstream call independently.
	CallTimeout time.Duration
	// MaxConcurrency caps in-flight upstream calls; zero means no cap.
	MaxConcurrency int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		DefaultLocations: []string{"Bangalore, India", "Hyderabad, India", "Pune, India", "Remote"},
		DefaultQuery:     "software engineer",
		PagesPerLocation: 2,
		PageSize:         10,
		CallTimeout:      20 * time.Second,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if len(o.DefaultLocations) == 0 {
		o.DefaultLocations = def.DefaultLocations
	}
	if o.DefaultQuery == "" {
		o.DefaultQuery = def.DefaultQuery
	}
	if o.PagesPerLocation <= 0 {
		o.PagesPerLocation = def.PagesPerLocation
	}
	if o.PageSize <= 0 {
		o.PageSize = def.PageSize
	}
	if o.CallTimeout <= 0 {
		o.CallTimeout = def.CallTimeout
	}
	return o
}
