package jobsearch

import (
	"strconv"
	"strings"

	"github.com/justsurfingit/careerpilot/pkg/jsearch"
)

const allSentinel = "all"

// Request is one incoming search.
type Request struct {
	Query    string
	Location string
	JobType  string
	Page     int
}

// ParsePage turns the raw page parameter into a 1-based page number.
// Empty, non-numeric, zero and negative values all clamp to 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func isAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, allSentinel)
}

func (r Request) normalized(opts Options) Request {
	r.Query = strings.TrimSpace(r.Query)
	if r.Query == "" {
		r.Query = opts.DefaultQuery
	}
	r.Location = strings.TrimSpace(r.Location)
	r.JobType = strings.TrimSpace(r.JobType)
	if r.Page < 1 {
		r.Page = 1
	}
	return r
}

func (r Request) locations(opts Options) []string {
	if isAll(r.Location) {
		return append([]string(nil), opts.DefaultLocations...)
	}
	return []string{r.Location}
}

// applyJobType maps the jobType filter onto upstream parameters.
func (r Request) applyJobType(p *jsearch.SearchParams) {
	if isAll(r.JobType) {
		p.EmploymentTypes = jsearch.DefaultEmploymentTypes
		return
	}
	if strings.Contains(strings.ToLower(r.JobType), "remote") {
		p.RemoteOnly = true
		return
	}
	p.EmploymentTypes = strings.ToUpper(strings.ReplaceAll(r.JobType, "-", ""))
}
