package jobsearch

import (
	"context"
	"errors"

	"github.com/justsurfingit/careerpilot/pkg/jsearch"
	"github.com/justsurfingit/careerpilot/pkg/logging"
)

// ErrNotConfigured is returned when no upstream client is available, typically because
// RAPID_API_KEY is unset.
var ErrNotConfigured = errors.New("job search is not configured")

// Searcher is the subset of the JSearch client used by the service.
type Searcher interface {
	Search(ctx context.Context, params jsearch.SearchParams) ([]jsearch.Job, error)
}

// Service aggregates upstream job searches into one deduplicated, ranked page.
type Service struct {
	searcher Searcher
	opts     Options
	log      *logging.Logger
}

func NewService(searcher Searcher, opts Options, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{
		searcher: searcher,
		opts:     opts.withDefaults(),
		log:      log,
	}
}

// Search never fails because of upstream errors: failed calls just contribute no jobs.
func (s *Service) Search(ctx context.Context, req Request) (Response, error) {
	if s == nil || s.searcher == nil {
		return Response{}, ErrNotConfigured
	}

	req = req.normalized(s.opts)
	locations := req.locations(s.opts)

	results := s.fanOut(ctx, plan(req, locations, s.opts.PagesPerLocation))

	failed := 0
	for _, r := range results {
		if !r.ok() {
			failed++
		}
	}

	merged := dedupe(flatten(results))
	rank(merged)
	page, pg := paginate(merged, req.Page, s.opts.PageSize)

	s.log.Debug("job search aggregated",
		"query", req.Query,
		"locations", len(locations),
		"calls", len(results),
		"failed_calls", failed,
		"total", pg.TotalResults,
		"page", pg.CurrentPage,
	)

	return assemble(locations, results, page, pg), nil
}
