package jobsearch

import (
	"context"
	"errors"
	"fmt"
	"net"

	"golang.org/x/sync/errgroup"

	"github.com/justsurfingit/careerpilot/pkg/jsearch"
)

// ErrorKind classifies a failed upstream call.
type ErrorKind string

const (
	KindNone     ErrorKind = ""
	KindTimeout  ErrorKind = "timeout"
	KindCanceled ErrorKind = "canceled"
	KindStatus   ErrorKind = "status"
	KindNetwork  ErrorKind = "network"
	KindDecode   ErrorKind = "decode"
)

// call is one (location, page) pair of the fan-out plan.
type call struct {
	Location string
	Page     int
	Params   jsearch.SearchParams
}

// fetchResult is the tagged outcome of one call. A failed call keeps its error and kind
// and carries no jobs.
type fetchResult struct {
	Location string
	Page     int
	Jobs     []jsearch.Job
	Err      error
	Kind     ErrorKind
}

func (r fetchResult) ok() bool {
	return r.Err == nil
}

// plan builds the location x page cross product in issue order.
func plan(req Request, locations []string, pagesPerLocation int) []call {
	calls := make([]call, 0, len(locations)*pagesPerLocation)
	for _, loc := range locations {
		for i := 1; i <= pagesPerLocation; i++ {
			page := (req.Page-1)*pagesPerLocation + i
			params := jsearch.SearchParams{
				Query:    fmt.Sprintf("%s in %s", req.Query, loc),
				Page:     page,
				NumPages: 1,
			}
			req.applyJobType(&params)
			calls = append(calls, call{Location: loc, Page: page, Params: params})
		}
	}
	return calls
}

// fanOut runs every call concurrently and waits for all of them. results[i] always
// belongs to calls[i], whatever order the calls finish in.
func (s *Service) fanOut(ctx context.Context, calls []call) []fetchResult {
	results := make([]fetchResult, len(calls))

	var g errgroup.Group
	if s.opts.MaxConcurrency > 0 {
		g.SetLimit(s.opts.MaxConcurrency)
	}

	for i, c := range calls {
		g.Go(func() error {
			results[i] = s.fetch(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *Service) fetch(ctx context.Context, c call) fetchResult {
	callCtx, cancel := context.WithTimeout(ctx, s.opts.CallTimeout)
	defer cancel()

	res := fetchResult{Location: c.Location, Page: c.Page}

	jobs, err := s.searcher.Search(callCtx, c.Params)
	if err != nil {
		res.Err = err
		res.Kind = classify(err)
		s.log.Warn("upstream job search failed",
			"location", c.Location,
			"page", c.Page,
			"kind", string(res.Kind),
			"err", err,
		)
		return res
	}

	res.Jobs = jobs
	return res
}

func classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var statusErr *jsearch.StatusError
	var netErr net.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.As(err, &statusErr):
		return KindStatus
	case errors.Is(err, jsearch.ErrDecode):
		return KindDecode
	case errors.As(err, &netErr) && netErr.Timeout():
		return KindTimeout
	default:
		return KindNetwork
	}
}
