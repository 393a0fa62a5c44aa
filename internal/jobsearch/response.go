package jobsearch

import "github.com/justsurfingit/careerpilot/pkg/jsearch"

// Response is the payload returned by GET /api/jobs/search.
type Response struct {
	Data       []jsearch.Job `json:"data"`
	Pagination Pagination    `json:"pagination"`
	Stats      Stats         `json:"stats"`
}

type Stats struct {
	TotalJobs  int             `json:"total_jobs"`
	Showing    int             `json:"showing"`
	ByLocation []LocationCount `json:"by_location"`
}

// LocationCount counts records a location returned before deduplication, so the counts
// can add up to more than TotalJobs.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

func assemble(locations []string, results []fetchResult, page []taggedJob, pg Pagination) Response {
	data := make([]jsearch.Job, 0, len(page))
	for _, j := range page {
		data = append(data, j.Job.With(LocationField, j.Location))
	}

	return Response{
		Data:       data,
		Pagination: pg,
		Stats: Stats{
			TotalJobs:  pg.TotalResults,
			Showing:    len(data),
			ByLocation: countByLocation(locations, results),
		},
	}
}

func countByLocation(locations []string, results []fetchResult) []LocationCount {
	counts := make(map[string]int, len(locations))
	for _, r := range results {
		counts[r.Location] += len(r.Jobs)
	}

	out := make([]LocationCount, 0, len(locations))
	for _, loc := range locations {
		out = append(out, LocationCount{Location: loc, Count: counts[loc]})
	}
	return out
}
