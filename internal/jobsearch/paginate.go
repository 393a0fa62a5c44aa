package jobsearch

// Pagination is the outbound pagination block.
type Pagination struct {
	CurrentPage    int  `json:"currentPage"`
	HasNext        bool `json:"hasNext"`
	HasPrev        bool `json:"hasPrev"`
	TotalResults   int  `json:"totalResults"`
	ResultsPerPage int  `json:"resultsPerPage"`
}

// paginate slices page p (1-based) out of jobs. hasNext only reflects what is already
// known, so it can read true when the next page turns out empty.
func paginate[T any](jobs []T, page, pageSize int) ([]T, Pagination) {
	if page < 1 {
		page = 1
	}

	total := len(jobs)
	start := (page - 1) * pageSize
	end := start + pageSize

	var slice []T
	if start < total {
		slice = jobs[start:min(end, total)]
	}

	return slice, Pagination{
		CurrentPage:    page,
		HasNext:        end < total,
		HasPrev:        page > 1,
		TotalResults:   total,
		ResultsPerPage: pageSize,
	}
}
