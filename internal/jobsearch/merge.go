package jobsearch

import (
	"sort"

	"github.com/justsurfingit/careerpilot/pkg/jsearch"
)

// LocationField is added to every outbound record with the location it was found for.
const LocationField = "search_location"

type taggedJob struct {
	Location string
	Job      jsearch.Job
}

// flatten collapses fan-out results into one tagged sequence in issue order.
// Failed calls contribute nothing.
func flatten(results []fetchResult) []taggedJob {
	var out []taggedJob
	for _, r := range results {
		if !r.ok() {
			continue
		}
		for _, j := range r.Jobs {
			out = append(out, taggedJob{Location: r.Location, Job: j})
		}
	}
	return out
}

// dedupe keeps one record per job_id. The last copy wins, placed where the key was
// first seen. Records without a job_id cannot collide and are all kept.
func dedupe(jobs []taggedJob) []taggedJob {
	out := make([]taggedJob, 0, len(jobs))
	index := make(map[string]int, len(jobs))

	for _, j := range jobs {
		id := j.Job.ID()
		if id == "" {
			out = append(out, j)
			continue
		}
		if i, seen := index[id]; seen {
			out[i] = j
			continue
		}
		index[id] = len(out)
		out = append(out, j)
	}
	return out
}

// rank moves records with an apply link ahead of those without, keeping relative order.
func rank(jobs []taggedJob) {
	sort.SliceStable(jobs, func(a, b int) bool {
		return jobs[a].Job.ApplyLink() != "" && jobs[b].Job.ApplyLink() == ""
	})
}
