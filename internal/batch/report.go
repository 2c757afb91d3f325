package batch

import "time"

// Report collects group results in the order they were processed. It
// never reorders or deduplicates; the report mirrors the run.
type Report struct {
	results []*Result
}

// Add appends a finalized result.
func (r *Report) Add(result *Result) {
	r.results = append(r.results, result)
}

// Results returns the collected results in processing order.
func (r *Report) Results() []*Result {
	return r.results
}

// Summary is the final pass/fail tally of a run.
type Summary struct {
	Total    int
	Passed   int
	Failed   int
	Duration time.Duration
}

// Summarize counts passed and failed groups and totals the installer
// time. Empty, partial and failed groups all count as failures.
func (r *Report) Summarize() Summary {
	s := Summary{Total: len(r.results)}
	for _, res := range r.results {
		if res.OK() {
			s.Passed++
		} else {
			s.Failed++
		}
		s.Duration += res.Duration
	}
	return s
}
