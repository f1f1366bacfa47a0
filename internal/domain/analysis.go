package domain

// AnalysisResult is the structured output derived from the language model's
// response to a timesheet analysis request. The zero value is the
// "nothing to display" result used when extraction fails.
type AnalysisResult struct {
	Columns         []string // header names the model reported as relevant
	TimeColumn      string   // column holding numeric time-spent values
	DateColumn      string   // column holding date values
	ActivitySummary string   // hierarchical bullet summary, markdown-ish
}

// Empty reports whether the result carries no usable analysis.
func (r *AnalysisResult) Empty() bool {
	return len(r.Columns) == 0 && r.TimeColumn == "" && r.DateColumn == "" && r.ActivitySummary == ""
}

// HeaderOverlap counts how many of the reported column names exist in the
// actual dataset header. Duplicates on either side count once.
func HeaderOverlap(reported, actual []string) int {
	have := make(map[string]bool, len(actual))
	for _, h := range actual {
		have[h] = true
	}
	seen := make(map[string]bool, len(reported))
	n := 0
	for _, c := range reported {
		if have[c] && !seen[c] {
			seen[c] = true
			n++
		}
	}
	return n
}
