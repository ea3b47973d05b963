package roadmap

import "math"

// Progress returns the percentage of completed items, rounded to the
// nearest integer. A roadmap without items has 0 progress.
func Progress(r *Roadmap) int {
	if r == nil || len(r.Items) == 0 {
		return 0
	}
	done := 0
	for _, it := range r.Items {
		if it.Status == StatusCompleted {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(r.Items))))
}

// CountByStatus returns how many items are in each status.
func CountByStatus(r *Roadmap) map[Status]int {
	counts := make(map[Status]int, 3)
	if r == nil {
		return counts
	}
	for _, it := range r.Items {
		counts[it.Status]++
	}
	return counts
}
