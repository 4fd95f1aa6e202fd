package models

import "fmt"

// BenchmarkRecord is a result for one catalog benchmark workout.
type BenchmarkRecord struct {
	ID        int64   `db:"id" json:"id"`
	UserID    int64   `db:"user_id" json:"user_id"`
	Benchmark string  `db:"benchmark" json:"benchmark"`
	Value     float64 `db:"value" json:"value"`   // completion time in seconds, or score
	Rounds    int     `db:"rounds" json:"rounds"` // AMRAP detail
	Reps      int     `db:"reps" json:"reps"`
	Date      string  `db:"date" json:"date"` // YYYY-MM-DD
	Note      string  `db:"note" json:"note,omitempty"`
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
