package models

// CurrentPRs holds the best entry per movement and per benchmark for one user.
type CurrentPRs struct {
	UserID      int64                       `json:"user_id"`
	Weightlifts map[string]WeightliftRecord `json:"weightlifts"`
	Benchmarks  map[string]BenchmarkRecord  `json:"benchmarks"`
}

// WeightliftProgress summarises one movement's history, oldest first.
type WeightliftProgress struct {
	Movement    string             `json:"movement"`
	History     []WeightliftRecord `json:"history"`
	Current     float64            `json:"current"`
	Starting    float64            `json:"starting"`
	Improvement float64            `json:"improvement"`
	Unit        string             `json:"unit"`
}

// BenchmarkProgress summarises one benchmark's history, oldest first.
// Lower times are better, so TimeSaved is First minus Best.
type BenchmarkProgress struct {
	Benchmark string            `json:"benchmark"`
	History   []BenchmarkRecord `json:"history"`
	Best      float64           `json:"best"`
	First     float64           `json:"first"`
	TimeSaved float64           `json:"time_saved"`
}
