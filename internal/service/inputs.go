package service

import (
	"strings"

	"prtracker/internal/models"
)

// WeightliftInput is a new lift result. An empty Date means today and an
// empty Unit means lbs.
type WeightliftInput struct {
	Movement string  `json:"movement" validate:"required,movement"`
	Value    float64 `json:"value" validate:"gt=0"`
	Unit     string  `json:"unit" validate:"required,unit"`
	Date     string  `json:"date" validate:"required,isodate"`
	Note     string  `json:"note" validate:"max=500"`
}

// WeightliftPatch changes only the non-nil fields.
type WeightliftPatch struct {
	Movement *string  `json:"movement"`
	Value    *float64 `json:"value"`
	Unit     *string  `json:"unit"`
	Date     *string  `json:"date"`
	Note     *string  `json:"note"`
}

func (p WeightliftPatch) apply(r models.WeightliftRecord) models.WeightliftRecord {
	if p.Movement != nil {
		r.Movement = strings.TrimSpace(*p.Movement)
	}
	if p.Value != nil {
		r.Value = *p.Value
	}
	if p.Unit != nil {
		r.Unit = strings.TrimSpace(*p.Unit)
	}
	if p.Date != nil {
		r.Date = strings.TrimSpace(*p.Date)
	}
	if p.Note != nil {
		r.Note = *p.Note
	}
	return r
}

func weightliftInputOf(r models.WeightliftRecord) WeightliftInput {
	return WeightliftInput{Movement: r.Movement, Value: r.Value, Unit: r.Unit, Date: r.Date, Note: r.Note}
}

// BenchmarkInput is a new benchmark result. Value is seconds for timed
// workouts or the score for AMRAPs.
type BenchmarkInput struct {
	Benchmark string  `json:"benchmark" validate:"required,benchmark"`
	Value     float64 `json:"value" validate:"gt=0"`
	Rounds    int     `json:"rounds" validate:"gte=0"`
	Reps      int     `json:"reps" validate:"gte=0"`
	Date      string  `json:"date" validate:"required,isodate"`
	Note      string  `json:"note" validate:"max=500"`
}

type BenchmarkPatch struct {
	Benchmark *string  `json:"benchmark"`
	Value     *float64 `json:"value"`
	Rounds    *int     `json:"rounds"`
	Reps      *int     `json:"reps"`
	Date      *string  `json:"date"`
	Note      *string  `json:"note"`
}

func (p BenchmarkPatch) apply(r models.BenchmarkRecord) models.BenchmarkRecord {
	if p.Benchmark != nil {
		r.Benchmark = strings.TrimSpace(*p.Benchmark)
	}
	if p.Value != nil {
		r.Value = *p.Value
	}
	if p.Rounds != nil {
		r.Rounds = *p.Rounds
	}
	if p.Reps != nil {
		r.Reps = *p.Reps
	}
	if p.Date != nil {
		r.Date = strings.TrimSpace(*p.Date)
	}
	if p.Note != nil {
		r.Note = *p.Note
	}
	return r
}

func benchmarkInputOf(r models.BenchmarkRecord) BenchmarkInput {
	return BenchmarkInput{Benchmark: r.Benchmark, Value: r.Value, Rounds: r.Rounds, Reps: r.Reps, Date: r.Date, Note: r.Note}
}

// RegisterInput is a self-service sign-up. The role is always user.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"min=4"`
	FullName string `json:"full_name" validate:"max=100"`
}

// NewUserInput is an account created by an admin.
type NewUserInput struct {
	Username string      `json:"username" validate:"required,min=3,max=50"`
	Password string      `json:"password" validate:"min=4"`
	Role     models.Role `json:"role" validate:"required,oneof=user coach admin"`
	FullName string      `json:"full_name" validate:"max=100"`
}

// UserPatch never carries a username: usernames are immutable.
type UserPatch struct {
	Role     *models.Role `json:"role" validate:"omitempty,oneof=user coach admin"`
	FullName *string      `json:"full_name" validate:"omitempty,max=100"`
}

type passwordInput struct {
	Password string `json:"password" validate:"min=4"`
}
