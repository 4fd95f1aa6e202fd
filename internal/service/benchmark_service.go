package service

import (
	"context"
	"strings"

	"prtracker/internal/apperr"
	"prtracker/internal/authz"
	"prtracker/internal/models"
)

func (s *RecordService) CreateBenchmark(ctx context.Context, sess authz.Session, ownerID int64, in BenchmarkInput) (*models.BenchmarkRecord, error) {
	if err := authz.ScopeFor(sess).RequireWrite(ownerID); err != nil {
		return nil, err
	}

	in.Benchmark = strings.TrimSpace(in.Benchmark)
	in.Date = strings.TrimSpace(in.Date)
	if in.Date == "" {
		in.Date = s.today()
	}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, sess, ownerID); err != nil {
		return nil, err
	}

	rec := models.BenchmarkRecord{
		UserID:    ownerID,
		Benchmark: in.Benchmark,
		Value:     in.Value,
		Rounds:    in.Rounds,
		Reps:      in.Reps,
		Date:      in.Date,
		Note:      in.Note,
	}
	id, err := s.benchmarks.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	return &rec, nil
}

func (s *RecordService) ListBenchmarks(ctx context.Context, sess authz.Session, filterUserID *int64) ([]models.BenchmarkRecord, error) {
	target := authz.ScopeFor(sess).ResolveReadTarget(filterUserID)
	if target == nil {
		return s.benchmarks.ListAll(ctx)
	}
	return s.benchmarks.ListByUser(ctx, *target)
}

func (s *RecordService) UpdateBenchmark(ctx context.Context, sess authz.Session, recordID int64, p BenchmarkPatch) (*models.BenchmarkRecord, error) {
	sc := authz.ScopeFor(sess)
	if err := sc.RequireAnyWrite(); err != nil {
		return nil, err
	}
	cur, err := s.benchmarks.GetByID(ctx, recordID)
	if err != nil {
		return nil, hideMissing(sc, err)
	}
	if err := sc.RequireWrite(cur.UserID); err != nil {
		return nil, err
	}

	next := p.apply(*cur)
	if err := validateStruct(s.validate, benchmarkInputOf(next)); err != nil {
		return nil, err
	}
	if err := s.benchmarks.Update(ctx, next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *RecordService) DeleteBenchmark(ctx context.Context, sess authz.Session, recordID int64) error {
	sc := authz.ScopeFor(sess)
	if err := sc.RequireAnyWrite(); err != nil {
		return err
	}
	cur, err := s.benchmarks.GetByID(ctx, recordID)
	if err != nil {
		return hideMissing(sc, err)
	}
	if err := sc.RequireWrite(cur.UserID); err != nil {
		return err
	}
	return s.benchmarks.Delete(ctx, recordID)
}

// BenchmarkProgress returns one benchmark's history, oldest first. Lower is
// better, so TimeSaved is First minus Best.
func (s *RecordService) BenchmarkProgress(ctx context.Context, sess authz.Session, userID *int64, benchmark string) (*models.BenchmarkProgress, error) {
	benchmark = strings.TrimSpace(benchmark)
	if !s.catalog.IsBenchmark(benchmark) {
		return nil, apperr.Validation("benchmark", "unknown benchmark")
	}
	target := singleTarget(authz.ScopeFor(sess), userID)

	all, err := s.benchmarks.ListByUser(ctx, target)
	if err != nil {
		return nil, err
	}
	history := make([]models.BenchmarkRecord, 0, len(all))
	for _, r := range all {
		if r.Benchmark == benchmark {
			history = append(history, r)
		}
	}
	sortBenchmarksChronologically(history)

	out := &models.BenchmarkProgress{Benchmark: benchmark, History: history}
	if len(history) > 0 {
		out.First = history[0].Value
		out.Best = history[0].Value
		for _, r := range history[1:] {
			if r.Value < out.Best {
				out.Best = r.Value
			}
		}
		out.TimeSaved = out.First - out.Best
	}
	return out, nil
}
