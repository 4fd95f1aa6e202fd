package service

import (
	"context"
	"sort"
	"time"

	"prtracker/internal/apperr"
	"prtracker/internal/authz"
	"prtracker/internal/catalog"
	"prtracker/internal/models"
	"prtracker/internal/repository"

	"github.com/go-playground/validator/v10"
)

// RecordService implements Records for weightlift and benchmark results.
type RecordService struct {
	users       repository.Users
	weightlifts repository.Weightlifts
	benchmarks  repository.Benchmarks
	catalog     *catalog.Catalog
	validate    *validator.Validate
	now         func() time.Time
}

func NewRecordService(users repository.Users, weightlifts repository.Weightlifts, benchmarks repository.Benchmarks, cat *catalog.Catalog) *RecordService {
	return &RecordService{
		users:       users,
		weightlifts: weightlifts,
		benchmarks:  benchmarks,
		catalog:     cat,
		validate:    newValidator(cat),
		now:         time.Now,
	}
}

var _ Records = (*RecordService)(nil)

func (s *RecordService) today() string {
	return s.now().Format(models.DateLayout)
}

// checkOwner makes sure records are only attached to existing accounts.
func (s *RecordService) checkOwner(ctx context.Context, sess authz.Session, ownerID int64) error {
	if ownerID == sess.UserID {
		return nil
	}
	_, err := s.users.GetByID(ctx, ownerID)
	return err
}

// singleTarget resolves the one user a PR or progress query is about.
// Without a filter the caller is the target.
// hideMissing turns NotFound into PermissionDenied for callers that cannot
// write every record, so absent ids and other users' ids look the same.
func hideMissing(sc authz.Scope, err error) error {
	if sc.Write != authz.All && apperr.Is(err, apperr.KindNotFound) {
		return apperr.PermissionDenied()
	}
	return err
}

func singleTarget(sc authz.Scope, requested *int64) int64 {
	if t := sc.ResolveReadTarget(requested); t != nil {
		return *t
	}
	return sc.UserID
}

// CurrentPRs returns the best entry per movement and per benchmark.
func (s *RecordService) CurrentPRs(ctx context.Context, sess authz.Session, userID *int64) (*models.CurrentPRs, error) {
	target := singleTarget(authz.ScopeFor(sess), userID)

	lifts, err := s.weightlifts.ListByUser(ctx, target)
	if err != nil {
		return nil, err
	}
	results, err := s.benchmarks.ListByUser(ctx, target)
	if err != nil {
		return nil, err
	}
	return &models.CurrentPRs{
		UserID:      target,
		Weightlifts: bestWeightlifts(lifts),
		Benchmarks:  bestBenchmarks(results),
	}, nil
}

// bestWeightlifts keeps the heaviest lift per movement; ties go to the later date.
func bestWeightlifts(recs []models.WeightliftRecord) map[string]models.WeightliftRecord {
	best := make(map[string]models.WeightliftRecord)
	for _, r := range recs {
		cur, ok := best[r.Movement]
		if !ok || r.Value > cur.Value || (r.Value == cur.Value && isLater(r.Date, r.ID, cur.Date, cur.ID)) {
			best[r.Movement] = r
		}
	}
	return best
}

// bestBenchmarks keeps the lowest positive value per benchmark; ties go to the later date.
func bestBenchmarks(recs []models.BenchmarkRecord) map[string]models.BenchmarkRecord {
	best := make(map[string]models.BenchmarkRecord)
	for _, r := range recs {
		if r.Value <= 0 {
			continue
		}
		cur, ok := best[r.Benchmark]
		if !ok || r.Value < cur.Value || (r.Value == cur.Value && isLater(r.Date, r.ID, cur.Date, cur.ID)) {
			best[r.Benchmark] = r
		}
	}
	return best
}

func isLater(date string, id int64, otherDate string, otherID int64) bool {
	if date != otherDate {
		return date > otherDate
	}
	return id > otherID
}

func sortWeightliftsChronologically(recs []models.WeightliftRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		return isLater(recs[j].Date, recs[j].ID, recs[i].Date, recs[i].ID)
	})
}

func sortBenchmarksChronologically(recs []models.BenchmarkRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		return isLater(recs[j].Date, recs[j].ID, recs[i].Date, recs[i].ID)
	})
}
