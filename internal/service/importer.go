package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"prtracker/internal/apperr"
	"prtracker/internal/authz"
	"prtracker/internal/catalog"
	"prtracker/internal/models"
	"prtracker/internal/repository"
)

type ImportKind string

const (
	ImportWeightlifts ImportKind = "weightlift"
	ImportBenchmarks  ImportKind = "benchmark"
)

func ParseImportKind(s string) (ImportKind, error) {
	switch k := ImportKind(strings.ToLower(strings.TrimSpace(s))); k {
	case ImportWeightlifts, ImportBenchmarks:
		return k, nil
	case "weightlifts":
		return ImportWeightlifts, nil
	case "benchmarks":
		return ImportBenchmarks, nil
	}
	return "", apperr.Validation("kind", "must be weightlift or benchmark")
}

// LegacyRecord is one entry of a legacy JSON export. Both the generic keys
// (name, value, note) and the old per-kind keys are accepted.
type LegacyRecord struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value"`
	Date  string   `json:"date"`
	Note  string   `json:"note"`
	Notes string   `json:"notes"`

	Movement string   `json:"movement"`
	Weight   *float64 `json:"weight"`
	Unit     string   `json:"unit"`

	Workout     string   `json:"workout"`
	Benchmark   string   `json:"benchmark"`
	TimeMinutes *float64 `json:"time_minutes"`
	TimeSeconds *float64 `json:"time_seconds"`
	Rounds      int      `json:"rounds"`
	Reps        int      `json:"reps"`

	// malformed is set by DecodeLegacy for elements that are not a valid record object.
	malformed string
}

// DecodeLegacy reads a JSON array of legacy records. Only a stream that is
// not a JSON array fails; elements that do not decode are kept as malformed
// so the planners skip them at their original index.
func DecodeLegacy(r io.Reader) ([]LegacyRecord, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		verr := apperr.Validation("file", "invalid legacy JSON: %v", err)
		verr.Err = err
		return nil, verr
	}
	entries := make([]LegacyRecord, len(raw))
	for i, msg := range raw {
		if err := json.Unmarshal(msg, &entries[i]); err != nil {
			entries[i] = LegacyRecord{malformed: fmt.Sprintf("malformed entry: %v", err)}
		}
	}
	return entries, nil
}

// Skip explains why the entry at Index was not imported.
type Skip struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type PlannedWeightlift struct {
	Index int
	Input WeightliftInput
}

type PlannedBenchmark struct {
	Index int
	Input BenchmarkInput
}

// WeightliftPlan is the set of writes an import would perform.
type WeightliftPlan struct {
	UserID  int64
	Records []PlannedWeightlift
	Skips   []Skip
}

type BenchmarkPlan struct {
	UserID  int64
	Records []PlannedBenchmark
	Skips   []Skip
}

type ImportReport struct {
	Kind     ImportKind `json:"kind"`
	UserID   int64      `json:"user_id"`
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Skips    []Skip     `json:"skips"`
}

// PlanWeightliftImport converts legacy entries into validated inputs. It does
// no I/O; invalid entries land in Skips.
func PlanWeightliftImport(entries []LegacyRecord, targetUserID int64, cat *catalog.Catalog) WeightliftPlan {
	v := newValidator(cat)
	plan := WeightliftPlan{UserID: targetUserID, Records: make([]PlannedWeightlift, 0, len(entries))}
	for i, e := range entries {
		if e.malformed != "" {
			plan.Skips = append(plan.Skips, Skip{Index: i, Reason: e.malformed})
			continue
		}
		in := WeightliftInput{
			Movement: strings.TrimSpace(firstNonEmpty(e.Name, e.Movement)),
			Value:    firstSet(e.Value, e.Weight),
			Unit:     strings.TrimSpace(e.Unit),
			Date:     normalizeDate(e.Date),
			Note:     firstNonEmpty(e.Note, e.Notes),
		}
		if in.Unit == "" {
			in.Unit = defaultUnit
		}
		if err := validateStruct(v, in); err != nil {
			plan.Skips = append(plan.Skips, Skip{Index: i, Reason: err.Error()})
			continue
		}
		plan.Records = append(plan.Records, PlannedWeightlift{Index: i, Input: in})
	}
	return plan
}

// PlanBenchmarkImport converts legacy benchmark entries. Old entries stored
// minutes and seconds separately; they are folded into seconds.
func PlanBenchmarkImport(entries []LegacyRecord, targetUserID int64, cat *catalog.Catalog) BenchmarkPlan {
	v := newValidator(cat)
	plan := BenchmarkPlan{UserID: targetUserID, Records: make([]PlannedBenchmark, 0, len(entries))}
	for i, e := range entries {
		if e.malformed != "" {
			plan.Skips = append(plan.Skips, Skip{Index: i, Reason: e.malformed})
			continue
		}
		value := firstSet(e.Value)
		if e.Value == nil && (e.TimeMinutes != nil || e.TimeSeconds != nil) {
			value = firstSet(e.TimeMinutes)*60 + firstSet(e.TimeSeconds)
		}
		in := BenchmarkInput{
			Benchmark: strings.TrimSpace(firstNonEmpty(e.Name, e.Workout, e.Benchmark)),
			Value:     value,
			Rounds:    e.Rounds,
			Reps:      e.Reps,
			Date:      normalizeDate(e.Date),
			Note:      firstNonEmpty(e.Note, e.Notes),
		}
		if err := validateStruct(v, in); err != nil {
			plan.Skips = append(plan.Skips, Skip{Index: i, Reason: err.Error()})
			continue
		}
		plan.Records = append(plan.Records, PlannedBenchmark{Index: i, Input: in})
	}
	return plan
}

var legacyDateLayouts = []string{
	models.DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// normalizeDate reduces known timestamp layouts to YYYY-MM-DD. Anything else
// is returned trimmed so validation can reject it.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range legacyDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(models.DateLayout)
		}
	}
	return s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstSet(vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

// ImportService writes planned records through Records, so the caller's
// scope applies to every write.
type ImportService struct {
	records Records
	users   repository.Users
	catalog *catalog.Catalog
}

func NewImportService(records Records, users repository.Users, cat *catalog.Catalog) *ImportService {
	return &ImportService{records: records, users: users, catalog: cat}
}

var _ Importer = (*ImportService)(nil)

// ImportLegacy reads path without modifying it. Open and parse failures are
// returned; per-entry failures are counted as skipped.
func (s *ImportService) ImportLegacy(ctx context.Context, sess authz.Session, kind ImportKind, path string, targetUserID int64) (*ImportReport, error) {
	if err := s.precheck(ctx, sess, targetUserID); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open legacy file %q: %w", path, err)
	}
	defer f.Close()
	return s.importFrom(ctx, sess, kind, f, targetUserID)
}

// ImportReader is ImportLegacy for an already open JSON stream.
func (s *ImportService) ImportReader(ctx context.Context, sess authz.Session, kind ImportKind, r io.Reader, targetUserID int64) (*ImportReport, error) {
	if err := s.precheck(ctx, sess, targetUserID); err != nil {
		return nil, err
	}
	return s.importFrom(ctx, sess, kind, r, targetUserID)
}

func (s *ImportService) precheck(ctx context.Context, sess authz.Session, targetUserID int64) error {
	if err := authz.ScopeFor(sess).RequireWrite(targetUserID); err != nil {
		return err
	}
	_, err := s.users.GetByID(ctx, targetUserID)
	return err
}

func (s *ImportService) importFrom(ctx context.Context, sess authz.Session, kind ImportKind, r io.Reader, targetUserID int64) (*ImportReport, error) {
	entries, err := DecodeLegacy(r)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Kind: kind, UserID: targetUserID, Skips: []Skip{}}
	switch kind {
	case ImportWeightlifts:
		plan := PlanWeightliftImport(entries, targetUserID, s.catalog)
		report.Skips = append(report.Skips, plan.Skips...)
		for _, p := range plan.Records {
			if _, err := s.records.CreateWeightlift(ctx, sess, plan.UserID, p.Input); err != nil {
				report.Skips = append(report.Skips, Skip{Index: p.Index, Reason: err.Error()})
				continue
			}
			report.Imported++
		}
	case ImportBenchmarks:
		plan := PlanBenchmarkImport(entries, targetUserID, s.catalog)
		report.Skips = append(report.Skips, plan.Skips...)
		for _, p := range plan.Records {
			if _, err := s.records.CreateBenchmark(ctx, sess, plan.UserID, p.Input); err != nil {
				report.Skips = append(report.Skips, Skip{Index: p.Index, Reason: err.Error()})
				continue
			}
			report.Imported++
		}
	default:
		return nil, apperr.Validation("kind", "must be weightlift or benchmark")
	}
	sort.SliceStable(report.Skips, func(i, j int) bool { return report.Skips[i].Index < report.Skips[j].Index })
	report.Skipped = len(report.Skips)
	return report, nil
}
