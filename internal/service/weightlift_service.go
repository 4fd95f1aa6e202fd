package service

import (
	"context"
	"strings"

	"prtracker/internal/apperr"
	"prtracker/internal/authz"
	"prtracker/internal/models"
)

const defaultUnit = "lbs"

// CreateWeightlift stores a lift for ownerID. Users may only write their own
// records, admins anyone's, coaches nobody's.
func (s *RecordService) CreateWeightlift(ctx context.Context, sess authz.Session, ownerID int64, in WeightliftInput) (*models.WeightliftRecord, error) {
	if err := authz.ScopeFor(sess).RequireWrite(ownerID); err != nil {
		return nil, err
	}

	in.Movement = strings.TrimSpace(in.Movement)
	in.Unit = strings.TrimSpace(in.Unit)
	in.Date = strings.TrimSpace(in.Date)
	if in.Unit == "" {
		in.Unit = defaultUnit
	}
	if in.Date == "" {
		in.Date = s.today()
	}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, sess, ownerID); err != nil {
		return nil, err
	}

	rec := models.WeightliftRecord{
		UserID:   ownerID,
		Movement: in.Movement,
		Value:    in.Value,
		Unit:     in.Unit,
		Date:     in.Date,
		Note:     in.Note,
	}
	id, err := s.weightlifts.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	return &rec, nil
}

// ListWeightlifts returns records newest first. OWN scopes always list the
// caller, whatever filter was requested.
func (s *RecordService) ListWeightlifts(ctx context.Context, sess authz.Session, filterUserID *int64) ([]models.WeightliftRecord, error) {
	target := authz.ScopeFor(sess).ResolveReadTarget(filterUserID)
	if target == nil {
		return s.weightlifts.ListAll(ctx)
	}
	return s.weightlifts.ListByUser(ctx, *target)
}

func (s *RecordService) UpdateWeightlift(ctx context.Context, sess authz.Session, recordID int64, p WeightliftPatch) (*models.WeightliftRecord, error) {
	sc := authz.ScopeFor(sess)
	if err := sc.RequireAnyWrite(); err != nil {
		return nil, err
	}
	cur, err := s.weightlifts.GetByID(ctx, recordID)
	if err != nil {
		return nil, hideMissing(sc, err)
	}
	if err := sc.RequireWrite(cur.UserID); err != nil {
		return nil, err
	}

	next := p.apply(*cur)
	if err := validateStruct(s.validate, weightliftInputOf(next)); err != nil {
		return nil, err
	}
	if err := s.weightlifts.Update(ctx, next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *RecordService) DeleteWeightlift(ctx context.Context, sess authz.Session, recordID int64) error {
	sc := authz.ScopeFor(sess)
	if err := sc.RequireAnyWrite(); err != nil {
		return err
	}
	cur, err := s.weightlifts.GetByID(ctx, recordID)
	if err != nil {
		return hideMissing(sc, err)
	}
	if err := sc.RequireWrite(cur.UserID); err != nil {
		return err
	}
	return s.weightlifts.Delete(ctx, recordID)
}

// WeightliftProgress returns one movement's history, oldest first, with the
// latest lift as Current and the first as Starting.
func (s *RecordService) WeightliftProgress(ctx context.Context, sess authz.Session, userID *int64, movement string) (*models.WeightliftProgress, error) {
	movement = strings.TrimSpace(movement)
	if !s.catalog.IsMovement(movement) {
		return nil, apperr.Validation("movement", "unknown movement")
	}
	target := singleTarget(authz.ScopeFor(sess), userID)

	all, err := s.weightlifts.ListByUser(ctx, target)
	if err != nil {
		return nil, err
	}
	history := make([]models.WeightliftRecord, 0, len(all))
	for _, r := range all {
		if r.Movement == movement {
			history = append(history, r)
		}
	}
	sortWeightliftsChronologically(history)

	out := &models.WeightliftProgress{Movement: movement, History: history}
	if len(history) > 0 {
		first, last := history[0], history[len(history)-1]
		out.Starting = first.Value
		out.Current = last.Value
		out.Improvement = last.Value - first.Value
		out.Unit = last.Unit
	}
	return out, nil
}
