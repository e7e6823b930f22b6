package service

import (
	"context"

	"github.com/google/uuid"

	"vardef/internal/definitions/events"
	"vardef/internal/definitions/models"
	"vardef/internal/definitions/validation"
	dErrors "vardef/pkg/domain-errors"
	"vardef/pkg/requestcontext"
)

// CreateValidityPeriod starts a new period for an existing definition.
//
// The new period must continue directly after the latest one, or end the day before
// the earliest one. When the latest period is open-ended it is closed in the same
// write by a patch ending the day before the new valid from.
func (s *Service) CreateValidityPeriod(ctx context.Context, definitionID string, in models.NewValidityPeriod) (_ *models.SavedVariableDefinition, err error) {
	ctx, done := s.begin(ctx, validation.OpValidityPeriod, definitionID)
	defer done(&err)

	h, err := s.load(ctx, definitionID)
	if err != nil {
		return nil, err
	}

	neighbour, prepend, err := placePeriod(h, in)
	if err != nil {
		return nil, err
	}

	changes := in.Changes
	changes.ValidFrom, changes.ValidUntil = nil, nil

	next := changes.ApplyTo(neighbour)
	origin := h.origin()
	next.ID = uuid.New()
	next.PatchID = 1
	next.ValidFrom = in.ValidFrom
	next.ValidUntil = nil
	if in.ValidUntil != nil {
		next.ValidUntil = models.DatePtr(*in.ValidUntil)
	}
	next.CreatedAt = origin.CreatedAt
	next.CreatedBy = origin.CreatedBy
	stamp(ctx, next)

	candidate := validation.Candidate{Record: next, Changed: changes.Fields()}
	if err := s.rules.Validate(validation.OpValidityPeriod, candidate, validation.State{Current: neighbour}); err != nil {
		return nil, err
	}
	if next.Definition == neighbour.Definition {
		return nil, dErrors.Wrap(models.ErrDefinitionTextUnchanged, dErrors.CodeConflict,
			"definition text is unchanged from the validity period starting "+neighbour.ValidFrom.String())
	}

	writes := []*models.SavedVariableDefinition{}
	if latest := h.current(); !prepend && latest.IsOpen() {
		closing := latest.Clone()
		closing.ID = uuid.New()
		closing.PatchID = latest.PatchID + 1
		closing.ValidUntil = models.DatePtr(in.ValidFrom.AddDays(-1))
		stamp(ctx, closing)
		writes = append(writes, closing)
	}
	writes = append(writes, next)

	if err := s.insert(ctx, writes...); err != nil {
		return nil, err
	}
	s.metrics.IncrementWritten(string(validation.OpValidityPeriod), len(writes))
	s.logger.InfoContext(ctx, "validity period created",
		"definition_id", definitionID,
		"valid_from", next.ValidFrom.String(),
		"closed_previous", len(writes) == 2,
		"request_id", requestcontext.RequestID(ctx),
	)
	if len(writes) == 2 {
		s.publish(ctx, events.TypePatched, writes[0])
	}
	s.publish(ctx, events.TypeValidityPeriodCreated, next)
	return next, nil
}

// placePeriod checks where the new period goes and returns the record its content
// is derived from.
func placePeriod(h history, in models.NewValidityPeriod) (neighbour *models.SavedVariableDefinition, prepend bool, err error) {
	newFrom := in.ValidFrom
	if newFrom.IsZero() {
		return nil, false, dErrors.New(dErrors.CodeValidation, "validFrom is required")
	}

	earliest := h.earliest().latest()
	if newFrom.Before(earliest.ValidFrom) {
		if in.ValidUntil == nil || !in.ValidUntil.Equal(earliest.ValidFrom.AddDays(-1)) {
			return nil, false, dErrors.Wrap(models.ErrInvalidValidDate, dErrors.CodeConflict,
				"a period before "+earliest.ValidFrom.String()+" must end on "+earliest.ValidFrom.AddDays(-1).String())
		}
		return earliest, true, nil
	}

	latest := h.current()
	if latest.IsOpen() {
		if !newFrom.After(latest.ValidFrom) {
			return nil, false, dErrors.Wrap(models.ErrInvalidValidDate, dErrors.CodeConflict,
				"valid from must be after "+latest.ValidFrom.String())
		}
		return latest, false, nil
	}

	until := *latest.ValidUntil
	switch {
	case newFrom.Equal(until.AddDays(1)):
		return latest, false, nil
	case newFrom.After(latest.ValidFrom) && !newFrom.After(until):
		return nil, false, dErrors.Wrap(models.ErrClosedValidityPeriod, dErrors.CodeConflict,
			"validity period "+latest.ValidFrom.String()+" to "+until.String()+" is closed")
	default:
		return nil, false, dErrors.Wrap(models.ErrInvalidValidDate, dErrors.CodeConflict,
			"valid from must be "+until.AddDays(1).String())
	}
}

// ListValidityPeriods returns the latest patch of every period, oldest first.
func (s *Service) ListValidityPeriods(ctx context.Context, definitionID string) ([]*models.SavedVariableDefinition, error) {
	h, err := s.load(ctx, definitionID)
	if err != nil {
		return nil, err
	}
	out := make([]*models.SavedVariableDefinition, 0, len(h))
	for _, p := range h {
		out = append(out, p.latest())
	}
	return out, nil
}
