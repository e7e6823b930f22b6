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

// ApplyPatch appends the next patch to a validity period. validFrom selects the
// period; nil means the latest one. Fields the patch leaves nil are copied from the
// period's current patch.
func (s *Service) ApplyPatch(ctx context.Context, definitionID string, validFrom *models.Date, changes models.Patch) (_ *models.SavedVariableDefinition, err error) {
	ctx, done := s.begin(ctx, validation.OpPatch, definitionID)
	defer done(&err)

	h, err := s.load(ctx, definitionID)
	if err != nil {
		return nil, err
	}
	target, err := periodFor(h, validFrom)
	if err != nil {
		return nil, err
	}

	current := target.latest()
	next := changes.ApplyTo(current)
	next.ID = uuid.New()
	next.PatchID = current.PatchID + 1
	next.CreatedAt = target.first().CreatedAt
	next.CreatedBy = target.first().CreatedBy
	stamp(ctx, next)

	candidate := validation.Candidate{Record: next, Changed: changes.Fields()}
	if err := s.rules.Validate(validation.OpPatch, candidate, validation.State{Current: current}); err != nil {
		return nil, err
	}

	if err := s.insert(ctx, next); err != nil {
		return nil, err
	}
	s.metrics.IncrementWritten(string(validation.OpPatch), 1)
	s.logger.InfoContext(ctx, "variable definition patched",
		"definition_id", definitionID,
		"valid_from", next.ValidFrom.String(),
		"patch_id", next.PatchID,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.publish(ctx, events.TypePatched, next)
	return next, nil
}

func periodFor(h history, validFrom *models.Date) (period, error) {
	if validFrom == nil {
		return h.latest(), nil
	}
	p := h.startingAt(*validFrom)
	if p == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "no validity period starts on "+validFrom.String())
	}
	return p, nil
}
