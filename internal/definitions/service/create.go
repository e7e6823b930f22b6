package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"vardef/internal/definitions/events"
	"vardef/internal/definitions/models"
	"vardef/internal/definitions/store"
	"vardef/internal/definitions/validation"
	dErrors "vardef/pkg/domain-errors"
	"vardef/pkg/requestcontext"
)

// groupRoles are the role suffixes of team groups, e.g. "play-enhjoern-a-developers".
var groupRoles = []string{"-developers", "-data-admins", "-managers", "-consumers", "-support"}

// TeamFromGroup derives the owning team from a group name.
func TeamFromGroup(group string) string {
	for _, role := range groupRoles {
		if team, ok := strings.CutSuffix(group, role); ok && team != "" {
			return team
		}
	}
	return group
}

// CreateDefinition persists patch 1 of the first validity period of a new definition.
// The status is always DRAFT and ownership comes from the caller's active group.
func (s *Service) CreateDefinition(ctx context.Context, draft models.Draft, activeGroup string) (_ *models.SavedVariableDefinition, err error) {
	ctx, done := s.begin(ctx, validation.OpCreate, "")
	defer done(&err)

	if strings.TrimSpace(activeGroup) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "active_group is required")
	}
	if draft.ValidFrom.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "validFrom is required")
	}

	now := requestcontext.Now(ctx).UTC()
	user := requestcontext.User(ctx)
	record := &models.SavedVariableDefinition{
		ID:             uuid.New(),
		DefinitionID:   s.newID(),
		PatchID:        1,
		ShortName:      strings.TrimSpace(draft.ShortName),
		ValidFrom:      draft.ValidFrom,
		VariableStatus: models.StatusDraft,
		Owner:          models.Owner{Team: TeamFromGroup(activeGroup), Groups: []string{activeGroup}},
		Content:        draft.Content,
		CreatedAt:      now,
		CreatedBy:      user,
		LastUpdatedAt:  now,
		LastUpdatedBy:  user,
	}
	if draft.ValidUntil != nil {
		record.ValidUntil = models.DatePtr(*draft.ValidUntil)
	}
	record = record.Clone()

	candidate := validation.Candidate{Record: record, Changed: models.AllFields()}
	if err := s.rules.Validate(validation.OpCreate, candidate, validation.State{}); err != nil {
		return nil, err
	}

	existing, err := s.store.FindDefinitionIDByShortName(ctx, record.ShortName)
	switch {
	case err == nil:
		return nil, dErrors.Wrap(models.ErrShortNameTaken, dErrors.CodeConflict,
			"short name "+record.ShortName+" is already used by variable definition "+existing)
	case !errors.Is(err, store.ErrNotFound):
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check short name")
	}

	if err := s.insert(ctx, record); err != nil {
		return nil, err
	}
	s.metrics.IncrementWritten(string(validation.OpCreate), 1)
	s.logger.InfoContext(ctx, "variable definition created",
		"definition_id", record.DefinitionID,
		"short_name", record.ShortName,
		"owner_team", record.Owner.Team,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.publish(ctx, events.TypeCreated, record)
	return record, nil
}
