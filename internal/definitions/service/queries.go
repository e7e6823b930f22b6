package service

import (
	"context"
	"errors"
	"sort"

	"vardef/internal/definitions/models"
	"vardef/internal/definitions/store"
	dErrors "vardef/pkg/domain-errors"
)

// GetCurrent returns the latest patch of the latest validity period.
func (s *Service) GetCurrent(ctx context.Context, definitionID string) (*models.SavedVariableDefinition, error) {
	h, err := s.load(ctx, definitionID)
	if err != nil {
		return nil, err
	}
	return h.current(), nil
}

// GetAtDate returns the latest patch of the period containing date.
func (s *Service) GetAtDate(ctx context.Context, definitionID string, date models.Date) (*models.SavedVariableDefinition, error) {
	h, err := s.load(ctx, definitionID)
	if err != nil {
		return nil, err
	}
	p := h.covering(date)
	if p == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "variable definition "+definitionID+" is not valid on "+date.String())
	}
	return p.latest(), nil
}

// ListHistory returns every patch ordered by (validFrom, patchId).
func (s *Service) ListHistory(ctx context.Context, definitionID string) ([]*models.SavedVariableDefinition, error) {
	h, err := s.load(ctx, definitionID)
	if err != nil {
		return nil, err
	}
	return h.records(), nil
}

// GetPatch returns one patch of a period; nil validFrom selects the latest period.
func (s *Service) GetPatch(ctx context.Context, definitionID string, validFrom *models.Date, patchID int) (*models.SavedVariableDefinition, error) {
	h, err := s.load(ctx, definitionID)
	if err != nil {
		return nil, err
	}
	p, err := periodFor(h, validFrom)
	if err != nil {
		return nil, err
	}
	r := p.patch(patchID)
	if r == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "patch not found")
	}
	return r, nil
}

// ListDefinitions returns one record per definition: the one valid on date, or the
// current one when date is nil. Definitions not valid on date are left out.
func (s *Service) ListDefinitions(ctx context.Context, date *models.Date) ([]*models.SavedVariableDefinition, error) {
	latest, err := s.store.ListLatestPatches(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list variable definitions")
	}

	chosen := make(map[string]*models.SavedVariableDefinition)
	for _, r := range latest {
		switch {
		case date == nil:
			if prev, ok := chosen[r.DefinitionID]; !ok || r.ValidFrom.After(prev.ValidFrom) {
				chosen[r.DefinitionID] = r
			}
		case r.Covers(*date):
			chosen[r.DefinitionID] = r
		}
	}

	out := make([]*models.SavedVariableDefinition, 0, len(chosen))
	for _, r := range chosen {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ShortName < out[j].ShortName })
	return out, nil
}

// StatusCounts counts definitions by the status of their current record.
func (s *Service) StatusCounts(ctx context.Context) (map[string]int, error) {
	current, err := s.ListDefinitions(ctx, nil)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{
		string(models.StatusDraft):             0,
		string(models.StatusPublishedInternal): 0,
		string(models.StatusPublishedExternal): 0,
	}
	for _, r := range current {
		counts[string(r.VariableStatus)]++
	}
	return counts, nil
}

// ExportStatusMetrics refreshes the status gauge. Runs as a scheduled job.
func (s *Service) ExportStatusMetrics(ctx context.Context) error {
	counts, err := s.StatusCounts(ctx)
	if err != nil {
		return err
	}
	s.metrics.SetStatusCounts(counts)
	return nil
}

// FindDefinitionIDByShortName resolves a short name to its definition id.
func (s *Service) FindDefinitionIDByShortName(ctx context.Context, shortName string) (string, error) {
	id, err := s.store.FindDefinitionIDByShortName(ctx, shortName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeNotFound, "no variable definition with short name "+shortName)
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up short name")
	}
	return id, nil
}

// FindDefinitionIDsByShortNames resolves many short names; unknown names are absent.
func (s *Service) FindDefinitionIDsByShortNames(ctx context.Context, shortNames []string) (map[string]string, error) {
	ids, err := s.store.FindDefinitionIDsByShortNames(ctx, shortNames)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up short names")
	}
	return ids, nil
}
