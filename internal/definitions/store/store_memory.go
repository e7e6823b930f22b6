package store

import (
	"context"
	"slices"
	"sync"

	"vardef/internal/definitions/models"
	"vardef/pkg/platform/sentinel"
)

// ErrNotFound is returned when no record matches.
var ErrNotFound = sentinel.ErrNotFound

// ErrConflict is returned when a write would duplicate (definitionId, validFrom, patchId).
var ErrConflict = sentinel.ErrConflict

// InMemory keeps definition records per definition id, sorted by (validFrom, patchId).
type InMemory struct {
	mu      sync.RWMutex
	records map[string][]*models.SavedVariableDefinition
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[string][]*models.SavedVariableDefinition)}
}

// Insert stores all records or none.
func (s *InMemory) Insert(_ context.Context, records ...*models.SavedVariableDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range records {
		if s.existsLocked(r) {
			return ErrConflict
		}
		for _, other := range records[:i] {
			if sameKey(r, other) {
				return ErrConflict
			}
		}
	}
	for _, r := range records {
		list := append(s.records[r.DefinitionID], r.Clone())
		slices.SortFunc(list, compareRecords)
		s.records[r.DefinitionID] = list
	}
	return nil
}

func (s *InMemory) existsLocked(r *models.SavedVariableDefinition) bool {
	for _, existing := range s.records[r.DefinitionID] {
		if sameKey(existing, r) {
			return true
		}
	}
	return false
}

func sameKey(a, b *models.SavedVariableDefinition) bool {
	return a.DefinitionID == b.DefinitionID && a.ValidFrom.Equal(b.ValidFrom) && a.PatchID == b.PatchID
}

func compareRecords(a, b *models.SavedVariableDefinition) int {
	if c := a.ValidFrom.Compare(b.ValidFrom.Time); c != 0 {
		return c
	}
	return a.PatchID - b.PatchID
}

// ListByDefinition returns every record of a definition ordered by (validFrom, patchId).
func (s *InMemory) ListByDefinition(_ context.Context, definitionID string) ([]*models.SavedVariableDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.records[definitionID]
	out := make([]*models.SavedVariableDefinition, 0, len(list))
	for _, r := range list {
		out = append(out, r.Clone())
	}
	return out, nil
}

// FindDefinitionIDByShortName resolves the secondary short name index.
func (s *InMemory) FindDefinitionIDByShortName(_ context.Context, shortName string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, list := range s.records {
		if len(list) > 0 && list[0].ShortName == shortName {
			return id, nil
		}
	}
	return "", ErrNotFound
}

// FindDefinitionIDsByShortNames resolves many short names at once. Unknown names are
// absent from the result.
func (s *InMemory) FindDefinitionIDsByShortNames(_ context.Context, shortNames []string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(shortNames))
	for id, list := range s.records {
		if len(list) > 0 && slices.Contains(shortNames, list[0].ShortName) {
			out[list[0].ShortName] = id
		}
	}
	return out, nil
}

// ListLatestPatches returns the highest patch of every period of every definition.
func (s *InMemory) ListLatestPatches(_ context.Context) ([]*models.SavedVariableDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.SavedVariableDefinition
	for _, list := range s.records {
		for i, r := range list {
			if i == len(list)-1 || !list[i+1].ValidFrom.Equal(r.ValidFrom) {
				out = append(out, r.Clone())
			}
		}
	}
	slices.SortFunc(out, func(a, b *models.SavedVariableDefinition) int {
		if a.DefinitionID != b.DefinitionID {
			if a.DefinitionID < b.DefinitionID {
				return -1
			}
			return 1
		}
		return compareRecords(a, b)
	})
	return out, nil
}
