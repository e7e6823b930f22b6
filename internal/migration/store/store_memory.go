package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"vardef/internal/migration/models"
	"vardef/pkg/platform/sentinel"
)

var (
	ErrNotFound = sentinel.ErrNotFound
	ErrConflict = sentinel.ErrConflict
)

// InMemory keeps mappings keyed by Vardok id with a reverse index on definition id.
type InMemory struct {
	mu           sync.RWMutex
	byVardok     map[string]*models.Mapping
	byDefinition map[string]string
}

func NewInMemory() *InMemory {
	return &InMemory{
		byVardok:     make(map[string]*models.Mapping),
		byDefinition: make(map[string]string),
	}
}

// Create fails with ErrConflict when either side is already mapped.
func (s *InMemory) Create(_ context.Context, m *models.Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byVardok[m.VardokID]; ok {
		return ErrConflict
	}
	if _, ok := s.byDefinition[m.DefinitionID]; ok {
		return ErrConflict
	}
	stored := *m
	s.byVardok[m.VardokID] = &stored
	s.byDefinition[m.DefinitionID] = m.VardokID
	return nil
}

func (s *InMemory) FindByVardokID(_ context.Context, vardokID string) (*models.Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byVardok[vardokID]
	if !ok {
		return nil, ErrNotFound
	}
	out := *m
	return &out, nil
}

// List returns all mappings ordered by Vardok id.
func (s *InMemory) List(_ context.Context) ([]*models.Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Mapping, 0, len(s.byVardok))
	for _, m := range s.byVardok {
		copied := *m
		out = append(out, &copied)
	}
	slices.SortFunc(out, func(a, b *models.Mapping) int {
		return strings.Compare(a.VardokID, b.VardokID)
	})
	return out, nil
}
