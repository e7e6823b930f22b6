//go:build integration

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"vardef/pkg/testutil/containers"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *PostgresStore
	ctx   context.Context
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = NewPostgres(s.pg.DB)
	s.ctx = context.Background()
}

func (s *PostgresIntegrationSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(s.ctx, "variable_definitions"))
}

func (s *PostgresIntegrationSuite) TestRoundTrip() {
	first := record("aaaa0001", "landbak", "2024-01-01", 1)
	first.Contact.Email = "befolkning@ssb.no"
	s.Require().NoError(s.store.Insert(s.ctx, first))

	got, err := s.store.ListByDefinition(s.ctx, "aaaa0001")
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(first.ID, got[0].ID)
	s.Equal("2024-01-01", got[0].ValidFrom.String())
	s.Equal("befolkning@ssb.no", got[0].Contact.Email)
	s.Equal(first.Owner, got[0].Owner)
}

func (s *PostgresIntegrationSuite) TestUniqueKeyGuardsConcurrentPatches() {
	s.Require().NoError(s.store.Insert(s.ctx, record("aaaa0001", "landbak", "2024-01-01", 1)))

	winner := record("aaaa0001", "landbak", "2024-01-01", 2)
	loser := record("aaaa0001", "landbak", "2024-01-01", 2)
	s.Require().NoError(s.store.Insert(s.ctx, winner))
	s.ErrorIs(s.store.Insert(s.ctx, loser), ErrConflict)
}

func (s *PostgresIntegrationSuite) TestBatchIsAtomic() {
	s.Require().NoError(s.store.Insert(s.ctx, record("aaaa0001", "landbak", "2024-01-01", 1)))

	err := s.store.Insert(s.ctx,
		record("aaaa0001", "landbak", "2024-06-05", 1),
		record("aaaa0001", "landbak", "2024-01-01", 1),
	)
	s.ErrorIs(err, ErrConflict)

	got, err := s.store.ListByDefinition(s.ctx, "aaaa0001")
	s.Require().NoError(err)
	s.Len(got, 1)
}

func (s *PostgresIntegrationSuite) TestShortNameLookups() {
	s.Require().NoError(s.store.Insert(s.ctx,
		record("aaaa0001", "landbak", "2024-01-01", 1),
		record("aaaa0001", "landbak", "2024-01-01", 2),
		record("bbbb0001", "sivstand", "2024-01-01", 1),
	))

	ids, err := s.store.FindDefinitionIDsByShortNames(s.ctx, []string{"landbak", "sivstand", "ukjent"})
	s.Require().NoError(err)
	s.Equal(map[string]string{"landbak": "aaaa0001", "sivstand": "bbbb0001"}, ids)

	latest, err := s.store.ListLatestPatches(s.ctx)
	s.Require().NoError(err)
	s.Len(latest, 2)
}
