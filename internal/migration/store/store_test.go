package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"vardef/internal/migration/models"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) TestCreateIsUniqueOnBothSides() {
	s.Require().NoError(s.store.Create(s.ctx, &models.Mapping{VardokID: "130", DefinitionID: "aaaa0001"}))

	s.ErrorIs(s.store.Create(s.ctx, &models.Mapping{VardokID: "130", DefinitionID: "bbbb0001"}), ErrConflict)
	s.ErrorIs(s.store.Create(s.ctx, &models.Mapping{VardokID: "131", DefinitionID: "aaaa0001"}), ErrConflict)

	m, err := s.store.FindByVardokID(s.ctx, "130")
	s.Require().NoError(err)
	s.Equal("aaaa0001", m.DefinitionID)

	_, err = s.store.FindByVardokID(s.ctx, "131")
	s.ErrorIs(err, ErrNotFound)
}

func (s *InMemoryStoreSuite) TestListIsSorted() {
	s.Require().NoError(s.store.Create(s.ctx, &models.Mapping{VardokID: "2", DefinitionID: "b"}))
	s.Require().NoError(s.store.Create(s.ctx, &models.Mapping{VardokID: "1", DefinitionID: "a"}))

	got, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("1", got[0].VardokID)
	s.Equal("2", got[1].VardokID)
}

func newMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgres(db), mock, db
}

func TestPostgresCreate(t *testing.T) {
	st, mock, _ := newMock(t)
	at := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO vardok_id_mappings").
		WithArgs("130", "aaaa0001", at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, st.Create(context.Background(), &models.Mapping{VardokID: "130", DefinitionID: "aaaa0001", CreatedAt: at}))

	mock.ExpectExec("INSERT INTO vardok_id_mappings").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	err := st.Create(context.Background(), &models.Mapping{VardokID: "130", DefinitionID: "aaaa0001", CreatedAt: at})
	assert.ErrorIs(t, err, ErrConflict)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFind(t *testing.T) {
	st, mock, _ := newMock(t)
	at := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE vardok_id = $1")).WithArgs("130").
		WillReturnRows(sqlmock.NewRows([]string{"vardok_id", "definition_id", "created_at"}).AddRow("130", "aaaa0001", at))
	m, err := st.FindByVardokID(context.Background(), "130")
	require.NoError(t, err)
	assert.Equal(t, "aaaa0001", m.DefinitionID)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE vardok_id = $1")).WithArgs("999").
		WillReturnRows(sqlmock.NewRows([]string{"vardok_id", "definition_id", "created_at"}))
	_, err = st.FindByVardokID(context.Background(), "999")
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectQuery("ORDER BY vardok_id").
		WillReturnRows(sqlmock.NewRows([]string{"vardok_id", "definition_id", "created_at"}).
			AddRow("130", "aaaa0001", at).
			AddRow("131", "bbbb0001", at))
	list, err := st.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)

	assert.NoError(t, mock.ExpectationsWereMet())
}
