package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"vardef/internal/definitions/models"
	"vardef/internal/definitions/service"
	"vardef/internal/definitions/store"
	klassmodels "vardef/internal/klass/models"
	"vardef/pkg/requestcontext"
	"vardef/pkg/testutil"
)

const (
	testUser  = "ano@ssb.no"
	testGroup = "play-enhjoern-a-developers"
)

type codes struct{}

func (codes) Validate(classificationID, code string) bool {
	return code == "01" || code == "02"
}

func (codes) Lookup(classificationID, code, language string) *klassmodels.ReferenceItem {
	if code != "01" {
		return nil
	}
	return &klassmodels.ReferenceItem{Code: code, Title: "Person", ReferenceURI: "https://www.ssb.no/klass/klassifikasjoner/" + classificationID}
}

func (codes) ClassificationURI(classificationID string) string {
	return "https://www.ssb.no/klass/klassifikasjoner/" + classificationID
}

// =============================================================================
// Definitions HTTP surface
// =============================================================================
// Justification: request decoding, query parameters and the error envelope are
// the handler's job; the rules behind them are covered in the service suite.

type HandlerSuite struct {
	suite.Suite
	router http.Handler
	ids    int
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ids = 0
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(store.NewInMemory(), codes{},
		service.WithLogger(logger),
		service.WithIDGenerator(func() string {
			s.ids++
			return "def0000" + string(rune('0'+s.ids))
		}),
	)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := requestcontext.WithTime(req.Context(), time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC))
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	New(svc, logger).Register(r)
	s.router = r
}

func (s *HandlerSuite) do(req *http.Request) *httptest.ResponseRecorder {
	return testutil.DoRequest(s.router, testutil.WithCaller(req, testUser, testGroup))
}

func (s *HandlerSuite) create() models.SavedVariableDefinition {
	body := map[string]any{
		"shortName":  "landbak",
		"validFrom":  "2024-01-01",
		"name":       map[string]string{"nb": "Landbakgrunn"},
		"definition": map[string]string{"nb": "Personens landbakgrunn", "en": "Country background"},
		"unitTypes":  []string{"01"},
	}
	rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/variable-definitions?active_group="+testGroup, body))
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	return testutil.UnmarshalResponse[models.SavedVariableDefinition](s.T(), rr)
}

func (s *HandlerSuite) TestCreate() {
	created := s.create()
	s.Equal("def00001", created.DefinitionID)
	s.Equal(1, created.PatchID)
	s.Equal(models.StatusDraft, created.VariableStatus)
	s.Equal(testUser, created.CreatedBy)
	s.Equal("play-enhjoern-a", created.Owner.Team)

	s.Run("duplicate short name", func() {
		body := map[string]any{
			"shortName":  "landbak",
			"validFrom":  "2024-01-01",
			"name":       map[string]string{"nb": "x"},
			"definition": map[string]string{"nb": "y"},
		}
		rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/variable-definitions?active_group="+testGroup, body))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "conflict")
	})

	s.Run("missing active group", func() {
		rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/variable-definitions", map[string]any{"shortName": "a"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("malformed body", func() {
		rr := s.do(testutil.NewRawRequest(http.MethodPost, "/variable-definitions?active_group="+testGroup, `{"validFrom":"01.01.2024"}`))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *HandlerSuite) TestLifecycle() {
	created := s.create()
	base := "/variable-definitions/" + created.DefinitionID

	rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, base+"/patches", map[string]any{
		"comment": map[string]string{"nb": "Oppdatert"},
	}))
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	s.Equal(2, testutil.UnmarshalResponse[models.SavedVariableDefinition](s.T(), rr).PatchID)

	rr = s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, base+"/validity-periods", map[string]any{
		"validFrom":  "2024-06-05",
		"definition": map[string]string{"nb": "Ny definisjon", "en": "New definition"},
	}))
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	period := testutil.UnmarshalResponse[models.SavedVariableDefinition](s.T(), rr)
	s.Equal("2024-06-05", period.ValidFrom.String())
	s.Equal(1, period.PatchID)

	rr = s.do(httptest.NewRequest(http.MethodGet, base+"?date_of_validity=2024-03-01", nil))
	s.Require().Equal(http.StatusOK, rr.Code)
	atDate := testutil.UnmarshalResponse[models.SavedVariableDefinition](s.T(), rr)
	s.Equal("2024-01-01", atDate.ValidFrom.String())
	s.Equal("2024-06-04", atDate.ValidUntil.String())
	s.Equal("Oppdatert", atDate.Comment.Nb)

	rr = s.do(httptest.NewRequest(http.MethodGet, base, nil))
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal("Ny definisjon", testutil.UnmarshalResponse[models.SavedVariableDefinition](s.T(), rr).Definition.Nb)

	rr = s.do(httptest.NewRequest(http.MethodGet, base+"/patches", nil))
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Len(testutil.UnmarshalResponse[[]models.SavedVariableDefinition](s.T(), rr), 4)

	rr = s.do(httptest.NewRequest(http.MethodGet, base+"/validity-periods", nil))
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Len(testutil.UnmarshalResponse[[]models.SavedVariableDefinition](s.T(), rr), 2)

	rr = s.do(httptest.NewRequest(http.MethodGet, base+"/patches/2?valid_from=2024-01-01", nil))
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal("Oppdatert", testutil.UnmarshalResponse[models.SavedVariableDefinition](s.T(), rr).Comment.Nb)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/variable-definitions?date_of_validity=2024-03-01", nil))
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Len(testutil.UnmarshalResponse[[]models.SavedVariableDefinition](s.T(), rr), 1)
}

func (s *HandlerSuite) TestRender() {
	created := s.create()
	rr := s.do(httptest.NewRequest(http.MethodGet, "/variable-definitions/"+created.DefinitionID+"?render=true&language=en", nil))
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	rendered := testutil.UnmarshalResponse[models.RenderedVariableDefinition](s.T(), rr)
	s.Equal("Country background", rendered.Definition)
	s.Require().Len(rendered.UnitTypes, 1)
	s.Equal("Person", rendered.UnitTypes[0].Title)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/variable-definitions/"+created.DefinitionID+"?render=true&language=de", nil))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
}

func (s *HandlerSuite) TestPatchRejections() {
	created := s.create()
	base := "/variable-definitions/" + created.DefinitionID

	s.Run("short name", func() {
		rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, base+"/patches", map[string]any{"shortName": "nytt"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("unknown period", func() {
		rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, base+"/patches?valid_from=2020-01-01", map[string]any{
			"comment": map[string]string{"nb": "x"},
		}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("bad date parameter", func() {
		rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, base+"/patches?valid_from=yesterday", map[string]any{}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("validity period without validFrom", func() {
		rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, base+"/validity-periods", map[string]any{
			"definition": map[string]string{"nb": "x"},
		}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("unchanged definition text", func() {
		rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, base+"/validity-periods", map[string]any{
			"validFrom": "2025-01-01",
		}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "conflict")
	})

	s.Run("bad patch id", func() {
		rr := s.do(httptest.NewRequest(http.MethodGet, base+"/patches/zero", nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *HandlerSuite) TestUnknownDefinition() {
	rr := s.do(httptest.NewRequest(http.MethodGet, "/variable-definitions/nope0000", nil))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}
