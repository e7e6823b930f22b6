package vardok

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vardef/pkg/platform/sentinel"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return b
}

func loadDocs(t *testing.T) map[string]*FIMD {
	t.Helper()
	nb, err := Decode(readFixture(t, "130_nb.xml"))
	require.NoError(t, err)
	en, err := Decode(readFixture(t, "130_en.xml"))
	require.NoError(t, err)
	return map[string]*FIMD{"nb": nb, "en": en}
}

func TestDecode(t *testing.T) {
	doc, err := Decode(readFixture(t, "130_nb.xml"))
	require.NoError(t, err)

	assert.Equal(t, "urn:ssb:conceptvariable:vardok:130", doc.ID)
	assert.Equal(t, "Sivilstand", doc.Common.Title)
	assert.Equal(t, "Statistisk sentralbyrå", doc.DC.Creator, "latin-1 prolog is honoured")
	assert.Equal(t, []string{"en"}, doc.Languages())
	require.NotNil(t, doc.Relations.ClassificationRelation)
	assert.Equal(t, "http://www.ssb.no/classification/klass/19", doc.Relations.ClassificationRelation.Href)

	_, err = Decode([]byte("<FIMD><Common>"))
	assert.ErrorIs(t, err, sentinel.ErrBadData)
}

func TestTranslate(t *testing.T) {
	draft, err := Translate("130", loadDocs(t))
	require.NoError(t, err)

	assert.Equal(t, "sivst", draft.ShortName)
	assert.Equal(t, "1990-01-01", draft.ValidFrom.String())
	assert.Nil(t, draft.ValidUntil)
	assert.Equal(t, "Sivilstand", draft.Name.Nb)
	assert.Equal(t, "Marital status", draft.Name.En)
	assert.Empty(t, draft.Name.Nn)
	assert.Equal(t, "A person's status in relation to marriage legislation.", draft.Definition.En)
	assert.Equal(t, []string{"20"}, draft.UnitTypes)
	assert.Equal(t, "19", draft.ClassificationReference)
	assert.Equal(t, "https://www.ssb.no/a/metadata/conceptvariable/vardok/130/nb", draft.ExternalReferenceURI)
	assert.Equal(t, "befolkning@ssb.no", draft.Contact.Email)
	assert.Equal(t, "Seksjon for befolkningsstatistikk", draft.Contact.Title.Nb)
	assert.Equal(t, "Registrert partnerskap regnes som gift.", draft.Comment.Nb)
}

func TestTranslateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]*FIMD)
		err    error
	}{
		{"no primary language", func(d map[string]*FIMD) { delete(d, "nb") }, ErrMissingTitle},
		{"empty title", func(d map[string]*FIMD) { d["nb"].Common.Title = "  " }, ErrMissingTitle},
		{"empty description", func(d map[string]*FIMD) { d["nb"].Common.Description = "" }, ErrMissingDescription},
		{"bad validity", func(d map[string]*FIMD) { d["nb"].DC.Valid = "sometime in the nineties" }, ErrInvalidValidity},
		{"unknown unit", func(d map[string]*FIMD) { d["nb"].Variable.StatisticalUnit = "Hval" }, ErrUnknownUnitType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := loadDocs(t)
			tt.mutate(docs)
			_, err := Translate("130", docs)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "landbak", ShortName("2", "LANDBAK"))
	assert.Equal(t, "wlonn_1", ShortName("2", " Wlonn_1 "))
	assert.Equal(t, "generert_2", ShortName("2", "Tilstand-år"))
	assert.Equal(t, "generert_2", ShortName("2", ""))
}

func TestParseValidity(t *testing.T) {
	from, until, err := ParseValidity("From: 2003-01-01 - To: 2010-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2003-01-01", from.String())
	require.NotNil(t, until)
	assert.Equal(t, "2010-12-31", until.String())

	_, until, err = ParseValidity("From:2003-01-01 - To:")
	require.NoError(t, err)
	assert.Nil(t, until)

	_, _, err = ParseValidity("From: 2003-13-01 - To: ")
	assert.ErrorIs(t, err, ErrInvalidValidity)
}

func TestClientFetch(t *testing.T) {
	nb := readFixture(t, "130_nb.xml")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/130/nb":
			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write(nb)
		case "/404/nb":
			w.WriteHeader(http.StatusNotFound)
		case "/empty/nb":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	c.http.RetryWaitMin = time.Millisecond
	c.http.RetryWaitMax = time.Millisecond
	ctx := context.Background()

	doc, err := c.Fetch(ctx, "130", "nb")
	require.NoError(t, err)
	assert.Equal(t, "Sivilstand", doc.Common.Title)

	_, err = c.Fetch(ctx, "404", "nb")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	_, err = c.Fetch(ctx, "empty", "nb")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	_, err = c.Fetch(ctx, "boom", "nb")
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}

func TestClientFetchTimeoutCoversRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 100*time.Millisecond, nil)
	start := time.Now()
	_, err := c.Fetch(context.Background(), "130", "nb")
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}
