package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "vardef/pkg/domain-errors"
	"vardef/pkg/platform/sentinel"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]string{"id": "wypvb3wd"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "wypvb3wd", decode(t, w)["id"])
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		status      int
		code        string
		description string
	}{
		{"validation", dErrors.New(dErrors.CodeValidation, "name must have a value in nb"), http.StatusBadRequest, "validation_error", "name must have a value in nb"},
		{"not found", dErrors.New(dErrors.CodeNotFound, "no such definition"), http.StatusNotFound, "not_found", "no such definition"},
		{"conflict", dErrors.Wrap(sentinel.ErrConflict, dErrors.CodeConflict, "short name taken"), http.StatusConflict, "conflict", "short name taken"},
		{"forbidden", dErrors.New(dErrors.CodeForbidden, "not owner"), http.StatusForbidden, "forbidden", "not owner"},
		{"upstream", dErrors.New(dErrors.CodeUnavailable, "klass is down"), http.StatusBadGateway, "dependency_unavailable", "klass is down"},
		{"wrapped coded error", fmt.Errorf("handler: %w", dErrors.New(dErrors.CodeBadRequest, "bad date")), http.StatusBadRequest, "bad_request", "bad date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.code, body["error"])
			assert.Equal(t, tt.description, body["error_description"])
		})
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	for _, err := range []error{
		dErrors.New(dErrors.CodeInternal, "db failed"),
		errors.New("pq: connection refused"),
	} {
		w := httptest.NewRecorder()
		WriteError(w, err)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decode(t, w)
		assert.Equal(t, "internal_error", body["error"])
		assert.NotContains(t, body, "error_description")
	}
}
