package kit

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_IncludesRequestID(t *testing.T) {
	h := chimw.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"title": "Dune"})
	}))

	req := httptest.NewRequest(http.MethodGet, "/books/Dune", nil)
	req.Header.Set(chimw.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"not found","details":{"title":"Dune"},"request_id":"abc-123"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{name: "ok", body: `{"title":"Emma"}`, want: "Emma"},
		{name: "ok_trailing_newline", body: "{\"title\":\"Emma\"}\n", want: "Emma"},
		{name: "unknown_field", body: `{"title":"Emma","id":1}`},
		{name: "trailing_object", body: `{"title":"Emma"}{"title":"x"}`, wantErr: ErrTrailingData},
		{name: "trailing_brace", body: `{"title":"Emma"}}`, wantErr: ErrTrailingData},
		{name: "trailing_bracket", body: `{"title":"Emma"}]`, wantErr: ErrTrailingData},
		{name: "trailing_brace_after_space", body: "{\"title\":\"Emma\"} \n}", wantErr: ErrTrailingData},
		{name: "empty", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var p payload
			err := DecodeJSON(rec, req, &p)

			if tt.want != "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, p.Title)
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			}
		})
	}
}

func TestMetricsAuth(t *testing.T) {
	h := MetricsAuth("secret")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for header, want := range map[string]int{
		"":              http.StatusForbidden,
		"Bearer wrong":  http.StatusForbidden,
		"Basic secret":  http.StatusForbidden,
		"Bearer secret": http.StatusOK,
	} {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, header)
	}

	closed := MetricsAuth("")(http.NotFoundHandler())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Authorization", "Bearer ")
	closed.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
