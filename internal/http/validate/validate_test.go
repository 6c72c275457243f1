package validate_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/http/validate"
)

type line struct {
	Quantity float64 `json:"quantity" validate:"gte=0"`
}

type order struct {
	Name  string `json:"name" validate:"required"`
	Lines []line `json:"lines" validate:"required,dive"`
}

type search struct {
	Amount *float64 `form:"amount" validate:"required"`
	Rate   string   `form:"rate" validate:"omitempty,oneof=standard reduced"`
	Limit  int      `form:"limit" validate:"omitempty,lte=10"`
}

type path struct {
	Kind string `form:"kind" validate:"oneof=inventory customers"`
}

func echo[T any](t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, ok := validate.From[T](r.Context())
		require.True(t, ok)

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(v))
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) validate.ErrorResponse {
	t.Helper()

	var resp validate.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	return resp
}

func TestRequest_Body(t *testing.T) {
	type testCase struct {
		name        string
		body        string
		wantStatus  int
		wantDetails []validate.Detail
	}

	tests := []testCase{
		{
			name:       "Valid",
			body:       `{"name":"a","lines":[{"quantity":2}]}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "MissingName",
			body:       `{"lines":[{"quantity":2}]}`,
			wantStatus: http.StatusBadRequest,
			wantDetails: []validate.Detail{
				{Field: "name", Message: "This field is required"},
			},
		},
		{
			name:       "NestedField",
			body:       `{"name":"a","lines":[{"quantity":1},{"quantity":-1}]}`,
			wantStatus: http.StatusBadRequest,
			wantDetails: []validate.Detail{
				{Field: "lines[1].quantity", Message: "Must be greater than or equal to 0"},
			},
		},
		{
			name:       "InvalidJSON",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := validate.Request[order](validate.Body)(echo[order](t))

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				var got order
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, "a", got.Name)

				return
			}

			resp := decodeError(t, rec)
			assert.Equal(t, "Request validation failed", resp.Error)
			require.NotEmpty(t, resp.Details)

			if tt.wantDetails != nil {
				assert.Equal(t, tt.wantDetails, resp.Details)
			}
		})
	}
}

func TestRequest_EmptyBody(t *testing.T) {
	h := validate.Request[order](validate.Body)(echo[order](t))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "body", decodeError(t, rec).Details[0].Field)
}

func TestRequest_Query(t *testing.T) {
	t.Run("Coerces Values", func(t *testing.T) {
		var got search

		h := validate.Request[search](validate.Query)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = validate.From[search](r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/?amount=12,5&rate=reduced&limit=3", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got.Amount)
		assert.Equal(t, 12.5, *got.Amount)
		assert.Equal(t, "reduced", got.Rate)
		assert.Equal(t, 3, got.Limit)
	})

	t.Run("Zero Amount Is Present", func(t *testing.T) {
		h := validate.Request[search](validate.Query)(echo[search](t))

		req := httptest.NewRequest(http.MethodGet, "/?amount=0", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Reports Each Field", func(t *testing.T) {
		h := validate.Request[search](validate.Query)(echo[search](t))

		req := httptest.NewRequest(http.MethodGet, "/?amount=veel&limit=x", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []validate.Detail{
			{Field: "amount", Message: "Must be a number"},
			{Field: "limit", Message: "Must be an integer"},
		}, decodeError(t, rec).Details)
	})

	t.Run("Rule Violations", func(t *testing.T) {
		h := validate.Request[search](validate.Query)(echo[search](t))

		req := httptest.NewRequest(http.MethodGet, "/?rate=hoog&limit=50", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []validate.Detail{
			{Field: "amount", Message: "This field is required"},
			{Field: "rate", Message: "Must be one of: standard reduced"},
			{Field: "limit", Message: "Must be less than or equal to 10"},
		}, decodeError(t, rec).Details)
	})
}

func TestRequest_Params(t *testing.T) {
	r := chi.NewRouter()
	r.With(validate.Request[path](validate.Params)).Post("/import/{kind}", echo[path](t).ServeHTTP)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/import/customers", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"Kind":"customers"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/import/orders", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "kind", decodeError(t, rec).Details[0].Field)
}

func TestFrom_Missing(t *testing.T) {
	_, ok := validate.From[order](httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
