package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/salesorder/internal/shared"
)

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetail {
	t.Helper()
	var p ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		title  string
	}{
		{fmt.Errorf("%w: order", shared.ErrNotFound), http.StatusNotFound, "Not Found"},
		{fmt.Errorf("%w: so number", shared.ErrConflict), http.StatusConflict, "Conflict"},
		{fmt.Errorf("%w: already submitted", shared.ErrInvalidState), http.StatusConflict, "Invalid State"},
		{shared.ErrIdempotencyConflict, http.StatusConflict, "Conflict"},
		{fmt.Errorf("%w: bad", shared.ErrValidation), http.StatusBadRequest, "Validation Failed"},
		{errors.New("boom"), http.StatusInternalServerError, "Internal Error"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		RespondError(rec, tt.err)
		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
		p := decodeProblem(t, rec)
		assert.Equal(t, tt.title, p.Title)
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, errors.New("dial tcp 10.0.0.1:5432: refused"))
	p := decodeProblem(t, rec)
	assert.Equal(t, "internal error", p.Detail)
}

func TestRespondErrorIncludesFields(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, fmt.Errorf("create: %w", shared.NewValidationError("lineItems", "required")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, "required", p.Errors["lineItems"])
}

type sampleLine struct {
	Quantity decimal.Decimal `json:"quantity" validate:"gte=0"`
}

type sampleForm struct {
	Name  string       `json:"name" validate:"required,max=5"`
	Lines []sampleLine `json:"lineItems" validate:"required,min=1,dive"`
}

func TestValidatorUsesJSONNames(t *testing.T) {
	v := NewValidator()
	form := sampleForm{Name: "", Lines: []sampleLine{{Quantity: decimal.NewFromInt(-1)}}}
	err := ValidationErrors(v.Struct(form))

	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "is required", verr.Fields["name"])
	assert.Contains(t, verr.Fields, "lineItems[0].quantity")
}

func TestValidatorAcceptsValidForm(t *testing.T) {
	v := NewValidator()
	form := sampleForm{Name: "ok", Lines: []sampleLine{{Quantity: decimal.RequireFromString("2.5")}}}
	assert.NoError(t, v.Struct(form))
}

func TestDecodeJSONRejectsMalformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	var form sampleForm
	err := DecodeJSON(req, &form)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestOptionalDateQueries(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?from=2024-03-01&to=2024-03-31&bad=31/03", nil)

	from, err := OptionalDateQuery(req, "from")
	require.NoError(t, err)
	require.NotNil(t, from)
	assert.Equal(t, "2024-03-01T00:00:00Z", from.Format(time.RFC3339))

	to, err := OptionalDateEndQuery(req, "to")
	require.NoError(t, err)
	require.NotNil(t, to)
	assert.Equal(t, "2024-03-31T23:59:59Z", to.Format(time.RFC3339))

	missing, err := OptionalDateQuery(req, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = OptionalDateQuery(req, "bad")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestOptionalUUIDQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?ok=6f1c3f0e-8f2a-4c7b-9a51-2f4ad6d5d7b1&bad=nope", nil)

	id, err := OptionalUUIDQuery(req, "ok")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "6f1c3f0e-8f2a-4c7b-9a51-2f4ad6d5d7b1", id.String())

	_, err = OptionalUUIDQuery(req, "bad")
	assert.ErrorIs(t, err, shared.ErrValidation)
}
