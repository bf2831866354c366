package httpx

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/odyssey-erp/salesorder/internal/shared"
)

// UUIDParam parses a UUID path parameter.
func UUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, shared.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

// OptionalUUIDQuery parses a UUID query parameter, returning nil when absent.
func OptionalUUIDQuery(r *http.Request, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, shared.NewValidationError(name, "must be a UUID")
	}
	return &id, nil
}

// OptionalDateQuery accepts RFC3339 timestamps or plain YYYY-MM-DD dates.
func OptionalDateQuery(r *http.Request, name string) (*time.Time, error) {
	t, _, err := parseDateQuery(r, name)
	return t, err
}

// OptionalDateEndQuery is OptionalDateQuery for inclusive upper bounds: a plain
// date is widened to the last instant of that day.
func OptionalDateEndQuery(r *http.Request, name string) (*time.Time, error) {
	t, dateOnly, err := parseDateQuery(r, name)
	if err != nil || t == nil || !dateOnly {
		return t, err
	}
	end := t.Add(24*time.Hour - time.Nanosecond)
	return &end, nil
}

func parseDateQuery(r *http.Request, name string) (*time.Time, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, false, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, false, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t, true, nil
	}
	return nil, false, shared.NewValidationError(name, fmt.Sprintf("invalid date %q", raw))
}
