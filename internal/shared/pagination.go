package shared

import (
	"math"
	"net/url"
	"strconv"
)

const (
	// DefaultTake is applied when a listing request does not limit its page size.
	DefaultTake = 50
	// MaxTake caps the page size of a single listing request.
	MaxTake = 1000
)

// Pagination contains metadata for offset-based listings.
type Pagination struct {
	Skip       int `json:"skip"`
	Take       int `json:"take"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes pagination metadata.
func NewPagination(skip, take, total int) Pagination {
	if take <= 0 {
		take = DefaultTake
	}
	if skip < 0 {
		skip = 0
	}
	totalPages := int(math.Ceil(float64(total) / float64(take)))
	return Pagination{Skip: skip, Take: take, Total: total, TotalPages: totalPages}
}

// ParseSkipTake reads skip/take query parameters. Missing or malformed values yield zero,
// which the repositories treat as "no offset" and "default page size".
func ParseSkipTake(q url.Values) (skip, take int) {
	skip, _ = strconv.Atoi(q.Get("skip"))
	take, _ = strconv.Atoi(q.Get("take"))
	if skip < 0 {
		skip = 0
	}
	if take < 0 {
		take = 0
	}
	if take > MaxTake {
		take = MaxTake
	}
	return skip, take
}
