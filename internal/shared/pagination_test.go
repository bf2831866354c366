package shared

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name             string
		skip, take, tot  int
		wantTake, wantTP int
	}{
		{name: "exact pages", skip: 0, take: 10, tot: 30, wantTake: 10, wantTP: 3},
		{name: "partial last page", skip: 10, take: 10, tot: 31, wantTake: 10, wantTP: 4},
		{name: "default take", skip: 0, take: 0, tot: 51, wantTake: DefaultTake, wantTP: 2},
		{name: "empty", skip: 0, take: 5, tot: 0, wantTake: 5, wantTP: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.skip, tt.take, tt.tot)
			assert.Equal(t, tt.wantTake, p.Take)
			assert.Equal(t, tt.wantTP, p.TotalPages)
			assert.Equal(t, tt.tot, p.Total)
		})
	}

	assert.Equal(t, 0, NewPagination(-3, 10, 1).Skip)
}

func TestParseSkipTake(t *testing.T) {
	skip, take := ParseSkipTake(url.Values{"skip": {"20"}, "take": {"5000"}})
	assert.Equal(t, 20, skip)
	assert.Equal(t, MaxTake, take)

	skip, take = ParseSkipTake(url.Values{"skip": {"-1"}, "take": {"abc"}})
	assert.Equal(t, 0, skip)
	assert.Equal(t, 0, take)
}
