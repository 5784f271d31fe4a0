package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllStatuses_Order(t *testing.T) {
	want := []Status{StatusApplied, StatusScreening, StatusInterview, StatusOffer, StatusRejected}
	assert.Equal(t, want, AllStatuses())

	// callers get a copy
	s := AllStatuses()
	s[0] = "x"
	assert.Equal(t, StatusApplied, AllStatuses()[0])
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" interview ")
	require.NoError(t, err)
	assert.Equal(t, StatusInterview, st)

	_, err = ParseStatus("Hired")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestStatus_UnmarshalJSON(t *testing.T) {
	var s Status
	require.NoError(t, json.Unmarshal([]byte(`"Offer"`), &s))
	assert.Equal(t, StatusOffer, s)

	require.Error(t, json.Unmarshal([]byte(`""`), &s))
	require.Error(t, json.Unmarshal([]byte(`"offer"`), &s))
}

func TestStatus_StyleIsDistinctPerStatus(t *testing.T) {
	seen := map[string]Status{}
	for _, s := range AllStatuses() {
		c := s.Style().Color
		prev, dup := seen[c]
		require.False(t, dup, "%s and %s share color %s", prev, s, c)
		seen[c] = s
	}
	assert.Equal(t, "gray", Status("Hired").Style().Color)
}

func TestStatus_Badge(t *testing.T) {
	assert.Equal(t, "[Screening]", StatusScreening.Badge(false))
	assert.Equal(t, "\x1b[32m[Offer]\x1b[0m", StatusOffer.Badge(true))
}

func TestAllowAll(t *testing.T) {
	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			assert.NoError(t, AllowAll(from, to), "%s -> %s", from, to)
		}
	}
	assert.ErrorIs(t, AllowAll(StatusApplied, "Hired"), common.ErrValidation)
}

func TestForwardOnly(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusApplied, StatusScreening, true},
		{StatusApplied, StatusRejected, true},
		{StatusScreening, StatusInterview, true},
		{StatusInterview, StatusOffer, true},
		{StatusInterview, StatusInterview, true},
		{"", StatusApplied, true},
		{StatusInterview, StatusScreening, false},
		{StatusOffer, StatusRejected, false},
		{StatusRejected, StatusApplied, false},
	}
	for _, tt := range tests {
		err := ForwardOnly(tt.from, tt.to)
		if tt.ok {
			assert.NoError(t, err, "%s -> %s", tt.from, tt.to)
			continue
		}
		assert.ErrorIs(t, err, common.ErrValidation, "%s -> %s", tt.from, tt.to)
	}
}
