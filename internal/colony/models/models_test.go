package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampStress(t *testing.T) {
	const max = 10
	assert.Equal(t, 0, ClampStress(-1, max))
	assert.Equal(t, 0, ClampStress(0, max))
	assert.Equal(t, 5, ClampStress(5, max))
	assert.Equal(t, max, ClampStress(max, max))
	assert.Equal(t, max, ClampStress(max+3, max))
}

func TestWarProfile_RegisteredForSeason(t *testing.T) {
	tests := []struct {
		name    string
		profile WarProfile
		season  int
		want    bool
	}{
		{
			name:    "registered for the asked season",
			profile: WarProfile{Registered: true, SeasonNumber: 3},
			season:  3,
			want:    true,
		},
		{
			name:    "stale registration from a previous season",
			profile: WarProfile{Registered: true, SeasonNumber: 2},
			season:  3,
			want:    false,
		},
		{
			name:    "never registered",
			profile: WarProfile{SeasonNumber: 3},
			season:  3,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.RegisteredForSeason(tt.season))
		})
	}
}
