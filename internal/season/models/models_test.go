package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeason_PhaseAt(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	season := &Season{
		SeasonNumber:       4,
		StartedAt:          start,
		RegistrationEndsAt: start.Add(72 * time.Hour),
		WarfareEndsAt:      start.Add(72*time.Hour + 14*24*time.Hour),
		ResolutionEndsAt:   start.Add(72*time.Hour + 14*24*time.Hour + 48*time.Hour),
	}

	tests := []struct {
		name string
		at   time.Time
		want Phase
	}{
		{name: "season start", at: start, want: PhaseRegistration},
		{name: "just before registration closes", at: season.RegistrationEndsAt.Add(-time.Second), want: PhaseRegistration},
		{name: "registration boundary opens warfare", at: season.RegistrationEndsAt, want: PhaseWarfare},
		{name: "mid warfare", at: season.RegistrationEndsAt.Add(7 * 24 * time.Hour), want: PhaseWarfare},
		{name: "warfare boundary opens resolution", at: season.WarfareEndsAt, want: PhaseResolution},
		{name: "resolution boundary completes", at: season.ResolutionEndsAt, want: PhaseCompleted},
		{name: "long after the season", at: season.ResolutionEndsAt.Add(30 * 24 * time.Hour), want: PhaseCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, season.PhaseAt(tt.at))
		})
	}
}

func TestSeason_Completed(t *testing.T) {
	season := &Season{Phase: PhaseWarfare}
	assert.False(t, season.Completed())

	season.Phase = PhaseCompleted
	assert.True(t, season.Completed())
}

func TestSeason_PreRegistrationOpen(t *testing.T) {
	resolutionEnd := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	season := &Season{SeasonNumber: 6, ResolutionEndsAt: resolutionEnd}

	// A zero lead keeps the queue open for the whole season.
	assert.True(t, season.PreRegistrationOpen(0, resolutionEnd.Add(-30*24*time.Hour)))

	lead := 48 * time.Hour
	assert.False(t, season.PreRegistrationOpen(lead, resolutionEnd.Add(-72*time.Hour)))
	assert.True(t, season.PreRegistrationOpen(lead, resolutionEnd.Add(-48*time.Hour)))
	assert.True(t, season.PreRegistrationOpen(lead, resolutionEnd.Add(-time.Hour)))
}

func TestPreRegistration_Open(t *testing.T) {
	prereg := &PreRegistration{SeasonNumber: 5, ColonyID: 9, Stake: 250}
	assert.True(t, prereg.Open())

	prereg.Activated = true
	assert.False(t, prereg.Open())

	prereg.Activated = false
	prereg.Cancelled = true
	assert.False(t, prereg.Open())
}
