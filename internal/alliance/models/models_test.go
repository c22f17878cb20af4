package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBetrayalCheck_IsBetrayal(t *testing.T) {
	tests := []struct {
		name  string
		check BetrayalCheck
		want  bool
	}{
		{
			name: "attack on allied primary colony",
			check: BetrayalCheck{
				AttackerColonyID:          1,
				TargetColonyID:            2,
				AttackerInAlliance:        true,
				TargetOwnerInSameAlliance: true,
				TargetIsPrimaryColony:     true,
			},
			want: true,
		},
		{
			name: "attack on allied season-registered colony",
			check: BetrayalCheck{
				AttackerColonyID:          1,
				TargetColonyID:            2,
				AttackerInAlliance:        true,
				TargetOwnerInSameAlliance: true,
				TargetRegisteredForSeason: true,
			},
			want: true,
		},
		{
			name: "unregistered secondary colony is fair game",
			check: BetrayalCheck{
				AttackerColonyID:          1,
				TargetColonyID:            2,
				AttackerInAlliance:        true,
				TargetOwnerInSameAlliance: true,
			},
			want: false,
		},
		{
			name: "attacker outside any alliance",
			check: BetrayalCheck{
				AttackerColonyID:          1,
				TargetColonyID:            2,
				TargetOwnerInSameAlliance: true,
				TargetIsPrimaryColony:     true,
			},
			want: false,
		},
		{
			name: "target owner in a different alliance",
			check: BetrayalCheck{
				AttackerColonyID:      1,
				TargetColonyID:        2,
				AttackerInAlliance:    true,
				TargetIsPrimaryColony: true,
			},
			want: false,
		},
		{
			name: "self-directed attack is never betrayal",
			check: BetrayalCheck{
				AttackerColonyID:          7,
				TargetColonyID:            7,
				AttackerInAlliance:        true,
				TargetOwnerInSameAlliance: true,
				TargetIsPrimaryColony:     true,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check.IsBetrayal())
		})
	}
}

func TestClampStability(t *testing.T) {
	assert.Equal(t, 0, ClampStability(-10))
	assert.Equal(t, 0, ClampStability(0))
	assert.Equal(t, 55, ClampStability(55))
	assert.Equal(t, 100, ClampStability(100))
	assert.Equal(t, 100, ClampStability(140))
}

func TestAlliance_Membership(t *testing.T) {
	alliance := &Alliance{
		Members: []Member{
			{ColonyID: 1, Wallet: "0xaaa"},
			{ColonyID: 2, Wallet: "0xbbb"},
		},
		Betrayers: []int64{9},
	}

	assert.True(t, alliance.HasColony(1))
	assert.False(t, alliance.HasColony(3))
	assert.True(t, alliance.HasOwner("0xbbb"))
	assert.False(t, alliance.HasOwner("0xccc"))
	assert.True(t, alliance.IsBetrayer(9))
	assert.False(t, alliance.IsBetrayer(1))
}

func TestForgivenessProposal_Passed(t *testing.T) {
	tests := []struct {
		name         string
		votesFor     int
		votesAgainst int
		memberCount  int
		want         bool
	}{
		{name: "clear majority", votesFor: 3, votesAgainst: 1, memberCount: 5, want: true},
		{name: "exactly half is not a majority", votesFor: 2, votesAgainst: 0, memberCount: 4, want: false},
		{name: "majority but more against", votesFor: 3, votesAgainst: 4, memberCount: 5, want: false},
		{name: "tie fails", votesFor: 2, votesAgainst: 2, memberCount: 3, want: false},
		{name: "no members", votesFor: 1, votesAgainst: 0, memberCount: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proposal := &ForgivenessProposal{VotesFor: tt.votesFor, VotesAgainst: tt.votesAgainst}
			assert.Equal(t, tt.want, proposal.Passed(tt.memberCount))
		})
	}
}

func TestForgivenessProposal_HasVoted(t *testing.T) {
	proposal := &ForgivenessProposal{Voters: []string{"0xaaa", "0xbbb"}}
	assert.True(t, proposal.HasVoted("0xaaa"))
	assert.False(t, proposal.HasVoted("0xccc"))
}

func TestDiplomaticTreaty_Terminal(t *testing.T) {
	terminal := []TreatyStatus{TreatyRejected, TreatyExpired, TreatyBroken}
	for _, status := range terminal {
		treaty := &DiplomaticTreaty{Status: status}
		assert.True(t, treaty.Terminal(), "status %s", status)
	}

	for _, status := range []TreatyStatus{TreatyProposed, TreatyActive} {
		treaty := &DiplomaticTreaty{Status: status}
		assert.False(t, treaty.Terminal(), "status %s", status)
	}
}

func TestDiplomaticTreaty_Links(t *testing.T) {
	treaty := &DiplomaticTreaty{
		ProposerAllianceID: "alpha",
		TargetAllianceID:   "beta",
	}

	assert.True(t, treaty.Links("alpha", "beta"))
	assert.True(t, treaty.Links("beta", "alpha"))
	assert.False(t, treaty.Links("alpha", "gamma"))
}
