package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskForce_HasParticipant(t *testing.T) {
	taskForce := &TaskForce{
		Participants: []Participant{
			{ColonyID: 1, Wallet: "0xaaa"},
			{ColonyID: 2, Wallet: "0xbbb"},
		},
	}

	assert.True(t, taskForce.HasParticipant(1))
	assert.True(t, taskForce.HasParticipant(2))
	assert.False(t, taskForce.HasParticipant(3))
}

func TestTaskForce_Terminal(t *testing.T) {
	taskForce := &TaskForce{Status: StatusForming}
	assert.False(t, taskForce.Terminal())

	taskForce.Status = StatusLaunched
	assert.True(t, taskForce.Terminal())

	taskForce.Status = StatusDisbanded
	assert.True(t, taskForce.Terminal())
}
