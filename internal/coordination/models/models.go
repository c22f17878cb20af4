package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the lifecycle state of a task force.
type Status string

const (
	StatusForming   Status = "forming"
	StatusLaunched  Status = "launched"
	StatusDisbanded Status = "disbanded"
)

// Participant is one colony committed to a task force together with the
// stake it brings.
type Participant struct {
	ColonyID int64     `bson:"colony_id" json:"colony_id"`
	Wallet   string    `bson:"wallet" json:"wallet"`
	Stake    int64     `bson:"stake" json:"stake"`
	JoinedAt time.Time `bson:"joined_at" json:"joined_at"`
}

// TaskForce is a group of colonies assembling a coordinated attack on a
// territory. Launching converts it into a siege with bonus damage.
type TaskForce struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TaskForceID       string             `bson:"task_force_id" json:"task_force_id"`
	SeasonNumber      int                `bson:"season_number" json:"season_number"`
	LeaderColonyID    int64              `bson:"leader_colony_id" json:"leader_colony_id"`
	TargetTerritoryID int64              `bson:"target_territory_id" json:"target_territory_id"`
	Participants      []Participant      `bson:"participants" json:"participants"`
	Status            Status             `bson:"status" json:"status"`
	SiegeID           string             `bson:"siege_id,omitempty" json:"siege_id,omitempty"`

	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
	LaunchedAt *time.Time `bson:"launched_at,omitempty" json:"launched_at,omitempty"`
}

// HasParticipant reports whether a colony is already committed.
func (t *TaskForce) HasParticipant(colonyID int64) bool {
	for _, p := range t.Participants {
		if p.ColonyID == colonyID {
			return true
		}
	}
	return false
}

// Terminal reports whether the task force can no longer change state.
func (t *TaskForce) Terminal() bool {
	return t.Status == StatusLaunched || t.Status == StatusDisbanded
}

// TaskForceCollection is the mongo collection name
const TaskForceCollection = "task_forces"
