package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Phase is the lifecycle phase of a war season.
type Phase string

const (
	PhaseRegistration Phase = "registration"
	PhaseWarfare      Phase = "warfare"
	PhaseResolution   Phase = "resolution"
	PhaseCompleted    Phase = "completed"
)

// Season is one seasonal war cycle. The phase windows are fixed at season
// start; PhaseAt derives the current phase from them so clock sweeps and
// request paths agree. The prize pool accrues the forfeited stake remainder
// of every settled siege and is paid out once after the season completes.
type Season struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SeasonNumber       int                `bson:"season_number" json:"season_number"`
	Phase              Phase              `bson:"phase" json:"phase"`
	StartedAt          time.Time          `bson:"started_at" json:"started_at"`
	RegistrationEndsAt time.Time          `bson:"registration_ends_at" json:"registration_ends_at"`
	WarfareEndsAt      time.Time          `bson:"warfare_ends_at" json:"warfare_ends_at"`
	ResolutionEndsAt   time.Time          `bson:"resolution_ends_at" json:"resolution_ends_at"`
	CompletedAt        *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	PrizePool          int64              `bson:"prize_pool" json:"prize_pool"`
	RewardsDistributed bool               `bson:"rewards_distributed" json:"rewards_distributed"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PhaseAt derives the phase the season is in at the given instant.
func (s *Season) PhaseAt(now time.Time) Phase {
	switch {
	case now.Before(s.RegistrationEndsAt):
		return PhaseRegistration
	case now.Before(s.WarfareEndsAt):
		return PhaseWarfare
	case now.Before(s.ResolutionEndsAt):
		return PhaseResolution
	default:
		return PhaseCompleted
	}
}

// Completed reports whether the season has run its full course.
func (s *Season) Completed() bool {
	return s.Phase == PhaseCompleted
}

// PreRegistrationOpen reports whether colonies may queue for the next season
// at the given instant. A zero lead keeps the queue open for the whole
// season; otherwise it opens lead-time before the earliest possible next
// season start, which is this season's resolution end.
func (s *Season) PreRegistrationOpen(lead time.Duration, now time.Time) bool {
	if lead <= 0 {
		return true
	}
	return !now.Before(s.ResolutionEndsAt.Add(-lead))
}

// PreRegistration queues a colony for automatic registration when the next
// season starts. The stake is escrowed into the war pool when the entry is
// queued and refunded on cancellation. Rows are kept after cancellation for
// audit; an entry is never both activated and cancelled.
type PreRegistration struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SeasonNumber int                `bson:"season_number" json:"season_number"`
	ColonyID     int64              `bson:"colony_id" json:"colony_id"`
	Wallet       string             `bson:"wallet" json:"wallet"`
	Stake        int64              `bson:"stake" json:"stake"`
	Activated    bool               `bson:"activated" json:"activated"`
	Cancelled    bool               `bson:"cancelled" json:"cancelled"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	CancelledAt  *time.Time         `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
}

// Open reports whether the queue entry is still waiting for its season.
func (p *PreRegistration) Open() bool {
	return !p.Activated && !p.Cancelled
}

// Collection names
const (
	SeasonCollection          = "seasons"
	PreRegistrationCollection = "season_preregistrations"
)
