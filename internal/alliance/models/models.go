package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stability gauge bounds.
const (
	MinStability = 0
	MaxStability = 100
)

// Member is one colony inside an alliance together with its controlling
// wallet. The (alliance, wallet) pair is unique: no two colonies in the same
// alliance may share an owner.
type Member struct {
	ColonyID int64     `bson:"colony_id" json:"colony_id"`
	Wallet   string    `bson:"wallet" json:"wallet"`
	JoinedAt time.Time `bson:"joined_at" json:"joined_at"`
}

// Alliance is a multi-colony trust group with a shared treasury and a
// collective stability gauge. Alliances deactivate automatically when
// membership drops below two; records are never deleted.
type Alliance struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AllianceID     string             `bson:"alliance_id" json:"alliance_id"`
	Name           string             `bson:"name" json:"name"`
	LeaderColonyID int64              `bson:"leader_colony_id" json:"leader_colony_id"`
	Members        []Member           `bson:"members" json:"members"`
	Treasury       int64              `bson:"treasury" json:"treasury"`
	Stability      int                `bson:"stability" json:"stability"`
	Active         bool               `bson:"active" json:"active"`
	Betrayers      []int64            `bson:"betrayers" json:"betrayers"`
	BetrayalCount  int                `bson:"betrayal_count" json:"betrayal_count"`
	LastBetrayalAt *time.Time         `bson:"last_betrayal_at,omitempty" json:"last_betrayal_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasOwner reports whether any current member is controlled by the wallet.
func (a *Alliance) HasOwner(wallet string) bool {
	for _, m := range a.Members {
		if m.Wallet == wallet {
			return true
		}
	}
	return false
}

// HasColony reports whether the colony is a current member.
func (a *Alliance) HasColony(colonyID int64) bool {
	for _, m := range a.Members {
		if m.ColonyID == colonyID {
			return true
		}
	}
	return false
}

// IsBetrayer reports whether the colony carries a betrayal mark.
func (a *Alliance) IsBetrayer(colonyID int64) bool {
	for _, id := range a.Betrayers {
		if id == colonyID {
			return true
		}
	}
	return false
}

// ClampStability keeps a stability value inside the gauge bounds.
func ClampStability(stability int) int {
	if stability < MinStability {
		return MinStability
	}
	if stability > MaxStability {
		return MaxStability
	}
	return stability
}

// BetrayalCheck carries the facts needed to decide whether an attack on an
// allied colony counts as betrayal. Callers resolve every field up front so
// the decision itself stays a pure function.
type BetrayalCheck struct {
	AttackerColonyID          int64
	TargetColonyID            int64
	AttackerInAlliance        bool
	TargetOwnerInSameAlliance bool
	TargetIsPrimaryColony     bool
	TargetRegisteredForSeason bool
}

// IsBetrayal applies the betrayal rule: the attacker belongs to an alliance,
// the target's owner belongs to the same alliance, the attack is not
// self-directed, and the target enjoys alliance protection. Protection
// covers an owner's primary colony and any colony registered for the
// current season; an unregistered secondary colony is fair game.
func (c BetrayalCheck) IsBetrayal() bool {
	if !c.AttackerInAlliance || !c.TargetOwnerInSameAlliance {
		return false
	}
	if c.AttackerColonyID == c.TargetColonyID {
		return false
	}
	return c.TargetIsPrimaryColony || c.TargetRegisteredForSeason
}

// TreatyType classifies diplomatic treaties between alliances.
type TreatyType string

const (
	TreatyNonAggression TreatyType = "nap"
	TreatyTrade         TreatyType = "trade"
	TreatyMilitary      TreatyType = "military"
)

// TreatyStatus is the lifecycle state of a treaty.
type TreatyStatus string

const (
	TreatyProposed TreatyStatus = "proposed"
	TreatyActive   TreatyStatus = "active"
	TreatyRejected TreatyStatus = "rejected"
	TreatyExpired  TreatyStatus = "expired"
	TreatyBroken   TreatyStatus = "broken"
)

// DiplomaticTreaty links two alliances through a proposal, acceptance and
// expiry lifecycle. Breakage is recorded at the moment of the hostile act.
type DiplomaticTreaty struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TreatyID           string             `bson:"treaty_id" json:"treaty_id"`
	ProposerAllianceID string             `bson:"proposer_alliance_id" json:"proposer_alliance_id"`
	TargetAllianceID   string             `bson:"target_alliance_id" json:"target_alliance_id"`
	Type               TreatyType         `bson:"type" json:"type"`
	Status             TreatyStatus       `bson:"status" json:"status"`
	ProposedAt         time.Time          `bson:"proposed_at" json:"proposed_at"`
	AcceptedAt         *time.Time         `bson:"accepted_at,omitempty" json:"accepted_at,omitempty"`
	ExpiresAt          *time.Time         `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	BrokenAt           *time.Time         `bson:"broken_at,omitempty" json:"broken_at,omitempty"`
}

// Terminal reports whether the treaty can no longer change state.
func (t *DiplomaticTreaty) Terminal() bool {
	return t.Status == TreatyRejected || t.Status == TreatyExpired || t.Status == TreatyBroken
}

// Links reports whether the treaty involves both given alliances in either
// direction.
func (t *DiplomaticTreaty) Links(allianceA, allianceB string) bool {
	return (t.ProposerAllianceID == allianceA && t.TargetAllianceID == allianceB) ||
		(t.ProposerAllianceID == allianceB && t.TargetAllianceID == allianceA)
}

// ForgivenessProposal is a time-boxed, vote-gated proposal to clear a
// betrayal mark. Terminal once executed or expired.
type ForgivenessProposal struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProposalID       string             `bson:"proposal_id" json:"proposal_id"`
	AllianceID       string             `bson:"alliance_id" json:"alliance_id"`
	BetrayerColonyID int64              `bson:"betrayer_colony_id" json:"betrayer_colony_id"`
	ProposedBy       string             `bson:"proposed_by" json:"proposed_by"`
	VotesFor         int                `bson:"votes_for" json:"votes_for"`
	VotesAgainst     int                `bson:"votes_against" json:"votes_against"`
	Voters           []string           `bson:"voters" json:"voters"`
	Executed         bool               `bson:"executed" json:"executed"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	ExpiresAt        time.Time          `bson:"expires_at" json:"expires_at"`
}

// HasVoted reports whether the wallet already cast a vote.
func (p *ForgivenessProposal) HasVoted(wallet string) bool {
	for _, v := range p.Voters {
		if v == wallet {
			return true
		}
	}
	return false
}

// Passed reports whether the proposal carries: a strict majority of the
// member count voting in favor, and more votes for than against.
func (p *ForgivenessProposal) Passed(memberCount int) bool {
	if memberCount <= 0 {
		return false
	}
	return p.VotesFor > p.VotesAgainst && p.VotesFor*2 > memberCount
}

// Collection names
const (
	AllianceCollection            = "alliances"
	DiplomaticTreatyCollection    = "diplomatic_treaties"
	ForgivenessProposalCollection = "forgiveness_proposals"
)
