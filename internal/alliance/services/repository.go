package services

import (
	"context"
	"time"

	"colonywars/internal/alliance/models"
	"colonywars/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles alliance, treaty and forgiveness persistence
type Repository struct {
	mongodb *database.MongoDB
}

// NewRepository creates a new alliance repository
func NewRepository(mongodb *database.MongoDB) *Repository {
	return &Repository{mongodb: mongodb}
}

func (r *Repository) alliances() *mongo.Collection {
	return r.mongodb.Database.Collection(models.AllianceCollection)
}

func (r *Repository) treaties() *mongo.Collection {
	return r.mongodb.Database.Collection(models.DiplomaticTreatyCollection)
}

func (r *Repository) proposals() *mongo.Collection {
	return r.mongodb.Database.Collection(models.ForgivenessProposalCollection)
}

// CreateAlliance inserts a new alliance record
func (r *Repository) CreateAlliance(ctx context.Context, alliance *models.Alliance) error {
	now := time.Now().UTC()
	alliance.CreatedAt = now
	alliance.UpdatedAt = now
	_, err := r.alliances().InsertOne(ctx, alliance)
	return err
}

// GetAlliance retrieves an alliance by its public identifier
func (r *Repository) GetAlliance(ctx context.Context, allianceID string) (*models.Alliance, error) {
	var alliance models.Alliance
	err := r.alliances().FindOne(ctx, bson.M{"alliance_id": allianceID}).Decode(&alliance)
	if err != nil {
		return nil, err
	}
	return &alliance, nil
}

// GetAllianceByColony finds the active alliance a colony belongs to.
// Returns mongo.ErrNoDocuments when the colony is unaligned.
func (r *Repository) GetAllianceByColony(ctx context.Context, colonyID int64) (*models.Alliance, error) {
	var alliance models.Alliance
	filter := bson.M{"active": true, "members.colony_id": colonyID}
	err := r.alliances().FindOne(ctx, filter).Decode(&alliance)
	if err != nil {
		return nil, err
	}
	return &alliance, nil
}

// GetAllianceByOwner finds the active alliance a wallet has a colony in
func (r *Repository) GetAllianceByOwner(ctx context.Context, wallet string) (*models.Alliance, error) {
	var alliance models.Alliance
	filter := bson.M{"active": true, "members.wallet": wallet}
	err := r.alliances().FindOne(ctx, filter).Decode(&alliance)
	if err != nil {
		return nil, err
	}
	return &alliance, nil
}

// UpdateAlliance replaces the mutable state of an alliance record
func (r *Repository) UpdateAlliance(ctx context.Context, alliance *models.Alliance) error {
	alliance.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"name":             alliance.Name,
		"leader_colony_id": alliance.LeaderColonyID,
		"members":          alliance.Members,
		"treasury":         alliance.Treasury,
		"stability":        alliance.Stability,
		"active":           alliance.Active,
		"betrayers":        alliance.Betrayers,
		"betrayal_count":   alliance.BetrayalCount,
		"last_betrayal_at": alliance.LastBetrayalAt,
		"updated_at":       alliance.UpdatedAt,
	}}
	result, err := r.alliances().UpdateOne(ctx, bson.M{"alliance_id": alliance.AllianceID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListAlliances returns alliances, optionally filtered to active ones
func (r *Repository) ListAlliances(ctx context.Context, activeOnly bool) ([]models.Alliance, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	cursor, err := r.alliances().Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var alliances []models.Alliance
	if err := cursor.All(ctx, &alliances); err != nil {
		return nil, err
	}
	return alliances, nil
}

// CreateTreaty inserts a new treaty record
func (r *Repository) CreateTreaty(ctx context.Context, treaty *models.DiplomaticTreaty) error {
	_, err := r.treaties().InsertOne(ctx, treaty)
	return err
}

// GetTreaty retrieves a treaty by its public identifier
func (r *Repository) GetTreaty(ctx context.Context, treatyID string) (*models.DiplomaticTreaty, error) {
	var treaty models.DiplomaticTreaty
	err := r.treaties().FindOne(ctx, bson.M{"treaty_id": treatyID}).Decode(&treaty)
	if err != nil {
		return nil, err
	}
	return &treaty, nil
}

// UpdateTreaty replaces the lifecycle state of a treaty
func (r *Repository) UpdateTreaty(ctx context.Context, treaty *models.DiplomaticTreaty) error {
	update := bson.M{"$set": bson.M{
		"status":      treaty.Status,
		"accepted_at": treaty.AcceptedAt,
		"expires_at":  treaty.ExpiresAt,
		"broken_at":   treaty.BrokenAt,
	}}
	result, err := r.treaties().UpdateOne(ctx, bson.M{"treaty_id": treaty.TreatyID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ActiveTreatyBetween finds an active treaty linking two alliances in
// either direction. Returns mongo.ErrNoDocuments when none exists.
func (r *Repository) ActiveTreatyBetween(ctx context.Context, allianceA, allianceB string) (*models.DiplomaticTreaty, error) {
	filter := bson.M{
		"status": models.TreatyActive,
		"$or": bson.A{
			bson.M{"proposer_alliance_id": allianceA, "target_alliance_id": allianceB},
			bson.M{"proposer_alliance_id": allianceB, "target_alliance_id": allianceA},
		},
	}
	var treaty models.DiplomaticTreaty
	err := r.treaties().FindOne(ctx, filter).Decode(&treaty)
	if err != nil {
		return nil, err
	}
	return &treaty, nil
}

// ListTreatiesForAlliance returns every treaty an alliance is party to
func (r *Repository) ListTreatiesForAlliance(ctx context.Context, allianceID string) ([]models.DiplomaticTreaty, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"proposer_alliance_id": allianceID},
		bson.M{"target_alliance_id": allianceID},
	}}
	cursor, err := r.treaties().Find(ctx, filter, options.Find().SetSort(bson.M{"proposed_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var treaties []models.DiplomaticTreaty
	if err := cursor.All(ctx, &treaties); err != nil {
		return nil, err
	}
	return treaties, nil
}

// ExpireTreaties marks active treaties past their expiry as expired.
// Returns the number of treaties touched.
func (r *Repository) ExpireTreaties(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{"status": models.TreatyActive, "expires_at": bson.M{"$lte": now}}
	update := bson.M{"$set": bson.M{"status": models.TreatyExpired}}
	result, err := r.treaties().UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// CreateProposal inserts a forgiveness proposal
func (r *Repository) CreateProposal(ctx context.Context, proposal *models.ForgivenessProposal) error {
	_, err := r.proposals().InsertOne(ctx, proposal)
	return err
}

// GetProposal retrieves a forgiveness proposal by its public identifier
func (r *Repository) GetProposal(ctx context.Context, proposalID string) (*models.ForgivenessProposal, error) {
	var proposal models.ForgivenessProposal
	err := r.proposals().FindOne(ctx, bson.M{"proposal_id": proposalID}).Decode(&proposal)
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// GetOpenProposal finds the pending proposal for a betrayer within an
// alliance, if one exists.
func (r *Repository) GetOpenProposal(ctx context.Context, allianceID string, betrayerColonyID int64, now time.Time) (*models.ForgivenessProposal, error) {
	filter := bson.M{
		"alliance_id":        allianceID,
		"betrayer_colony_id": betrayerColonyID,
		"executed":           false,
		"expires_at":         bson.M{"$gt": now},
	}
	var proposal models.ForgivenessProposal
	err := r.proposals().FindOne(ctx, filter).Decode(&proposal)
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// RecordVote appends a vote to a proposal. The filter excludes wallets that
// already voted so double votes never match.
func (r *Repository) RecordVote(ctx context.Context, proposalID, wallet string, inFavor bool) error {
	field := "votes_against"
	if inFavor {
		field = "votes_for"
	}
	filter := bson.M{"proposal_id": proposalID, "executed": false, "voters": bson.M{"$ne": wallet}}
	update := bson.M{
		"$inc":  bson.M{field: 1},
		"$push": bson.M{"voters": wallet},
	}
	result, err := r.proposals().UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkProposalExecuted flags a proposal as executed
func (r *Repository) MarkProposalExecuted(ctx context.Context, proposalID string) error {
	result, err := r.proposals().UpdateOne(ctx,
		bson.M{"proposal_id": proposalID, "executed": false},
		bson.M{"$set": bson.M{"executed": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteExpiredProposals removes unexecuted proposals past their voting
// window. Returns the number deleted.
func (r *Repository) DeleteExpiredProposals(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{"executed": false, "expires_at": bson.M{"$lte": now}}
	result, err := r.proposals().DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// CreateIndexes creates the indexes needed by the alliance collections
func (r *Repository) CreateIndexes(ctx context.Context) error {
	_, err := r.alliances().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "alliance_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "members.colony_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "members.wallet", Value: 1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = r.treaties().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "treaty_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "proposer_alliance_id", Value: 1}, {Key: "target_alliance_id", Value: 1}, {Key: "status", Value: 1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = r.proposals().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "proposal_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "alliance_id", Value: 1}, {Key: "betrayer_colony_id", Value: 1}, {Key: "executed", Value: 1}},
		},
	})
	return err
}
