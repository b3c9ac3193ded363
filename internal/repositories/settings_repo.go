package repositories

import (
	"context"
	"time"

	"github.com/nisantasi/storefront/internal/database"
	"github.com/nisantasi/storefront/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const settingsCollection = "userSettings"

type SettingsRepository struct {
	coll *mongo.Collection
}

func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{coll: db.Collection(settingsCollection)}
}

func (r *SettingsRepository) GetByUserID(ctx context.Context, userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&settings)
	if err != nil {
		return nil, database.MapMongoError(err)
	}
	return &settings, nil
}

func (r *SettingsRepository) Create(ctx context.Context, settings *models.UserSettings) (*models.UserSettings, error) {
	result, err := r.coll.InsertOne(ctx, settings)
	if err != nil {
		return nil, database.MapMongoError(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		settings.ID = oid
	}
	return settings, nil
}

// UpdateSections applies a sectioned partial update and upserts if the user
// has no settings document yet.
func (r *SettingsRepository) UpdateSections(ctx context.Context, userID string, set bson.M) error {
	set["updatedAt"] = time.Now()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"userId": userID, "createdAt": time.Now()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return database.MapMongoError(err)
	}
	return nil
}

func (r *SettingsRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return database.MapMongoError(err)
	}
	return nil
}
