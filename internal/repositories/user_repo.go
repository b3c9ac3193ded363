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

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index. Called once at startup.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	var user models.User
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		return nil, database.MapMongoError(err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, database.MapMongoError(err)
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if user.Role == "" {
		user.Role = "user"
	}
	if user.Orders == nil {
		user.Orders = []primitive.ObjectID{}
	}
	if user.Favorites == nil {
		user.Favorites = []models.FavoriteItem{}
	}
	if user.Addresses == nil {
		user.Addresses = []models.Address{}
	}

	result, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return nil, database.MapMongoError(err)
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

// UpdateFields applies a partial $set update by user ID and returns the
// updated document.
func (r *UserRepository) UpdateFields(ctx context.Context, id string, set bson.M) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	set["updatedAt"] = time.Now()

	var user models.User
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		return nil, database.MapMongoError(err)
	}
	return &user, nil
}

// UpdateVerification applies a partial update of the verification fields.
// Set-pointers that are nil leave the field alone; ClearCode unsets the
// code/expiry pair so the two fields always change together.
func (r *UserRepository) UpdateVerification(ctx context.Context, email string, patch models.VerificationPatch) error {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Code != nil {
		set["verificationCode"] = *patch.Code
	}
	if patch.ExpiresAt != nil {
		set["verificationCodeExpiry"] = *patch.ExpiresAt
	}
	if patch.LastSentAt != nil {
		set["lastVerificationSent"] = *patch.LastSentAt
	}
	if patch.VerifiedAt != nil {
		set["emailVerified"] = *patch.VerifiedAt
	}

	update := bson.M{"$set": set}
	if patch.ClearCode {
		update["$unset"] = bson.M{
			"verificationCode":       "",
			"verificationCodeExpiry": "",
		}
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return database.MapMongoError(err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// UpdateFavorites replaces the favorites array on the user document.
func (r *UserRepository) UpdateFavorites(ctx context.Context, id string, favorites []models.FavoriteItem) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"favorites": favorites, "updatedAt": time.Now()}},
	)
	if err != nil {
		return database.MapMongoError(err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// EmailInUse reports whether another user already owns the given email.
func (r *UserRepository) EmailInUse(ctx context.Context, email, excludeID string) (bool, error) {
	filter := bson.M{"email": email}
	if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}

	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, database.MapMongoError(err)
	}
	return count > 0, nil
}
