package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/nisantasi/storefront/internal/database"
	"github.com/nisantasi/storefront/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cartsCollection = "carts"

type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *database.DB) *CartRepository {
	return &CartRepository{coll: db.Collection(cartsCollection)}
}

// GetByUserID loads the user's cart, returning an empty cart if none exists yet.
func (r *CartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(database.MapMongoError(err), models.ErrNotFound) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return nil, database.MapMongoError(err)
	}
	return &cart, nil
}

// Save upserts the cart document. Last writer wins.
func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": cart.UserID},
		bson.M{"$set": bson.M{"items": cart.Items, "updatedAt": cart.UpdatedAt}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return database.MapMongoError(err)
	}
	return nil
}

// Delete removes the user's cart document entirely.
func (r *CartRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return database.MapMongoError(err)
	}
	return nil
}
