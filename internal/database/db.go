package database

import (
	"errors"

	"github.com/nisantasi/storefront/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
)

func MapMongoError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ErrNotFound
	}

	// 11000 is the duplicate key error code (unique index violation)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrConflict
	}

	return err
}
