package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is a shipping or profile address embedded in a user document.
type Address struct {
	Street     string `bson:"street,omitempty" json:"street,omitempty"`
	City       string `bson:"city,omitempty" json:"city,omitempty"`
	District   string `bson:"district,omitempty" json:"district,omitempty"`
	PostalCode string `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	Country    string `bson:"country,omitempty" json:"country,omitempty"`
}

// SocialMedia holds optional profile links.
type SocialMedia struct {
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
}

// User is a document in the users collection. The verification fields live
// inline on the record, not in a separate collection.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	FirstName       string             `bson:"firstName" json:"firstName"`
	LastName        string             `bson:"lastName" json:"lastName"`
	Email           string             `bson:"email" json:"email"`
	Phone           string             `bson:"phone" json:"phone,omitempty"`
	PasswordHash    string             `bson:"password" json:"-"`
	AcceptMarketing bool               `bson:"acceptMarketing" json:"acceptMarketing"`
	Role            string             `bson:"role" json:"role"`

	BirthDate   string       `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	Gender      string       `bson:"gender,omitempty" json:"gender,omitempty"`
	Avatar      string       `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Bio         string       `bson:"bio,omitempty" json:"bio,omitempty"`
	Address     *Address     `bson:"address,omitempty" json:"address,omitempty"`
	SocialMedia *SocialMedia `bson:"socialMedia,omitempty" json:"socialMedia,omitempty"`

	Orders    []primitive.ObjectID `bson:"orders" json:"orders"`
	Favorites []FavoriteItem       `bson:"favorites" json:"favorites"`
	Addresses []Address            `bson:"addresses" json:"addresses"`

	Verification VerificationState `bson:",inline" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// EmailVerified reports whether the user's email address has been verified.
func (u *User) EmailVerified() bool {
	return u.Verification.Verified()
}
