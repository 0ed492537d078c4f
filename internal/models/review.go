package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reply is an embedded reply on a review. UserID may be nil when the author
// account has been deleted since.
type Reply struct {
	UserID    *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	UserName  string              `bson:"userName,omitempty" json:"userName,omitempty"`
	Text      string              `bson:"text" json:"text"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// Review belongs to one product and one user. UserName is denormalized from
// the author at creation time and not kept in sync with later name changes.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	UserName  string             `bson:"userName,omitempty" json:"userName,omitempty"`
	Rating    float64            `bson:"rating" json:"rating"`
	Text      string             `bson:"text,omitempty" json:"text,omitempty"`
	Replies   []Reply            `bson:"replies" json:"replies"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
