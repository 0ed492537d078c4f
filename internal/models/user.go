package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is an embedded address entry owned by a single user. At most one
// address per user carries isDefault=true.
type Address struct {
	ID        string `bson:"_id" json:"id"`
	Label     string `bson:"label,omitempty" json:"label,omitempty"`
	Name      string `bson:"name,omitempty" json:"name,omitempty"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	Line1     string `bson:"line1,omitempty" json:"line1,omitempty"`
	Line2     string `bson:"line2,omitempty" json:"line2,omitempty"`
	City      string `bson:"city,omitempty" json:"city,omitempty"`
	State     string `bson:"state,omitempty" json:"state,omitempty"`
	Zip       string `bson:"zip,omitempty" json:"zip,omitempty"`
	Country   string `bson:"country,omitempty" json:"country,omitempty"`
	IsDefault bool   `bson:"isDefault" json:"isDefault"`
}

// User represents the application user account. Username and phone are
// optional; when absent the field is omitted so the sparse unique indexes
// ignore the document.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name,omitempty" json:"name,omitempty"`
	Username      string             `bson:"username,omitempty" json:"username,omitempty"`
	Email         string             `bson:"email" json:"email"`
	PasswordHash  string             `bson:"passwordHash" json:"-"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Banned        bool               `bson:"banned" json:"banned"`
	BanUntil      *time.Time         `bson:"banUntil,omitempty" json:"banUntil,omitempty"`
	Addresses     []Address          `bson:"addresses" json:"addresses"`
	ProfilePicURL string             `bson:"profilePicUrl,omitempty" json:"profilePicUrl,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
