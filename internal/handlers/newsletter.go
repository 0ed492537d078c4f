package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AloneGhost12/website/internal/models"
)

type newsletterRequest struct {
	Email string `json:"email"`
}

// SubscribeNewsletter upserts by email so repeat subscriptions are idempotent.
func SubscribeNewsletter(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req newsletterRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required."})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		opts := options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After)

		var sub models.NewsletterSubscription
		err := db.Collection("newsletter").FindOneAndUpdate(ctx,
			bson.M{"email": email},
			bson.M{
				"$set":         bson.M{"email": email, "updatedAt": now},
				"$setOnInsert": bson.M{"createdAt": now},
			},
			opts,
		).Decode(&sub)
		if err != nil {
			log.Println("[NEWSLETTER] [ERROR] upsert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"ok": true, "id": sub.ID.Hex()})
	}
}
