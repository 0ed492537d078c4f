package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AloneGhost12/website/internal/models"
)

const announcementListLimit = 20

func GetAnnouncements(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(announcementListLimit)

		cursor, err := db.Collection("announcements").Find(ctx, bson.M{}, findOptions)
		if err != nil {
			log.Println("[ANNOUNCE] [ERROR] list failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		defer cursor.Close(ctx)

		announcements := make([]models.Announcement, 0)
		if err := cursor.All(ctx, &announcements); err != nil {
			log.Println("[ANNOUNCE] [ERROR] decode failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		c.JSON(http.StatusOK, announcements)
	}
}
