package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AloneGhost12/website/internal/models"
)

const reviewListLimit = 200

type createReviewRequest struct {
	Rating float64 `json:"rating" binding:"min=1,max=5"`
	Text   string  `json:"text"`
}

type createReplyRequest struct {
	Text string `json:"text"`
}

func GetProductReviews(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(reviewListLimit)

		cursor, err := db.Collection("reviews").Find(ctx, bson.M{"productId": productID}, findOptions)
		if err != nil {
			log.Println("[REVIEW] [ERROR] list reviews failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		defer cursor.Close(ctx)

		reviews := make([]models.Review, 0)
		if err := cursor.All(ctx, &reviews); err != nil {
			log.Println("[REVIEW] [ERROR] decode reviews failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		c.JSON(http.StatusOK, reviews)
	}
}

func CreateReview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		var req createReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if req.Rating == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Rating required"})
				return
			}
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		now := time.Now()
		review := models.Review{
			ProductID: productID,
			UserID:    userID,
			UserName:  displayName(user),
			Rating:    req.Rating,
			Text:      strings.TrimSpace(req.Text),
			Replies:   []models.Reply{},
			CreatedAt: now,
			UpdatedAt: now,
		}

		res, err := db.Collection("reviews").InsertOne(ctx, review)
		if err != nil {
			log.Println("[REVIEW] [ERROR] insert review failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			review.ID = id
		}

		log.Println("[REVIEW] [INFO] review created for product:", productID.Hex())
		c.JSON(http.StatusCreated, review)
	}
}

func CreateReply(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		var req createReplyRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Text required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		// The reply author may be gone; keep the reply with a fallback name.
		reply := models.Reply{
			UserName:  "Admin",
			Text:      strings.TrimSpace(req.Text),
			CreatedAt: time.Now(),
		}
		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err == nil {
			reply.UserID = &user.ID
			reply.UserName = displayName(user)
		}

		var review models.Review
		err = db.Collection("reviews").FindOneAndUpdate(ctx,
			bson.M{"_id": reviewID},
			bson.M{
				"$push": bson.M{"replies": reply},
				"$set":  bson.M{"updatedAt": time.Now()},
			},
			updateReturnAfter(),
		).Decode(&review)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		c.JSON(http.StatusOK, review)
	}
}

func displayName(u models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
