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

	"github.com/AloneGhost12/website/internal/mail"
	"github.com/AloneGhost12/website/internal/models"
)

const (
	adminListLimit        = 500
	announcementMailLimit = 1000
	defaultTempBan        = 7 * 24 * time.Hour
)

type createProductRequest struct {
	Title       string   `json:"title"`
	Cat         string   `json:"cat"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Rating      float64  `json:"rating" binding:"min=0,max=5"`
	Img         string   `json:"img"`
	Stock       int      `json:"stock" binding:"min=0"`
	Description string   `json:"description"`
}

type banRequest struct {
	Action string     `json:"action"`
	Until  *time.Time `json:"until"`
}

type updateOrderRequest struct {
	Status string `json:"status"`
}

type announceRequest struct {
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	EmailAll bool   `json:"emailAll"`
}

func AdminCreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Cat) == "" || req.Price == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields: title, cat, price"})
			return
		}

		now := time.Now()
		product := models.Product{
			Title:       strings.TrimSpace(req.Title),
			Cat:         strings.TrimSpace(req.Cat),
			Price:       *req.Price,
			Rating:      req.Rating,
			Img:         strings.TrimSpace(req.Img),
			Stock:       req.Stock,
			Description: strings.TrimSpace(req.Description),
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			log.Println("[ADMIN] [ERROR] product insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			product.ID = id
		}

		log.Println("[ADMIN] [INFO] product created:", product.Title)
		c.JSON(http.StatusCreated, product)
	}
}

// AdminDeleteProduct removes the product unconditionally; orders and reviews
// referencing it keep their snapshots.
func AdminDeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": productID}); err != nil {
			log.Println("[ADMIN] [ERROR] product delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func AdminGetUsers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(adminListLimit)

		cursor, err := db.Collection("users").Find(ctx, bson.M{}, findOptions)
		if err != nil {
			log.Println("[ADMIN] [ERROR] list users failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		defer cursor.Close(ctx)

		var users []models.User
		if err := cursor.All(ctx, &users); err != nil {
			log.Println("[ADMIN] [ERROR] decode users failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		// Public-safe projection, no password hashes.
		out := make([]gin.H, 0, len(users))
		for _, u := range users {
			out = append(out, gin.H{
				"id":        u.ID.Hex(),
				"name":      u.Name,
				"email":     u.Email,
				"banned":    u.Banned,
				"banUntil":  u.BanUntil,
				"createdAt": u.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, out)
	}
}

// AdminBanUser applies one of the ban actions: "ban" (indefinite), "unban",
// or "temp" with an explicit or default 7-day until date. Ban state is
// advisory metadata; nothing rejects a banned user's requests.
func AdminBanUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req banRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		var update bson.M
		switch req.Action {
		case "ban":
			update = bson.M{"banned": true, "banUntil": nil}
		case "unban":
			update = bson.M{"banned": false, "banUntil": nil}
		case "temp":
			until := time.Now().Add(defaultTempBan)
			if req.Until != nil {
				until = *req.Until
			}
			update = bson.M{"banned": true, "banUntil": until}
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err = db.Collection("users").FindOneAndUpdate(ctx,
			bson.M{"_id": userID},
			bson.M{"$set": update},
			updateReturnAfter(),
		).Decode(&user)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		log.Printf("[ADMIN] [INFO] ban action %q applied to %s", req.Action, userID.Hex())
		c.JSON(http.StatusOK, gin.H{
			"id":       user.ID.Hex(),
			"banned":   user.Banned,
			"banUntil": user.BanUntil,
		})
	}
}

// AdminDeleteUser removes a user and their orders. Authored reviews stay,
// keeping only the denormalized name.
func AdminDeleteUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("users").DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
			log.Println("[ADMIN] [ERROR] user delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		if _, err := db.Collection("orders").DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
			log.Println("[ADMIN] [ERROR] user orders delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		log.Println("[ADMIN] [INFO] user deleted:", userID.Hex())
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func AdminGetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(adminListLimit)

		cursor, err := db.Collection("orders").Find(ctx, bson.M{}, findOptions)
		if err != nil {
			log.Println("[ADMIN] [ERROR] list orders failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			log.Println("[ADMIN] [ERROR] decode orders failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// AdminUpdateOrderStatus enforces set membership only; any status may
// transition to any other.
func AdminUpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req updateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil || !models.ValidOrderStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOneAndUpdate(ctx,
			bson.M{"_id": orderID},
			bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now()}},
			updateReturnAfter(),
		).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		log.Printf("[ADMIN] [INFO] order %s status set to %s", orderID.Hex(), req.Status)
		c.JSON(http.StatusOK, order)
	}
}

func AdminDeleteReview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("reviews").DeleteOne(ctx, bson.M{"_id": reviewID}); err != nil {
			log.Println("[ADMIN] [ERROR] review delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// AdminAnnounce persists the announcement unconditionally. The optional
// subscriber fan-out is best-effort: send failures are logged, never
// surfaced, because the announcement itself already succeeded.
func AdminAnnounce(db *mongo.Database, mailer *mail.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req announceRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Subject == "" || req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing subject/message"})
			return
		}

		announcement := models.Announcement{
			Subject:   req.Subject,
			Message:   req.Message,
			CreatedAt: time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("announcements").InsertOne(ctx, announcement)
		if err != nil {
			log.Println("[ANNOUNCE] [ERROR] insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			announcement.ID = id
		}

		if req.EmailAll {
			if err := emailSubscribers(ctx, db, mailer, req.Subject, req.Message); err != nil {
				log.Println("[ANNOUNCE] [WARN] email send failed:", err)
			}
		}

		log.Println("[ANNOUNCE] [INFO] announcement created:", req.Subject)
		c.JSON(http.StatusCreated, announcement)
	}
}

func emailSubscribers(ctx context.Context, db *mongo.Database, mailer *mail.Mailer, subject, message string) error {
	findOptions := options.Find().SetLimit(announcementMailLimit)

	cursor, err := db.Collection("newsletter").Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var subs []models.NewsletterSubscription
	if err := cursor.All(ctx, &subs); err != nil {
		return err
	}

	bcc := make([]string, 0, len(subs))
	for _, sub := range subs {
		if sub.Email != "" {
			bcc = append(bcc, sub.Email)
		}
	}

	return mailer.SendAnnouncement(bcc, subject, message)
}
