package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AloneGhost12/website/internal/chat"
	"github.com/AloneGhost12/website/internal/middleware"
	"github.com/AloneGhost12/website/internal/models"
)

type chatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type chatRequest struct {
	Message string     `json:"message"`
	History []chatTurn `json:"history"`
}

// Chat answers a single turn. Authentication is optional; a valid bearer
// token only personalizes the order-status answer.
func Chat(db *mongo.Database, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		q := strings.ToLower(req.Message)
		links := chat.SiteLinks(requestScheme(c), c.Request.Host)

		if chat.IsOrderStatusQuery(q) {
			prefix := "You can check your order status in Account → Orders"
			if recent, ok := latestOrderForCaller(c, db, jwtSecret); ok {
				id := recent.ID.Hex()
				prefix = fmt.Sprintf("Your latest order (%s) is currently “%s”.", id[len(id)-6:], recent.Status)
			}
			c.JSON(http.StatusOK, gin.H{"answer": fmt.Sprintf("%s. Open: %s", prefix, links.Orders)})
			return
		}

		if answer, ok := chat.Reply(q, links); ok {
			c.JSON(http.StatusOK, gin.H{"answer": answer})
			return
		}

		if answer, ok := chat.FollowUpNudge(q, lastUserTurn(req.History)); ok {
			c.JSON(http.StatusOK, gin.H{"answer": answer})
			return
		}

		c.JSON(http.StatusOK, gin.H{"answer": chat.Fallback()})
	}
}

func lastUserTurn(history []chatTurn) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			return history[i].Text
		}
	}
	return ""
}

func latestOrderForCaller(c *gin.Context, db *mongo.Database, jwtSecret string) (models.Order, bool) {
	raw := strings.TrimSpace(c.GetHeader("Authorization"))
	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return models.Order{}, false
	}

	userID, err := middleware.UserIDFromToken(parts[1], jwtSecret)
	if err != nil {
		return models.Order{}, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	findOptions := options.FindOne().
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var order models.Order
	if err := db.Collection("orders").FindOne(ctx, bson.M{"userId": userID}, findOptions).Decode(&order); err != nil {
		if err != mongo.ErrNoDocuments {
			log.Println("[CHAT] [ERROR] latest order lookup failed:", err)
		}
		return models.Order{}, false
	}

	return order, true
}

func requestScheme(c *gin.Context) string {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}
