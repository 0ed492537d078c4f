package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/AloneGhost12/website/internal/mail"
	"github.com/AloneGhost12/website/internal/models"
	"github.com/AloneGhost12/website/internal/otp"
)

// bcryptCost matches the cost the stored hashes were created with.
const bcryptCost = 10

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password" binding:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

func Signup(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if strings.TrimSpace(req.Email) == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required."})
			return
		}
		if len(req.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters."})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] signup password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		now := time.Now()
		user := models.User{
			Name:         strings.TrimSpace(req.Name),
			Username:     strings.ToLower(strings.TrimSpace(req.Username)),
			Email:        strings.ToLower(strings.TrimSpace(req.Email)),
			PasswordHash: string(hash),
			Phone:        strings.TrimSpace(req.Phone),
			Addresses:    []models.Address{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				log.Println("[AUTH] [ERROR] signup duplicate key:", user.Email)
				c.JSON(http.StatusConflict, gin.H{"error": "Email already in use."})
				return
			}
			log.Println("[AUTH] [ERROR] signup insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		id, _ := res.InsertedID.(primitive.ObjectID)
		token, err := issueToken(id, user.Email, jwtSecret, tokenTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] signup token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		log.Println("[AUTH] [INFO] user registered:", user.Email)
		// Welcome flag so the client can show a notice once.
		c.JSON(http.StatusCreated, gin.H{
			"id":      id.Hex(),
			"name":    user.Name,
			"email":   user.Email,
			"token":   token,
			"welcome": true,
		})
	}
}

func Login(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required."})
			return
		}

		// identifier may arrive as "email" from older clients.
		identifier := strings.TrimSpace(req.Identifier)
		if identifier == "" {
			identifier = strings.TrimSpace(req.Email)
		}
		if identifier == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Identifier is required."})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		// The identifier matches email, username, or phone; first match wins.
		filter := bson.M{"$or": []bson.M{
			{"email": strings.ToLower(identifier)},
			{"username": strings.ToLower(identifier)},
			{"phone": identifier},
		}}

		var user models.User
		if err := db.Collection("users").FindOne(ctx, filter).Decode(&user); err != nil {
			log.Println("[AUTH] [ERROR] login no matching user")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] login password mismatch for:", user.Email)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
			return
		}

		token, err := issueToken(user.ID, user.Email, jwtSecret, tokenTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		log.Println("[AUTH] [INFO] login succeeded:", user.Email)
		c.JSON(http.StatusOK, gin.H{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"token": token,
		})
	}
}

// AdminLogin exchanges the configured admin credentials for the static admin
// key, which the admin client replays via the X-Admin-Key header.
func AdminLogin(adminKey, adminUsername, adminPassword string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		if adminKey == "" || adminUsername == "" || adminPassword == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin login not configured"})
			return
		}

		if req.Username != adminUsername || req.Password != adminPassword {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"key": adminKey})
	}
}

func ForgotPassword(db *mongo.Database, store *otp.Store, mailer *mail.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Err(); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "No user with that email"})
				return
			}
			log.Println("[AUTH] [ERROR] forgot-password lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		code, err := otp.GenerateCode()
		if err != nil {
			log.Println("[AUTH] [ERROR] otp generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		store.Put(req.Email, code)

		if err := mailer.SendOTP(req.Email, code); err != nil {
			log.Println("[AUTH] [WARN] otp email send failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
			return
		}

		log.Println("[AUTH] [INFO] reset otp sent to:", email)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func ResetPassword(db *mongo.Database, store *otp.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
			return
		}
		if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
			return
		}

		if !store.Verify(req.Email, req.OTP) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
			return
		}
		if len(req.NewPassword) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password too short"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		email := strings.ToLower(strings.TrimSpace(req.Email))
		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] reset password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		_, err = db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$set": bson.M{
				"passwordHash": string(hash),
				"updatedAt":    time.Now(),
			},
		})
		if err != nil {
			log.Println("[AUTH] [ERROR] reset password update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		store.Invalidate(req.Email)

		log.Println("[AUTH] [INFO] password reset for:", email)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func issueToken(userID primitive.ObjectID, email, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID.Hex(),
		"email": email,
		"exp":   time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
