package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/AloneGhost12/website/internal/config"
	"github.com/AloneGhost12/website/internal/database"
	"github.com/AloneGhost12/website/internal/handlers"
	"github.com/AloneGhost12/website/internal/mail"
	"github.com/AloneGhost12/website/internal/middleware"
	"github.com/AloneGhost12/website/internal/otp"
)

func main() {
	config.Load()
	cfg := config.AppEnv

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(cfg.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureNewsletterIndexes(db); err != nil {
		log.Printf("newsletter index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureReviewIndexes(db); err != nil {
		log.Printf("review index warning: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		log.Fatal(err)
	}

	otpStore := otp.NewStore(10 * time.Minute)
	mailer := mail.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	r := gin.Default()

	// Requests without an Origin header (non-browser) bypass the check.
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "X-Admin-Key", "Authorization"},
	}))

	r.Static("/uploads", cfg.UploadsDir)

	auth := middleware.UserAuth(cfg.JWTSecret)

	api := r.Group("/api")

	api.GET("/health", handlers.Health())

	api.POST("/auth/signup", handlers.Signup(db, cfg.JWTSecret, cfg.TokenTTL))
	api.POST("/auth/login", handlers.Login(db, cfg.JWTSecret, cfg.TokenTTL))
	api.POST("/auth/forgot-password", handlers.ForgotPassword(db, otpStore, mailer))
	api.POST("/auth/reset-password", handlers.ResetPassword(db, otpStore))
	api.POST("/admin/login", handlers.AdminLogin(cfg.AdminKey, cfg.AdminUsername, cfg.AdminPassword))

	api.GET("/products", handlers.GetProducts(db))
	api.GET("/products/:id", handlers.GetProduct(db))
	api.GET("/products/:id/reviews", handlers.GetProductReviews(db))
	api.GET("/announcements", handlers.GetAnnouncements(db))
	api.POST("/newsletter", handlers.SubscribeNewsletter(db))
	api.POST("/chat", handlers.Chat(db, cfg.JWTSecret))

	api.GET("/me", auth, handlers.GetMe(db))
	api.PATCH("/user", auth, handlers.UpdateProfile(db))
	api.POST("/user/password", auth, handlers.ChangePassword(db))
	api.POST("/user/profile-pic", auth, handlers.UploadProfilePic(db, cfg.UploadsDir))
	api.DELETE("/user/profile-pic", auth, handlers.DeleteProfilePic(db, cfg.UploadsDir))
	api.GET("/user/addresses", auth, handlers.GetAddresses(db))
	api.POST("/user/addresses", auth, handlers.CreateAddress(db))
	api.DELETE("/user/addresses/:id", auth, handlers.DeleteAddress(db))
	api.PATCH("/user/addresses/:id/default", auth, handlers.SetDefaultAddress(db))
	api.DELETE("/user", auth, handlers.DeleteAccount(db))

	api.POST("/orders", auth, handlers.CreateOrder(db))
	api.GET("/my/orders", auth, handlers.GetMyOrders(db))
	api.POST("/products/:id/reviews", auth, handlers.CreateReview(db))
	api.POST("/reviews/:id/replies", auth, handlers.CreateReply(db))

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(cfg.AdminKey))
	{
		admin.POST("/products", handlers.AdminCreateProduct(db))
		admin.DELETE("/products/:id", handlers.AdminDeleteProduct(db))
		admin.GET("/users", handlers.AdminGetUsers(db))
		admin.PATCH("/users/:id/ban", handlers.AdminBanUser(db))
		admin.DELETE("/users/:id", handlers.AdminDeleteUser(db))
		admin.GET("/orders", handlers.AdminGetOrders(db))
		admin.PATCH("/orders/:id", handlers.AdminUpdateOrderStatus(db))
		admin.DELETE("/reviews/:id", handlers.AdminDeleteReview(db))
		admin.POST("/announce", handlers.AdminAnnounce(db, mailer))
	}

	r.Run(":" + cfg.Port)
}
