package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AloneGhost12/website/internal/models"
)

const maxAvatarSize = 2 << 20 // 2MB

var allowedAvatarExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

func UploadProfilePic(db *mongo.Database, uploadsDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		filename, err := saveAvatar(file, uploadsDir)
		if err != nil {
			log.Println("[UPLOAD] [ERROR] avatar save failed:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Previous file is removed so uploads do not accumulate.
		if user.ProfilePicURL != "" {
			if err := safeDeleteUpload(uploadsDir, user.ProfilePicURL); err != nil {
				log.Println("[UPLOAD] [WARN] old avatar delete failed:", err)
			}
		}

		publicURL := "/uploads/" + filename
		_, err = db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{
				"profilePicUrl": publicURL,
				"updatedAt":     time.Now(),
			},
		})
		if err != nil {
			log.Println("[UPLOAD] [ERROR] avatar update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		log.Println("[UPLOAD] [INFO] avatar updated:", publicURL)
		c.JSON(http.StatusOK, gin.H{"ok": true, "profilePicUrl": publicURL})
	}
}

func DeleteProfilePic(db *mongo.Database, uploadsDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		if user.ProfilePicURL != "" {
			if err := safeDeleteUpload(uploadsDir, user.ProfilePicURL); err != nil {
				log.Println("[UPLOAD] [WARN] avatar delete failed:", err)
			}
		}

		_, err := db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{
				"profilePicUrl": "",
				"updatedAt":     time.Now(),
			},
		})
		if err != nil {
			log.Println("[UPLOAD] [ERROR] avatar clear failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// avatarFilename builds a predictable, timestamp-based name for an upload.
func avatarFilename(original string, now time.Time) (string, error) {
	extension := strings.ToLower(filepath.Ext(original))
	if _, ok := allowedAvatarExtensions[extension]; !ok {
		return "", fmt.Errorf("unsupported image type: %s", extension)
	}
	return fmt.Sprintf("avatar_%d%s", now.UnixMilli(), extension), nil
}

func saveAvatar(file *multipart.FileHeader, uploadsDir string) (string, error) {
	if file.Size > maxAvatarSize {
		return "", fmt.Errorf("file too large (max 2MB)")
	}

	filename, err := avatarFilename(file.Filename, time.Now())
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return "", err
	}

	fullPath := filepath.Join(uploadsDir, filename)
	out, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", err
	}

	return filename, nil
}

// safeDeleteUpload removes a previously stored upload, refusing anything
// that resolves outside the uploads directory.
func safeDeleteUpload(uploadsDir, publicURL string) error {
	trimmed := strings.TrimSpace(publicURL)
	if trimmed == "" {
		return nil
	}

	cleanRel := path.Clean("/" + strings.TrimPrefix(trimmed, "/"))
	cleanRel = strings.TrimPrefix(cleanRel, "/")
	if !strings.HasPrefix(cleanRel, "uploads/") {
		return fmt.Errorf("refusing to delete non-upload path: %s", publicURL)
	}
	cleanRel = strings.TrimPrefix(cleanRel, "uploads/")

	cleanBase := filepath.Clean(uploadsDir)
	targetPath := filepath.Join(cleanBase, filepath.FromSlash(cleanRel))
	cleanTarget := filepath.Clean(targetPath)
	if cleanTarget == cleanBase || !strings.HasPrefix(cleanTarget, cleanBase+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside uploads dir: %s", publicURL)
	}

	if err := os.Remove(cleanTarget); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return nil
}
