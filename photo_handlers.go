package main

import (
	"net/http"
	"os"
	"path/filepath"

	"pb01/models"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxPhotoBytes = 2 * 1024 * 1024
	maxPhotoWidth = 1024
)

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// uploadPhotoHandler replaces the profile photo: decode, downscale, store
// under a fresh uuid name, then swap photo_path and unlink the old file.
func uploadPhotoHandler(c *gin.Context) {
	profile, ok := loadOwnedProfile(c)
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
		return
	}
	if file.Size > maxPhotoBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 2MB)"})
		return
	}
	if ct := file.Header.Get("Content-Type"); !allowedPhotoTypes[ct] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}
	defer src.Close()
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "not a valid image"})
		return
	}
	if img.Bounds().Dx() > maxPhotoWidth {
		img = imaging.Resize(img, maxPhotoWidth, 0, imaging.Lanczos)
	}

	name := uuid.NewString() + ".jpg"
	base := photoBaseDir()
	if err := os.MkdirAll(base, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mkdir failed"})
		return
	}
	if err := imaging.Save(img, filepath.Join(base, name), imaging.JPEGQuality(90)); err != nil {
		logger.Error("photo save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	old := profile.PhotoPath
	if err := db.Model(profile).Update("photo_path", name).Error; err != nil {
		_ = os.Remove(filepath.Join(base, name))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
		return
	}
	if old != nil && *old != "" {
		_ = os.Remove(filepath.Join(base, *old))
	}
	cacheInvalidatePortfolio(c.Request.Context(), profile.ID)
	c.JSON(http.StatusOK, gin.H{"photo_path": name})
}

// servePhotoHandler streams the stored photo file. Public profiles serve
// to anyone; private ones require the owner's or an admin's token.
func servePhotoHandler(c *gin.Context) {
	id, ok := profileIDParam(c)
	if !ok {
		return
	}
	var profile models.Profile
	if err := db.Where("id = ? AND is_deleted = false", id).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if profile.PhotoPath == nil || *profile.PhotoPath == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no photo"})
		return
	}
	if !profile.IsPublic {
		userID, _, role, ok := bearerClaims(c)
		if !ok || (userID != profile.UserID && role != "admin") {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
	}
	// Base strips any path segments a tampered photo_path could carry.
	full := filepath.Join(photoBaseDir(), filepath.Base(*profile.PhotoPath))
	if _, err := os.Stat(full); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no photo"})
		return
	}
	c.File(full)
}

// removePhotoHandler unlinks the stored file and nulls photo_path.
func removePhotoHandler(c *gin.Context) {
	profile, ok := loadOwnedProfile(c)
	if !ok {
		return
	}
	if profile.PhotoPath != nil && *profile.PhotoPath != "" {
		full := filepath.Join(photoBaseDir(), *profile.PhotoPath)
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			logger.Warn("photo unlink failed", zap.String("path", full), zap.Error(err))
		}
	}
	if err := db.Model(profile).Update("photo_path", nil).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
		return
	}
	cacheInvalidatePortfolio(c.Request.Context(), profile.ID)
	c.JSON(http.StatusOK, gin.H{"photo_path": nil})
}
