package main

import (
	"errors"
	"net/http"
	"strconv"

	"pb01/models"
	"pb01/pkg/profilesync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func profileIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return 0, false
	}
	return uint(id), true
}

// loadOwnedProfile fetches a live profile and enforces owner-or-admin.
func loadOwnedProfile(c *gin.Context) (*models.Profile, bool) {
	id, ok := profileIDParam(c)
	if !ok {
		return nil, false
	}
	var profile models.Profile
	if err := db.Where("id = ? AND is_deleted = false", id).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return nil, false
	}
	if !isAdmin(c) {
		user, ok := getUserFromContext(c)
		if !ok || profile.UserID != user.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return nil, false
		}
	}
	return &profile, true
}

// createProfileHandler creates a new empty portfolio (admin action).
func createProfileHandler(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		PfName   string `json:"pf_name" binding:"required"`
		Name     string `json:"name" binding:"required"`
		JobTitle string `json:"job_title"`
		Tagline  string `json:"tagline"`
		Location string `json:"location"`
		IsPublic bool   `json:"is_public"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile := models.Profile{
		UserID:   user.ID,
		PfName:   req.PfName,
		Name:     req.Name,
		JobTitle: req.JobTitle,
		Tagline:  req.Tagline,
		Location: req.Location,
		IsPublic: req.IsPublic,
	}
	if err := db.Create(&profile).Error; err != nil {
		logger.Error("create profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create profile"})
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// listProfilesHandler returns live profiles; admin sees all, everyone else
// only public ones.
func listProfilesHandler(c *gin.Context) {
	q := db.Where("is_deleted = false")
	if !isAdmin(c) {
		q = q.Where("is_public = true")
	}
	var profiles []models.Profile
	if err := q.Order("id").Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// deleteProfileHandler soft-deletes: the row stays, every read path skips it.
func deleteProfileHandler(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	id, ok := profileIDParam(c)
	if !ok {
		return
	}
	if err := db.Model(&models.Profile{}).Where("id = ?", id).Update("is_deleted", true).Error; err != nil {
		logger.Error("soft delete failed", zap.Uint("profile_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	cacheInvalidatePortfolio(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// getProfileHandler returns the full aggregate for the editor.
func getProfileHandler(c *gin.Context) {
	profile, ok := loadOwnedProfile(c)
	if !ok {
		return
	}
	view, err := loadPortfolio(profile.ID, false)
	if err != nil {
		logger.Error("load portfolio failed", zap.Uint("profile_id", profile.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// saveProfileHandler applies one editor submission through savePortfolio.
func saveProfileHandler(c *gin.Context) {
	profile, ok := loadOwnedProfile(c)
	if !ok {
		return
	}
	var payload savePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := savePortfolio(profile.ID, &payload)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Rule})
		case errors.Is(err, profilesync.ErrUnknownTable):
			// programmer error; fail loudly
			logger.Error("save hit unregistered table", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			logger.Error("save portfolio failed", zap.Uint("profile_id", profile.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		}
		return
	}
	cacheInvalidatePortfolio(c.Request.Context(), profile.ID)
	c.JSON(http.StatusOK, result)
}

// notFound reports whether err is gorm's record-not-found.
func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
