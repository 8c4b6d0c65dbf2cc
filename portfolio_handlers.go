package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"pb01/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const searchPageSize = 20

type publicProfileItem struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	JobTitle string `json:"job_title"`
	Tagline  string `json:"tagline"`
	Location string `json:"location"`
	PfName   string `json:"pf_name"`
}

// portfolioSearchHandler is the public listing: each whitespace-separated
// term must fuzzy-match at least one searchable column.
func portfolioSearchHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	terms := strings.Fields(strings.TrimSpace(c.Query("q")))

	q := db.Model(&models.Profile{}).Where("is_public = true AND is_deleted = false")
	for _, term := range terms {
		like := "%" + term + "%"
		q = q.Where(
			"(name ILIKE ? OR job_title ILIKE ? OR location ILIKE ? OR tagline ILIKE ? OR pf_name ILIKE ?)",
			like, like, like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		logger.Error("profile search count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	items := []publicProfileItem{}
	err := q.Order("updated_at DESC NULLS LAST, id ASC").
		Limit(searchPageSize).
		Offset((page - 1) * searchPageSize).
		Find(&items).Error
	if err != nil {
		logger.Error("profile search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + searchPageSize - 1) / searchPageSize)
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"total":      total,
		"page":       page,
		"pageSize":   searchPageSize,
		"totalPages": totalPages,
	})
}

// portfolioReadHandler serves the public aggregate, cached when Redis is up.
func portfolioReadHandler(c *gin.Context) {
	id, ok := profileIDParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if body, hit := cacheGetPortfolio(ctx, id); hit {
		c.Data(http.StatusOK, "application/json", body)
		return
	}
	view, err := loadPortfolio(id, true)
	if err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found or not public"})
			return
		}
		logger.Error("public portfolio read failed", zap.Uint("profile_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}
	body, err := json.Marshal(view)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}
	cacheSetPortfolio(ctx, id, body)
	c.Data(http.StatusOK, "application/json", body)
}

// portfolioPDFHandler bridges to an external HTML-to-PDF renderer: the
// renderer visits the public portfolio page and we stream its output back.
func portfolioPDFHandler(c *gin.Context) {
	id, ok := profileIDParam(c)
	if !ok {
		return
	}
	// only public portfolios are exportable
	if _, err := loadPortfolio(id, true); err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found or not public"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	rendererURL := os.Getenv("PDF_RENDERER_URL")
	if rendererURL == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "PDF renderer not configured"})
		return
	}
	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	resp, err := httpClient.R().
		SetBody(map[string]any{
			"url":              fmt.Sprintf("%s/portfolio/%d?pdf=1", baseURL, id),
			"format":           "A4",
			"print_background": true,
			"margin":           map[string]string{"top": "10mm", "bottom": "10mm", "left": "10mm", "right": "10mm"},
		}).
		Post(rendererURL)
	if err != nil {
		logger.Error("pdf renderer unreachable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to generate PDF"})
		return
	}
	if resp.IsError() {
		logger.Error("pdf renderer error", zap.Int("status", resp.StatusCode()), zap.ByteString("body", resp.Body()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="portfolio-%d.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", resp.Body())
}
