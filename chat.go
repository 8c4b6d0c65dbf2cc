package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// httpClient is shared by every outbound bridge (assistant API, PDF
// renderer, registration webhook).
var httpClient = resty.New().SetTimeout(60 * time.Second)

type chatUpstreamResponse struct {
	Answer         string `json:"answer"`
	ConversationID string `json:"conversation_id"`
}

// chatHandler proxies one blocking chat turn to the external assistant
// service; the API key never reaches the browser.
func chatHandler(c *gin.Context) {
	apiKey := os.Getenv("CHAT_API_KEY")
	if apiKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "CHAT_API_KEY is missing"})
		return
	}
	apiURL := os.Getenv("CHAT_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1/v1"
	}

	var req struct {
		Message        string         `json:"message" binding:"required"`
		ConversationID string         `json:"conversation_id"`
		Inputs         map[string]any `json:"inputs"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Inputs == nil {
		req.Inputs = map[string]any{}
	}

	var out chatUpstreamResponse
	resp, err := httpClient.R().
		SetAuthToken(apiKey).
		SetBody(map[string]any{
			"inputs":          req.Inputs,
			"query":           req.Message,
			"response_mode":   "blocking",
			"user":            "portfolio-web",
			"conversation_id": req.ConversationID,
		}).
		SetResult(&out).
		Post(apiURL + "/chat-messages")
	if err != nil {
		logger.Error("assistant service unreachable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Connection Failed"})
		return
	}
	if resp.IsError() {
		logger.Error("assistant service error", zap.Int("status", resp.StatusCode()), zap.ByteString("body", resp.Body()))
		c.JSON(resp.StatusCode(), gin.H{"error": "assistant service error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": out.Answer, "conversation_id": out.ConversationID})
}

// aiRegisterHandler lets the assistant register users on a visitor's
// behalf. Guarded by a shared tool secret when one is configured.
func aiRegisterHandler(c *gin.Context) {
	if secret := os.Getenv("AI_TOOL_SECRET"); secret != "" {
		if c.GetHeader("Authorization") != "Bearer "+secret {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
	}
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := RegisterUser(req.Name, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	go notifyRegistration(user.Name, user.Email)
	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Registration request received and being processed",
		"user":    gin.H{"id": user.ID, "name": user.Name, "email": user.Email},
	})
}

// notifyRegistration fires the registration webhook. Best effort: failures
// are logged and never block the registration flow.
func notifyRegistration(name, email string) {
	webhookURL := os.Getenv("REGISTRATION_WEBHOOK_URL")
	if webhookURL == "" {
		logger.Warn("registration webhook URL not set, skipping notification")
		return
	}
	resp, err := httpClient.R().
		SetBody(map[string]string{
			"name":      name,
			"email":     email,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}).
		Post(webhookURL)
	if err != nil {
		logger.Error("registration webhook failed", zap.Error(err))
		return
	}
	if resp.IsError() {
		logger.Error("registration webhook rejected", zap.Int("status", resp.StatusCode()))
	}
}
