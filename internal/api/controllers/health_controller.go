package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"net/http"
	"time"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Home godoc
// @Summary Service banner
// @Tags Health
// @Produce json
// @Router / [get]
func (h *HealthController) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Voyago Travel Planner",
		"version": "1.0.0",
		"status":  "running",
		"endpoints": gin.H{
			"POST /plan":              "Create a travel plan from natural language query",
			"GET /history":            "Get user's past travel plans",
			"GET /health":             "Health check endpoint",
			"POST /accounts/register": "Register a new account",
			"POST /accounts/login":    "Login and receive a token",
		},
		"example_request": gin.H{
			"endpoint": "/plan",
			"method":   "POST",
			"body": gin.H{
				"query": "I want to go from Dubai to Istanbul from Nov 10 to Nov 15",
			},
		},
	})
}

// Health godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Router /health [get]
func (h *HealthController) Health(c *gin.Context) {
	dbStatus := "connected"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "disconnected"
	}

	status := http.StatusOK
	overall := "healthy"
	if dbStatus != "connected" {
		status = http.StatusInternalServerError
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":    overall,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services": gin.H{
			"database": dbStatus,
			"api":      "running",
		},
		"version": "1.0.0",
	})
}
