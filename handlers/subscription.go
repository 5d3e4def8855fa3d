package handlers

import (
	"errors"
	"net/http"
	"time"

	subscriptionRepo "padelwatch/database/repository/subscription"
	"padelwatch/models"
	"padelwatch/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SubscriptionHandler manages subscriber alert criteria.
type SubscriptionHandler struct {
	Repo subscriptionRepo.Repository
}

func NewSubscriptionHandler(repo subscriptionRepo.Repository) *SubscriptionHandler {
	return &SubscriptionHandler{Repo: repo}
}

// CreateSubscriptionHandler handles POST /api/subscriptions.
func (h *SubscriptionHandler) CreateSubscriptionHandler(c *gin.Context) {
	var input struct {
		Email       string `json:"email" binding:"required,email"`
		Date        string `json:"date" binding:"required"`
		MinTime     string `json:"min_time" binding:"required"`
		MinDuration int    `json:"min_duration" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "date must be in YYYY-MM-DD format")
		return
	}
	if date.Format("2006-01-02") < time.Now().Format("2006-01-02") {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "date is already in the past")
		return
	}
	if _, err := time.Parse("15:04", input.MinTime); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid min_time", "min_time must be in HH:MM format")
		return
	}
	if input.MinDuration <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid min_duration", "min_duration must be a positive whole number of minutes")
		return
	}

	sub := models.Subscription{
		ID:          uuid.New().String(),
		Email:       input.Email,
		Date:        input.Date,
		MinTime:     input.MinTime,
		MinDuration: input.MinDuration,
		CreatedAt:   time.Now(),
	}
	if err := h.Repo.Create(&sub); err != nil {
		if errors.Is(err, subscriptionRepo.ErrDuplicate) {
			utils.JSONError(c, http.StatusConflict, "subscription already exists",
				"an identical alert is already registered for this address")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create subscription", err.Error())
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// ListSubscriptionsHandler handles GET /api/subscriptions?email=...
func (h *SubscriptionHandler) ListSubscriptionsHandler(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing email", "email query parameter is required")
		return
	}

	subs, err := h.Repo.ListByEmail(email)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list subscriptions", err.Error())
		return
	}
	if subs == nil {
		subs = []models.Subscription{}
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}

// DeleteSubscriptionHandler handles DELETE /api/subscriptions/:id.
func (h *SubscriptionHandler) DeleteSubscriptionHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.Delete(id); err != nil {
		if errors.Is(err, subscriptionRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "subscription not found", "no subscription with id "+id)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete subscription", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
