package updates

import (
	"net/http"

	"prologue-backend/database"
	"prologue-backend/internal/domain/feedback"

	"github.com/gin-gonic/gin"
)

// ListUpdates is public: platform announcements for every role's dashboard.
func ListUpdates(c *gin.Context) {
	var items []feedback.PlatformUpdate
	if err := database.DB.Order("created_at DESC").Limit(50).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load updates"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateUpdate is admin-only.
func CreateUpdate(c *gin.Context) {
	var body struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Title == "" || body.Body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing title or body"})
		return
	}

	update := feedback.PlatformUpdate{
		AuthorID: c.GetUint("user_id"),
		Title:    body.Title,
		Body:     body.Body,
	}
	if err := database.DB.Create(&update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save update"})
		return
	}

	c.JSON(http.StatusOK, update)
}
