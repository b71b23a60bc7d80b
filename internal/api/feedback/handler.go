package feedback

import (
	"net/http"
	"strings"

	"prologue-backend/database"
	"prologue-backend/internal/domain/feedback"
	"prologue-backend/internal/domain/notifications"
	"prologue-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func CreateFeedback(c *gin.Context) {
	var body struct {
		Category string `json:"category"`
		Message  string `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing message"})
		return
	}
	if body.Category == "" {
		body.Category = "general"
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fb := feedback.PlatformFeedback{
		UserID:   userID,
		Category: body.Category,
		Message:  body.Message,
		Status:   feedback.StatusOpen,
	}
	if err := database.DB.Create(&fb).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save feedback"})
		return
	}

	c.JSON(http.StatusOK, fb)
}

// ListFeedback returns the caller's own feedback; admins see everything.
func ListFeedback(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	q := database.DB.Order("created_at DESC")
	if c.GetString("role") != users.RoleAdmin {
		q = q.Where("user_id = ?", userID)
	}

	var items []feedback.PlatformFeedback
	if err := q.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feedback"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// RespondToFeedback is admin-only. A response must carry text: "responded"
// without a response body is never valid.
func RespondToFeedback(c *gin.Context) {
	var body struct {
		Response string `json:"response"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Response) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Response text is required"})
		return
	}

	var fb feedback.PlatformFeedback
	if err := database.DB.First(&fb, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
		return
	}

	response := strings.TrimSpace(body.Response)
	if err := database.DB.Model(&feedback.PlatformFeedback{}).
		Where("id = ?", fb.ID).
		Updates(map[string]interface{}{
			"status":   feedback.StatusResponded,
			"response": response,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save response"})
		return
	}

	notifications.Notify(database.DB, fb.UserID, notifications.TypeFeedbackResponse,
		"Your feedback got a response")

	c.JSON(http.StatusOK, gin.H{"message": "Response saved"})
}
