package posts

import (
	"net/http"
	"strconv"

	"prologue-backend/database"
	"prologue-backend/internal/domain/posts"

	"github.com/gin-gonic/gin"
)

func CreatePost(c *gin.Context) {
	var body struct {
		Title     string `json:"title"`
		Body      string `json:"body"`
		Published bool   `json:"published"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing title"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	post := posts.Post{
		UserID:    userID,
		Title:     body.Title,
		Body:      body.Body,
		Published: body.Published,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// ListAthletePosts serves a creator's published posts to entitled members
// (the subscription guard runs before this handler).
func ListAthletePosts(c *gin.Context) {
	athleteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid athlete id"})
		return
	}

	q := database.DB.Where("user_id = ?", athleteID).Order("created_at DESC")
	// Unpublished drafts stay private to the author.
	if c.GetUint("user_id") != uint(athleteID) {
		q = q.Where("published = ?", true)
	}

	var items []posts.Post
	if err := q.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}

	c.JSON(http.StatusOK, items)
}

func DeletePost(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	res := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&posts.Post{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
