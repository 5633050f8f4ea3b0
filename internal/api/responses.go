package api

import (
	"github.com/gin-gonic/gin"

	"github.com/agoraforum/agora/internal/models"
)

// createdAtLayout mirrors the display format the frontend renders,
// e.g. "Monday 14 November 2022 05:15".
const createdAtLayout = "Monday 02 January 2006 15:04"

func postJSON(p *models.Post) gin.H {
	var createdBy string
	if p.CreatedBy != nil {
		createdBy = p.CreatedBy.Username()
	}
	return gin.H{
		"id":          p.ID,
		"title":       p.Title,
		"content":     p.Content.String,
		"status":      p.Status,
		"createdById": p.CreatedByID,
		"createdBy":   createdBy,
		"createdAt":   p.CreatedAt.Format(createdAtLayout),
	}
}

func postsJSON(posts []*models.Post) []gin.H {
	out := make([]gin.H, 0, len(posts))
	for _, p := range posts {
		out = append(out, postJSON(p))
	}
	return out
}

func commentJSON(cm *models.Comment) gin.H {
	var createdBy string
	if cm.CreatedBy != nil {
		createdBy = cm.CreatedBy.Username()
	}
	return gin.H{
		"id":        cm.ID,
		"comment":   cm.Comment,
		"createdBy": createdBy,
		"createdAt": cm.CreatedAt.Format(createdAtLayout),
	}
}

func commentsJSON(comments []*models.Comment) []gin.H {
	out := make([]gin.H, 0, len(comments))
	for _, cm := range comments {
		out = append(out, commentJSON(cm))
	}
	return out
}

func userJSON(userID int64, isAdmin bool) gin.H {
	return gin.H{
		"userId":  userID,
		"isAdmin": isAdmin,
	}
}
