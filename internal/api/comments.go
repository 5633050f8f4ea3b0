package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getComments handles GET /api/comments: one post plus its comments,
// newest comment first.
func (r *Router) getComments(c *gin.Context) {
	postID, ferr := queryID(c, "postId", "Post id is missing or invalid!")
	if ferr != nil {
		fail(c, ferr)
		return
	}

	post, comments, err := r.svc.GetPostWithComments(c.Request.Context(), postID)
	if err != nil {
		r.logger.Error("failed to get post with comments", zap.Error(err))
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result":   "success",
		"post":     postJSON(post),
		"comments": commentsJSON(comments),
	})
}

// addComment handles POST /api/comments.
func (r *Router) addComment(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"result": "fail", "message": "Malformed request body!"})
		return
	}
	if ferr := req.validate(); ferr != nil {
		fail(c, ferr)
		return
	}

	comment, err := r.svc.AddComment(c.Request.Context(), *req.PostID, *req.UserID, *req.Comment)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"result":     "success",
		"newComment": commentJSON(comment),
	})
}
