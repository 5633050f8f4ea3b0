package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// listPublicPosts handles GET /api/posts. No auth required; only
// approved posts are visible here.
func (r *Router) listPublicPosts(c *gin.Context) {
	posts, err := r.svc.ListPublic(c.Request.Context())
	if err != nil {
		r.logger.Error("failed to list public posts", zap.Error(err))
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result": "success",
		"posts":  postsJSON(posts),
	})
}

// createPost handles POST /api/posts.
func (r *Router) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"result": "fail", "message": "Malformed request body!"})
		return
	}
	if ferr := req.validate(); ferr != nil {
		fail(c, ferr)
		return
	}

	if _, err := r.svc.CreatePost(c.Request.Context(), *req.UserID, *req.IsAdmin, *req.Title, *req.Content); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"result": "success"})
}

// listPostsForOwner handles GET /api/posts/manage. Admins see every
// post, other callers only their own.
func (r *Router) listPostsForOwner(c *gin.Context) {
	userID, isAdmin, ferr := queryScope(c)
	if ferr != nil {
		fail(c, ferr)
		return
	}

	posts, err := r.svc.ListForOwner(c.Request.Context(), userID, isAdmin)
	if err != nil {
		r.logger.Error("failed to list posts for owner", zap.Error(err))
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result": "success",
		"posts":  postsJSON(posts),
	})
}

// listPendingPosts handles GET /api/posts/pending.
func (r *Router) listPendingPosts(c *gin.Context) {
	userID, isAdmin, ferr := queryScope(c)
	if ferr != nil {
		fail(c, ferr)
		return
	}

	posts, err := r.svc.ListPending(c.Request.Context(), userID, isAdmin)
	if err != nil {
		r.logger.Error("failed to list pending posts", zap.Error(err))
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result": "success",
		"posts":  postsJSON(posts),
	})
}

// deletePost handles DELETE /api/posts. Comments go first, then the
// post, all in one transaction.
func (r *Router) deletePost(c *gin.Context) {
	postID, ferr := queryID(c, "postId", "Post id is missing or invalid!")
	if ferr != nil {
		fail(c, ferr)
		return
	}

	if err := r.svc.DeletePost(c.Request.Context(), postID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// updatePostStatus handles PATCH /api/posts, the moderation action.
func (r *Router) updatePostStatus(c *gin.Context) {
	postID, ferr := queryID(c, "postId", "Post id is missing or invalid!")
	if ferr != nil {
		fail(c, ferr)
		return
	}
	status, ferr := queryStatus(c)
	if ferr != nil {
		fail(c, ferr)
		return
	}

	if err := r.svc.SetStatus(c.Request.Context(), postID, status); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}
