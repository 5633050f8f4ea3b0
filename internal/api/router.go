package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agoraforum/agora/internal/db"
	"github.com/agoraforum/agora/internal/forum"
	"github.com/agoraforum/agora/pkg/logging"
)

// Router sets up API routes
type Router struct {
	svc    *forum.Service
	db     *db.DB
	logger *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(svc *forum.Service, database *db.DB) *Router {
	return &Router{
		svc:    svc,
		db:     database,
		logger: logging.WithComponent("api-router"),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.GET("/", r.welcomeHandler)
	engine.GET("/health", r.healthHandler)

	api := engine.Group("/api")
	{
		api.GET("/posts", r.listPublicPosts)
		api.POST("/posts", r.createPost)
		api.GET("/posts/manage", r.listPostsForOwner)
		api.GET("/posts/pending", r.listPendingPosts)
		api.DELETE("/posts", r.deletePost)
		api.PATCH("/posts", r.updatePostStatus)

		api.GET("/comments", r.getComments)
		api.POST("/comments", r.addComment)

		api.POST("/login", r.login)
		api.POST("/register", r.register)
	}
}

func (r *Router) welcomeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the forum!"})
}

func (r *Router) healthHandler(c *gin.Context) {
	if r.db != nil {
		if err := r.db.Health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "agora",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "agora",
	})
}
