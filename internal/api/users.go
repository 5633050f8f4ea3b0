package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agoraforum/agora/internal/forum"
)

// login handles POST /api/login. Bad credentials are a logical result,
// not a transport failure: the envelope says fail but the status is 200.
func (r *Router) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"result": "fail", "message": "Malformed request body!"})
		return
	}
	if ferr := req.validate(); ferr != nil {
		fail(c, ferr)
		return
	}

	creds, err := r.svc.VerifyCredentials(c.Request.Context(), *req.Email, *req.Password)
	if err != nil {
		if forum.KindOf(err) == forum.KindBadCredentials {
			c.JSON(http.StatusOK, gin.H{
				"result":  "fail",
				"message": forum.MessageOf(err),
				"user":    userJSON(0, false),
			})
			return
		}
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  "success",
		"message": "Login successfully.",
		"user":    userJSON(creds.UserID, creds.IsAdmin),
	})
}

// register handles POST /api/register. Every registration yields a
// regular user; admins are promoted out of band.
func (r *Router) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"result": "fail", "message": "Malformed request body!"})
		return
	}
	if ferr := req.validate(); ferr != nil {
		fail(c, ferr)
		return
	}

	user, err := r.svc.Register(c.Request.Context(), *req.Email, *req.Password)
	if err != nil {
		if forum.KindOf(err) == forum.KindAlreadyExists {
			c.JSON(http.StatusConflict, gin.H{
				"result":  "fail",
				"message": forum.MessageOf(err),
				"user":    userJSON(0, false),
			})
			return
		}
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"result":  "success",
		"message": "New user created successfully.",
		"user":    userJSON(user.ID, user.IsAdmin),
	})
}
