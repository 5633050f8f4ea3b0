package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agoraforum/agora/internal/forum"
)

// statusFor maps a forum error kind to its response code.
func statusFor(kind forum.Kind) int {
	switch kind {
	case forum.KindInvalidInput:
		return http.StatusBadRequest
	case forum.KindNotFound:
		return http.StatusNotFound
	case forum.KindAlreadyExists:
		return http.StatusConflict
	case forum.KindBadCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the uniform failure envelope for err.
func fail(c *gin.Context, err error) {
	c.JSON(statusFor(forum.KindOf(err)), gin.H{
		"result":  "fail",
		"message": forum.MessageOf(err),
	})
}
