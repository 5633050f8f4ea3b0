package api

import (
	"regexp"
	"strconv"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/agoraforum/agora/internal/forum"
	"github.com/agoraforum/agora/internal/models"
)

// emailPattern accepts addresses of the form local@domain.tld with dots
// and hyphens between word runs.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

// validPassword requires at least one upper, one lower, one digit and a
// minimum length of 5.
func validPassword(s string) bool {
	if len(s) < 5 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// Request bodies use pointer fields so a missing property and a zero
// value stay distinguishable; validation happens once, up front.

type createPostRequest struct {
	UserID  *int64  `json:"userId"`
	IsAdmin *bool   `json:"isAdmin"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (r *createPostRequest) validate() *forum.Error {
	if r.UserID == nil || *r.UserID <= 0 {
		return forum.InvalidInput("User id is missing or invalid!")
	}
	if r.IsAdmin == nil {
		return forum.InvalidInput("isAdmin property is missing or invalid!")
	}
	if r.Title == nil || *r.Title == "" {
		return forum.InvalidInput("Title is missing or invalid!")
	}
	if r.Content == nil {
		return forum.InvalidInput("Content is missing or invalid!")
	}
	return nil
}

type addCommentRequest struct {
	PostID  *int64  `json:"postId"`
	UserID  *int64  `json:"userId"`
	Comment *string `json:"comment"`
}

func (r *addCommentRequest) validate() *forum.Error {
	if r.PostID == nil || *r.PostID <= 0 {
		return forum.InvalidInput("Post id is missing or invalid!")
	}
	if r.UserID == nil || *r.UserID <= 0 {
		return forum.InvalidInput("User id is missing or invalid!")
	}
	if r.Comment == nil || *r.Comment == "" {
		return forum.InvalidInput("Comment is missing or invalid!")
	}
	return nil
}

type loginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (r *loginRequest) validate() *forum.Error {
	if r.Email == nil || !emailPattern.MatchString(*r.Email) {
		return forum.InvalidInput("E-mail is missing or invalid!")
	}
	if r.Password == nil || !validPassword(*r.Password) {
		return forum.InvalidInput("Password is missing or invalid!")
	}
	return nil
}

type registerRequest struct {
	loginRequest
	ConfirmPassword *string `json:"confirmPassword"`
}

func (r *registerRequest) validate() *forum.Error {
	if err := r.loginRequest.validate(); err != nil {
		return err
	}
	if r.ConfirmPassword == nil || !validPassword(*r.ConfirmPassword) {
		return forum.InvalidInput("Confirm password is missing or invalid!")
	}
	return nil
}

// queryID reads a positive integer id from the named query parameter.
func queryID(c *gin.Context, name, message string) (int64, *forum.Error) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, forum.InvalidInput(message)
	}
	return id, nil
}

// queryScope reads the userId/isAdmin pair scoping a listing request.
// isAdmin must be present; only the literal "true" grants admin scope.
func queryScope(c *gin.Context) (int64, bool, *forum.Error) {
	userID, ferr := queryID(c, "userId", "User id is missing or invalid!")
	if ferr != nil {
		return 0, false, ferr
	}
	raw := c.Query("isAdmin")
	if raw == "" {
		return 0, false, forum.InvalidInput("isAdmin property is missing or invalid!")
	}
	return userID, raw == "true", nil
}

// queryStatus reads a moderation status from the query string.
func queryStatus(c *gin.Context) (string, *forum.Error) {
	status := c.Query("status")
	if !models.ValidStatus(status) {
		return "", forum.InvalidInput("Status is missing or invalid!")
	}
	return status, nil
}
