package forum

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/agoraforum/agora/internal/models"
	"github.com/agoraforum/agora/pkg/telemetry"
)

// AddComment attaches a comment to a post. Both the post and the user
// must resolve; the text must be non-empty and within the schema bound.
func (s *Service) AddComment(ctx context.Context, postID, userID int64, text string) (*models.Comment, error) {
	ctx, span := telemetry.StartSpan(ctx, "forum.AddComment")
	defer span.End()

	if text == "" {
		return nil, InvalidInput("Comment is missing or invalid!")
	}
	if len(text) > models.MaxCommentLength {
		return nil, InvalidInput("Comment is missing or invalid!")
	}

	var created *models.Comment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		users, posts, comments := repos(tx)

		post, err := posts.GetByID(ctx, postID)
		if err != nil {
			return Internal("failed to look up post", err)
		}
		if post == nil {
			return NotFound("Post not found!")
		}

		user, err := users.GetByID(ctx, userID)
		if err != nil {
			return Internal("failed to look up user", err)
		}
		if user == nil {
			return NotFound("User not found!")
		}

		comment := &models.Comment{
			PostID:      post.ID,
			Comment:     text,
			CreatedByID: user.ID,
			CreatedAt:   time.Now().UTC(),
		}
		if err := comments.Create(ctx, comment); err != nil {
			return Internal("failed to create comment", err)
		}
		comment.CreatedBy = user
		created = comment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment added",
		zap.Int64("comment_id", created.ID),
		zap.Int64("post_id", postID),
		zap.Int64("user_id", userID))
	return created, nil
}

// GetPostWithComments returns a post together with its comments, newest
// comment first.
func (s *Service) GetPostWithComments(ctx context.Context, postID int64) (*models.Post, []*models.Comment, error) {
	ctx, span := telemetry.StartSpan(ctx, "forum.GetPostWithComments")
	defer span.End()

	_, posts, comments := repos(s.db.DB)

	post, err := posts.GetByID(ctx, postID)
	if err != nil {
		return nil, nil, Internal("failed to look up post", err)
	}
	if post == nil {
		return nil, nil, NotFound("Post not found!")
	}

	list, err := comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, nil, Internal("failed to list comments", err)
	}
	return post, list, nil
}
