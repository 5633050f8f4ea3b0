package forum

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/agoraforum/agora/internal/models"
	"github.com/agoraforum/agora/pkg/telemetry"
)

// ListPublic returns all approved posts, newest first. No auth required.
func (s *Service) ListPublic(ctx context.Context) ([]*models.Post, error) {
	ctx, span := telemetry.StartSpan(ctx, "forum.ListPublic")
	defer span.End()

	_, posts, _ := repos(s.db.DB)
	return posts.ListByStatus(ctx, models.StatusApproved)
}

// ListForOwner returns the posts the caller may manage: every post for an
// admin, only the caller's own posts otherwise. Newest first.
func (s *Service) ListForOwner(ctx context.Context, userID int64, isAdmin bool) ([]*models.Post, error) {
	ctx, span := telemetry.StartSpan(ctx, "forum.ListForOwner")
	defer span.End()

	_, posts, _ := repos(s.db.DB)
	if isAdmin {
		return posts.ListAll(ctx)
	}
	return posts.ListByCreator(ctx, userID)
}

// ListPending returns pending posts: all of them for an admin, only the
// caller's otherwise. Newest first.
func (s *Service) ListPending(ctx context.Context, userID int64, isAdmin bool) ([]*models.Post, error) {
	ctx, span := telemetry.StartSpan(ctx, "forum.ListPending")
	defer span.End()

	_, posts, _ := repos(s.db.DB)
	if isAdmin {
		return posts.ListByStatus(ctx, models.StatusPending)
	}
	return posts.ListByStatusAndCreator(ctx, models.StatusPending, userID)
}

// CreatePost creates a post for the given user. Admin creators start
// APPROVED, everyone else starts PENDING.
func (s *Service) CreatePost(ctx context.Context, userID int64, isAdmin bool, title, content string) (*models.Post, error) {
	ctx, span := telemetry.StartSpan(ctx, "forum.CreatePost")
	defer span.End()

	if title == "" {
		return nil, InvalidInput("Title is missing or invalid!")
	}

	var created *models.Post
	err := s.db.Transaction(func(tx *gorm.DB) error {
		users, posts, _ := repos(tx)

		user, err := users.GetByID(ctx, userID)
		if err != nil {
			return Internal("failed to look up user", err)
		}
		if user == nil {
			return NotFound("User not found!")
		}

		status := models.StatusPending
		if isAdmin {
			status = models.StatusApproved
		}

		post := &models.Post{
			Title:       title,
			Content:     sql.NullString{String: content, Valid: true},
			Status:      status,
			CreatedByID: user.ID,
			CreatedAt:   time.Now().UTC(),
		}
		if err := posts.Create(ctx, post); err != nil {
			return Internal("failed to create post", err)
		}
		post.CreatedBy = user
		created = post
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("post created",
		zap.Int64("post_id", created.ID),
		zap.Int64("user_id", userID),
		zap.String("status", created.Status))
	return created, nil
}

// SetStatus overwrites the status of the given post. Any of the three
// states may be assigned at any time; there is no transition graph.
//
// No caller role is checked here. The behavior this service preserves
// lets any authenticated caller moderate any post; see DESIGN.md before
// tightening it.
func (s *Service) SetStatus(ctx context.Context, postID int64, status string) error {
	ctx, span := telemetry.StartSpan(ctx, "forum.SetStatus")
	defer span.End()

	if !models.ValidStatus(status) {
		return InvalidInput("Status is missing or invalid!")
	}

	_, posts, _ := repos(s.db.DB)
	post, err := posts.GetByID(ctx, postID)
	if err != nil {
		return Internal("failed to look up post", err)
	}
	if post == nil {
		return NotFound("Post not found!")
	}

	if err := posts.UpdateStatus(ctx, postID, status); err != nil {
		return Internal("failed to update post status", err)
	}

	s.logger.Info("post status updated",
		zap.Int64("post_id", postID),
		zap.String("status", status))
	return nil
}

// DeletePost removes a post and all of its comments in one transaction,
// comments first, so no orphan comments survive a partial failure.
func (s *Service) DeletePost(ctx context.Context, postID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "forum.DeletePost")
	defer span.End()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		_, posts, comments := repos(tx)

		post, err := posts.GetByID(ctx, postID)
		if err != nil {
			return Internal("failed to look up post", err)
		}
		if post == nil {
			return NotFound("Post not found!")
		}

		if err := comments.DeleteByPost(ctx, postID); err != nil {
			return Internal("failed to delete comments", err)
		}
		if err := posts.Delete(ctx, postID); err != nil {
			return Internal("failed to delete post", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("post deleted", zap.Int64("post_id", postID))
	return nil
}
