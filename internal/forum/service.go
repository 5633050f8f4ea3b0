// Package forum owns the moderation state machine for posts, the
// role-scoped listing rules, comment attachment and credential checks.
// Persistence is injected; nothing here touches process-wide state.
package forum

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/agoraforum/agora/internal/db"
	"github.com/agoraforum/agora/pkg/logging"
)

// Service implements the forum operations over an injected database
// handle. Every mutating operation runs inside its own transaction and
// rolls back completely on any failure.
type Service struct {
	db         *db.DB
	bcryptCost int
	logger     *zap.Logger
}

// NewService creates a new forum service
func NewService(database *db.DB, bcryptCost int) *Service {
	return &Service{
		db:         database,
		bcryptCost: bcryptCost,
		logger:     logging.WithComponent("forum"),
	}
}

// repos builds the entity repositories over the given handle, which is
// either the shared connection or an open transaction.
func repos(tx *gorm.DB) (*db.UserRepository, *db.PostRepository, *db.CommentRepository) {
	base := db.NewRepository(tx)
	return db.NewUserRepository(base), db.NewPostRepository(base), db.NewCommentRepository(base)
}
