package models

import "time"

// MaxCommentLength is the schema bound on comment text.
const MaxCommentLength = 1000

// Comment represents a comment attached to a post.
type Comment struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	PostID      int64     `gorm:"not null;index;column:post_id"`
	Comment     string    `gorm:"type:varchar(1000);not null;column:comment"`
	CreatedByID int64     `gorm:"not null;index;column:created_by_id"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Post      *Post `gorm:"foreignKey:PostID;references:ID"`
	CreatedBy *User `gorm:"foreignKey:CreatedByID;references:ID"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comment"
}
