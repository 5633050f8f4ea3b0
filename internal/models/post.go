package models

import (
	"database/sql"
	"time"
)

// Post status values. A post enters PENDING unless its creator is an
// admin, and only a moderation action moves it afterwards.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// ValidStatus reports whether s is one of the three moderation states.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Post represents a forum post subject to moderation.
type Post struct {
	ID          int64          `gorm:"primaryKey;autoIncrement;column:id"`
	Title       string         `gorm:"type:varchar(255);not null;column:title"`
	Content     sql.NullString `gorm:"type:varchar(1000);column:content"`
	Status      string         `gorm:"type:varchar(8);not null;column:status"`
	CreatedByID int64          `gorm:"not null;index;column:created_by_id"`
	CreatedAt   time.Time      `gorm:"not null;column:created_at"`

	// Relationships
	CreatedBy *User     `gorm:"foreignKey:CreatedByID;references:ID"`
	Comments  []Comment `gorm:"foreignKey:PostID;references:ID"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "post"
}
