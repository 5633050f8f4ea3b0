package models

// User represents a registered forum user.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Email    string `gorm:"type:varchar(180);not null;uniqueIndex:user_email_ux;column:email"`
	Password string `gorm:"type:varchar(255);not null;column:password"`
	IsAdmin  bool   `gorm:"not null;default:false;column:is_admin"`

	// Relationships
	Posts    []Post    `gorm:"foreignKey:CreatedByID;references:ID"`
	Comments []Comment `gorm:"foreignKey:CreatedByID;references:ID"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "user"
}

// Username returns the handle posts and comments are attributed to.
// The schema carries no separate display name, so the email serves.
func (u *User) Username() string {
	return u.Email
}
