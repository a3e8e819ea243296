package models

import (
	"time"
)

// User is an account that can author recipes and follow other authors.
// Email is the login identifier.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	FirstName    string    `gorm:"size:150;not null" json:"first_name"`
	LastName     string    `gorm:"size:150;not null" json:"last_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	AvatarURL    string    `gorm:"size:255" json:"avatar"`

	Recipes []Recipe `gorm:"foreignKey:AuthorID" json:"-"`
}

// Subscription links a follower to an author they follow. The pair is
// unique at the storage level; follower != following is checked in the
// service layer.
type Subscription struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_subscription_pair" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_subscription_pair" json:"following_id"`

	Follower  User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Following User `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"-"`
}
