package models

import "gorm.io/gorm"

// Comment is a free-text comment left by a user on a game's page.
type Comment struct {
	ID     string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	GameID string `json:"gameId" gorm:"index;type:varchar(36)"`
	UserID string `json:"userId" gorm:"type:varchar(36)"`
	Text   string `json:"text" gorm:"type:varchar(1000)" validate:"required,max=1000"`
	gorm.Model
}

// CommentView is a comment expanded with the commenter's username.
type CommentView struct {
	Comment
	Username string `json:"username"`
}
