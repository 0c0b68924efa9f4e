package services

import (
	"errors"
	"strings"

	"gamestore/internal/models"
	"gamestore/internal/repositories"
)

// MaxCommentLength caps comment text.
const MaxCommentLength = 1000

// ErrCommentTooLong is returned when a comment exceeds MaxCommentLength.
var ErrCommentTooLong = errors.New("Comments can be up to 1000 characters.")

// ErrCommentEmpty is returned for blank comment text.
var ErrCommentEmpty = errors.New("Comment text is required")

// CommentService handles per-game comments.
type CommentService struct {
	commentRepo repositories.CommentRepository
	gameRepo    repositories.GameRepository
	userRepo    repositories.UserRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repositories.CommentRepository, gameRepo repositories.GameRepository, userRepo repositories.UserRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		gameRepo:    gameRepo,
		userRepo:    userRepo,
	}
}

// ListByGame returns a game's comments, newest first, each carrying the
// commenter's username.
func (s *CommentService) ListByGame(gameID string) ([]models.CommentView, error) {
	if _, err := s.gameRepo.GetByID(gameID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	comments, err := s.commentRepo.ListByGame(gameID)
	if err != nil {
		return nil, err
	}

	views := make([]models.CommentView, 0, len(comments))
	usernames := make(map[string]string)
	for _, comment := range comments {
		name, ok := usernames[comment.UserID]
		if !ok {
			if user, err := s.userRepo.GetByID(comment.UserID); err == nil {
				name = user.Username
			}
			usernames[comment.UserID] = name
		}
		views = append(views, models.CommentView{Comment: comment, Username: name})
	}
	return views, nil
}

// AddComment appends a comment to a game's page.
func (s *CommentService) AddComment(userID, gameID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrCommentEmpty
	}
	if len(text) > MaxCommentLength {
		return nil, ErrCommentTooLong
	}

	if _, err := s.gameRepo.GetByID(gameID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		GameID: gameID,
		UserID: userID,
		Text:   text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}
