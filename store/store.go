// Package store holds the persistence contracts for users and the post
// aggregate. Two backends implement them: MongoDB for the real deployment and
// an in-memory one used in tests and local development.
package store

import (
	"context"
	"errors"

	"github.com/microblog-app/microblog-backend/models"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// PostStore owns the post aggregate lifecycle. Like counters and the embedded
// comment list mutate through single atomic operations so that concurrent
// requests on the same post never lose updates.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	ListByAuthor(ctx context.Context, username string) ([]models.Post, error)
	UpdateContent(ctx context.Context, id, content string) (*models.Post, error)
	Delete(ctx context.Context, id string) error

	// IncrementLikes adds one like. DecrementLikes removes one but never
	// takes the counter below zero. Both return the resulting count.
	IncrementLikes(ctx context.Context, id string) (int, error)
	DecrementLikes(ctx context.Context, id string) (int, error)

	// AddComment appends to the post's comment list, filling in the comment
	// id and createdAt. UpdateComment rewrites the text of one comment;
	// RemoveComment drops it, leaving sibling order intact.
	AddComment(ctx context.Context, postID string, comment *models.Comment) (*models.Comment, error)
	UpdateComment(ctx context.Context, postID, commentID, text string) (*models.Comment, error)
	RemoveComment(ctx context.Context, postID, commentID string) error
}
