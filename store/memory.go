package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/microblog-app/microblog-backend/models"
)

// MemoryUserStore and MemoryPostStore back the behavioral test suites and the
// STORE_BACKEND=memory dev mode. A single mutex per store makes every
// operation atomic, matching the guarantees of the Mongo backend.

type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*models.User // keyed by username
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: map[string]*models.User{}}
}

func (s *MemoryUserStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return nil, ErrDuplicateUsername
	}

	user.ID = primitive.NewObjectID()
	cp := *user
	s.users[user.Username] = &cp
	return user, nil
}

func (s *MemoryUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID.Hex() == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

type memoryPost struct {
	post *models.Post
	seq  int64
}

type MemoryPostStore struct {
	mu    sync.RWMutex
	posts map[string]*memoryPost // keyed by hex post id
	seq   int64
}

func NewMemoryPostStore() *MemoryPostStore {
	return &MemoryPostStore{posts: map[string]*memoryPost{}}
}

func (s *MemoryPostStore) Create(_ context.Context, post *models.Post) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now().UTC()
	post.LikeCount = 0
	post.Comments = []models.Comment{}

	s.seq++
	s.posts[post.ID.Hex()] = &memoryPost{post: clonePost(post), seq: s.seq}
	return post, nil
}

func (s *MemoryPostStore) GetByID(_ context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clonePost(entry.post), nil
}

func (s *MemoryPostStore) List(_ context.Context) ([]models.Post, error) {
	return s.collect(func(*models.Post) bool { return true }), nil
}

func (s *MemoryPostStore) ListByAuthor(_ context.Context, username string) ([]models.Post, error) {
	return s.collect(func(p *models.Post) bool { return p.AuthorUsername == username }), nil
}

func (s *MemoryPostStore) collect(keep func(*models.Post) bool) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []*memoryPost{}
	for _, e := range s.posts {
		if keep(e.post) {
			entries = append(entries, e)
		}
	}

	// Newest first; the insertion sequence breaks createdAt ties.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].post.CreatedAt.Equal(entries[j].post.CreatedAt) {
			return entries[i].seq > entries[j].seq
		}
		return entries[i].post.CreatedAt.After(entries[j].post.CreatedAt)
	})

	posts := make([]models.Post, 0, len(entries))
	for _, e := range entries {
		posts = append(posts, *clonePost(e.post))
	}
	return posts
}

func (s *MemoryPostStore) UpdateContent(_ context.Context, id, content string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	entry.post.Content = content
	return clonePost(entry.post), nil
}

func (s *MemoryPostStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *MemoryPostStore) IncrementLikes(_ context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.posts[id]
	if !ok {
		return 0, ErrNotFound
	}
	entry.post.LikeCount++
	return entry.post.LikeCount, nil
}

func (s *MemoryPostStore) DecrementLikes(_ context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.posts[id]
	if !ok {
		return 0, ErrNotFound
	}
	if entry.post.LikeCount > 0 {
		entry.post.LikeCount--
	}
	return entry.post.LikeCount, nil
}

func (s *MemoryPostStore) AddComment(_ context.Context, postID string, comment *models.Comment) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.posts[postID]
	if !ok {
		return nil, ErrNotFound
	}

	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now().UTC()
	entry.post.Comments = append(entry.post.Comments, *comment)
	return comment, nil
}

func (s *MemoryPostStore) UpdateComment(_ context.Context, postID, commentID, text string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.posts[postID]
	if !ok {
		return nil, ErrNotFound
	}

	for i := range entry.post.Comments {
		if entry.post.Comments[i].ID == commentID {
			entry.post.Comments[i].Text = text
			cp := entry.post.Comments[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryPostStore) RemoveComment(_ context.Context, postID, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.posts[postID]
	if !ok {
		return ErrNotFound
	}

	for i := range entry.post.Comments {
		if entry.post.Comments[i].ID == commentID {
			entry.post.Comments = append(entry.post.Comments[:i], entry.post.Comments[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func clonePost(p *models.Post) *models.Post {
	cp := *p
	cp.Comments = make([]models.Comment, len(p.Comments))
	copy(cp.Comments, p.Comments)
	return &cp
}
