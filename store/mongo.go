package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/microblog-app/microblog-backend/models"
)

type MongoUserStore struct {
	users *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{users: db.Collection("users")}
}

// EnsureIndexes creates the unique username index. Run once at startup.
func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

func (s *MongoUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = primitive.NewObjectID()

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (s *MongoUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *MongoUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	user := &models.User{}
	err = s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

type MongoPostStore struct {
	posts *mongo.Collection
}

func NewMongoPostStore(db *mongo.Database) *MongoPostStore {
	return &MongoPostStore{posts: db.Collection("posts")}
}

func (s *MongoPostStore) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now().UTC()
	post.LikeCount = 0
	post.Comments = []models.Comment{}

	if _, err := s.posts.InsertOne(ctx, post); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return post, nil
}

func (s *MongoPostStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	post := &models.Post{}
	err = s.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}

func (s *MongoPostStore) List(ctx context.Context) ([]models.Post, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoPostStore) ListByAuthor(ctx context.Context, username string) ([]models.Post, error) {
	return s.find(ctx, bson.M{"authorUsername": username})
}

func (s *MongoPostStore) find(ctx context.Context, filter bson.M) ([]models.Post, error) {
	cur, err := s.posts.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

func (s *MongoPostStore) UpdateContent(ctx context.Context, id, content string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	post := &models.Post{}
	err = s.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"content": content}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// Delete removes the whole aggregate; the embedded comments go with it.
func (s *MongoPostStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.posts.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPostStore) IncrementLikes(ctx context.Context, id string) (int, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrNotFound
	}

	post := &models.Post{}
	err = s.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"likeCount": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("like post: %w", err)
	}
	return post.LikeCount, nil
}

// DecrementLikes guards the decrement with a likeCount > 0 filter so the
// counter can never go negative, without a read-modify-write cycle.
func (s *MongoPostStore) DecrementLikes(ctx context.Context, id string) (int, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrNotFound
	}

	post := &models.Post{}
	err = s.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "likeCount": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"likeCount": -1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(post)
	if err == nil {
		return post.LikeCount, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, fmt.Errorf("unlike post: %w", err)
	}

	// Either the post is gone or the counter is already at zero.
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return existing.LikeCount, nil
}

func (s *MongoPostStore) AddComment(ctx context.Context, postID string, comment *models.Comment) (*models.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrNotFound
	}

	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now().UTC()

	res, err := s.posts.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return comment, nil
}

func (s *MongoPostStore) UpdateComment(ctx context.Context, postID, commentID, text string) (*models.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrNotFound
	}

	post := &models.Post{}
	err = s.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "comments.id": commentID},
		bson.M{"$set": bson.M{"comments.$.text": text}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}

	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			return &post.Comments[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *MongoPostStore) RemoveComment(ctx context.Context, postID, commentID string) error {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.posts.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"comments": bson.M{"id": commentID}}})
	if err != nil {
		return fmt.Errorf("remove comment: %w", err)
	}
	if res.MatchedCount == 0 || res.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}
