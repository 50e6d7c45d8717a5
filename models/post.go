package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment lives inside its parent post's document. Its id only has to be
// unique among siblings, so a uuid minted at append time is enough.
type Comment struct {
	ID             string    `bson:"id" json:"id"`
	AuthorUsername string    `bson:"authorUsername" json:"authorUsername"`
	Text           string    `bson:"text" json:"text"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// Post is the persisted aggregate: the post fields plus its embedded comment
// list, stored and deleted as one document.
type Post struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorUsername string             `bson:"authorUsername" json:"authorUsername"`
	Content        string             `bson:"content" json:"content"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	LikeCount      int                `bson:"likeCount" json:"likeCount"`
	Comments       []Comment          `bson:"comments" json:"comments"`
}
