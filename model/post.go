package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post use for handling requests from and db storage of posts
type Post struct {
	ID       primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	User     primitive.ObjectID   `json:"user" bson:"user"`
	Date     time.Time            `json:"date" bson:"date"`
	Content  string               `json:"content" bson:"content"`
	Likes    []primitive.ObjectID `json:"likes" bson:"likes"`
	Comments []Comment            `json:"comments" bson:"comments"`
}

// Comment is embedded in a post and references the commenting user by id.
type Comment struct {
	User primitive.ObjectID `json:"user" bson:"user"`
	Text string             `json:"text" bson:"text"`
}

// FeedPost is a post with its author and comment authors resolved to full
// user records, ready for rendering.
type FeedPost struct {
	ID       primitive.ObjectID
	Author   User
	Date     time.Time
	Content  string
	Likes    []primitive.ObjectID
	Comments []FeedComment
}

// FeedComment pairs a comment's text with its resolved author.
type FeedComment struct {
	Author User
	Text   string
}

// PostStore defines persistence operations for posts. ToggleLike and
// AddComment are atomic at the store so concurrent requests on the same post
// cannot lose updates.
type PostStore interface {
	Create(ctx context.Context, p Post) (Post, error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) error
	ToggleLike(ctx context.Context, id, userID primitive.ObjectID) error
	AddComment(ctx context.Context, id primitive.ObjectID, c Comment) error
	ByUser(ctx context.Context, userID primitive.ObjectID) ([]Post, error)
	Feed(ctx context.Context) ([]FeedPost, error)
}
