package model

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultAvatar is the placeholder filename a user carries until they upload
// their own picture. It is never deleted from disk.
const DefaultAvatar = "default.png"

// User contains data for tracking users
type User struct {
	ID       primitive.ObjectID `json:"id,omitempty" form:"id" bson:"_id,omitempty"`
	Name     string             `json:"name,omitempty" form:"name" bson:"name,omitempty"`
	UserName string             `json:"username,omitempty" form:"username" bson:"username,omitempty"`
	Age      int                `json:"age,omitempty" form:"age" bson:"age,omitempty"`
	Email    string             `json:"email,omitempty" form:"email" bson:"email,omitempty"`
	Password string             `json:"password,omitempty" form:"password" bson:"password,omitempty"`
	Avatar   string             `json:"avatar,omitempty" form:"avatar" bson:"avatar,omitempty"`
}

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, u User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (User, error)
	SetAvatar(ctx context.Context, id primitive.ObjectID, filename string) error
}
