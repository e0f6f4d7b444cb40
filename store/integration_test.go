package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/atharvajoshi-21/MERN-Miniproject-1/model"
)

// Integration tests run against a real mongoDB, pointed at by TEST_MONGO_URI.
func testDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	})

	db := client.Database("miniproject_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
	})

	return db
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db.Collection("users"))
	ctx := context.Background()

	created, err := repo.Create(ctx, model.User{
		Name:     "Ada Lovelace",
		UserName: "ada",
		Age:      28,
		Email:    "ada@example.com",
		Password: "hashed",
	})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, model.DefaultAvatar, created.Avatar)

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, repo.SetAvatar(ctx, created.ID, "abc123.png"))
	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc123.png", byID.Avatar)
}

func TestPostRepository_LikesAndComments(t *testing.T) {
	db := testDB(t)
	repo := NewPostRepository(db.Collection("posts"), db.Collection("users"))
	ctx := context.Background()

	uid := primitive.NewObjectID()
	post, err := repo.Create(ctx, model.Post{User: uid, Content: "first"})
	require.NoError(t, err)

	// like, like again: back to empty
	require.NoError(t, repo.ToggleLike(ctx, post.ID, uid))
	require.NoError(t, repo.ToggleLike(ctx, post.ID, uid))

	require.NoError(t, repo.AddComment(ctx, post.ID, model.Comment{User: uid, Text: "nice"}))

	own, err := repo.ByUser(ctx, uid)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Empty(t, own[0].Likes)
	require.Len(t, own[0].Comments, 1)
	assert.Equal(t, "nice", own[0].Comments[0].Text)

	assert.ErrorIs(t, repo.ToggleLike(ctx, primitive.NewObjectID(), uid), model.ErrNotFound)
}

func TestPostRepository_FeedOrdering(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db.Collection("users"))
	repo := NewPostRepository(db.Collection("posts"), db.Collection("users"))
	ctx := context.Background()

	author, err := users.Create(ctx, model.User{UserName: "ada", Email: "ada@example.com"})
	require.NoError(t, err)

	base := time.Now().Truncate(time.Millisecond)
	for i, content := range []string{"first", "second", "third"} {
		_, err := repo.Create(ctx, model.Post{
			User:    author.ID,
			Content: content,
			Date:    base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	feed, err := repo.Feed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, "third", feed[0].Content)
	assert.Equal(t, "second", feed[1].Content)
	assert.Equal(t, "first", feed[2].Content)
	assert.Equal(t, "ada", feed[0].Author.UserName)
}
