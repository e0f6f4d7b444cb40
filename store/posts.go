package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/atharvajoshi-21/MERN-Miniproject-1/model"
)

var _ model.PostStore = (*PostRepository)(nil)

// PostRepository persists posts in a mongoDB collection. It also holds the
// users collection so the feed can resolve authors.
type PostRepository struct {
	posts *mongo.Collection
	users *mongo.Collection
}

// NewPostRepository wraps the posts and users collections.
func NewPostRepository(posts, users *mongo.Collection) *PostRepository {
	return &PostRepository{posts: posts, users: users}
}

// Create inserts a new post owned by p.User.
func (r *PostRepository) Create(ctx context.Context, p model.Post) (model.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	if p.Likes == nil {
		p.Likes = []primitive.ObjectID{}
	}
	if p.Comments == nil {
		p.Comments = []model.Comment{}
	}

	if _, err := r.posts.InsertOne(ctx, p); err != nil {
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	return p, nil
}

// UpdateContent overwrites a post's content.
func (r *PostRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.posts.UpdateByID(ctx, id, bson.M{"$set": bson.M{"content": content}})
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}

	return nil
}

// ToggleLike flips the user's membership in the post's likes array. Both
// directions are single atomic updates, so concurrent toggles on the same
// post cannot lose each other and the array stays duplicate-free.
func (r *PostRepository) ToggleLike(ctx context.Context, id, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": id, "likes": userID},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to unlike post: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	res, err = r.posts.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to like post: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}

	return nil
}

// AddComment appends a comment atomically.
func (r *PostRepository) AddComment(ctx context.Context, id primitive.ObjectID, c model.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.posts.UpdateByID(ctx, id, bson.M{"$push": bson.M{"comments": c}})
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}

	return nil
}

// ByUser returns a user's own posts, newest first.
func (r *PostRepository) ByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cur, err := r.posts.Find(ctx, bson.M{"user": userID},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}

	var posts []model.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	return posts, nil
}

// Feed returns every post, newest first, with the author and each comment's
// author resolved to full user records.
func (r *PostRepository) Feed(ctx context.Context) ([]model.FeedPost, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cur, err := r.posts.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}

	var posts []model.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	users, err := r.usersByID(ctx, posts)
	if err != nil {
		return nil, err
	}

	return ResolveFeed(posts, users), nil
}

// usersByID batch-fetches every user referenced by the posts as author or
// commenter.
func (r *PostRepository) usersByID(ctx context.Context, posts []model.Post) (map[primitive.ObjectID]model.User, error) {
	ids := make([]primitive.ObjectID, 0, len(posts))
	seen := make(map[primitive.ObjectID]bool)
	add := func(id primitive.ObjectID) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, p := range posts {
		add(p.User)
		for _, c := range p.Comments {
			add(c.User)
		}
	}

	users := make(map[primitive.ObjectID]model.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	cur, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	var found []model.User
	if err := cur.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	for _, u := range found {
		users[u.ID] = u
	}

	return users, nil
}

// ResolveFeed attaches user records to posts and their comments. A reference
// to a user that no longer resolves leaves a zero User in place.
func ResolveFeed(posts []model.Post, users map[primitive.ObjectID]model.User) []model.FeedPost {
	feed := make([]model.FeedPost, 0, len(posts))
	for _, p := range posts {
		fp := model.FeedPost{
			ID:      p.ID,
			Author:  users[p.User],
			Date:    p.Date,
			Content: p.Content,
			Likes:   p.Likes,
		}
		for _, c := range p.Comments {
			fp.Comments = append(fp.Comments, model.FeedComment{
				Author: users[c.User],
				Text:   c.Text,
			})
		}
		feed = append(feed, fp)
	}

	return feed
}
