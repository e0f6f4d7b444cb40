package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/atharvajoshi-21/MERN-Miniproject-1/model"
	"github.com/atharvajoshi-21/MERN-Miniproject-1/util"
)

// Posts holds the stores the post endpoints need.
type Posts struct {
	Posts model.PostStore
	Users model.UserStore
}

// CreatePost creates a post for the current user (set in context from jwt
// middleware). Content is taken as-is, no validation.
func (posts *Posts) CreatePost(c echo.Context) error {
	uid, err := util.GetUID(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	_, err = posts.Posts.Create(c.Request().Context(), model.Post{
		User:    uid,
		Content: c.FormValue("content"),
	})
	if err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, "/profile")
}

// EditPost overwrites a post's content. There is deliberately no ownership
// check, matching the original surface.
func (posts *Posts) EditPost(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return err
	}

	if err := posts.Posts.UpdateContent(c.Request().Context(), id, c.FormValue("newContent")); err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, "/profile")
}

// LikePost toggles the current user's like from the profile page.
func (posts *Posts) LikePost(c echo.Context) error {
	return posts.toggleLike(c, "/profile")
}

// LikeFeed toggles the current user's like from the feed page.
func (posts *Posts) LikeFeed(c echo.Context) error {
	return posts.toggleLike(c, "/feed")
}

func (posts *Posts) toggleLike(c echo.Context, redirect string) error {
	uid, err := util.GetUID(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return err
	}

	if err := posts.Posts.ToggleLike(c.Request().Context(), id, uid); err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, redirect)
}

// CommentPost appends the current user's comment to a post.
func (posts *Posts) CommentPost(c echo.Context) error {
	uid, err := util.GetUID(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return err
	}

	comment := model.Comment{User: uid, Text: c.FormValue("comment")}
	if err := posts.Posts.AddComment(c.Request().Context(), id, comment); err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, "/feed")
}

// Feed renders every post, newest first, with authors resolved.
func (posts *Posts) Feed(c echo.Context) error {
	uid, err := util.GetUID(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	ctx := c.Request().Context()

	user, err := posts.Users.GetByID(ctx, uid)
	if err != nil {
		return err
	}

	feed, err := posts.Posts.Feed(ctx)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "feed.html", map[string]interface{}{
		"User":  user,
		"Posts": feed,
	})
}
