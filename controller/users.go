package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/atharvajoshi-21/MERN-Miniproject-1/auth"
	"github.com/atharvajoshi-21/MERN-Miniproject-1/media"
	"github.com/atharvajoshi-21/MERN-Miniproject-1/model"
	"github.com/atharvajoshi-21/MERN-Miniproject-1/util"
)

// Users holds the stores and helpers the user-facing endpoints need.
type Users struct {
	Users model.UserStore
	Posts model.PostStore
	Media *media.Store
	Auth  *auth.Manager
}

// RegisterForm renders the registration page.
func (users *Users) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", nil)
}

// LoginForm renders the login page.
func (users *Users) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", nil)
}

// Register creates a user from the registration form, hands them a token
// cookie and sends them to the login page.
func (users *Users) Register(c echo.Context) error {
	u := new(model.User)
	if err := c.Bind(u); err != nil {
		return err
	}

	ctx := c.Request().Context()

	// duplicate check is by email only
	_, err := users.Users.GetByEmail(ctx, u.Email)
	if err == nil {
		return c.String(http.StatusConflict, "User already exists")
	}
	if !errors.Is(err, model.ErrNotFound) {
		return err
	}

	hashedPW, err := bcrypt.GenerateFromPassword([]byte(u.Password), 10)
	if err != nil {
		return err
	}
	u.Password = string(hashedPW)
	u.Avatar = model.DefaultAvatar

	created, err := users.Users.Create(ctx, *u)
	if err != nil {
		return err
	}

	token, err := users.Auth.IssueToken(created.ID)
	if err != nil {
		return err
	}

	c.SetCookie(auth.NewCookie(token))
	return c.Redirect(http.StatusFound, "/login")
}

// Login checks the credentials against the stored hash and, if they match,
// sets the token cookie and sends the user to their profile.
func (users *Users) Login(c echo.Context) error {
	u := new(model.User)
	if err := c.Bind(u); err != nil {
		return err
	}

	ctx := c.Request().Context()

	found, err := users.Users.GetByEmail(ctx, u.Email)
	if errors.Is(err, model.ErrNotFound) {
		return c.String(http.StatusUnauthorized, "User not found")
	}
	if err != nil {
		return err
	}

	// first arg is hash in db, second is entered from the form
	if err := bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(u.Password)); err != nil {
		return c.String(http.StatusUnauthorized, "Wrong password")
	}

	token, err := users.Auth.IssueToken(found.ID)
	if err != nil {
		return err
	}

	c.SetCookie(auth.NewCookie(token))
	return c.Redirect(http.StatusFound, "/profile")
}

// Logout clears the cookie client-side and redirects to login.
func (users *Users) Logout(c echo.Context) error {
	c.SetCookie(auth.ClearCookie())
	return c.Redirect(http.StatusFound, "/login")
}

// Profile renders the logged-in user's page with their own posts, newest
// first.
func (users *Users) Profile(c echo.Context) error {
	uid, err := util.GetUID(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	ctx := c.Request().Context()

	user, err := users.Users.GetByID(ctx, uid)
	if err != nil {
		return err
	}

	posts, err := users.Posts.ByUser(ctx, uid)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "profile.html", map[string]interface{}{
		"User":  user,
		"Posts": posts,
	})
}

// UploadAvatar validates and stores the uploaded image, removes the previous
// avatar file unless it is the default, and points the user record at the
// new file. Disk write and record update are separate steps.
func (users *Users) UploadAvatar(c echo.Context) error {
	uid, err := util.GetUID(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return c.String(http.StatusBadRequest, "No file uploaded")
	}

	name, err := users.Media.Save(file)
	if errors.Is(err, media.ErrNotImage) {
		return c.String(http.StatusUnsupportedMediaType, "Only images allowed")
	}
	if errors.Is(err, media.ErrTooLarge) {
		return c.String(http.StatusRequestEntityTooLarge, "Image must be 2 Megabytes or less")
	}
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	user, err := users.Users.GetByID(ctx, uid)
	if err != nil {
		return err
	}

	if err := users.Media.Remove(user.Avatar); err != nil {
		return err
	}

	if err := users.Users.SetAvatar(ctx, uid, name); err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, "/profile")
}
