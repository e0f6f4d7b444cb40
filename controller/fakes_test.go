package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/atharvajoshi-21/MERN-Miniproject-1/model"
	"github.com/atharvajoshi-21/MERN-Miniproject-1/view"
)

// In-memory stand-ins for the mongo repositories.

type fakeUserStore struct {
	users map[primitive.ObjectID]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[primitive.ObjectID]model.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, u model.User) (model.User, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.Avatar == "" {
		u.Avatar = model.DefaultAvatar
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id primitive.ObjectID) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserStore) SetAvatar(_ context.Context, id primitive.ObjectID, filename string) error {
	u, ok := s.users[id]
	if !ok {
		return model.ErrNotFound
	}
	u.Avatar = filename
	s.users[id] = u
	return nil
}

type fakePostStore struct {
	posts map[primitive.ObjectID]model.Post
	users *fakeUserStore
}

func newFakePostStore(users *fakeUserStore) *fakePostStore {
	return &fakePostStore{posts: map[primitive.ObjectID]model.Post{}, users: users}
}

func (s *fakePostStore) Create(_ context.Context, p model.Post) (model.Post, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.posts[p.ID] = p
	return p, nil
}

func (s *fakePostStore) UpdateContent(_ context.Context, id primitive.ObjectID, content string) error {
	p, ok := s.posts[id]
	if !ok {
		return model.ErrNotFound
	}
	p.Content = content
	s.posts[id] = p
	return nil
}

func (s *fakePostStore) ToggleLike(_ context.Context, id, userID primitive.ObjectID) error {
	p, ok := s.posts[id]
	if !ok {
		return model.ErrNotFound
	}
	for i, l := range p.Likes {
		if l == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			s.posts[id] = p
			return nil
		}
	}
	p.Likes = append(p.Likes, userID)
	s.posts[id] = p
	return nil
}

func (s *fakePostStore) AddComment(_ context.Context, id primitive.ObjectID, c model.Comment) error {
	p, ok := s.posts[id]
	if !ok {
		return model.ErrNotFound
	}
	p.Comments = append(p.Comments, c)
	s.posts[id] = p
	return nil
}

func (s *fakePostStore) sorted() []model.Post {
	all := make([]model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return all
}

func (s *fakePostStore) ByUser(_ context.Context, userID primitive.ObjectID) ([]model.Post, error) {
	var own []model.Post
	for _, p := range s.sorted() {
		if p.User == userID {
			own = append(own, p)
		}
	}
	return own, nil
}

func (s *fakePostStore) Feed(_ context.Context) ([]model.FeedPost, error) {
	var feed []model.FeedPost
	for _, p := range s.sorted() {
		fp := model.FeedPost{
			ID:      p.ID,
			Author:  s.users.users[p.User],
			Date:    p.Date,
			Content: p.Content,
			Likes:   p.Likes,
		}
		for _, c := range p.Comments {
			fp.Comments = append(fp.Comments, model.FeedComment{
				Author: s.users.users[c.User],
				Text:   c.Text,
			})
		}
		feed = append(feed, fp)
	}
	return feed, nil
}

// Request helpers.

func testEcho() *echo.Echo {
	e := echo.New()
	e.Renderer = view.NewRenderer()
	return e
}

func formContext(e *echo.Echo, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func getContext(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// loginAs plants the parsed jwt in the context the way the auth middleware
// does.
func loginAs(c echo.Context, uid primitive.ObjectID) {
	c.Set("user", jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userid": uid.Hex(),
	}))
}
