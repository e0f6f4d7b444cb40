package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/atharvajoshi-21/MERN-Miniproject-1/auth"
	"github.com/atharvajoshi-21/MERN-Miniproject-1/config"
	"github.com/atharvajoshi-21/MERN-Miniproject-1/controller"
	"github.com/atharvajoshi-21/MERN-Miniproject-1/media"
	"github.com/atharvajoshi-21/MERN-Miniproject-1/store"
	"github.com/atharvajoshi-21/MERN-Miniproject-1/view"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal(err)
	}

	// setup mongodB client
	ctxDB, cancelDB := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelDB()

	client, err := mongo.Connect(ctxDB, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal(err)
	}

	// might want to ping here to really make sure we're connected
	db := client.Database(cfg.Mongo.Database)
	userRepo := store.NewUserRepository(db.Collection("users"))
	postRepo := store.NewPostRepository(db.Collection("posts"), db.Collection("users"))

	authManager := auth.NewManager(cfg.JWT.Secret)
	mediaStore := media.NewStore(cfg.Upload.Dir)

	usersController := &controller.Users{
		Users: userRepo,
		Posts: postRepo,
		Media: mediaStore,
		Auth:  authManager,
	}
	postsController := &controller.Posts{
		Posts: postRepo,
		Users: userRepo,
	}

	e := setupRoutes(cfg, authManager, usersController, postsController)

	// allows us to shut down server gracefully
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			e.Logger.Info("shutting down the server")
		}
	}()

	// Wait for Control C to exit - shut down mongo and server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctxDisconnect, cancelDisconnect := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelDisconnect()
	if err := e.Shutdown(ctxDisconnect); err != nil {
		e.Logger.Fatal(err)
	}

	if err := client.Disconnect(ctxDisconnect); err != nil {
		log.Fatal("Problem shutting down mongodb")
	}
}

/*
* Setup routes for the echo app here
 */
func setupRoutes(cfg *config.Config, authManager *auth.Manager, users *controller.Users, posts *controller.Posts) *echo.Echo {
	jwtmw := authManager.Middleware()

	e := echo.New()
	e.Renderer = view.NewRenderer()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/register")
	})
	e.GET("/register", users.RegisterForm)
	e.GET("/login", users.LoginForm)
	e.POST("/register", users.Register)
	e.POST("/login", users.Login)
	e.GET("/logout", users.Logout)

	// Must be logged in past this point
	e.GET("/profile", users.Profile, jwtmw)
	e.POST("/upload-avatar", users.UploadAvatar, jwtmw)
	e.POST("/create-post", posts.CreatePost, jwtmw)
	e.POST("/like-post/:id", posts.LikePost, jwtmw)
	e.POST("/edit-post/:id", posts.EditPost, jwtmw)
	e.GET("/feed", posts.Feed, jwtmw)
	e.POST("/feed/comment/:id", posts.CommentPost, jwtmw)
	e.POST("/feed/like/:id", posts.LikeFeed, jwtmw)

	// uploaded avatars are served statically by filename
	e.Static("/images/upload", cfg.Upload.Dir)

	return e
}
