package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CookieName is the cookie the signed token travels in.
const CookieName = "token"

const tokenTTL = 72 * time.Hour

// Manager issues and validates the signed session tokens carried in the
// token cookie.
type Manager struct {
	secret string
}

// NewManager creates a Manager signing with the given secret.
func NewManager(secret string) *Manager {
	return &Manager{secret: secret}
}

// IssueToken signs a token carrying the user's id claim.
func (m *Manager) IssueToken(userID primitive.ObjectID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userid": userID.Hex(),
		"iat":    now.Unix(),
		"exp":    now.Add(tokenTTL).Unix(),
	})

	t, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return t, nil
}

// ParseToken verifies a token string and extracts the user id claim.
func (m *Manager) ParseToken(tokenString string) (primitive.ObjectID, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return primitive.NilObjectID, fmt.Errorf("token is invalid")
	}

	uid, _ := claims["userid"].(string)
	id, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("bad userid claim: %w", err)
	}

	return id, nil
}

// Middleware gates a route group on a valid token cookie. A missing or
// invalid token redirects to the login page instead of returning an error
// body.
func (m *Manager) Middleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(m.secret),
		TokenLookup: "cookie:" + CookieName,
		ErrorHandler: func(c echo.Context, err error) error {
			return c.Redirect(http.StatusFound, "/login")
		},
	})
}

// NewCookie wraps a signed token in the session cookie.
func NewCookie(token string) *http.Cookie {
	cookie := new(http.Cookie)
	cookie.Name = CookieName
	cookie.Value = token
	cookie.Path = "/"
	cookie.Expires = time.Now().Add(tokenTTL)
	cookie.HttpOnly = true
	return cookie
}

// ClearCookie returns a cookie that deletes the session cookie client-side.
// The token itself stays valid until it expires.
func ClearCookie() *http.Cookie {
	cookie := new(http.Cookie)
	cookie.Name = CookieName
	cookie.Value = ""
	cookie.Path = "/"
	cookie.MaxAge = -1
	cookie.HttpOnly = true
	return cookie
}
