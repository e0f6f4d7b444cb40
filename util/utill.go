package util

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetUID utility extracts the user id from the jwt set in context by the
// auth middleware
func GetUID(c echo.Context) (primitive.ObjectID, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("no token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected claims type %T", token.Claims)
	}

	uid, _ := claims["userid"].(string)
	return primitive.ObjectIDFromHex(uid)
}

// ContainsImage assures that the MIME-Type of an uploaded file is a supported image format
func ContainsImage(s []string) bool {
	for _, a := range s {
		if a == "image/jpeg" || a == "image/png" || a == "image/gif" || a == "image/webp" {
			return true
		}
	}
	return false
}
