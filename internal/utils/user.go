package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// GetUserID returns the authenticated user's id stored by the JWT
// middleware. User ids are uuid strings.
func GetUserID(c *gin.Context) (string, error) {
	uidRaw, exists := c.Get("user_id")
	if !exists {
		return "", errors.New("not authenticated")
	}

	uid, ok := uidRaw.(string)
	if !ok || uid == "" {
		return "", errors.New("invalid user id in context")
	}

	return uid, nil
}
