package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success writes the standard response envelope. Handlers never shape
// their own top-level JSON.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": data,
	})
}

func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}
