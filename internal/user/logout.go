package user

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rohitprj/QuoteVault/internal/utils"
)

func (h *Handler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		utils.Error(c, http.StatusBadRequest, "missing token")
		return
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		utils.Error(c, http.StatusBadRequest, "invalid token format")
		return
	}
	tokenString := parts[1]

	if h.svc.Cache == nil {
		// No blacklist without redis; the token simply expires.
		utils.Success(c, gin.H{"message": "logged out"})
		return
	}

	err := utils.AddTokenToBlacklist(h.svc.Cache.Client(), tokenString, h.svc.Config.JWTExpirationTime)
	if err != nil {
		zap.L().Error("failed to add token to blacklist",
			zap.String("token", utils.GetTokenHash(tokenString)), zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "failed to logout")
		return
	}

	utils.Success(c, gin.H{"message": "logged out"})
}
