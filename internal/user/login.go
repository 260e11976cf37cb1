package user

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rohitprj/QuoteVault/internal/models"
	"github.com/Rohitprj/QuoteVault/internal/utils"
	"github.com/Rohitprj/QuoteVault/internal/validators"
)

func (h *Handler) Login(c *gin.Context) {
	var req validators.LoginUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request")
		return
	}

	var user models.User
	if h.svc.DB.Where("username = ?", req.Username).First(&user).RowsAffected == 0 {
		utils.Error(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.Error(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(h.svc.Config, user.ID, user.Username)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	if h.svc.Cache != nil {
		sessionData := map[string]interface{}{
			"id":         user.ID,
			"username":   user.Username,
			"created_at": user.CreatedAt,
		}
		sessionJSON, err := json.Marshal(sessionData)
		if err != nil {
			zap.L().Warn("failed to marshal session for caching",
				zap.String("user_id", user.ID), zap.Error(err))
		} else {
			cacheKey := fmt.Sprintf("user:session:%s", user.ID)
			if err := h.svc.Cache.SetWithRandomTTL(c, cacheKey, string(sessionJSON), h.svc.Config.JWTExpirationTime); err != nil {
				zap.L().Warn("failed to cache user session",
					zap.String("user_id", user.ID), zap.Error(err))
			}
		}
	}

	utils.Success(c, gin.H{"token": token, "user": gin.H{
		"id":       user.ID,
		"username": user.Username,
	}})
}
