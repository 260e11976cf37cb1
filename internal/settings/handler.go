package settings

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rohitprj/QuoteVault/internal/models"
	"github.com/Rohitprj/QuoteVault/internal/svc"
	"github.com/Rohitprj/QuoteVault/internal/utils"
	"github.com/Rohitprj/QuoteVault/internal/validators"
)

var allowedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type Handler struct {
	svc     *svc.ServiceContext
	service *Service
}

func NewHandler(s *svc.ServiceContext) *Handler {
	return &Handler{svc: s, service: NewService(s.DB)}
}

func (h *Handler) Service() *Service {
	return h.service
}

func (h *Handler) GetSettings(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	stored, err := h.service.Get(c, userID)
	if err != nil {
		zap.L().Error("failed to fetch settings", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "failed to fetch settings")
		return
	}
	if stored == nil {
		// Nothing synced yet; the client keeps its local values.
		utils.Success(c, gin.H{"settings": nil})
		return
	}

	utils.Success(c, gin.H{"settings": stored})
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req validators.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusUnprocessableEntity, "invalid settings patch")
		return
	}

	merged, err := h.service.Update(c, userID, req)
	if err != nil {
		zap.L().Error("failed to update settings", zap.String("user_id", userID), zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "failed to update settings")
		return
	}

	utils.Success(c, gin.H{"settings": merged})
}

func (h *Handler) SyncSettings(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req validators.SyncSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusUnprocessableEntity, "invalid settings snapshot")
		return
	}

	local := models.UserSettings{
		Theme:                models.Theme(req.Theme),
		AccentColor:          req.AccentColor,
		FontSize:             models.FontSize(req.FontSize),
		NotificationsEnabled: req.NotificationsEnabled,
		NotificationHour:     req.NotificationHour,
		NotificationMinute:   req.NotificationMinute,
	}

	authoritative, err := h.service.SyncOnLogin(c, userID, local)
	if err != nil {
		zap.L().Error("settings sync failed", zap.String("user_id", userID), zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "settings sync failed")
		return
	}

	utils.Success(c, gin.H{"settings": authoritative})
}

func (h *Handler) GetMe(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	profile, err := h.service.Profile(c, userID)
	if err != nil {
		zap.L().Error("failed to fetch profile", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	utils.Success(c, gin.H{"profile": profile})
}

func (h *Handler) UpdateMe(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req validators.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusUnprocessableEntity, "invalid profile")
		return
	}

	if req.DisplayName != nil {
		if err := h.service.SetDisplayName(c, userID, *req.DisplayName); err != nil {
			zap.L().Error("failed to update display name", zap.Error(err))
			utils.Error(c, http.StatusInternalServerError, "failed to update profile")
			return
		}
	}

	utils.Success(c, gin.H{"updated": true})
}

// UploadAvatar stores the image in object storage and records its URL on
// the profile.
func (h *Handler) UploadAvatar(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	if h.svc.Minio == nil {
		utils.Error(c, http.StatusServiceUnavailable, "avatar storage unavailable")
		return
	}

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "missing avatar file")
		return
	}
	defer file.Close()

	const maxFileSize = 5 * 1024 * 1024
	if header.Size > maxFileSize {
		utils.Error(c, http.StatusBadRequest, "avatar must be under 5MB")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedAvatarTypes[contentType] {
		utils.Error(c, http.StatusBadRequest, "unsupported image type")
		return
	}

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	objectName := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	url, err := h.svc.Minio.UploadImage(c, objectName, header.Size, file, contentType)
	if err != nil {
		zap.L().Error("avatar upload failed", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "avatar upload failed")
		return
	}

	if err := h.service.SetAvatar(c, userID, url); err != nil {
		zap.L().Error("failed to record avatar url", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	utils.Success(c, gin.H{"avatar_url": url})
}
