package favorite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rohitprj/QuoteVault/internal/svc"
	"github.com/Rohitprj/QuoteVault/internal/utils"
	"github.com/Rohitprj/QuoteVault/internal/validators"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
	idsCacheTTL     = 5 * time.Minute
)

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

func idsCacheKey(userID string) string {
	return fmt.Sprintf("favorites:ids:%s", userID)
}

func (h *Handler) Toggle(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	quoteID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid quote id")
		return
	}

	var req validators.ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.service.Toggle(c, userID, uint(quoteID), req.CurrentlyFavorited); err != nil {
		zap.L().Error("favorite toggle failed",
			zap.String("user_id", userID), zap.Uint64("quote_id", quoteID), zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "failed to update favorite")
		return
	}

	if h.svc.Cache != nil {
		_ = h.svc.Cache.Del(c, idsCacheKey(userID))
	}

	utils.Success(c, gin.H{"favorited": !req.CurrentlyFavorited})
}

func (h *Handler) Status(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	quoteID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid quote id")
		return
	}

	favorited, err := h.service.Status(c, userID, uint(quoteID))
	if err != nil {
		zap.L().Error("favorite status check failed", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "database error")
		return
	}

	utils.Success(c, gin.H{"favorited": favorited})
}

func (h *Handler) List(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	page, err := h.service.ListQuotes(c, userID, offset, limit)
	if err != nil {
		zap.L().Error("failed to list favorite quotes", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "failed to fetch favorites")
		return
	}

	utils.Success(c, page)
}

func (h *Handler) IDs(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	cacheKey := idsCacheKey(userID)
	if h.svc.Cache != nil {
		if cached, err := h.svc.Cache.Get(c, cacheKey); err == nil {
			var ids []uint
			if err := json.Unmarshal([]byte(cached), &ids); err == nil {
				utils.Success(c, gin.H{"quote_ids": ids})
				return
			}
		}
	}

	ids, err := h.service.IDs(c, userID)
	if err != nil {
		zap.L().Error("failed to fetch favorite ids", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "failed to fetch favorite ids")
		return
	}

	if h.svc.Cache != nil {
		idsJSON, _ := json.Marshal(ids)
		_ = h.svc.Cache.SetWithRandomTTL(c, cacheKey, string(idsJSON), idsCacheTTL)
	}

	utils.Success(c, gin.H{"quote_ids": ids})
}

func (h *Handler) Count(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	count, err := h.service.Count(c, userID)
	if err != nil {
		zap.L().Error("failed to count favorites", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "failed to count favorites")
		return
	}

	utils.Success(c, gin.H{"count": count})
}
