package quote

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rohitprj/QuoteVault/internal/models"
	"github.com/Rohitprj/QuoteVault/internal/svc"
	"github.com/Rohitprj/QuoteVault/internal/utils"
)

const (
	defaultPageSize  = 20
	searchPageSize   = 50
	maxPageSize      = 100
	maxSearchLength  = 50
	quoteCacheTTL    = 10 * time.Minute
	categoryCacheTTL = 30 * time.Minute
)

type Handler struct {
	svc     *svc.ServiceContext
	service *Service
}

func NewHandler(s *svc.ServiceContext) *Handler {
	return &Handler{svc: s, service: NewService(s.DB)}
}

// Service exposes the repository for wiring outside HTTP (seeding, tests).
func (h *Handler) Service() *Service {
	return h.service
}

func pageParams(c *gin.Context, defaultLimit int) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return offset, limit
}

func (h *Handler) GetQuotes(c *gin.Context) {
	offset, limit := pageParams(c, defaultPageSize)
	category := c.DefaultQuery("category", models.AllCategories)

	cacheKey := fmt.Sprintf("quotes:page:%d:%d:%s", offset, limit, category)
	if h.svc.Cache != nil {
		if cached, err := h.svc.Cache.Get(c, cacheKey); err == nil {
			var page Page
			if err := json.Unmarshal([]byte(cached), &page); err == nil {
				zap.L().Debug("quote page served from cache", zap.String("key", cacheKey))
				utils.Success(c, page)
				return
			}
		}
	}

	page, err := h.service.List(c, offset, limit, category)
	if err != nil {
		zap.L().Error("failed to list quotes", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "failed to fetch quotes")
		return
	}

	if h.svc.Cache != nil {
		pageJSON, _ := json.Marshal(page)
		_ = h.svc.Cache.SetWithRandomTTL(c, cacheKey, string(pageJSON), quoteCacheTTL)
	}

	utils.Success(c, page)
}

func (h *Handler) SearchQuotes(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.Error(c, http.StatusBadRequest, "missing search query 'q'")
		return
	}
	if len(query) > maxSearchLength {
		utils.Error(c, http.StatusBadRequest, "search query too long")
		return
	}

	offset, limit := pageParams(c, searchPageSize)

	page, err := h.service.Search(c, query, offset, limit)
	if err != nil {
		zap.L().Error("quote search failed", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "search failed")
		return
	}

	utils.Success(c, page)
}

func (h *Handler) QuoteOfTheDay(c *gin.Context) {
	// The selection only changes at the UTC day boundary, so key the cache
	// by epoch day and let a fresh key take over at midnight.
	cacheKey := fmt.Sprintf("quotes:daily:%d", time.Now().Unix()/86400)
	if h.svc.Cache != nil {
		if cached, err := h.svc.Cache.Get(c, cacheKey); err == nil {
			var q models.Quote
			if err := json.Unmarshal([]byte(cached), &q); err == nil {
				utils.Success(c, q)
				return
			}
		}
	}

	q, err := h.service.QuoteOfTheDay(c)
	if err != nil {
		if errors.Is(err, ErrNoQuotes) {
			utils.Error(c, http.StatusNotFound, "no quotes available")
			return
		}
		zap.L().Error("failed to pick quote of the day", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "failed to fetch quote of the day")
		return
	}

	if h.svc.Cache != nil {
		quoteJSON, _ := json.Marshal(q)
		_ = h.svc.Cache.Set(c, cacheKey, string(quoteJSON), 24*time.Hour)
	}

	utils.Success(c, q)
}

func (h *Handler) GetCategories(c *gin.Context) {
	const cacheKey = "quotes:categories"
	if h.svc.Cache != nil {
		if cached, err := h.svc.Cache.Get(c, cacheKey); err == nil {
			var categories []string
			if err := json.Unmarshal([]byte(cached), &categories); err == nil {
				utils.Success(c, categories)
				return
			}
		}
	}

	categories, err := h.service.Categories(c)
	if err != nil {
		zap.L().Error("failed to list categories", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	if h.svc.Cache != nil {
		categoriesJSON, _ := json.Marshal(categories)
		_ = h.svc.Cache.SetWithRandomTTL(c, cacheKey, string(categoriesJSON), categoryCacheTTL)
	}

	utils.Success(c, categories)
}

func (h *Handler) GetQuote(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid quote id")
		return
	}

	q, err := h.service.GetByID(c, uint(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.Error(c, http.StatusNotFound, "quote not found")
			return
		}
		zap.L().Error("failed to get quote", zap.Uint64("id", id), zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "database error")
		return
	}

	utils.Success(c, q)
}
