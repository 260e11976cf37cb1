package collection

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rohitprj/QuoteVault/internal/svc"
	"github.com/Rohitprj/QuoteVault/internal/utils"
	"github.com/Rohitprj/QuoteVault/internal/validators"
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

// requestIDs pulls the authenticated user and the :id path param. When ok
// is false the error response has already been written.
func requestIDs(c *gin.Context) (userID string, collectionID uint, ok bool) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return "", 0, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid collection id")
		return "", 0, false
	}

	return userID, uint(id), true
}

func (h *Handler) writeServiceError(c *gin.Context, err error, action string) {
	if errors.Is(err, ErrAccessDenied) {
		utils.Error(c, http.StatusForbidden, ErrAccessDenied.Error())
		return
	}
	zap.L().Error(action+" failed", zap.Error(err))
	utils.Error(c, http.StatusInternalServerError, "database error")
}

func (h *Handler) Create(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req validators.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusUnprocessableEntity, "invalid collection title")
		return
	}

	col, err := h.service.Create(c, userID, req.Title)
	if err != nil {
		zap.L().Error("create collection failed", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "failed to create collection")
		return
	}

	utils.Success(c, col)
}

func (h *Handler) List(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	collections, err := h.service.ListByUser(c, userID)
	if err != nil {
		zap.L().Error("list collections failed", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "failed to fetch collections")
		return
	}

	utils.Success(c, collections)
}

func (h *Handler) Get(c *gin.Context) {
	userID, collectionID, ok := requestIDs(c)
	if !ok {
		return
	}

	col, err := h.service.GetWithQuotes(c, collectionID, userID)
	if err != nil {
		h.writeServiceError(c, err, "get collection")
		return
	}

	utils.Success(c, col)
}

func (h *Handler) AddQuote(c *gin.Context) {
	userID, collectionID, ok := requestIDs(c)
	if !ok {
		return
	}

	var req validators.CollectionQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid quote id")
		return
	}

	if err := h.service.AddQuote(c, collectionID, req.QuoteID, userID); err != nil {
		h.writeServiceError(c, err, "add quote to collection")
		return
	}

	utils.Success(c, gin.H{"added": true})
}

func (h *Handler) RemoveQuote(c *gin.Context) {
	userID, collectionID, ok := requestIDs(c)
	if !ok {
		return
	}

	quoteID, err := strconv.ParseUint(c.Param("quoteId"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid quote id")
		return
	}

	if err := h.service.RemoveQuote(c, collectionID, uint(quoteID), userID); err != nil {
		h.writeServiceError(c, err, "remove quote from collection")
		return
	}

	utils.Success(c, gin.H{"removed": true})
}

func (h *Handler) Delete(c *gin.Context) {
	userID, collectionID, ok := requestIDs(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c, collectionID, userID); err != nil {
		h.writeServiceError(c, err, "delete collection")
		return
	}

	utils.Success(c, gin.H{"deleted": true})
}

func (h *Handler) Rename(c *gin.Context) {
	userID, collectionID, ok := requestIDs(c)
	if !ok {
		return
	}

	var req validators.RenameCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusUnprocessableEntity, "invalid collection title")
		return
	}

	if err := h.service.Rename(c, collectionID, userID, req.Title); err != nil {
		h.writeServiceError(c, err, "rename collection")
		return
	}

	utils.Success(c, gin.H{"updated": true})
}

func (h *Handler) Contains(c *gin.Context) {
	userID, collectionID, ok := requestIDs(c)
	if !ok {
		return
	}

	quoteID, err := strconv.ParseUint(c.Query("quote_id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid quote id")
		return
	}

	inCollection, err := h.service.Contains(c, collectionID, uint(quoteID), userID)
	if err != nil {
		h.writeServiceError(c, err, "check collection membership")
		return
	}

	utils.Success(c, gin.H{"in_collection": inCollection})
}
