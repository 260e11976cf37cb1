package user

import (
	"github.com/Rohitprj/QuoteVault/internal/svc"
)

type Handler struct {
	svc *svc.ServiceContext
}

func NewHandler(s *svc.ServiceContext) *Handler {
	return &Handler{svc: s}
}
