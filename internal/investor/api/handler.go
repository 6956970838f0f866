package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xxz807/watertaxi/internal/investor/domain"
	"github.com/xxz807/watertaxi/internal/investor/service"
	"github.com/xxz807/watertaxi/internal/platform/response"
)

type InvestorHandler struct {
	svc *service.InvestorService
}

func NewInvestorHandler(svc *service.InvestorService) *InvestorHandler {
	return &InvestorHandler{svc: svc}
}

// RegisterRoutes 注册路由
func (h *InvestorHandler) RegisterRoutes(r *gin.RouterGroup) {
	investors := r.Group("/investors")
	{
		investors.POST("", h.CreateInvestor)
		investors.GET("", h.ListInvestors)
		investors.DELETE("/:id", h.DeleteInvestor)
	}
}

// CreateInvestor POST /api/v1/investors
func (h *InvestorHandler) CreateInvestor(c *gin.Context) {
	var req CreateInvestorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	inv, err := h.svc.Create(c.Request.Context(), service.CreateInvestorRequest{
		Name:            req.Name,
		SharePercentage: req.SharePercentage,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toInvestorResp(*inv))
}

// ListInvestors GET /api/v1/investors
func (h *InvestorHandler) ListInvestors(c *gin.Context) {
	investors, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := RosterResp{
		Investors:  make([]InvestorResp, 0, len(investors)),
		TotalShare: domain.TotalShare(investors).String(),
	}
	for _, inv := range investors {
		resp.Investors = append(resp.Investors, toInvestorResp(inv))
	}
	response.Success(c, http.StatusOK, resp)
}

// DeleteInvestor DELETE /api/v1/investors/:id
func (h *InvestorHandler) DeleteInvestor(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvestorNotFound):
		response.Error(c, http.StatusNotFound, "INVESTOR_NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrShareLimitExceeded):
		response.Error(c, http.StatusConflict, "SHARE_LIMIT_EXCEEDED", err.Error())
	case errors.Is(err, domain.ErrInvalidName), errors.Is(err, domain.ErrInvalidShare):
		response.Error(c, http.StatusBadRequest, "INVALID_INVESTOR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
