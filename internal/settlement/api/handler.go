package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bookingdomain "github.com/xxz807/watertaxi/internal/booking/domain"
	"github.com/xxz807/watertaxi/internal/platform/response"
	"github.com/xxz807/watertaxi/internal/settlement/domain"
	"github.com/xxz807/watertaxi/internal/settlement/service"
)

type SettlementHandler struct {
	svc     *service.SettlementService
	reports *service.ReportService
}

func NewSettlementHandler(svc *service.SettlementService, reports *service.ReportService) *SettlementHandler {
	return &SettlementHandler{svc: svc, reports: reports}
}

// RegisterRoutes 注册路由
func (h *SettlementHandler) RegisterRoutes(r *gin.RouterGroup) {
	settlements := r.Group("/settlements")
	{
		settlements.GET("", h.ListSettlements)
		settlements.POST("/:booking_id", h.SettleBooking)
		settlements.GET("/:booking_id", h.GetSettlement)
	}

	reports := r.Group("/reports")
	{
		reports.GET("/owners/:id", h.OwnerSummary)
		reports.GET("/captains/:id", h.CaptainPayouts)
		reports.GET("/investors", h.InvestorPayouts)
		reports.GET("/platform", h.PlatformDashboard)
	}
}

// SettleBooking 手工触发 (重新) 结算
// POST /api/v1/settlements/:booking_id
func (h *SettlementHandler) SettleBooking(c *gin.Context) {
	st, err := h.svc.SettleBooking(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToSettlementResp(st))
}

// GetSettlement GET /api/v1/settlements/:booking_id
func (h *SettlementHandler) GetSettlement(c *gin.Context) {
	st, err := h.svc.Get(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToSettlementResp(st))
}

// ListSettlements GET /api/v1/settlements?owner_id=&captain_id=&boat_id=&from=&to=&limit=&offset=
func (h *SettlementHandler) ListSettlements(c *gin.Context) {
	var req ListSettlementsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	rows, err := h.svc.List(c.Request.Context(), domain.ListFilter{
		OwnerID:   req.OwnerID,
		CaptainID: req.CaptainID,
		BoatID:    req.BoatID,
		From:      req.From,
		To:        req.To,
		Limit:     req.Limit,
		Offset:    req.Offset,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]SettlementResp, 0, len(rows))
	for i := range rows {
		out = append(out, ToSettlementResp(&rows[i]))
	}
	response.Success(c, http.StatusOK, out)
}

// OwnerSummary GET /api/v1/reports/owners/:id
func (h *SettlementHandler) OwnerSummary(c *gin.Context) {
	period, ok := bindPeriod(c)
	if !ok {
		return
	}
	sum, err := h.reports.OwnerSummary(c.Request.Context(), c.Param("id"), period)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, OwnerSummaryResp{
		OwnerID:    sum.OwnerID,
		Trips:      sum.Trips,
		GrossFare:  sum.GrossFare.String(),
		OwnerShare: sum.OwnerShare.String(),
	})
}

// CaptainPayouts GET /api/v1/reports/captains/:id
func (h *SettlementHandler) CaptainPayouts(c *gin.Context) {
	period, ok := bindPeriod(c)
	if !ok {
		return
	}
	p, err := h.reports.CaptainPayouts(c.Request.Context(), c.Param("id"), period)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, CaptainPayoutResp{
		CaptainID:  p.CaptainID,
		Trips:      p.Trips,
		Commission: p.Commission.String(),
	})
}

// InvestorPayouts GET /api/v1/reports/investors
func (h *SettlementHandler) InvestorPayouts(c *gin.Context) {
	period, ok := bindPeriod(c)
	if !ok {
		return
	}
	rows, err := h.reports.InvestorPayouts(c.Request.Context(), period)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toInvestorTotals(rows))
}

// PlatformDashboard GET /api/v1/reports/platform
func (h *SettlementHandler) PlatformDashboard(c *gin.Context) {
	period, ok := bindPeriod(c)
	if !ok {
		return
	}
	d, err := h.reports.PlatformDashboard(c.Request.Context(), period)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, PlatformDashboardResp{
		Trips:             d.Trips,
		GrossFare:         d.GrossFare.String(),
		PlatformFee:       d.PlatformFee.String(),
		InvestorPayouts:   d.InvestorPayouts.String(),
		PlatformResidual:  d.PlatformResidual.String(),
		CaptainCommission: d.CaptainCommission.String(),
		OwnerShare:        d.OwnerShare.String(),
	})
}

func bindPeriod(c *gin.Context) (service.Period, bool) {
	var req PeriodReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return service.Period{}, false
	}
	return service.Period{From: req.From, To: req.To}, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSettlementNotFound):
		response.Error(c, http.StatusNotFound, "SETTLEMENT_NOT_FOUND", err.Error())
	case errors.Is(err, bookingdomain.ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrBookingNotCompleted):
		response.Error(c, http.StatusConflict, "BOOKING_NOT_COMPLETED", err.Error())
	case errors.Is(err, domain.ErrInvestorSharesExceeded):
		response.Error(c, http.StatusConflict, "INVESTOR_SHARES_EXCEEDED", err.Error())
	case errors.Is(err, domain.ErrFinalFareMissing):
		response.Error(c, http.StatusUnprocessableEntity, "FINAL_FARE_MISSING", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
