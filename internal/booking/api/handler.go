package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xxz807/watertaxi/internal/booking/domain"
	"github.com/xxz807/watertaxi/internal/booking/service"
	fleetdomain "github.com/xxz807/watertaxi/internal/fleet/domain"
	"github.com/xxz807/watertaxi/internal/platform/response"
)

type BookingHandler struct {
	svc *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// RegisterRoutes 注册路由
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/fare", h.AdjustFare)
		bookings.POST("/:id/status", h.Transition)
	}
	r.POST("/journeys/complete", h.CompleteJourney)
}

// CreateBooking POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	b, err := h.svc.Create(c.Request.Context(), service.CreateBookingRequest{
		BoatID:      req.BoatID,
		RiderName:   req.RiderName,
		Origin:      req.Origin,
		Destination: req.Destination,
		BaseFare:    req.BaseFare,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toBookingResp(b))
}

// GetBooking GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toBookingResp(b))
}

// AdjustFare POST /api/v1/bookings/:id/fare
func (h *BookingHandler) AdjustFare(c *gin.Context) {
	var req AdjustFareReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	b, err := h.svc.AdjustFare(c.Request.Context(), c.Param("id"), req.AdjustmentPercent)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toBookingResp(b))
}

// Transition POST /api/v1/bookings/:id/status
// 流转到 completed 时同步结算；结算失败仍返回 200，错误放在 settlement_error
func (h *BookingHandler) Transition(c *gin.Context) {
	var req TransitionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.svc.Transition(c.Request.Context(), c.Param("id"), domain.Status(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toTransitionResp(result))
}

// CompleteJourney POST /api/v1/journeys/complete
func (h *BookingHandler) CompleteJourney(c *gin.Context) {
	var req CompleteJourneyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	outcomes := h.svc.CompleteJourney(c.Request.Context(), req.BookingIDs)
	response.Success(c, http.StatusOK, toCompleteJourneyResp(outcomes))
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", err.Error())
	case errors.Is(err, fleetdomain.ErrBoatNotFound):
		response.Error(c, http.StatusNotFound, "BOAT_NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrInvalidFare),
		errors.Is(err, domain.ErrInvalidBooking),
		errors.Is(err, domain.ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "INVALID_BOOKING", err.Error())
	case errors.Is(err, domain.ErrConcurrentUpdate):
		response.Error(c, http.StatusConflict, "CONCURRENT_UPDATE", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrBookingTerminal),
		errors.Is(err, domain.ErrFareAlreadyFinal):
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_STATE", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
