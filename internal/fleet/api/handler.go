package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xxz807/watertaxi/internal/fleet/domain"
	"github.com/xxz807/watertaxi/internal/fleet/service"
	"github.com/xxz807/watertaxi/internal/platform/response"
)

type FleetHandler struct {
	svc *service.FleetService
}

func NewFleetHandler(svc *service.FleetService) *FleetHandler {
	return &FleetHandler{svc: svc}
}

// RegisterRoutes 注册路由
func (h *FleetHandler) RegisterRoutes(r *gin.RouterGroup) {
	boats := r.Group("/boats")
	{
		boats.POST("", h.CreateBoat)
		boats.GET("/:id", h.GetBoat)
		boats.PUT("/:id/captain", h.AssignCaptain)
		boats.DELETE("/:id/captain", h.UnassignCaptain)
	}
}

// CreateBoat POST /api/v1/boats
func (h *FleetHandler) CreateBoat(c *gin.Context) {
	var req CreateBoatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	boat, err := h.svc.CreateBoat(c.Request.Context(), service.CreateBoatRequest{
		Name:      req.Name,
		OwnerID:   req.OwnerID,
		CaptainID: req.CaptainID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toBoatResp(boat))
}

// GetBoat GET /api/v1/boats/:id
func (h *FleetHandler) GetBoat(c *gin.Context) {
	boat, err := h.svc.GetBoat(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toBoatResp(boat))
}

// AssignCaptain PUT /api/v1/boats/:id/captain
func (h *FleetHandler) AssignCaptain(c *gin.Context) {
	var req AssignCaptainReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	boat, err := h.svc.AssignCaptain(c.Request.Context(), c.Param("id"), req.CaptainID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toBoatResp(boat))
}

// UnassignCaptain DELETE /api/v1/boats/:id/captain
func (h *FleetHandler) UnassignCaptain(c *gin.Context) {
	boat, err := h.svc.UnassignCaptain(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toBoatResp(boat))
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrBoatNotFound):
		response.Error(c, http.StatusNotFound, "BOAT_NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrInvalidBoatName),
		errors.Is(err, domain.ErrInvalidOwner),
		errors.Is(err, domain.ErrInvalidCaptain):
		response.Error(c, http.StatusBadRequest, "INVALID_BOAT", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
