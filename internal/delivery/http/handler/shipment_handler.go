package handler

import (
	"net/http"

	"logitrack/internal/middleware"
	"logitrack/internal/usecase/shipment"
	"logitrack/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ShipmentHandler struct {
	service *shipment.Service
}

func NewShipmentHandler(service *shipment.Service) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

// RegisterPublicRoutes mounts the single unauthenticated endpoint.
func (h *ShipmentHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/shipments/track/:trackingNumber", h.Track)
}

func (h *ShipmentHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	shipments := router.Group("/shipments")
	{
		shipments.GET("", h.List)
		shipments.POST("", h.Create)
		shipments.GET("/:id", h.GetByID)
		shipments.PATCH("/:id/status", h.UpdateStatus)
	}
}

func (h *ShipmentHandler) Create(c *gin.Context) {
	var req shipment.CreateShipmentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.SenderPhone != nil {
		sanitized := utils.SanitizePhone(*req.SenderPhone)
		req.SenderPhone = &sanitized
	}
	if req.ReceiverPhone != nil {
		sanitized := utils.SanitizePhone(*req.ReceiverPhone)
		req.ReceiverPhone = &sanitized
	}

	result, err := h.service.Create(c.Request.Context(), middleware.GetIdentity(c), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Shipment created successfully", result)
}

func (h *ShipmentHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipments retrieved", result)
}

func (h *ShipmentHandler) GetByID(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid shipment ID")
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), middleware.GetIdentity(c), shipmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment retrieved", result)
}

func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid shipment ID")
		return
	}

	var req shipment.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.UpdateStatus(c.Request.Context(), middleware.GetIdentity(c), shipmentID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment status updated", result)
}

func (h *ShipmentHandler) Track(c *gin.Context) {
	trackingNumber := c.Param("trackingNumber")

	result, err := h.service.Track(c.Request.Context(), trackingNumber)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment retrieved", result)
}
