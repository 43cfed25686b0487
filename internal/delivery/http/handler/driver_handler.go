package handler

import (
	"net/http"

	"logitrack/internal/middleware"
	"logitrack/internal/usecase/driver"
	"logitrack/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DriverHandler struct {
	service *driver.Service
}

func NewDriverHandler(service *driver.Service) *DriverHandler {
	return &DriverHandler{service: service}
}

func (h *DriverHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	drivers := router.Group("/drivers")
	{
		drivers.GET("", h.List)
		drivers.POST("", h.Create)
	}
}

func (h *DriverHandler) RegisterDriverRoutes(router *gin.RouterGroup) {
	router.GET("/drivers/me", h.Profile)
}

func (h *DriverHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Drivers retrieved", result)
}

func (h *DriverHandler) Create(c *gin.Context) {
	var req driver.CreateDriverRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)
	req.Name = utils.SanitizeString(req.Name)

	result, err := h.service.Create(c.Request.Context(), middleware.GetIdentity(c), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Driver created successfully", result)
}

func (h *DriverHandler) Profile(c *gin.Context) {
	result, err := h.service.Profile(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved", result)
}
