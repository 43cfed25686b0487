package handler

import (
	"net/http"

	"logitrack/internal/config"
	"logitrack/internal/usecase/auth"
	"logitrack/pkg/utils"

	"github.com/gin-gonic/gin"
)

const refreshCookieName = "refresh_token"

type AuthHandler struct {
	service *auth.Service
	cfg     *config.Config
}

func NewAuthHandler(service *auth.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{service: service, cfg: cfg}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.POST("/refresh-token", h.RefreshToken)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)
	req.Name = utils.SanitizeString(req.Name)

	authResponse, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.setRefreshCookie(c, authResponse.RefreshToken)
	utils.SuccessResponse(c, http.StatusCreated, "User registered successfully", authResponse)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	authResponse, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.setRefreshCookie(c, authResponse.RefreshToken)
	utils.SuccessResponse(c, http.StatusOK, "Login successful", authResponse)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshCookieName)

	if err := h.service.Logout(c.Request.Context(), refreshToken); err != nil {
		respondWithError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	utils.SuccessResponse(c, http.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Refresh token required")
		return
	}

	authResponse, err := h.service.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.setRefreshCookie(c, authResponse.RefreshToken)
	utils.SuccessResponse(c, http.StatusOK, "Token refreshed successfully", authResponse)
}

// The refresh token only ever travels in this http-only cookie, never in
// a JSON body.
func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	maxAge := h.cfg.JWT.RefreshExpiryHours * 3600
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, token, maxAge, "/", h.cfg.JWT.CookieDomain, h.cfg.JWT.CookieSecure, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, "", -1, "/", h.cfg.JWT.CookieDomain, h.cfg.JWT.CookieSecure, true)
}
