package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/dto"
	"github.com/SscSPs/pos_ledger_app/internal/middleware"
)

// authHandler turns a Google authorization code into an application token.
type authHandler struct {
	googleOAuth portssvc.GoogleOAuthHandlerSvcFacade
	tokens      portssvc.TokenSvcFacade
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := &authHandler{googleOAuth: services.GoogleOAuth, tokens: services.TokenService}

	// 5 requests per minute per client IP
	rate, _ := limiter.NewRateFromFormatted("5-M")
	limitMiddleware := limitergin.NewMiddleware(limiter.New(memory.NewStore(), rate))

	auth := r.Group("/auth/google")
	{
		auth.POST("/exchange", limitMiddleware, h.exchangeCode)
	}
}

// exchangeCode godoc
// @Summary Exchange a Google authorization code for an access token
// @Description Exchanges the code with Google, validates the returned ID token and issues the application's JWT.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.ExchangeCodeResponse
// @Failure 400 {object} ErrorResponse "Invalid authorization code"
// @Failure 401 {object} ErrorResponse "Invalid ID token"
// @Failure 503 {object} ErrorResponse "Google unreachable"
// @Router /auth/google/exchange [post]
func (h *authHandler) exchangeCode(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ExchangeCodeRequest
	if !bindJSON(c, &req, "ExchangeCode") {
		return
	}

	token, err := h.googleOAuth.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "invalid_grant") || strings.Contains(lower, "bad request") {
			logger.Warn("Google rejected authorization code", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired authorization code"})
			return
		}
		respondError(c, err, "Failed to exchange authorization code")
		return
	}

	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		logger.Error("ID token not found in Google's token response")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve ID token from Google"})
		return
	}

	operator, err := h.googleOAuth.ValidateGoogleIDToken(ctx, idToken)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	accessToken, expiresAt, err := h.tokens.GenerateAccessToken(ctx, operator)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}

	logger.Info("Operator signed in", slog.String("operator_id", operator.ID))
	c.JSON(http.StatusOK, dto.ExchangeCodeResponse{Token: accessToken, ExpiresAt: expiresAt})
}
