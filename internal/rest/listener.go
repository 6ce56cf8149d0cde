package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"fairTune/domain"
	"fairTune/pkg/logger"
)

type ListenerService interface {
	Register(ctx context.Context, listener *domain.Listener) (domain.Listener, error)
	Login(ctx context.Context, email, password string) (string, domain.Listener, error)
	Logout(ctx context.Context, id uint) error
	GetProfile(ctx context.Context, id uint) (domain.Listener, error)
	SetCleanOnly(ctx context.Context, id uint, cleanOnly bool) error
	ImportHistory(ctx context.Context, id uint, itemIDs []string) (int, error)
	HistoryShareCode(ctx context.Context, id uint) (string, error)
	RedeemHistoryShareCode(ctx context.Context, redeemerID uint, code string) (int, error)
}

type ListenerHandler struct {
	listenerService ListenerService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewListenerHandler(listenerService ListenerService) *ListenerHandler {
	return &ListenerHandler{
		listenerService: listenerService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type ListenerRegisterRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	CleanOnly   bool   `json:"clean_only"`
}

type ListenerLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CleanOnlyRequest struct {
	CleanOnly *bool `json:"clean_only" validate:"required"`
}

type ImportHistoryRequest struct {
	Items []string `json:"items" validate:"required,min=1,dive,required"`
}

type RedeemShareCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func (h *ListenerHandler) Register(c echo.Context) error {
	var req ListenerRegisterRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate listener register", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	listener, err := h.listenerService.Register(ctx, &domain.Listener{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Password:    req.Password,
		CleanOnly:   req.CleanOnly,
	})
	if err != nil {
		logger.Error("Failed to register listener", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Registration successful",
		"listener": listener,
	})
}

func (h *ListenerHandler) Login(c echo.Context) error {
	var req ListenerLoginRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate listener login", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, listener, err := h.listenerService.Login(ctx, req.Email, req.Password)
	if err != nil {
		logger.Error("Failed to login listener", err)
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Login successful",
		"token":    token,
		"listener": listener,
	})
}

// Logout revokes the mirrored session token
func (h *ListenerHandler) Logout(c echo.Context) error {
	listenerID, ok := c.Get("listener_id").(uint)
	if !ok {
		logger.Error("Failed to get listener_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.listenerService.Logout(ctx, listenerID); err != nil {
		logger.Error("Failed to logout listener", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Logout successful",
	})
}

// Me returns the authenticated listener's profile
func (h *ListenerHandler) Me(c echo.Context) error {
	listenerID, ok := c.Get("listener_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	listener, err := h.listenerService.GetProfile(ctx, listenerID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Listener retrieved successfully",
		"listener": listener,
	})
}

// SetCleanOnly toggles the explicit-content filter
func (h *ListenerHandler) SetCleanOnly(c echo.Context) error {
	listenerID, ok := c.Get("listener_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req CleanOnlyRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate clean-only request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.listenerService.SetCleanOnly(ctx, listenerID, *req.CleanOnly); err != nil {
		logger.Error("Failed to update clean-only flag", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "Preference updated",
		"clean_only": *req.CleanOnly,
	})
}

// ImportHistory appends listened items to the listener's history
func (h *ListenerHandler) ImportHistory(c echo.Context) error {
	listenerID, ok := c.Get("listener_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req ImportHistoryRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate history import", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	count, err := h.listenerService.ImportHistory(ctx, listenerID, req.Items)
	if err != nil {
		logger.Error("Failed to import history", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "History imported",
		"imported": count,
	})
}

// HistoryShareCode issues a code for sharing this listener's history
func (h *ListenerHandler) HistoryShareCode(c echo.Context) error {
	listenerID, ok := c.Get("listener_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	code, err := h.listenerService.HistoryShareCode(ctx, listenerID)
	if err != nil {
		logger.Error("Failed to issue share code", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Share code issued",
		"code":    code,
	})
}

// RedeemHistoryShareCode copies a shared history into this listener's
func (h *ListenerHandler) RedeemHistoryShareCode(c echo.Context) error {
	listenerID, ok := c.Get("listener_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req RedeemShareCodeRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate share code request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	copied, err := h.listenerService.RedeemHistoryShareCode(ctx, listenerID, req.Code)
	if err != nil {
		logger.Error("Failed to redeem share code", err)
		if strings.Contains(err.Error(), "invalid or expired") {
			return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "History copied",
		"copied":  copied,
	})
}
