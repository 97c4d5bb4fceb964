package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"prikkr/core/errors"
	"prikkr/core/logger"
)

type (
	SuccessResponse struct {
		Status    int       `json:"status"`
		Message   string    `json:"message"`
		Data      any       `json:"data,omitempty"`
		Timestamp time.Time `json:"timestamp"`
	}

	ErrorResponse struct {
		Status    string           `json:"status"`
		Code      errors.ErrorCode `json:"code"`
		Message   string           `json:"message"`
		Timestamp time.Time        `json:"timestamp"`
	}
)

// BaseController provides the shared response envelope.
type BaseController interface {
	BadRequest(code errors.ErrorCode, message string) *echo.HTTPError
	Unauthorized(code errors.ErrorCode, message string) *echo.HTTPError
	NotFound(code errors.ErrorCode, message string) *echo.HTTPError
	SuccessResponse(c echo.Context, data any, message string) error
	ErrorResponse(c echo.Context, err error) error
}

type responseHandler struct{}

func NewBaseController() BaseController {
	return &responseHandler{}
}

func newErrorBody(code errors.ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{
		Status:    "error",
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func (h *responseHandler) BadRequest(code errors.ErrorCode, message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, newErrorBody(code, message))
}

func (h *responseHandler) Unauthorized(code errors.ErrorCode, message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, newErrorBody(code, message))
}

func (h *responseHandler) NotFound(code errors.ErrorCode, message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusNotFound, newErrorBody(code, message))
}

func (h *responseHandler) SuccessResponse(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusOK, &SuccessResponse{
		Status:    http.StatusOK,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// ErrorResponse maps an AppError to its HTTP status; anything else is a 500.
func (h *responseHandler) ErrorResponse(c echo.Context, err error) error {
	httpStatus := http.StatusInternalServerError
	code := errors.ErrInternalServer
	msg := "internal server error"

	if ae, ok := err.(*errors.AppError); ok && ae != nil {
		code = ae.Code
		if ae.Message != "" {
			msg = ae.Message
		}
		switch code {
		case errors.ErrInvalidInput, errors.ErrInvalidRequestData:
			httpStatus = http.StatusBadRequest
		case errors.ErrUnauthorized:
			httpStatus = http.StatusUnauthorized
		case errors.ErrForbidden:
			httpStatus = http.StatusForbidden
		case errors.ErrNotFound:
			httpStatus = http.StatusNotFound
		case errors.ErrAlreadyExists:
			httpStatus = http.StatusConflict
		case errors.ErrProviderAPI:
			httpStatus = http.StatusBadGateway
		}
	} else if err != nil && err.Error() != "" {
		msg = err.Error()
	}

	logger.Error("BaseController:ErrorResponse",
		"status", httpStatus,
		"code", code,
		"message", msg,
	)
	return c.JSON(httpStatus, newErrorBody(code, msg))
}
