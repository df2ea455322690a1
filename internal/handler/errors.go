package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/samber/oops"

	"vehicle-app/internal/dto"
	"vehicle-app/internal/service"
)

const internalErrorMessage = "Internal server error"

// StatusFor 依錯誤代碼對應 HTTP 狀態碼，未標記代碼的錯誤一律 500
func StatusFor(err error) int {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch oopsErr.Code() {
	case service.CodeValidation, service.CodeIDMismatch, service.CodeInvalidCredentials:
		return http.StatusBadRequest
	case service.CodeUnauthenticated:
		return http.StatusUnauthorized
	case service.CodeForbidden:
		return http.StatusForbidden
	case service.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorJSON 回傳 {"message": ...}，訊息只取 public 部分；5xx 記錄完整錯誤
func ErrorJSON(c echo.Context, err error) error {
	status := StatusFor(err)
	msg := oops.GetPublic(err, internalErrorMessage)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request().Context(), "request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
	}
	return c.JSON(status, dto.HTTPError{Message: msg})
}

// BadRequest 用於 Bind/Validate 失敗
func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: msg})
}
