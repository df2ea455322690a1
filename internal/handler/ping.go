// File: internal/handler/ping.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"vehicle-app/internal/cache"
	"vehicle-app/internal/database"
	"vehicle-app/internal/dto"
)

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與 Redis (若有設定) 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     503 {object} dto.HTTPError
// @Router      /ping [get]
func PingHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			slog.WarnContext(ctx, "database ping failed", slog.Any("error", err))
			return c.JSON(http.StatusServiceUnavailable, dto.HTTPError{Message: "database unhealthy"})
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				slog.WarnContext(ctx, "redis ping failed", slog.Any("error", err))
				return c.JSON(http.StatusServiceUnavailable, dto.HTTPError{Message: "cache unhealthy"})
			}
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
