package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"vehicle-app/internal/dto"
	"vehicle-app/internal/middleware"
)

// LogoutHandler 清除 jwt cookie；token 本身不會失效
// @Summary     登出
// @Tags        auth
// @Produce     json
// @Success     200 {object} dto.MessageResponse
// @Router      /auth/logout [post]
func LogoutHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		c.SetCookie(&http.Cookie{
			Name:     middleware.CookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "success"})
	}
}
