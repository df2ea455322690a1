// File: internal/handler/auth/login.go
package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vehicle-app/internal/dto"
	"vehicle-app/internal/handler"
	"vehicle-app/internal/middleware"
)

// LoginHandler 使用 Email/Password 驗證並回傳 JWT，同時設定 HttpOnly cookie
// @Summary     登入使用者
// @Description 驗證成功後回傳 JWT，並寫入 jwt cookie
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.LoginRequest true "登入資料"
// @Success     200  {object} dto.LoginResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/login [post]
func LoginHandler(svc Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		token, exp, _, err := svc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return handler.ErrorJSON(c, err)
		}

		c.SetCookie(&http.Cookie{
			Name:     middleware.CookieName,
			Value:    token,
			Path:     "/",
			Expires:  exp,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return c.JSON(http.StatusOK, dto.LoginResponse{JWT: token, Message: "success"})
	}
}
