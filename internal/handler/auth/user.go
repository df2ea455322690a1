package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vehicle-app/internal/dto"
	"vehicle-app/internal/handler"
	"vehicle-app/internal/middleware"
	"vehicle-app/internal/model"
)

// UserHandler 回傳目前登入的使用者
// @Summary     取得目前使用者
// @Description token 從 jwt cookie 或 Authorization: Bearer 取得，cookie 無效時改用 header
// @Tags        auth
// @Produce     json
// @Success     200 {object} dto.UserResponse
// @Failure     401 {object} dto.HTTPError
// @Router      /auth/user [get]
func UserHandler(svc Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := middleware.FirstValid(c, func(token string) (*model.User, error) {
			return svc.CurrentUser(c.Request().Context(), token)
		})
		if err != nil {
			return handler.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewUserResponse(user))
	}
}
