package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vehicle-app/internal/dto"
	"vehicle-app/internal/handler"
	"vehicle-app/internal/service"
)

// RegisterHandler 註冊新使用者
// @Summary     註冊使用者
// @Description 建立帳號，回傳不含密碼的使用者資料
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.RegisterRequest true "註冊資料"
// @Success     201  {object} dto.UserResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/register [post]
func RegisterHandler(svc Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		user, err := svc.Register(c.Request().Context(), service.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			IsAdmin:  req.IsAdmin,
		})
		if err != nil {
			return handler.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusCreated, dto.NewUserResponse(user))
	}
}
