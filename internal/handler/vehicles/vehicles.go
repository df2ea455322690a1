package vehicles

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/samber/oops"

	"vehicle-app/internal/handler"
	"vehicle-app/internal/service"
	"vehicle-app/internal/store"
)

// Service *service.Resource 實作此介面
type Service[T any] interface {
	Name() string
	List(ctx context.Context, q service.ListQuery) (*service.Page[T], error)
	Get(ctx context.Context, id int) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, id int, item *T) error
	Delete(ctx context.Context, id int) error
}

// FilterParser 從 query string 解析列表條件
type FilterParser func(c echo.Context) ([]store.Filter, error)

// Endpoint 描述一個 catalog 實體的 REST 資源
type Endpoint[T any] struct {
	// Path 例如 /VehicleBrand
	Path    string
	Plural  string
	Service Service[T]
	Filters FilterParser
	ID      func(*T) int
}

// Register 註冊五個路由；write 套用在 POST/PATCH/DELETE
func Register[T any](g *echo.Group, ep Endpoint[T], write ...echo.MiddlewareFunc) {
	g.GET(ep.Path, ListHandler(ep))
	g.GET(ep.Path+"/:id", GetHandler(ep))
	g.POST(ep.Path, CreateHandler(ep), write...)
	g.PATCH(ep.Path+"/:id", UpdateHandler(ep), write...)
	g.DELETE(ep.Path+"/:id", DeleteHandler(ep), write...)
}

func invalidParam(name, raw string) error {
	return oops.Code(service.CodeValidation).
		Public(fmt.Sprintf("Invalid %s provided.", name)).
		Errorf("%s=%q is not an integer", name, raw)
}

// queryInt 參數不存在時回傳 def
func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidParam(name, raw)
	}
	return v, nil
}

func pathID(c echo.Context) (int, error) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidParam("id", raw)
	}
	return id, nil
}

// ListHandler 分頁列表
// @Summary     列出 catalog 資料
// @Description 回傳 {Metadata, <Plural>}，entity 為 VehicleBrand、VehicleType、VehicleModel、VehicleYear 或 PriceList
// @Tags        catalog
// @Produce     json
// @Param       entity  path  string true  "實體名稱"
// @Param       page    query int    false "頁碼 (預設 1)"
// @Param       limit   query int    false "每頁筆數 (預設 10)"
// @Param       filter  query string false "名稱 / 年份包含字串"
// @Param       brandId query int    false "VehicleType 依品牌過濾"
// @Param       yearId  query int    false "PriceList 依年式過濾"
// @Param       modelId query int    false "PriceList 依車款過濾"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} dto.HTTPError
// @Router      /{entity} [get]
func ListHandler[T any](ep Endpoint[T]) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := queryInt(c, "page", service.DefaultPage)
		if err != nil {
			return handler.ErrorJSON(c, err)
		}
		limit, err := queryInt(c, "limit", service.DefaultLimit)
		if err != nil {
			return handler.ErrorJSON(c, err)
		}
		var filters []store.Filter
		if ep.Filters != nil {
			if filters, err = ep.Filters(c); err != nil {
				return handler.ErrorJSON(c, err)
			}
		}

		result, err := ep.Service.List(c.Request().Context(), service.ListQuery{Page: page, Limit: limit, Filters: filters})
		if err != nil {
			return handler.ErrorJSON(c, err)
		}
		items := result.Items
		if items == nil {
			items = []T{}
		}
		return c.JSON(http.StatusOK, echo.Map{
			"Metadata": result.Metadata,
			ep.Plural:  items,
		})
	}
}

// GetHandler
// @Summary     取得單筆 catalog 資料
// @Tags        catalog
// @Produce     json
// @Param       entity path string true "實體名稱"
// @Param       id     path int    true "ID"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Router      /{entity}/{id} [get]
func GetHandler[T any](ep Endpoint[T]) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return handler.ErrorJSON(c, err)
		}
		item, err := ep.Service.Get(c.Request().Context(), id)
		if err != nil {
			return handler.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, item)
	}
}

// CreateHandler
// @Summary     新增 catalog 資料
// @Tags        catalog
// @Accept      json
// @Produce     json
// @Param       entity path string true "實體名稱"
// @Param       body   body object true "實體 JSON (VehicleBrand、VehicleType、VehicleModel、VehicleYear 或 PriceList)"
// @Success     201 {object} map[string]interface{}
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /{entity} [post]
func CreateHandler[T any](ep Endpoint[T]) echo.HandlerFunc {
	return func(c echo.Context) error {
		item := new(T)
		if err := c.Bind(item); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(item); err != nil {
			return handler.BadRequest(c, err.Error())
		}
		if err := ep.Service.Create(c.Request().Context(), item); err != nil {
			return handler.ErrorJSON(c, err)
		}
		location := fmt.Sprintf("%s/%d", strings.TrimSuffix(c.Request().URL.Path, "/"), ep.ID(item))
		c.Response().Header().Set(echo.HeaderLocation, location)
		return c.JSON(http.StatusCreated, item)
	}
}

// UpdateHandler 完整取代，body 的 id 必須等於路徑 id
// @Summary     更新 catalog 資料
// @Tags        catalog
// @Accept      json
// @Param       entity path string true "實體名稱"
// @Param       id     path int    true "ID"
// @Param       body   body object true "實體 JSON，id 必須與路徑相同"
// @Success     204
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /{entity}/{id} [patch]
func UpdateHandler[T any](ep Endpoint[T]) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return handler.ErrorJSON(c, err)
		}
		item := new(T)
		if err := c.Bind(item); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(item); err != nil {
			return handler.BadRequest(c, err.Error())
		}
		if err := ep.Service.Update(c.Request().Context(), id, item); err != nil {
			return handler.ErrorJSON(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// DeleteHandler
// @Summary     刪除 catalog 資料
// @Tags        catalog
// @Param       entity path string true "實體名稱"
// @Param       id     path int    true "ID"
// @Success     204
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /{entity}/{id} [delete]
func DeleteHandler[T any](ep Endpoint[T]) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return handler.ErrorJSON(c, err)
		}
		if err := ep.Service.Delete(c.Request().Context(), id); err != nil {
			return handler.ErrorJSON(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
