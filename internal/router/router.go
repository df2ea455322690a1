// File: internal/router/router.go
package router

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"vehicle-app/internal/cache"
	"vehicle-app/internal/database"
	"vehicle-app/internal/handler"
	"vehicle-app/internal/handler/auth"
	"vehicle-app/internal/handler/vehicles"
	"vehicle-app/internal/middleware"
	"vehicle-app/internal/service"
)

// WritePolicy 為各 catalog 實體 POST/PATCH/DELETE 所需的權限；讀取一律公開
var WritePolicy = map[string]middleware.Role{
	"VehicleBrand": middleware.RoleAdmin,
	"VehicleType":  middleware.RoleAdmin,
	"VehicleModel": middleware.RoleAdmin,
	"VehicleYear":  middleware.RolePublic,
	"PriceList":    middleware.RoleAdmin,
}

// Deps 為註冊路由所需的服務
type Deps struct {
	DB      database.DB
	Cache   cache.Cache
	Auth    *service.AuthService
	Catalog *service.Catalog
}

func writeGuard(name string, tokens middleware.TokenVerifier) []echo.MiddlewareFunc {
	role, ok := WritePolicy[name]
	if !ok {
		// 每個 catalog 實體都必須列在 WritePolicy
		panic(fmt.Sprintf("router: no write policy for %s", name))
	}
	return middleware.ForRole(role, tokens)
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	api := e.Group("/api")
	tokens := d.Auth.Tokens()

	// 健康檢查
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache))

	// 帳號
	api.POST("/auth/register", auth.RegisterHandler(d.Auth))
	api.POST("/auth/login", auth.LoginHandler(d.Auth))
	api.GET("/auth/user", auth.UserHandler(d.Auth))
	api.POST("/auth/logout", auth.LogoutHandler())

	// Catalog CRUD
	cat := d.Catalog
	vehicles.Register(api, vehicles.BrandEndpoint(cat.Brands), writeGuard(cat.Brands.Name(), tokens)...)
	vehicles.Register(api, vehicles.TypeEndpoint(cat.Types), writeGuard(cat.Types.Name(), tokens)...)
	vehicles.Register(api, vehicles.ModelEndpoint(cat.Models), writeGuard(cat.Models.Name(), tokens)...)
	vehicles.Register(api, vehicles.YearEndpoint(cat.Years), writeGuard(cat.Years.Name(), tokens)...)
	vehicles.Register(api, vehicles.PriceListEndpoint(cat.PriceLists), writeGuard(cat.PriceLists.Name(), tokens)...)
}
