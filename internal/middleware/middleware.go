package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"vehicle-app/internal/dto"
	"vehicle-app/internal/service"
)

const (
	ContextUserKey = "user"
	// CookieName 登入時設定的 HttpOnly cookie
	CookieName = "jwt"
)

// TokenVerifier *service.TokenService 實作此介面
type TokenVerifier interface {
	Verify(token string) (*service.Claims, error)
}

// Role 為路由的存取層級
type Role int

const (
	RolePublic Role = iota
	RoleAuthenticated
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAuthenticated:
		return "authenticated"
	case RoleAdmin:
		return "admin"
	default:
		return "public"
	}
}

// TokensFromRequest 依序回傳 jwt cookie 與 Authorization: Bearer 中的 token
func TokensFromRequest(c echo.Context) []string {
	var found []string
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		found = append(found, cookie.Value)
	}
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		if tok := strings.TrimSpace(parts[1]); tok != "" {
			found = append(found, tok)
		}
	}
	return found
}

// FirstValid 回傳第一個 check 成功的 token 結果；都失敗時回傳最後一個錯誤
func FirstValid[R any](c echo.Context, check func(token string) (R, error)) (R, error) {
	candidates := TokensFromRequest(c)
	if len(candidates) == 0 {
		return check("")
	}
	var (
		res R
		err error
	)
	for _, tok := range candidates {
		if res, err = check(tok); err == nil {
			return res, nil
		}
	}
	return res, err
}

// CurrentClaims 取得 RequireAuth 放入 context 的 claims
func CurrentClaims(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(ContextUserKey).(*service.Claims)
	return claims, ok
}

func RequireAuth(tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := FirstValid(c, tokens.Verify)
			if err != nil {
				slog.DebugContext(c.Request().Context(), "rejected token",
					slog.String("path", c.Path()), slog.Any("error", err))
				return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "Unauthenticated"})
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

func RequireAdmin(tokens TokenVerifier) echo.MiddlewareFunc {
	auth := RequireAuth(tokens)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return auth(func(c echo.Context) error {
			claims, ok := CurrentClaims(c)
			if !ok || !claims.IsAdmin {
				return c.JSON(http.StatusForbidden, dto.HTTPError{Message: "admin privileges required"})
			}
			return next(c)
		})
	}
}

// ForRole 回傳 role 需要的中介層，RolePublic 不需要任何中介層
func ForRole(role Role, tokens TokenVerifier) []echo.MiddlewareFunc {
	switch role {
	case RoleAdmin:
		return []echo.MiddlewareFunc{RequireAdmin(tokens)}
	case RoleAuthenticated:
		return []echo.MiddlewareFunc{RequireAuth(tokens)}
	default:
		return nil
	}
}
