package router

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"vehicle-app/internal/cache"
	"vehicle-app/internal/database"
	"vehicle-app/internal/handler"
	"vehicle-app/internal/middleware"
	"vehicle-app/internal/model"
	"vehicle-app/internal/service"
	"vehicle-app/internal/store"
)

func newDeps(db database.DB, c cache.Cache) Deps {
	tokens := service.NewTokenService("router-secret", time.Hour)
	return Deps{
		DB:      db,
		Cache:   c,
		Auth:    service.NewAuthService(store.NewUserStore(db), service.NewBcryptHasher(bcrypt.MinCost), tokens, true),
		Catalog: service.NewCatalog(store.NewCatalog(db), c, time.Minute),
	}
}

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	Setup(e, newDeps(&database.FakeDB{}, &cache.FakeCache{}))

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /api/ping",
		http.MethodPost + " /api/auth/register",
		http.MethodPost + " /api/auth/login",
		http.MethodGet + " /api/auth/user",
		http.MethodPost + " /api/auth/logout",
	}
	for _, entity := range []string{"VehicleBrand", "VehicleType", "VehicleModel", "VehicleYear", "PriceList"} {
		expected = append(expected,
			http.MethodGet+" /api/"+entity,
			http.MethodGet+" /api/"+entity+"/:id",
			http.MethodPost+" /api/"+entity,
			http.MethodPatch+" /api/"+entity+"/:id",
			http.MethodDelete+" /api/"+entity+"/:id",
		)
	}

	require.Equal(t, len(expected), len(got))
	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}

func TestWritePolicyCoversCatalog(t *testing.T) {
	require.Len(t, WritePolicy, 5)
	require.Equal(t, middleware.RolePublic, WritePolicy["VehicleYear"])
	for _, name := range []string{"VehicleBrand", "VehicleType", "VehicleModel", "PriceList"} {
		require.Equal(t, middleware.RoleAdmin, WritePolicy[name], name)
	}
	require.Panics(t, func() { writeGuard("Unknown", nil) })
}

// captureArg 記錄 INSERT 時寫入的密碼哈希，供後續 SELECT 回傳
type captureArg struct{ value *string }

func (a captureArg) Match(v any) bool {
	s, ok := v.(string)
	if ok {
		*a.value = s
	}
	return ok
}

type apiClient struct {
	t *testing.T
	e *echo.Echo
}

func (c apiClient) do(method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	return rec
}

func newAPI(t *testing.T) (apiClient, pgxmock.PgxPoolIface, Deps) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	e := echo.New()
	e.Validator = handler.NewValidator()
	deps := newDeps(mock, nil)
	Setup(e, deps)
	return apiClient{t: t, e: e}, mock, deps
}

func TestAuthFlow(t *testing.T) {
	api, mock, _ := newAPI(t)
	now := time.Now().UTC()
	var hash string
	userCols := []string{"id", "name", "email", "password_hash", "is_admin", "created_at", "updated_at", "deleted_at"}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("Ann", "ann@example.com", captureArg{&hash}, false).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))
	rec := api.do(http.MethodPost, "/api/auth/register", `{"name":"Ann","email":"Ann@Example.com","password":"secret12"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotContains(t, rec.Body.String(), "secret12")
	require.NotContains(t, rec.Body.String(), hash)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("ann@example.com").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(1, "Ann", "ann@example.com", hash, false, now, now, (*time.Time)(nil)))
	rec = api.do(http.MethodPost, "/api/auth/login", `{"email":"ann@example.com","password":"wrong-pw"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"Invalid Credentials"}`, rec.Body.String())

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("ann@example.com").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(1, "Ann", "ann@example.com", hash, false, now, now, (*time.Time)(nil)))
	rec = api.do(http.MethodPost, "/api/auth/login", `{"email":"ann@example.com","password":"secret12"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var session *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CookieName {
			session = ck
		}
	}
	require.NotNil(t, session)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(1, "Ann", "ann@example.com", hash, false, now, now, (*time.Time)(nil)))
	rec = api.do(http.MethodGet, "/api/auth/user", "", session)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"id":1`)

	rec = api.do(http.MethodGet, "/api/auth/user", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogWriteGuards(t *testing.T) {
	api, mock, deps := newAPI(t)
	now := time.Now().UTC()

	adminTok, _, err := deps.Auth.Tokens().Issue(&model.User{ID: 1, IsAdmin: true})
	require.NoError(t, err)
	userTok, _, err := deps.Auth.Tokens().Issue(&model.User{ID: 2})
	require.NoError(t, err)
	admin := &http.Cookie{Name: middleware.CookieName, Value: adminTok}
	user := &http.Cookie{Name: middleware.CookieName, Value: userTok}

	// 未登入、非管理員
	require.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/api/VehicleBrand", `{"name":"x"}`).Code)
	require.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/api/VehicleBrand", `{"name":"x"}`, user).Code)
	require.Equal(t, http.StatusForbidden, api.do(http.MethodDelete, "/api/PriceList/1", "", user).Code)

	// 外鍵不存在
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM vehicle_brands WHERE id = $1)`)).
		WithArgs(9999).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	rec := api.do(http.MethodPost, "/api/VehicleType", `{"name":"SUV","brandId":9999}`, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"Invalid BrandId provided."}`, rec.Body.String())

	// VehicleYear 寫入公開
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO vehicle_years (year, created_at, updated_at)`)).
		WithArgs(2024, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "year", "created_at", "updated_at", "deleted_at"}).
			AddRow(5, 2024, now, now, (*time.Time)(nil)))
	rec = api.do(http.MethodPost, "/api/VehicleYear", `{"year":2024}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "/api/VehicleYear/5", rec.Header().Get(echo.HeaderLocation))

	// 讀取公開
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM vehicle_brands`)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM vehicle_brands ORDER BY id LIMIT $1 OFFSET $2`)).
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at", "updated_at", "deleted_at"}))
	rec = api.do(http.MethodGet, "/api/VehicleBrand", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"Metadata":{"Total":0,"Limit":10,"Page":1,"NextPage":null,"PrevPage":null},"Brands":[]}`, rec.Body.String())

	require.NoError(t, mock.ExpectationsWereMet())
}
