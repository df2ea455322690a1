package vehicles

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-app/internal/handler"
	"vehicle-app/internal/model"
	"vehicle-app/internal/service"
	"vehicle-app/internal/store"
)

// fakeService 記錄收到的參數，回傳預先設定的結果
type fakeService[T any] struct {
	lastQuery service.ListQuery
	lastID    int
	created   *T
	page      *service.Page[T]
	item      *T
	err       error
	onCreate  func(*T)
}

func (f *fakeService[T]) Name() string { return "fake" }

func (f *fakeService[T]) List(_ context.Context, q service.ListQuery) (*service.Page[T], error) {
	f.lastQuery = q
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func (f *fakeService[T]) Get(_ context.Context, id int) (*T, error) {
	f.lastID = id
	return f.item, f.err
}

func (f *fakeService[T]) Create(_ context.Context, item *T) error {
	if f.err != nil {
		return f.err
	}
	if f.onCreate != nil {
		f.onCreate(item)
	}
	f.created = item
	return nil
}

func (f *fakeService[T]) Update(_ context.Context, id int, item *T) error {
	f.lastID = id
	f.created = item
	return f.err
}

func (f *fakeService[T]) Delete(_ context.Context, id int) error {
	f.lastID = id
	return f.err
}

func newServer[T any](ep Endpoint[T], write ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	Register(e.Group("/api"), ep, write...)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListEnvelope(t *testing.T) {
	next := 2
	svc := &fakeService[model.VehicleBrand]{page: &service.Page[model.VehicleBrand]{
		Items:    []model.VehicleBrand{{ID: 1, Name: "Toyota"}},
		Metadata: service.Metadata{Total: 11, Limit: 10, Page: 1, NextPage: &next},
	}}
	e := newServer(BrandEndpoint(svc))

	rec := do(e, http.MethodGet, "/api/VehicleBrand?filter=toy", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body, "Brands")
	require.JSONEq(t, `{"Total":11,"Limit":10,"Page":1,"NextPage":2,"PrevPage":null}`, string(body["Metadata"]))

	assert.Equal(t, service.DefaultPage, svc.lastQuery.Page)
	assert.Equal(t, service.DefaultLimit, svc.lastQuery.Limit)
	assert.Equal(t, []store.Filter{store.Contains("name", "toy")}, svc.lastQuery.Filters)
}

func TestListEmptyItemsIsArray(t *testing.T) {
	svc := &fakeService[model.VehicleYear]{page: &service.Page[model.VehicleYear]{Metadata: service.Metadata{Page: 3, Limit: 5}}}
	rec := do(newServer(YearEndpoint(svc)), http.MethodGet, "/api/VehicleYear?page=3&limit=5&filter=20", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"Years":[]`)
	assert.Equal(t, 3, svc.lastQuery.Page)
	assert.Equal(t, 5, svc.lastQuery.Limit)
	assert.Equal(t, []store.Filter{store.Contains("year::text", "20")}, svc.lastQuery.Filters)
}

func TestListQueryErrors(t *testing.T) {
	svc := &fakeService[model.PriceList]{page: &service.Page[model.PriceList]{}}
	e := newServer(PriceListEndpoint(svc))

	for _, target := range []string{
		"/api/PriceList?page=abc",
		"/api/PriceList?limit=1.5",
		"/api/PriceList?yearId=x",
		"/api/PriceList?modelId=%20",
	} {
		rec := do(e, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}

	rec := do(e, http.MethodGet, "/api/PriceList?yearId=2&modelId=0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []store.Filter{store.Equals("year_id", 2)}, svc.lastQuery.Filters)

	rec = do(e, http.MethodGet, "/api/PriceList?yearId=2&modelId=7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []store.Filter{store.Equals("year_id", 2), store.Equals("model_id", 7)}, svc.lastQuery.Filters)
}

func TestListServiceValidation(t *testing.T) {
	svc := &fakeService[model.VehicleType]{err: oops.Code(service.CodeValidation).Public("page and limit must be positive integers").Errorf("x")}
	rec := do(newServer(TypeEndpoint(svc)), http.MethodGet, "/api/VehicleType?page=0&brandId=4", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []store.Filter{store.Equals("brand_id", 4)}, svc.lastQuery.Filters)
}

func TestGet(t *testing.T) {
	svc := &fakeService[model.VehicleModel]{item: &model.VehicleModel{ID: 3, Name: "RAV4", TypeID: 1}}
	e := newServer(ModelEndpoint(svc))

	rec := do(e, http.MethodGet, "/api/VehicleModel/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"typeId":1`)
	require.Equal(t, 3, svc.lastID)

	rec = do(e, http.MethodGet, "/api/VehicleModel/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	svc.err = oops.Code(service.CodeNotFound).Public("VehicleModel not found").Errorf("missing")
	rec = do(e, http.MethodGet, "/api/VehicleModel/99", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreate(t *testing.T) {
	svc := &fakeService[model.VehicleBrand]{onCreate: func(b *model.VehicleBrand) { b.ID = 12 }}
	e := newServer(BrandEndpoint(svc))

	rec := do(e, http.MethodPost, "/api/VehicleBrand", `{"name":"Mazda"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "/api/VehicleBrand/12", rec.Header().Get(echo.HeaderLocation))
	require.Contains(t, rec.Body.String(), `"id":12`)

	rec = do(e, http.MethodPost, "/api/VehicleBrand", `{"name":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/VehicleBrand", `{"name":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReferenceError(t *testing.T) {
	svc := &fakeService[model.VehicleType]{err: oops.Code(service.CodeValidation).Public("Invalid BrandId provided.").Errorf("missing")}
	rec := do(newServer(TypeEndpoint(svc)), http.MethodPost, "/api/VehicleType", `{"name":"SUV","brandId":9999}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"Invalid BrandId provided."}`, rec.Body.String())
}

func TestUpdateAndDelete(t *testing.T) {
	svc := &fakeService[model.VehicleYear]{}
	e := newServer(YearEndpoint(svc))

	rec := do(e, http.MethodPatch, "/api/VehicleYear/4", `{"id":4,"year":2021}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, 4, svc.lastID)
	require.Equal(t, 2021, svc.created.Year)

	rec = do(e, http.MethodPatch, "/api/VehicleYear/x", `{"id":4,"year":2021}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodDelete, "/api/VehicleYear/4", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	svc.err = oops.Code(service.CodeIDMismatch).Public("Id in body does not match id in path").Errorf("x")
	rec = do(e, http.MethodPatch, "/api/VehicleYear/5", `{"id":4,"year":2021}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	svc.err = oops.Code(service.CodeNotFound).Public("VehicleYear not found").Errorf("x")
	rec = do(e, http.MethodDelete, "/api/VehicleYear/5", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteMiddlewareOnlyGuardsWrites(t *testing.T) {
	deny := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error { return c.NoContent(http.StatusForbidden) }
	}
	svc := &fakeService[model.VehicleBrand]{
		page: &service.Page[model.VehicleBrand]{},
		item: &model.VehicleBrand{ID: 1},
	}
	e := newServer(BrandEndpoint(svc), deny)

	require.Equal(t, http.StatusOK, do(e, http.MethodGet, "/api/VehicleBrand", "").Code)
	require.Equal(t, http.StatusOK, do(e, http.MethodGet, "/api/VehicleBrand/1", "").Code)
	require.Equal(t, http.StatusForbidden, do(e, http.MethodPost, "/api/VehicleBrand", `{"name":"x"}`).Code)
	require.Equal(t, http.StatusForbidden, do(e, http.MethodPatch, "/api/VehicleBrand/1", `{"id":1,"name":"x"}`).Code)
	require.Equal(t, http.StatusForbidden, do(e, http.MethodDelete, "/api/VehicleBrand/1", "").Code)
}
