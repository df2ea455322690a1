package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"

	"vehicle-app/internal/cache"
	"vehicle-app/internal/store"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Repository 為單一 catalog 資料表的存取介面，*store.Table 實作此介面
type Repository[T any] interface {
	Name() string
	List(ctx context.Context, filters []store.Filter, limit, offset int) ([]T, int, error)
	Get(ctx context.Context, id int) (*T, error)
	Create(ctx context.Context, item *T, now time.Time) error
	Update(ctx context.Context, id int, item *T, now time.Time) error
	Delete(ctx context.Context, id int) error
}

type ListQuery struct {
	Page    int
	Limit   int
	Filters []store.Filter
}

type Metadata struct {
	Total    int  `json:"Total"`
	Limit    int  `json:"Limit"`
	Page     int  `json:"Page"`
	NextPage *int `json:"NextPage"`
	PrevPage *int `json:"PrevPage"`
}

type Page[T any] struct {
	Items    []T      `json:"items"`
	Metadata Metadata `json:"metadata"`
}

func newMetadata(total, page, limit int) Metadata {
	m := Metadata{Total: total, Limit: limit, Page: page}
	if page*limit < total {
		next := page + 1
		m.NextPage = &next
	}
	if page > 1 {
		prev := page - 1
		m.PrevPage = &prev
	}
	return m
}

// ResourceOption 設定 Resource 的選用元件
type ResourceOption[T any] func(*Resource[T])

// WithReferences 設定寫入前的外鍵檢查
func WithReferences[T any](check func(ctx context.Context, item *T) error) ResourceOption[T] {
	return func(r *Resource[T]) { r.checkRefs = check }
}

// WithListCache 啟用列表快取，c 為 nil 時不啟用
func WithListCache[T any](c cache.Cache, ttl time.Duration) ResourceOption[T] {
	return func(r *Resource[T]) {
		r.cache = c
		r.cacheTTL = ttl
	}
}

// WithDependents 刪除時一併讓這些資源的列表快取失效 (資料庫 ON DELETE CASCADE / SET NULL)
func WithDependents[T any](names ...string) ResourceOption[T] {
	return func(r *Resource[T]) { r.dependents = append(r.dependents, names...) }
}

// WithClock 測試用
func WithClock[T any](now func() time.Time) ResourceOption[T] {
	return func(r *Resource[T]) { r.now = now }
}

// Resource 實作 catalog 實體共用的 CRUD 規則
type Resource[T any] struct {
	name       string
	repo       Repository[T]
	idOf       func(*T) int
	checkRefs  func(ctx context.Context, item *T) error
	cache      cache.Cache
	cacheTTL   time.Duration
	dependents []string
	now        func() time.Time
}

func NewResource[T any](name string, repo Repository[T], idOf func(*T) int, opts ...ResourceOption[T]) *Resource[T] {
	r := &Resource[T]{
		name: name,
		repo: repo,
		idOf: idOf,
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resource[T]) Name() string { return r.name }

func (r *Resource[T]) List(ctx context.Context, q ListQuery) (*Page[T], error) {
	if q.Page < 1 || q.Limit < 1 {
		return nil, oops.Code(CodeValidation).
			Public("page and limit must be positive integers").
			Errorf("invalid pagination page=%d limit=%d", q.Page, q.Limit)
	}
	// page*limit 不可溢位
	if q.Page > math.MaxInt/q.Limit {
		return nil, oops.Code(CodeValidation).
			Public("page and limit are too large").
			Errorf("pagination overflow page=%d limit=%d", q.Page, q.Limit)
	}

	key, cacheable := r.listCacheKey(ctx, q)
	if cacheable {
		if page, ok := r.cachedPage(ctx, key); ok {
			return page, nil
		}
	}

	items, total, err := r.repo.List(ctx, q.Filters, q.Limit, (q.Page-1)*q.Limit)
	if err != nil {
		return nil, r.persistenceError("list", err)
	}
	page := &Page[T]{Items: items, Metadata: newMetadata(total, q.Page, q.Limit)}

	if cacheable {
		r.storePage(ctx, key, page)
	}
	return page, nil
}

func (r *Resource[T]) Get(ctx context.Context, id int) (*T, error) {
	item, err := r.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, r.notFound(id)
		}
		return nil, r.persistenceError("get", err)
	}
	return item, nil
}

func (r *Resource[T]) Create(ctx context.Context, item *T) error {
	if err := r.validateRefs(ctx, item); err != nil {
		return err
	}
	if err := r.repo.Create(ctx, item, r.now()); err != nil {
		return r.writeError("create", err)
	}
	r.invalidate(ctx)
	return nil
}

// Update 以 item 完整取代 id 對應的資料，item 的 id 必須與 id 相同
func (r *Resource[T]) Update(ctx context.Context, id int, item *T) error {
	if r.idOf(item) != id {
		return oops.Code(CodeIDMismatch).
			Public("Id in body does not match id in path").
			Errorf("%s update: body id %d != path id %d", r.name, r.idOf(item), id)
	}
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	if err := r.validateRefs(ctx, item); err != nil {
		return err
	}
	if err := r.repo.Update(ctx, id, item, r.now()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return r.notFound(id)
		}
		return r.writeError("update", err)
	}
	r.invalidate(ctx)
	return nil
}

func (r *Resource[T]) Delete(ctx context.Context, id int) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return r.notFound(id)
		}
		return r.persistenceError("delete", err)
	}
	r.invalidate(ctx, r.dependents...)
	return nil
}

func (r *Resource[T]) validateRefs(ctx context.Context, item *T) error {
	if r.checkRefs == nil {
		return nil
	}
	return r.checkRefs(ctx, item)
}

func (r *Resource[T]) notFound(id int) error {
	return oops.Code(CodeNotFound).
		Public(fmt.Sprintf("%s not found", r.name)).
		With("id", id).
		Errorf("%s %d not found", r.name, id)
}

func (r *Resource[T]) persistenceError(op string, err error) error {
	return oops.Code(CodePersistence).
		Public(fmt.Sprintf("Failed to %s %s", op, r.name)).
		With("resource", r.name).
		Wrap(err)
}

// writeError 外鍵在檢查後才被刪除時，資料庫會回傳 FK violation
func (r *Resource[T]) writeError(op string, err error) error {
	if store.IsForeignKeyViolation(err) {
		return oops.Code(CodeValidation).
			Public("Referenced record does not exist").
			With("resource", r.name).
			Wrap(err)
	}
	return r.persistenceError(op, err)
}

/* ---------- 列表快取 ---------- */

func versionKey(name string) string {
	return name + ":version"
}

// listCacheKey 以版本號組成 key；寫入時遞增版本號使舊 key 失效
func (r *Resource[T]) listCacheKey(ctx context.Context, q ListQuery) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	version, err := r.cache.Get(ctx, versionKey(r.name)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.WarnContext(ctx, "list cache unavailable", slog.String("resource", r.name), slog.Any("error", err))
		return "", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s:list:v%d:p%d:l%d", r.name, version, q.Page, q.Limit)
	for _, f := range q.Filters {
		fmt.Fprintf(&b, ":%s%s%v", f.Column, f.Op, f.Value)
	}
	return b.String(), true
}

func (r *Resource[T]) cachedPage(ctx context.Context, key string) (*Page[T], bool) {
	raw, err := r.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "list cache read failed", slog.String("key", key), slog.Any("error", err))
		}
		return nil, false
	}
	var page Page[T]
	if err := json.Unmarshal(raw, &page); err != nil {
		slog.WarnContext(ctx, "list cache entry corrupt", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}
	return &page, true
}

func (r *Resource[T]) storePage(ctx context.Context, key string, page *Page[T]) {
	raw, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, raw, r.cacheTTL).Err(); err != nil {
		slog.WarnContext(ctx, "list cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

// invalidate 遞增自身及 also 的版本號
func (r *Resource[T]) invalidate(ctx context.Context, also ...string) {
	if r.cache == nil {
		return
	}
	for _, name := range append([]string{r.name}, also...) {
		if err := r.cache.Incr(ctx, versionKey(name)).Err(); err != nil {
			slog.WarnContext(ctx, "list cache invalidation failed", slog.String("resource", name), slog.Any("error", err))
		}
	}
}
