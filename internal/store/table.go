package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"vehicle-app/internal/database"
)

// ErrNotFound 表示指定 id 的資料不存在
var ErrNotFound = errors.New("record not found")

// Column 為可寫入欄位。Optional 欄位以 0 代表 NULL。
type Column struct {
	Name     string
	Optional bool
}

// Schema 描述一張 catalog 資料表與 T 之間的對應。
// 讀取順序固定為 id、Columns、created_at、updated_at、deleted_at。
type Schema[T any] struct {
	Table   string
	Columns []Column
	// Values 依 Columns 順序回傳寫入值
	Values func(*T) []any
	// Dest 依讀取順序回傳掃描目標
	Dest func(*T) []any
}

type Op string

const (
	OpContains Op = "ILIKE"
	OpEquals   Op = "="
)

// Filter 為 List 的 WHERE 條件，Column 可以是運算式 (例如 year::text)
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Contains 不分大小寫的子字串比對
func Contains(column, s string) Filter {
	return Filter{Column: column, Op: OpContains, Value: "%" + escapeLike(s) + "%"}
}

func Equals(column string, v any) Filter {
	return Filter{Column: column, Op: OpEquals, Value: v}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Table 為單一資料表的 CRUD
type Table[T any] struct {
	db     database.DB
	schema Schema[T]
}

func NewTable[T any](db database.DB, schema Schema[T]) *Table[T] {
	return &Table[T]{db: db, schema: schema}
}

func (t *Table[T]) Name() string { return t.schema.Table }

func (t *Table[T]) selectList() string {
	cols := make([]string, 0, len(t.schema.Columns)+4)
	cols = append(cols, "id")
	for _, c := range t.schema.Columns {
		if c.Optional {
			cols = append(cols, fmt.Sprintf("COALESCE(%s, 0) AS %s", c.Name, c.Name))
			continue
		}
		cols = append(cols, c.Name)
	}
	cols = append(cols, "created_at", "updated_at", "deleted_at")
	return strings.Join(cols, ", ")
}

// placeholder 回傳第 n 個參數的佔位符，Optional 欄位 0 轉為 NULL
func placeholder(c Column, n int) string {
	if c.Optional {
		return fmt.Sprintf("NULLIF($%d, 0)", n)
	}
	return fmt.Sprintf("$%d", n)
}

func buildWhere(filters []Filter) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	conds := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for _, f := range filters {
		args = append(args, f.Value)
		conds = append(conds, fmt.Sprintf("%s %s $%d", f.Column, f.Op, len(args)))
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List 回傳符合條件的一頁資料 (依 id 排序) 與總筆數
func (t *Table[T]) List(ctx context.Context, filters []Filter, limit, offset int) ([]T, int, error) {
	where, args := buildWhere(filters)

	var total int
	countSQL := "SELECT count(*) FROM " + t.schema.Table + where
	if err := t.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("List %s count: %w", t.schema.Table, err)
	}

	args = append(args, limit, offset)
	q := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY id LIMIT $%d OFFSET $%d",
		t.selectList(), t.schema.Table, where, len(args)-1, len(args))
	rows, err := t.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("List %s: %w", t.schema.Table, err)
	}
	defer rows.Close()

	items := make([]T, 0, limit)
	for rows.Next() {
		var item T
		if err := rows.Scan(t.schema.Dest(&item)...); err != nil {
			return nil, 0, fmt.Errorf("List %s scan: %w", t.schema.Table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("List %s rows: %w", t.schema.Table, err)
	}
	return items, total, nil
}

func (t *Table[T]) Get(ctx context.Context, id int) (*T, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", t.selectList(), t.schema.Table)
	var item T
	if err := t.db.QueryRow(ctx, q, id).Scan(t.schema.Dest(&item)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("Get %s: %w", t.schema.Table, err)
	}
	return &item, nil
}

func (t *Table[T]) Exists(ctx context.Context, id int) (bool, error) {
	var ok bool
	q := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)", t.schema.Table)
	if err := t.db.QueryRow(ctx, q, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("Exists %s: %w", t.schema.Table, err)
	}
	return ok, nil
}

// Create 寫入 item，並以資料庫回傳值覆寫 item (含 id 與時間戳)
func (t *Table[T]) Create(ctx context.Context, item *T, now time.Time) error {
	names := make([]string, 0, len(t.schema.Columns)+2)
	marks := make([]string, 0, len(t.schema.Columns)+2)
	for i, c := range t.schema.Columns {
		names = append(names, c.Name)
		marks = append(marks, placeholder(c, i+1))
	}
	n := len(t.schema.Columns)
	names = append(names, "created_at", "updated_at")
	marks = append(marks, fmt.Sprintf("$%d", n+1), fmt.Sprintf("$%d", n+1))

	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.schema.Table, strings.Join(names, ", "), strings.Join(marks, ", "), t.selectList())
	args := append(t.schema.Values(item), now)
	if err := t.db.QueryRow(ctx, q, args...).Scan(t.schema.Dest(item)...); err != nil {
		return fmt.Errorf("Create %s: %w", t.schema.Table, err)
	}
	return nil
}

// Update 以 item 覆寫所有可寫欄位
func (t *Table[T]) Update(ctx context.Context, id int, item *T, now time.Time) error {
	sets := make([]string, 0, len(t.schema.Columns)+1)
	for i, c := range t.schema.Columns {
		sets = append(sets, c.Name+" = "+placeholder(c, i+1))
	}
	n := len(t.schema.Columns)
	sets = append(sets, fmt.Sprintf("updated_at = $%d", n+1))

	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		t.schema.Table, strings.Join(sets, ", "), n+2, t.selectList())
	args := append(t.schema.Values(item), now, id)
	if err := t.db.QueryRow(ctx, q, args...).Scan(t.schema.Dest(item)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("Update %s: %w", t.schema.Table, err)
	}
	return nil
}

func (t *Table[T]) Delete(ctx context.Context, id int) error {
	tag, err := t.db.Exec(ctx, "DELETE FROM "+t.schema.Table+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("Delete %s: %w", t.schema.Table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
