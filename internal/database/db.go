package database

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB 抽象 pgxpool.Pool 的查詢介面，store 與 handler 只依賴此介面，
// 測試時可替換為 FakeDB 或 pgxmock。
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(context.Context) error
	Close()
}

// FakeDB 以函式欄位實作 DB，未設定的方法被呼叫時 panic。
// Statements 依序記錄 Exec/Query/QueryRow 收到的 SQL。
type FakeDB struct {
	ExecFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	PingFn     func(ctx context.Context) error
	CloseFn    func()

	Statements []string
}

func (f *FakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.ExecFn == nil {
		panic("FakeDB: unexpected Exec " + sql)
	}
	f.Statements = append(f.Statements, sql)
	return f.ExecFn(ctx, sql, args...)
}

func (f *FakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if f.QueryFn == nil {
		panic("FakeDB: unexpected Query " + sql)
	}
	f.Statements = append(f.Statements, sql)
	return f.QueryFn(ctx, sql, args...)
}

func (f *FakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if f.QueryRowFn == nil {
		panic("FakeDB: unexpected QueryRow " + sql)
	}
	f.Statements = append(f.Statements, sql)
	return f.QueryRowFn(ctx, sql, args...)
}

func (f *FakeDB) Ping(ctx context.Context) error {
	if f.PingFn == nil {
		panic("FakeDB: unexpected Ping")
	}
	return f.PingFn(ctx)
}

func (f *FakeDB) Close() {
	if f.CloseFn != nil {
		f.CloseFn()
	}
}

// FakeRow 單列結果；Err 不為 nil 時 Scan 直接回傳 Err
type FakeRow struct {
	Values []any
	Err    error
}

func (r FakeRow) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	return assign(r.Values, dest)
}

// FakeRows 依序回傳 Data 的每一列，讀完後 Err() 回傳 IterErr
type FakeRows struct {
	Data    [][]any
	IterErr error
	Closed  bool
	pos     int
}

func (r *FakeRows) Next() bool {
	if r.Closed || r.pos >= len(r.Data) {
		return false
	}
	r.pos++
	return true
}

func (r *FakeRows) Scan(dest ...any) error {
	if r.pos == 0 {
		return fmt.Errorf("FakeRows: Scan before Next")
	}
	return assign(r.Data[r.pos-1], dest)
}

func (r *FakeRows) Values() ([]any, error) {
	if r.pos == 0 {
		return nil, fmt.Errorf("FakeRows: Values before Next")
	}
	return r.Data[r.pos-1], nil
}

func (r *FakeRows) Close()                                       { r.Closed = true }
func (r *FakeRows) Err() error                                   { return r.IterErr }
func (r *FakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *FakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *FakeRows) RawValues() [][]byte                          { return nil }
func (r *FakeRows) Conn() *pgx.Conn                              { return nil }

// assign 將 values 依序寫入 dest 指標，型別必須可直接指派
func assign(values, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("FakeDB: %d values for %d scan targets", len(values), len(dest))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d)
		if target.Kind() != reflect.Pointer || target.IsNil() {
			return fmt.Errorf("FakeDB: scan target %d is not a pointer", i)
		}
		elem := target.Elem()
		if values[i] == nil {
			elem.Set(reflect.Zero(elem.Type()))
			continue
		}
		v := reflect.ValueOf(values[i])
		if !v.Type().AssignableTo(elem.Type()) {
			return fmt.Errorf("FakeDB: cannot scan %T into %s", values[i], elem.Type())
		}
		elem.Set(v)
	}
	return nil
}
