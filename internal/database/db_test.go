package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestFakeDBPanicsOnUnsetMethods(t *testing.T) {
	db := &FakeDB{}
	ctx := context.Background()
	require.PanicsWithValue(t, "FakeDB: unexpected Exec DELETE", func() { _, _ = db.Exec(ctx, "DELETE") })
	require.Panics(t, func() { _, _ = db.Query(ctx, "SELECT") })
	require.Panics(t, func() { db.QueryRow(ctx, "SELECT") })
	require.Panics(t, func() { _ = db.Ping(ctx) })
	require.NotPanics(t, db.Close)
	require.Empty(t, db.Statements)
}

func TestFakeDBRecordsStatements(t *testing.T) {
	ctx := context.Background()
	closed := false
	db := &FakeDB{
		ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("DELETE 1"), nil
		},
		QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			return FakeRow{Values: []any{args[0]}}
		},
		CloseFn: func() { closed = true },
	}

	tag, err := db.Exec(ctx, "DELETE FROM vehicle_brands WHERE id = $1", 1)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected())

	var n int
	require.NoError(t, db.QueryRow(ctx, "SELECT $1", 7).Scan(&n))
	require.Equal(t, 7, n)

	db.Close()
	require.True(t, closed)
	require.Equal(t, []string{"DELETE FROM vehicle_brands WHERE id = $1", "SELECT $1"}, db.Statements)
}

func TestFakeRowScan(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	var (
		id      int
		name    string
		created time.Time
		deleted = &now
	)
	row := FakeRow{Values: []any{3, "Toyota", now, nil}}
	require.NoError(t, row.Scan(&id, &name, &created, &deleted))
	require.Equal(t, 3, id)
	require.Equal(t, "Toyota", name)
	require.Equal(t, now, created)
	require.Nil(t, deleted)

	require.ErrorContains(t, row.Scan(&id), "4 values for 1 scan targets")
	require.ErrorContains(t, FakeRow{Values: []any{"x"}}.Scan(&id), "cannot scan string into int")
	require.ErrorContains(t, FakeRow{Values: []any{1}}.Scan(id), "not a pointer")

	boom := errors.New("boom")
	require.ErrorIs(t, FakeRow{Err: boom}.Scan(&id), boom)
}

func TestFakeRowsIteration(t *testing.T) {
	boom := errors.New("conn reset")
	rows := &FakeRows{Data: [][]any{{1}, {2}}, IterErr: boom}

	var id int
	require.Error(t, rows.Scan(&id))

	var got []int
	for rows.Next() {
		require.NoError(t, rows.Scan(&id))
		got = append(got, id)
	}
	require.Equal(t, []int{1, 2}, got)
	vals, err := rows.Values()
	require.NoError(t, err)
	require.Equal(t, []any{2}, vals)
	require.ErrorIs(t, rows.Err(), boom)

	rows.Close()
	require.True(t, rows.Closed)
	require.False(t, rows.Next())
}
