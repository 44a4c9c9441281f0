package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/coursepilot/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUnitOfWork(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertCourseWithVideo(ctx context.Context, tx db.DBTX, id string) error {
	if _, err := tx.ExecContext(ctx, `INSERT INTO courses (id, name, created_at, updated_at)
		VALUES (?, 'Course', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`, id); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `INSERT INTO course_videos (course_id, idx, title) VALUES (?, 0, 'Intro')`, id)
	return err
}

func countRows(t *testing.T, database *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openUnitOfWork(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertCourseWithVideo(ctx, tx, "c1")
	})
	require.NoError(t, err)

	assert.Equal(t, 1, countRows(t, database, "courses"))
	assert.Equal(t, 1, countRows(t, database, "course_videos"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openUnitOfWork(t)
	errDeliberate := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertCourseWithVideo(ctx, tx, "c1"); err != nil {
			return err
		}
		return errDeliberate
	})
	require.ErrorIs(t, err, errDeliberate)

	assert.Zero(t, countRows(t, database, "courses"), "course should not exist after rollback")
	assert.Zero(t, countRows(t, database, "course_videos"))
}

func TestWithinTx_RollbackOnConstraintViolation(t *testing.T) {
	database, uow := openUnitOfWork(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertCourseWithVideo(ctx, tx, "c1"); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO course_videos (course_id, idx, title) VALUES ('c1', 0, 'Duplicate')`)
		return err
	})
	require.Error(t, err)
	assert.Zero(t, countRows(t, database, "courses"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUnitOfWork(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertCourseWithVideo(ctx, tx, "c1")
			panic("boom")
		})
	})

	assert.Zero(t, countRows(t, database, "courses"), "course should not exist after panic rollback")
}

func TestWithinTx_DoesNotReplayOrdinaryErrors(t *testing.T) {
	_, uow := openUnitOfWork(t)
	boom := errors.New("boom")

	calls := 0
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		calls++
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestWithinTx_ConstraintErrorIsNotBusy(t *testing.T) {
	_, uow := openUnitOfWork(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO course_videos (course_id, idx, title) VALUES ('missing', 0, 'x')`)
		return err
	})
	require.Error(t, err)
	assert.False(t, db.IsBusy(err))
}

func TestIsBusy_NonSQLiteErrors(t *testing.T) {
	assert.False(t, db.IsBusy(nil))
	assert.False(t, db.IsBusy(errors.New("database is locked")))
	assert.False(t, db.IsBusy(context.Canceled))
}
