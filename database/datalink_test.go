package database

import (
	"SteamProfile/apperrors"
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (*DataLink, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewDataLink(db, "postgres"), mock
}

func TestExecuteNonQuery(t *testing.T) {
	link, mock := setupMock(t)

	mock.ExpectExec(`UPDATE sessions SET last_seen = \$1 WHERE id = \$2`).
		WithArgs("2024-01-01", "abc").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := link.ExecuteNonQuery(context.Background(), "UPDATE sessions SET last_seen = ? WHERE id = ?", "2024-01-01", "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteScalar(t *testing.T) {
	link, mock := setupMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM friendships`).
		WithArgs(3, 3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	var count int
	err := link.ExecuteScalar(context.Background(), &count, "SELECT COUNT(*) FROM friendships WHERE user_id = ? OR friend_id = ?", 3, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	mock.ExpectQuery(`SELECT id FROM users`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	err = link.ExecuteScalar(context.Background(), &count, "SELECT id FROM users WHERE username = ?", "ghost")
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteReader(t *testing.T) {
	link, mock := setupMock(t)

	type row struct {
		ID       uint   `db:"id"`
		Username string `db:"username"`
	}
	mock.ExpectQuery(`SELECT id, username FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "gabe").AddRow(2, "robin"))

	var rows []row
	require.NoError(t, link.ExecuteReader(context.Background(), &rows, "SELECT id, username FROM users"))
	assert.Equal(t, []row{{1, "gabe"}, {2, "robin"}}, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteRow(t *testing.T) {
	link, mock := setupMock(t)

	type counters struct {
		Friends int64 `db:"friends"`
		Games   int64 `db:"games"`
	}
	mock.ExpectQuery(`SELECT .* AS friends, .* AS games`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"friends", "games"}).AddRow(2, 5))

	var got counters
	err := link.ExecuteRow(context.Background(), &got,
		"SELECT (SELECT 2) AS friends, (SELECT COUNT(*) FROM owned_games WHERE user_id = ?) AS games", 7)
	require.NoError(t, err)
	assert.Equal(t, counters{Friends: 2, Games: 5}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction(t *testing.T) {
	t.Run("Commit", func(t *testing.T) {
		link, mock := setupMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := link.WithTransaction(context.Background(), func(tx *Tx) error {
			if _, err := tx.ExecuteNonQuery(context.Background(), "UPDATE a SET x = ?", 1); err != nil {
				return err
			}
			_, err := tx.ExecuteNonQuery(context.Background(), "UPDATE b SET x = ?", 2)
			return err
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback on error", func(t *testing.T) {
		link, mock := setupMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(".*").WillReturnError(errors.New("boom"))
		mock.ExpectRollback()

		err := link.WithTransaction(context.Background(), func(tx *Tx) error {
			_, err := tx.ExecuteNonQuery(context.Background(), "UPDATE a SET x = ?", 1)
			return err
		})
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
