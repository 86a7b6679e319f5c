package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docportal/internal/model"
)

func TestUserPostgres_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db)
	created := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (username,password_hash,full_name,email,active) VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at`)).
		WithArgs("ana", "hash", "Ana Gómez", "ana@example.com", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), created))

	u, err := repo.Create(context.Background(), &model.User{
		Username:     "ana",
		PasswordHash: "hash",
		FullName:     "Ana Gómez",
		Email:        "ana@example.com",
		Active:       true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), u.ID)
	assert.Equal(t, created, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByUsername(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE username = \$1`).
		WithArgs("ana").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "full_name", "email", "active", "created_at"}).
			AddRow(int64(5), "ana", "hash", "Ana", "ana@example.com", true, time.Now()))

	u, err := repo.FindByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, int64(5), u.ID)
	assert.True(t, u.Active)

	mock.ExpectQuery(`FROM users`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)
	_, err = repo.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityPostgres_Record(t *testing.T) {
	db, mock := newMock(t)
	repo := NewActivityPostgres(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO activity_log (user_id,action,description,ip_address,user_agent) VALUES ($1,$2,$3,$4,$5)`)).
		WithArgs(int64(5), "delete", "Deleted document: a.pdf", "10.0.0.1", "curl/8").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Record(context.Background(), model.Activity{
		UserID:      5,
		Action:      model.ActionDelete,
		Description: "Deleted document: a.pdf",
		IPAddress:   "10.0.0.1",
		UserAgent:   "curl/8",
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncStatePostgres(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSyncStatePostgres(db)
	ctx := context.Background()
	at := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	t.Run("never synchronized", func(t *testing.T) {
		mock.ExpectQuery(`FROM portal_sync_state WHERE owner_id = \$1`).
			WithArgs(int64(7)).
			WillReturnError(sql.ErrNoRows)

		st, err := repo.Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), st.OwnerID)
		assert.Nil(t, st.LastSyncAt)
	})

	t.Run("existing state", func(t *testing.T) {
		mock.ExpectQuery(`FROM portal_sync_state`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"owner_id", "last_sync_at", "auto_sync"}).AddRow(int64(7), at, true))

		st, err := repo.Get(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, st.LastSyncAt)
		assert.Equal(t, at, *st.LastSyncAt)
		assert.True(t, st.AutoSync)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery(`FROM portal_sync_state`).WillReturnError(errors.New("boom"))
		_, err := repo.Get(ctx, 7)
		assert.Error(t, err)
	})

	t.Run("save", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO portal_sync_state (owner_id,last_sync_at) VALUES ($1,$2) ON CONFLICT (owner_id) DO UPDATE`)).
			WithArgs(int64(7), at).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SaveLastSync(ctx, 7, at))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
