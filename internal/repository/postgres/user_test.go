package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlalic/unpacking/internal/model"
)

func TestNewUserRepository(t *testing.T) {
	db := &Connection{}
	repo := NewUserRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestUserRepository_Create_WritesUserAndPassword(t *testing.T) {
	ctx := context.Background()
	tx := newTxRecorder()
	repo := NewUserRepository(&txDB{tx: tx})

	user := model.NewUser("Alice", "alice@b.com", model.RoleUser)

	id, err := repo.Create(ctx, user, "phc-hash")
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	require.Len(t, tx.stmts, 2)
	assert.Contains(t, tx.sql(0), "INSERT INTO users")
	assert.Contains(t, tx.sql(1), "INSERT INTO passwords")
	assert.Equal(t, []any{user.ID, "phc-hash", user.CreatedAt, user.UpdatedAt}, tx.args(1))
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestUserRepository_Create_RollsBackOnPasswordFailure(t *testing.T) {
	ctx := context.Background()
	tx := newTxRecorder()
	tx.failAt = 1
	repo := NewUserRepository(&txDB{tx: tx})

	_, err := repo.Create(ctx, model.NewUser("Alice", "alice@b.com", model.RoleUser), "phc-hash")
	require.Error(t, err)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestUserRepository_Create_StoresRoleLiteral(t *testing.T) {
	ctx := context.Background()
	tx := newTxRecorder()
	repo := NewUserRepository(&txDB{tx: tx})

	user := model.NewUser("Alice", "alice@b.com", model.RoleAdmin)
	_, err := repo.Create(ctx, user, "phc-hash")
	require.NoError(t, err)

	assert.Contains(t, tx.args(0), "Admin")
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	repo := NewUserRepository(mock)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetCredentialsByEmail(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	userID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM users u").
		WithArgs("alice@b.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "role", "password"}).
			AddRow(userID, "Admin", "phc-hash"))

	repo := NewUserRepository(mock)

	creds, err := repo.GetCredentialsByEmail(ctx, "alice@b.com")
	require.NoError(t, err)
	assert.Equal(t, userID, creds.UserID)
	assert.Equal(t, model.RoleAdmin, creds.Role)
	assert.Equal(t, "phc-hash", creds.PasswordHash)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectExec("UPDATE users SET").
		WithArgs(id, "Alice", "taken@b.com", "User").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	repo := NewUserRepository(mock)

	err = repo.Update(ctx, id, "Alice", "taken@b.com", model.RoleUser)
	require.ErrorIs(t, err, model.ErrAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete_IsLogical(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET is_deleted = TRUE")).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewUserRepository(mock)

	affected, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete_MissingUser(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET is_deleted = TRUE")).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewUserRepository(mock)

	affected, err := repo.Delete(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestUserRepository_List(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	first := uuid.New()
	second := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "role", "is_deleted", "created_at", "updated_at"}).
			AddRow(first, "Alice", "alice@b.com", "Admin", false, now, now).
			AddRow(second, "Bob", "bob@b.com", "User", false, now, now))

	repo := NewUserRepository(mock)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, first, users[0].ID)
	assert.Equal(t, model.RoleAdmin, users[0].Role)
	assert.Equal(t, model.RoleUser, users[1].Role)
}
