package repository_test_test

import (
	"testing"

	"passkey_auth_ms/domain"
	"passkey_auth_ms/repository"
	"passkey_auth_ms/repository/repository_test"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestGetByEmail_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "email", "password"}).
		AddRow("42f6c0d1-0000-0000-0000-000000000001", "alice@example.com", "")

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 ORDER BY "users"\."id" LIMIT \$2`).
		WithArgs("alice@example.com", 1).
		WillReturnRows(rows)

	repo := repository.NewUserRepository()
	user, err := repo.GetByEmail(conn, "alice@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail_NotFound(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 ORDER BY "users"\."id" LIMIT \$2`).
		WithArgs("nobody@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password"}))

	repo := repository.NewUserRepository()
	user, err := repo.GetByEmail(conn, "nobody@example.com")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "email", "password"}).
		AddRow("42f6c0d1-0000-0000-0000-000000000001", "alice@example.com", "$2a$10$hash")

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY "users"\."id" LIMIT \$2`).
		WithArgs("42f6c0d1-0000-0000-0000-000000000001", 1).
		WillReturnRows(rows)

	repo := repository.NewUserRepository()
	user, err := repo.GetByID(conn, "42f6c0d1-0000-0000-0000-000000000001")

	assert.NoError(t, err)
	assert.True(t, user.HasPassword())
	assert.NoError(t, mock.ExpectationsWereMet())
}
