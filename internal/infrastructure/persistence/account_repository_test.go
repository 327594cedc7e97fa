package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/stylehub/backend/internal/domain/identity"
	"github.com/stylehub/backend/internal/domain/shared"
)

func newMockAccountRepository(t *testing.T) (*GormAccountRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormAccountRepository(gormDB), mock, mockDB
}

func TestGormAccountRepository_FindByUsername(t *testing.T) {
	t.Run("finds existing account", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		accountID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "username", "phone_number", "password_hash", "status", "is_banned", "role"}).
			AddRow(accountID, "alice", "+15550100", "hash", "active", false, "customer")

		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE username = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("alice", 1).
			WillReturnRows(rows)

		account, err := repo.FindByUsername(context.Background(), "alice")

		assert.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, accountID, account.ID)
		assert.Equal(t, "alice", account.Username)
		assert.Equal(t, identity.RoleCustomer, account.Role)
		assert.True(t, account.CanLogin())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for unknown username", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE username = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("nobody", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		account, err := repo.FindByUsername(context.Background(), "nobody")

		assert.Nil(t, account)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAccountRepository_FindByPhoneNumber(t *testing.T) {
	t.Run("finds account by phone", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		accountID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "username", "phone_number", "password_hash", "status", "is_banned", "role"}).
			AddRow(accountID, "bob", "+15550101", "hash", "inactive", false, "seller")

		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE phone_number = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("+15550101", 1).
			WillReturnRows(rows)

		account, err := repo.FindByPhoneNumber(context.Background(), "+15550101")

		assert.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, "+15550101", account.PhoneNumber)
		assert.False(t, account.CanLogin())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAccountRepository_Delete(t *testing.T) {
	t.Run("returns not found when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		accountID := uuid.New()

		mock.ExpectExec(`DELETE FROM "accounts" WHERE id = \$1`).
			WithArgs(accountID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), accountID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
