package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
)

// newMockPromoCodeRepository creates a GormPromoCodeRepository with a mocked SQL connection
func newMockPromoCodeRepository(t *testing.T) (*GormPromoCodeRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormPromoCodeRepository(gormDB), mock, mockDB
}

func promoRows(id uuid.UUID, code string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "code", "discount_type", "value", "scope", "min_subtotal", "active"}).
		AddRow(id, code, "PERCENTAGE", decimal.NewFromInt(10), "ALL", decimal.Zero, true)
}

func TestGormPromoCodeRepository_FindByCode(t *testing.T) {
	t.Run("normalizes the code before querying", func(t *testing.T) {
		repo, mock, mockDB := newMockPromoCodeRepository(t)
		defer mockDB.Close()

		promoID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "promo_codes" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("WELCOME10", 1).
			WillReturnRows(promoRows(promoID, "WELCOME10"))

		found, err := repo.FindByCode(context.Background(), "  welcome10 ")

		require.NoError(t, err)
		assert.Equal(t, promoID, found.ID)
		assert.Equal(t, "WELCOME10", found.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing code to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockPromoCodeRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "promo_codes" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("NOPE99", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByCode(context.Background(), "NOPE99")

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPromoCodeRepository_ExistsByCode(t *testing.T) {
	repo, mock, mockDB := newMockPromoCodeRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "promo_codes" WHERE code = \$1`).
		WithArgs("SAVEBIG").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByCode(context.Background(), "savebig")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPromoCodeRepository_Delete(t *testing.T) {
	t.Run("deletes existing promo", func(t *testing.T) {
		repo, mock, mockDB := newMockPromoCodeRepository(t)
		defer mockDB.Close()

		promoID := uuid.New()
		mock.ExpectExec(`DELETE FROM "promo_codes" WHERE id = \$1`).
			WithArgs(promoID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), promoID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing promo is not found", func(t *testing.T) {
		repo, mock, mockDB := newMockPromoCodeRepository(t)
		defer mockDB.Close()

		promoID := uuid.New()
		mock.ExpectExec(`DELETE FROM "promo_codes" WHERE id = \$1`).
			WithArgs(promoID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), promoID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
