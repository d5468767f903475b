package ownerscope

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestModel is a simple model for testing owner scoping
type TestModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	OutletID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
	Name      string     `gorm:"size:100"`
}

func (TestModel) TableName() string {
	return "test_models"
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
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

	return gormDB, mock, mockDB
}

func actorContext(actor identity.Actor) context.Context {
	return identity.WithActor(context.Background(), actor)
}

func TestForActor(t *testing.T) {
	ownerID := uuid.New()
	userID := uuid.New()

	t.Run("applies owner filter for authenticated actor", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		ctx := actorContext(identity.Actor{UserID: userID, OwnerID: ownerID})

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE owner_id = \$1`).
			WithArgs(ownerID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name"}))

		var results []TestModel
		err := db.Scopes(ForActor(ctx)).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no filter without actor", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "test_models"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name"}))

		var results []TestModel
		err := db.Scopes(ForActor(context.Background())).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no filter for super admin", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		ctx := actorContext(identity.Actor{UserID: userID, OwnerID: ownerID, SuperAdmin: true})

		mock.ExpectQuery(`SELECT \* FROM "test_models"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name"}))

		var results []TestModel
		err := db.Scopes(ForActor(ctx)).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestForOutlet(t *testing.T) {
	ownerID := uuid.New()
	userID := uuid.New()
	outletID := uuid.New()

	t.Run("applies outlet filter when actor has a current outlet", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		ctx := actorContext(identity.Actor{UserID: userID, OwnerID: ownerID, OutletID: &outletID})

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE outlet_id = \$1`).
			WithArgs(outletID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "outlet_id", "name"}))

		var results []TestModel
		err := db.Scopes(ForOutlet(ctx)).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no filter when actor has no outlet", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		ctx := actorContext(identity.Actor{UserID: userID, OwnerID: ownerID})

		mock.ExpectQuery(`SELECT \* FROM "test_models"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name"}))

		var results []TestModel
		err := db.Scopes(ForOutlet(ctx)).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestApply(t *testing.T) {
	ownerID := uuid.New()
	userID := uuid.New()
	outletID := uuid.New()

	t.Run("combines owner and outlet filters", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		ctx := actorContext(identity.Actor{UserID: userID, OwnerID: ownerID, OutletID: &outletID})

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE owner_id = \$1 AND outlet_id = \$2`).
			WithArgs(ownerID.String(), outletID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "outlet_id", "name"}))

		var results []TestModel
		err := Apply(ctx, db).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestForCreator(t *testing.T) {
	userID := uuid.New()

	t.Run("filters by creator", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		ctx := actorContext(identity.Actor{UserID: userID, OwnerID: uuid.New()})

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE created_by = \$1`).
			WithArgs(userID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_by", "name"}))

		var results []TestModel
		err := db.Scopes(ForCreator(ctx)).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStamp(t *testing.T) {
	ownerID := uuid.New()
	userID := uuid.New()
	outletID := uuid.New()

	t.Run("stamps owner outlet and creator", func(t *testing.T) {
		ctx := actorContext(identity.Actor{UserID: userID, OwnerID: ownerID, OutletID: &outletID})

		var root shared.OwnedAggregateRoot
		Stamp(ctx, &root)

		assert.Equal(t, ownerID, root.OwnerID)
		require.NotNil(t, root.OutletID)
		assert.Equal(t, outletID, *root.OutletID)
		require.NotNil(t, root.CreatedBy)
		assert.Equal(t, userID, *root.CreatedBy)
	})

	t.Run("no-op without actor", func(t *testing.T) {
		var root shared.OwnedAggregateRoot
		Stamp(context.Background(), &root)

		assert.Equal(t, uuid.Nil, root.OwnerID)
		assert.Nil(t, root.OutletID)
		assert.Nil(t, root.CreatedBy)
	})

	t.Run("does not overwrite existing owner", func(t *testing.T) {
		existing := uuid.New()
		ctx := actorContext(identity.Actor{UserID: userID, OwnerID: ownerID})

		root := shared.OwnedAggregateRoot{OwnerID: existing}
		Stamp(ctx, &root)

		assert.Equal(t, existing, root.OwnerID)
	})
}
