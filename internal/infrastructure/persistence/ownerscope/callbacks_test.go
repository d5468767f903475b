package ownerscope

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectImmutableCallback(t *testing.T) {
	t.Run("update drops owner outlet and creator columns", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()
		require.NoError(t, RegisterCallbacks(db))

		id := uuid.New()
		hijacker := uuid.New()

		// The attempted owner_id reassignment must not reach the database.
		mock.ExpectExec(`UPDATE "test_models" SET "name"=\$1 WHERE id = \$2`).
			WithArgs("renamed", id.String()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := db.Model(&TestModel{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"name":     "renamed",
				"owner_id": hijacker,
			}).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("columns not on the model are left alone", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()
		require.NoError(t, RegisterCallbacks(db))

		type plainModel struct {
			ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
			Name string    `gorm:"size:100"`
		}

		id := uuid.New()
		mock.ExpectExec(`UPDATE "plain_models" SET "name"=\$1 WHERE id = \$2`).
			WithArgs("renamed", id.String()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := db.Model(&plainModel{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{"name": "renamed"}).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
