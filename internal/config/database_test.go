package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"loadboard/internal/models"
)

// openTestDB connects to TEST_DATABASE_URL and applies the embedded
// migrations. The database should be disposable.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := InitDB(Config{DatabaseURL: dsn, DBMaxOpenConns: 4, DBMaxIdleConns: 2})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestRunMigrationsIsRepeatable(t *testing.T) {
	db := openTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	assert.NoError(t, RunMigrations(sqlDB))
}

func TestMigratedSchemaAcceptsModels(t *testing.T) {
	db := openTestDB(t)

	tx := db.Begin()
	require.NoError(t, tx.Error)
	defer tx.Rollback()

	suffix := time.Now().Format("150405.000000")
	sender := models.User{FirstName: "Ann", Email: "ann-" + suffix + "@example.com", Password: "x", AccountType: models.AccountTypeDriver}
	receiver := models.User{FirstName: "Bob", Email: "bob-" + suffix + "@example.com", Password: "x"}
	require.NoError(t, tx.Create(&sender).Error)
	require.NoError(t, tx.Create(&receiver).Error)

	var stored models.User
	require.NoError(t, tx.Take(&stored, sender.UserID).Error)
	assert.Equal(t, models.UserStatusIdle, stored.Status)

	order := models.Order{LoadID: "L-" + suffix, VehicleAmount: 2, Payment: 1500.25, UserID: receiver.UserID}
	require.NoError(t, tx.Create(&order).Error)
	var open int64
	require.NoError(t, tx.Model(&models.Order{}).Where("id = ? AND status IS NULL", order.ID).Count(&open).Error)
	assert.EqualValues(t, 1, open)

	assigned := models.AssignedOrder{TripName: "Trip", Payment: 1500.25, UserID: sender.UserID, OrderID: &order.ID}
	require.NoError(t, tx.Create(&assigned).Error)

	receipt := models.Receipt{OrderID: order.LoadID, ReceiptPath: "v1/pod.pdf", UserID: sender.UserID}
	require.NoError(t, tx.Create(&receipt).Error)

	sent := time.Now().UTC().Truncate(time.Microsecond)
	msg := models.Message{SenderID: sender.UserID, ReceiverID: receiver.UserID, Content: "hi", Timestamp: sent}
	require.NoError(t, tx.Create(&msg).Error)
	var got models.Message
	require.NoError(t, tx.Take(&got, msg.ID).Error)
	assert.True(t, sent.Equal(got.Timestamp))

	tx.SavePoint("dup")
	err := tx.Create(&models.User{Email: sender.Email, Password: "y"}).Error
	assert.True(t, isPgError(err, "23505", gorm.ErrDuplicatedKey), "%v", err)
	tx.RollbackTo("dup")

	err = tx.Create(&models.Message{SenderID: 0, ReceiverID: receiver.UserID, Content: "ghost"}).Error
	assert.True(t, isPgError(err, "23503", gorm.ErrForeignKeyViolated), "%v", err)
}

// isPgError matches a raw lib/pq error code or the error GORM translates it to.
func isPgError(err error, code pq.ErrorCode, translated error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == code
	}
	return errors.Is(err, translated)
}
