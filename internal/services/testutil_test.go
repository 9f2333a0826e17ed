// internal/services/testutil_test.go
package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spicekart/backoffice/internal/config"
	"github.com/spicekart/backoffice/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DSN per test so parallel tests never share state.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	err = db.AutoMigrate(
		&models.Store{},
		&models.User{},
		&models.Category{},
		&models.Subcategory{},
		&models.Product{},
		&models.Subproduct{},
		&models.Image{},
		&models.Client{},
		&models.Otp{},
		&models.Address{},
		&models.Review{},
		&models.Order{},
		&models.Notification{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AdminTokenTTL:  1,
			ClientTokenTTL: 30,
		},
		Otp: config.OtpConfig{
			TTLMinutes:     10,
			ReissueSeconds: 60,
		},
	}
}

// fakeMailer records sent codes and can be told to fail.
type fakeMailer struct {
	sent []string
	fail bool
}

func (m *fakeMailer) SendOtp(to, name, code string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, code)
	return nil
}

// fakeStorage records deleted keys.
type fakeStorage struct {
	deleted []string
}

func (s *fakeStorage) DeleteObjects(keys ...string) error {
	s.deleted = append(s.deleted, keys...)
	return nil
}

func seedStore(t *testing.T, db *gorm.DB) *models.Store {
	t.Helper()
	store := &models.Store{Label: "Test Store", Slug: fmt.Sprintf("slug-%s", uuid.NewString()[:8])}
	require.NoError(t, db.Create(store).Error)
	return store
}

func seedCatalog(t *testing.T, db *gorm.DB, storeID uuid.UUID) (*models.Category, *models.Product) {
	t.Helper()

	category := &models.Category{Name: "Whole Spices", StoreID: storeID}
	require.NoError(t, db.Create(category).Error)

	product := &models.Product{
		Name:       "Black Pepper",
		Price:      12.50,
		Stock:      100,
		CategoryID: category.ID,
		StoreID:    storeID,
	}
	require.NoError(t, db.Create(product).Error)

	return category, product
}

func seedClientWithAddress(t *testing.T, db *gorm.DB) (*models.Client, *models.Address) {
	t.Helper()

	client := &models.Client{
		Name:  "Asha",
		Email: fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		Phone: "+1" + uuid.NewString()[:9],
	}
	require.NoError(t, db.Create(client).Error)

	address := &models.Address{
		Label:    models.AddressLabelHome,
		Line1:    "12 Spice Lane",
		City:     "Portland",
		ClientID: client.ID,
	}
	require.NoError(t, db.Create(address).Error)

	return client, address
}
