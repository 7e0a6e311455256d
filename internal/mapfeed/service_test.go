package mapfeed

import (
	"context"
	"testing"
	"time"

	"scraplink-backend/internal/models"
	"scraplink-backend/internal/store"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupFeed(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.ScrapListing{}))
	return &Service{Store: &store.GormListingStore{DB: db}}, db
}

func addListing(t *testing.T, db *gorm.DB, seller uuid.UUID, title, status string, createdAt time.Time) *models.ScrapListing {
	l := &models.ScrapListing{
		Title:           title,
		WasteType:       models.WastePlastic,
		EstimatedWeight: 2,
		Latitude:        6.9,
		Longitude:       79.8,
		Address:         "Colombo",
		Status:          status,
		SellerID:        seller,
	}
	require.NoError(t, db.Create(l).Error)
	require.NoError(t, db.Model(l).Update("created_at", createdAt).Error)
	return l
}

func TestListActive_OnlyActiveNewestFirst(t *testing.T) {
	svc, db := setupFeed(t)
	seller := &models.User{FullName: "Map Seller", Phone: "+94771112222", Email: "map@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(seller).Error)

	now := time.Now()
	addListing(t, db, seller.UserID, "Oldest", models.StatusActive, now.Add(-2*time.Hour))
	addListing(t, db, seller.UserID, "Newest", models.StatusActive, now)
	addListing(t, db, seller.UserID, "Taken", models.StatusReserved, now.Add(-time.Hour))

	views, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Newest", views[0].Title)
	assert.Equal(t, "Oldest", views[1].Title)
}

func TestListActive_IncludesSellerContact(t *testing.T) {
	svc, db := setupFeed(t)
	seller := &models.User{FullName: "Map Seller", Phone: "+94771112222", Email: "map@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(seller).Error)
	addListing(t, db, seller.UserID, "Plastic crates", models.StatusActive, time.Now())

	views, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].SellerContact)
	assert.Equal(t, "+94771112222", views[0].SellerContact.Phone)
	assert.Nil(t, views[0].CollectorContact)
}

func TestListActive_Empty(t *testing.T) {
	svc, _ := setupFeed(t)
	views, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)
}
