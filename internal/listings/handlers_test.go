package listings

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"scraplink-backend/internal/models"
	"scraplink-backend/internal/store"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupHandlers(t *testing.T) (*Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.ScrapListing{}))
	svc := &Service{Store: &store.GormListingStore{DB: db}}
	return &Handlers{Service: svc}, db
}

func createUser(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	u := &models.User{FullName: name, Phone: "+94770000000", Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)
	return u.UserID
}

func appAs(h func(*fiber.Ctx) error, method, path string, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if userID != uuid.Nil {
			c.Locals("user", map[string]interface{}{"user_id": userID.String()})
		}
		return c.Next()
	})
	app.Add(method, path, h)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*fiber.App, map[string]interface{}, int) {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return app, out, resp.StatusCode
}

func validCreateBody() map[string]interface{} {
	return map[string]interface{}{
		"title":            "Old electronics",
		"waste_type":       models.WasteEWaste,
		"estimated_weight": 5,
		"latitude":         6.9271,
		"longitude":        79.8612,
		"address":          "Colombo",
	}
}

func TestCreateListing_Created(t *testing.T) {
	h, db := setupHandlers(t)
	seller := createUser(t, db, "seller")
	app := appAs(h.CreateListing, "POST", "/create-listing", seller)

	_, out, code := doJSON(t, app, "POST", "/create-listing", validCreateBody())
	assert.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, "success", out["status"])
	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	assert.Equal(t, models.StatusActive, data["status"])
}

func TestCreateListing_BadWasteType(t *testing.T) {
	h, db := setupHandlers(t)
	seller := createUser(t, db, "seller")
	app := appAs(h.CreateListing, "POST", "/create-listing", seller)

	body := validCreateBody()
	body["waste_type"] = "GLASS"
	_, _, code := doJSON(t, app, "POST", "/create-listing", body)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestCreateListing_OutOfRangeCoordinates(t *testing.T) {
	h, db := setupHandlers(t)
	seller := createUser(t, db, "seller")
	app := appAs(h.CreateListing, "POST", "/create-listing", seller)

	body := validCreateBody()
	body["latitude"] = 123.4
	_, _, code := doJSON(t, app, "POST", "/create-listing", body)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestClaimListing_SelfClaimForbidden(t *testing.T) {
	h, db := setupHandlers(t)
	seller := createUser(t, db, "seller")

	created := seedActive(t, h, db, seller)
	app := appAs(h.ClaimListing, "POST", "/claim-listing", seller)
	_, _, code := doJSON(t, app, "POST", "/claim-listing", map[string]interface{}{
		"listing_id":  created.String(),
		"pickup_time": time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestClaimListing_BadPickupTime(t *testing.T) {
	h, db := setupHandlers(t)
	seller := createUser(t, db, "seller")
	collector := createUser(t, db, "collector")

	created := seedActive(t, h, db, seller)
	app := appAs(h.ClaimListing, "POST", "/claim-listing", collector)
	_, _, code := doJSON(t, app, "POST", "/claim-listing", map[string]interface{}{
		"listing_id":  created.String(),
		"pickup_time": "tomorrow noon",
	})
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestClaimListing_AlreadyReservedConflicts(t *testing.T) {
	h, db := setupHandlers(t)
	seller := createUser(t, db, "seller")
	first := createUser(t, db, "first")
	second := createUser(t, db, "second")

	created := seedActive(t, h, db, seller)
	body := map[string]interface{}{
		"listing_id":  created.String(),
		"pickup_time": time.Now().Add(time.Hour).Format(time.RFC3339),
	}

	app := appAs(h.ClaimListing, "POST", "/claim-listing", first)
	_, _, code := doJSON(t, app, "POST", "/claim-listing", body)
	require.Equal(t, fiber.StatusOK, code)

	app = appAs(h.ClaimListing, "POST", "/claim-listing", second)
	_, _, code = doJSON(t, app, "POST", "/claim-listing", body)
	assert.Equal(t, fiber.StatusConflict, code)
}

func TestFinalizePickup_WrongActor(t *testing.T) {
	h, db := setupHandlers(t)
	seller := createUser(t, db, "seller")
	collector := createUser(t, db, "collector")
	stranger := createUser(t, db, "stranger")

	created := seedActive(t, h, db, seller)
	claim := appAs(h.ClaimListing, "POST", "/claim-listing", collector)
	_, _, code := doJSON(t, claim, "POST", "/claim-listing", map[string]interface{}{
		"listing_id":  created.String(),
		"pickup_time": time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, fiber.StatusOK, code)

	finalize := appAs(h.FinalizePickup, "POST", "/finalize-pickup", stranger)
	_, _, code = doJSON(t, finalize, "POST", "/finalize-pickup", map[string]interface{}{
		"listing_id":    created.String(),
		"unit_price":    40,
		"actual_weight": 4.8,
	})
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestGetListingByID_HidesContactsFromBystander(t *testing.T) {
	h, db := setupHandlers(t)
	seller := createUser(t, db, "seller")
	collector := createUser(t, db, "collector")
	bystander := createUser(t, db, "bystander")

	created := seedActive(t, h, db, seller)
	claim := appAs(h.ClaimListing, "POST", "/claim-listing", collector)
	_, _, code := doJSON(t, claim, "POST", "/claim-listing", map[string]interface{}{
		"listing_id":  created.String(),
		"pickup_time": time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, fiber.StatusOK, code)

	get := appAs(h.GetListingByID, "GET", "/get-listing/:listing_id", bystander)
	_, out, code := doJSON(t, get, "GET", "/get-listing/"+created.String(), nil)
	require.Equal(t, fiber.StatusOK, code)
	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	assert.Nil(t, data["collector_contact"])
	assert.Nil(t, data["seller_contact"])

	get = appAs(h.GetListingByID, "GET", "/get-listing/:listing_id", collector)
	_, out, code = doJSON(t, get, "GET", "/get-listing/"+created.String(), nil)
	require.Equal(t, fiber.StatusOK, code)
	data, _ = out["data"].(map[string]interface{})
	contact, _ := data["seller_contact"].(map[string]interface{})
	require.NotNil(t, contact)
	assert.Equal(t, "+94770000000", contact["phone"])
}

func TestGetListingByID_InvalidUUID(t *testing.T) {
	h, db := setupHandlers(t)
	viewer := createUser(t, db, "viewer")
	app := appAs(h.GetListingByID, "GET", "/get-listing/:listing_id", viewer)
	_, _, code := doJSON(t, app, "GET", "/get-listing/not-a-uuid", nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestWithdrawListing_NotFound(t *testing.T) {
	h, db := setupHandlers(t)
	seller := createUser(t, db, "seller")
	app := appAs(h.WithdrawListing, "POST", "/withdraw-listing", seller)
	_, _, code := doJSON(t, app, "POST", "/withdraw-listing", map[string]interface{}{
		"listing_id": uuid.New().String(),
	})
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestEditListing_UpdatesFields(t *testing.T) {
	h, db := setupHandlers(t)
	seller := createUser(t, db, "seller")

	created := seedActive(t, h, db, seller)
	app := appAs(h.EditListing, "PUT", "/edit-listing", seller)
	_, out, code := doJSON(t, app, "PUT", "/edit-listing", map[string]interface{}{
		"listing_id": created.String(),
		"title":      "Old laptops",
	})
	require.Equal(t, fiber.StatusOK, code)
	data, _ := out["data"].(map[string]interface{})
	assert.Equal(t, "Old laptops", data["title"])
}

// seedActive creates an ACTIVE listing through the handler and returns its id.
func seedActive(t *testing.T, h *Handlers, db *gorm.DB, seller uuid.UUID) uuid.UUID {
	app := appAs(h.CreateListing, "POST", "/create-listing", seller)
	_, out, code := doJSON(t, app, "POST", "/create-listing", validCreateBody())
	require.Equal(t, fiber.StatusCreated, code)
	data, _ := out["data"].(map[string]interface{})
	idStr, _ := data["listing_id"].(string)
	id, err := uuid.Parse(idStr)
	require.NoError(t, err)
	return id
}
