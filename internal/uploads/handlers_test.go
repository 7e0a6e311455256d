package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorageClient struct {
	signedURL string
	err       error
}

func (f *fakeStorageClient) CreateSignedUploadURL(ctx context.Context, bucket, path string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.signedURL, nil
}

func TestUploadListingPhoto_MissingFileName(t *testing.T) {
	h := &Handlers{Service: &Service{Client: &fakeStorageClient{}}}
	app := fiber.New()
	app.Post("/listing-photo", h.UploadListingPhoto)

	body, _ := json.Marshal(map[string]string{})
	req := httptest.NewRequest("POST", "/listing-photo", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUploadListingPhoto_Success(t *testing.T) {
	h := &Handlers{Service: &Service{
		Client:      &fakeStorageClient{signedURL: "https://storage.example.com/signed"},
		SupabaseURL: "https://storage.example.com",
	}}
	app := fiber.New()
	app.Post("/listing-photo", h.UploadListingPhoto)

	body, _ := json.Marshal(map[string]string{"file_name": "pile.jpg"})
	req := httptest.NewRequest("POST", "/listing-photo", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	assert.Equal(t, "https://storage.example.com/signed", data["uploadUrl"])
	assert.Contains(t, data["publicUrl"], "/storage/v1/object/public/listing-photos/")
}
