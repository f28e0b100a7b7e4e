package handlers

import (
	"Reelhouse/internal/services"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) CreateFolders(projectID uint, kind services.FolderKind, names []string) (*services.FolderResult, error) {
	args := m.Called(projectID, kind, names)
	result, _ := args.Get(0).(*services.FolderResult)
	return result, args.Error(1)
}

func TestAssetHandler_CreateFolders(t *testing.T) {
	app := fiber.New()
	mockService := new(MockAssetService)
	handler := NewAssetHandler(mockService)
	app.Post("/projects/:id/folders", handler.CreateFolders)

	result := &services.FolderResult{
		Kind:    services.FolderCharacter,
		Folders: []string{"MODEL/Characters/High_Resolution/__hero"},
		Seeded:  []string{"MODEL/Characters/High_Resolution/__hero/geo_hi_char_hero.ma"},
	}
	mockService.On("CreateFolders", uint(1), services.FolderCharacter, []string{"hero"}).Return(result, nil)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/projects/1/folders", map[string]interface{}{
		"kind":  "character",
		"names": []string{"hero"},
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "character", body["kind"])
	assert.Len(t, body["seeded"], 1)
	mockService.AssertExpectations(t)
}

func TestAssetHandler_CreateFolders_Errors(t *testing.T) {
	app := fiber.New()
	mockService := new(MockAssetService)
	handler := NewAssetHandler(mockService)
	app.Post("/projects/:id/folders", handler.CreateFolders)

	partial := &services.FolderResult{Kind: services.FolderCharacter, Folders: []string{"MODEL/Characters/High_Resolution/__hero"}}
	mockService.On("CreateFolders", uint(1), services.FolderCharacter, []string{"hero"}).
		Return(partial, fmt.Errorf("hero: %w: rig_char", services.ErrCategoryNotProvisioned))
	mockService.On("CreateFolders", uint(1), services.FolderKind("vehicle"), []string{"car"}).
		Return(nil, fmt.Errorf("%w: unknown folder kind", services.ErrInvalidInput))
	mockService.On("CreateFolders", uint(2), services.FolderProps, []string{"chair"}).
		Return(&services.FolderResult{Kind: services.FolderProps}, fmt.Errorf("chair: %w: rig_props", services.ErrCategoryNotProvisioned))

	resp, err := app.Test(jsonRequest(http.MethodPost, "/projects/1/folders", map[string]interface{}{"kind": "character", "names": []string{"hero"}}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusMultiStatus, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/projects/1/folders", map[string]interface{}{"kind": "vehicle", "names": []string{"car"}}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/projects/2/folders", map[string]interface{}{"kind": "props", "names": []string{"chair"}}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/projects/1/folders", map[string]interface{}{"kind": "props"}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	mockService.AssertExpectations(t)
}

func TestAssetHandler_ListFolderKinds(t *testing.T) {
	app := fiber.New()
	app.Get("/folders/kinds", NewAssetHandler(new(MockAssetService)).ListFolderKinds)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/folders/kinds", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
